package recurrence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-platform/internal/audit"
	"github.com/BruksfildServices01/booking-platform/internal/clock"
	domain "github.com/BruksfildServices01/booking-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-platform/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-platform/internal/events"
	"github.com/BruksfildServices01/booking-platform/internal/httperr"
	"github.com/BruksfildServices01/booking-platform/internal/models"
	"github.com/BruksfildServices01/booking-platform/internal/notify"
	"github.com/BruksfildServices01/booking-platform/internal/timezone"
)

// CreateSeries grava uma série recorrente. Tudo-ou-nada na validação: se
// qualquer data estiver inválida ou ocupada, a lista completa volta para
// o chamador e nada é persistido — nunca uma série parcial silenciosa.
// Na persistência, cada ocorrência passa pela escrita atômica; perder a
// corrida em uma delas é relatado por ocorrência, nunca engolido.
type CreateSeries struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	events *events.Publisher
	audit  *audit.Dispatcher
	clk    clock.Clock
}

func NewCreateSeries(
	repo domain.Repository,
	notifier *notify.Dispatcher,
	publisher *events.Publisher,
	auditor *audit.Dispatcher,
	clk clock.Clock,
) *CreateSeries {
	return &CreateSeries{
		repo:   repo,
		notify: notifier,
		events: publisher,
		audit:  auditor,
		clk:    clk,
	}
}

func (uc *CreateSeries) Execute(
	ctx context.Context,
	in SeriesInput,
) (*SeriesCreateResult, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	product, err := uc.repo.GetProduct(ctx, in.BarbershopID, in.ProductID)
	if err != nil {
		return nil, httperr.ErrBusiness("product_not_found")
	}

	loc := timezone.Location(shop.Timezone)
	first, err := time.ParseInLocation("2006-01-02 15:04", in.StartDate+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	dates, err := in.Rule.Expand(first)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_recurrence_rule")
	}

	duration := time.Duration(product.DurationMin) * time.Minute
	today := schedule.Midnight(uc.clk.Now().In(loc))

	// ------------------------------------------------------------------
	// 1. Checagem completa antes de qualquer escrita
	// ------------------------------------------------------------------
	var conflicts []OccurrenceCheck
	for i, start := range dates {
		reason, err := checkOccurrence(
			ctx, uc.repo,
			in.BarbershopID, in.BarberID,
			start, start.Add(duration),
			today, 0,
		)
		if err != nil {
			return nil, err
		}
		if reason != "" {
			conflicts = append(conflicts, OccurrenceCheck{
				Index:  i,
				Date:   start.Format(schedule.DateKeyLayout),
				Valid:  false,
				Reason: reason,
			})
		}
	}

	if len(conflicts) > 0 {
		return &SeriesCreateResult{Conflicts: conflicts}, nil
	}

	// ------------------------------------------------------------------
	// 2. Cliente e persistência em lote
	// ------------------------------------------------------------------
	clientID := in.ClientID
	clientPhone := in.ClientPhone
	if clientID == 0 {
		client, err := uc.repo.GetOrCreateClient(
			ctx,
			in.BarbershopID,
			in.ClientName,
			in.ClientPhone,
			in.ClientEmail,
		)
		if err != nil {
			return nil, err
		}
		clientID = client.ID
	}

	seriesID := uuid.New()
	rule := in.Rule.Encode()

	result := &SeriesCreateResult{SeriesID: seriesID}

	for i, start := range dates {
		idx := i
		ap := &models.Appointment{
			BarbershopID:    in.BarbershopID,
			BarberID:        in.BarberID,
			ClientID:        clientID,
			BarberProductID: product.ID,
			DurationMin:     product.DurationMin,
			Price:           product.Price,
			StartTime:       start,
			EndTime:         start.Add(duration),
			Status:          string(domain.StatusConfirmed),
			SeriesID:        &seriesID,
			SeriesIndex:     &idx,
			SeriesRule:      rule,
			Notes:           in.Notes,
		}

		if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
			if httperr.IsBusiness(err, "time_conflict") {
				result.Failed = append(result.Failed, OccurrenceFailure{
					Index:  i,
					Date:   start.Format(schedule.DateKeyLayout),
					Reason: "time_conflict",
				})
				continue
			}
			return nil, err
		}

		result.Created = append(result.Created, *ap)
		uc.events.AvailabilityChanged(ctx, in.BarbershopID, in.BarberID, start)
	}

	uc.notify.Dispatch(notify.Message{
		Recipient: clientPhone,
		Template:  "series_confirmed",
		Data: map[string]any{
			"shop":        shop.Name,
			"service":     product.Name,
			"occurrences": len(result.Created),
			"first_date":  in.StartDate,
			"time":        in.Time,
		},
	})

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "series_created",
		Entity:       "appointment_series",
		Metadata: map[string]any{
			"series_id":   seriesID.String(),
			"occurrences": len(result.Created),
			"failed":      len(result.Failed),
		},
	})

	return result, nil
}
