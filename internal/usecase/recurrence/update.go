package recurrence

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-platform/internal/audit"
	"github.com/BruksfildServices01/booking-platform/internal/clock"
	domain "github.com/BruksfildServices01/booking-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-platform/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-platform/internal/events"
	"github.com/BruksfildServices01/booking-platform/internal/httperr"
	"github.com/BruksfildServices01/booking-platform/internal/models"
	"github.com/BruksfildServices01/booking-platform/internal/timezone"
)

// UpdateSeries aplica uma remarcação a uma série com o escopo pedido.
// single muda só o alvo (que passa a divergir); future e all calculam UM
// delta de dias a partir do alvo e somam esse mesmo delta à data corrente
// de cada ocorrência afetada — nunca re-derivando da regra —, o que
// preserva o espaçamento e carrega junto quem já tinha divergido.
type UpdateSeries struct {
	repo   domain.Repository
	events *events.Publisher
	audit  *audit.Dispatcher
	clk    clock.Clock
}

func NewUpdateSeries(
	repo domain.Repository,
	publisher *events.Publisher,
	auditor *audit.Dispatcher,
	clk clock.Clock,
) *UpdateSeries {
	return &UpdateSeries{
		repo:   repo,
		events: publisher,
		audit:  auditor,
		clk:    clk,
	}
}

func (uc *UpdateSeries) Execute(
	ctx context.Context,
	in UpdateSeriesInput,
) (*SeriesUpdateResult, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	target, err := uc.repo.GetAppointmentForBarber(ctx, in.AppointmentID, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if target.SeriesID == nil {
		return nil, httperr.ErrBusiness("not_a_series")
	}

	loc := timezone.Location(shop.Timezone)
	newDate, err := time.ParseInLocation(schedule.DateKeyLayout, in.NewDate, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	today := schedule.Midnight(uc.clk.Now().In(loc))
	delta := schedule.DayDelta(target.StartTime.In(loc), newDate)

	var newProduct *models.BarberProduct
	if in.NewProductID != 0 {
		newProduct, err = uc.repo.GetProduct(ctx, in.BarbershopID, in.NewProductID)
		if err != nil {
			return nil, httperr.ErrBusiness("product_not_found")
		}
	}

	var targets []models.Appointment

	switch in.Scope {
	case domain.ScopeSingle:
		targets = []models.Appointment{*target}

	case domain.ScopeFuture, domain.ScopeAll:
		all, err := uc.repo.ListSeries(ctx, *target.SeriesID, in.BarberID)
		if err != nil {
			return nil, err
		}
		for _, ap := range all {
			if !domain.Status(ap.Status).OccupiesSlot() {
				continue // canceladas e no-show ficam onde estão
			}
			if ap.Status == string(domain.StatusCompleted) {
				continue
			}
			if in.Scope == domain.ScopeFuture &&
				(ap.SeriesIndex == nil || target.SeriesIndex == nil ||
					*ap.SeriesIndex < *target.SeriesIndex) {
				continue
			}
			targets = append(targets, ap)
		}

	default:
		return nil, httperr.ErrBusiness("invalid_scope")
	}

	result := &SeriesUpdateResult{}

	for i := range targets {
		ap := targets[i]

		oldStart := ap.StartTime.In(loc)

		// desloca a data CORRENTE da própria ocorrência
		newStart := oldStart.AddDate(0, 0, delta)
		if in.NewTime != "" {
			t, err := time.Parse("15:04", in.NewTime)
			if err != nil {
				return nil, httperr.ErrBusiness("invalid_time")
			}
			newStart = time.Date(
				newStart.Year(), newStart.Month(), newStart.Day(),
				t.Hour(), t.Minute(), 0, 0, loc,
			)
		}
		if newProduct != nil {
			ap.BarberProductID = newProduct.ID
			ap.DurationMin = newProduct.DurationMin
			ap.Price = newProduct.Price
		}
		newEnd := newStart.Add(time.Duration(ap.DurationMin) * time.Minute)

		reason, err := checkOccurrence(
			ctx, uc.repo,
			in.BarbershopID, in.BarberID,
			newStart, newEnd,
			today, ap.ID,
		)
		if err != nil {
			return nil, err
		}
		if reason == "" {
			if in.Scope == domain.ScopeSingle && delta != 0 && ap.OriginalDate == nil {
				prior := schedule.Midnight(oldStart)
				ap.OriginalDate = &prior
			}
			err = uc.repo.RescheduleAppointment(ctx, &ap, newStart, newEnd)
		}

		if reason != "" || err != nil {
			if err != nil && !httperr.IsBusiness(err, "time_conflict") {
				return nil, err
			}
			if reason == "" {
				reason = "time_conflict"
			}
			result.Failed = append(result.Failed, OccurrenceFailure{
				Index:  indexOf(ap),
				Date:   oldStart.Format(schedule.DateKeyLayout),
				Reason: reason,
			})
			continue
		}

		result.Updated = append(result.Updated, ap)
		uc.events.AvailabilityChanged(ctx, in.BarbershopID, in.BarberID, oldStart)
		uc.events.AvailabilityChanged(ctx, in.BarbershopID, in.BarberID, newStart)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "series_updated",
		Entity:       "appointment_series",
		EntityID:     &target.ID,
		Metadata: map[string]any{
			"scope":     string(in.Scope),
			"day_delta": delta,
			"updated":   len(result.Updated),
			"failed":    len(result.Failed),
		},
	})

	return result, nil
}

func indexOf(ap models.Appointment) int {
	if ap.SeriesIndex == nil {
		return -1
	}
	return *ap.SeriesIndex
}
