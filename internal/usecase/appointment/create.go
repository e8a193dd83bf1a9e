package appointment

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
	"github.com/BruksfildServices01/booking-platform/internal/notify"
	"github.com/BruksfildServices01/booking-platform/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarbershopID uint
	BarberID     uint

	ClientID    uint // 0 = resolver pelo telefone
	ClientName  string
	ClientPhone string
	ClientEmail string

	ProductID uint

	Date  string // "2006-01-02"
	Time  string // "15:04"
	Notes string

	// reservas feitas pelo barbeiro nascem confirmadas e dispensam a
	// antecedência mínima exigida do público
	ByStaff bool
}

// ======================================================
// USE CASE
// ======================================================

// CreateAppointment é a transação de reserva: Validate → CheckConflict →
// Persist → Notify. Validação e conflito rodam de novo aqui, contra dados
// frescos; a persistência é atômica no repositório; a notificação é
// fire-and-forget e nunca desfaz a reserva.
type CreateAppointment struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	events *events.Publisher
	audit  *audit.Dispatcher
	clk    clock.Clock
}

func NewCreateAppointment(
	repo domain.Repository,
	notifier *notify.Dispatcher,
	publisher *events.Publisher,
	auditor *audit.Dispatcher,
	clk clock.Clock,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		notify: notifier,
		events: publisher,
		audit:  auditor,
		clk:    clk,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Barbearia e data/hora no fuso dela
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := uc.clk.Now().In(loc)
	today := schedule.Midnight(now)

	// --------------------------------------------------
	// 2. Antecedência mínima (somente público)
	// --------------------------------------------------
	if !in.ByStaff {
		minAdvance := shop.MinAdvanceMinutes
		if minAdvance <= 0 {
			minAdvance = 120
		}
		if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
			return nil, httperr.ErrBusiness("too_soon")
		}
	} else if start.Before(now) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 3. Serviço
	// --------------------------------------------------
	product, err := uc.repo.GetProduct(ctx, in.BarbershopID, in.ProductID)
	if err != nil {
		return nil, httperr.ErrBusiness("product_not_found")
	}

	end := start.Add(time.Duration(product.DurationMin) * time.Minute)

	// --------------------------------------------------
	// 4. Validate: janela efetiva no commit
	// --------------------------------------------------
	reason, err := ValidateSlot(ctx, uc.repo, in.BarbershopID, in.BarberID, start, end, today)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		return nil, httperr.ErrBusiness(reason)
	}

	// --------------------------------------------------
	// 5. CheckConflict: leitura fresca (a decisão final é da escrita
	//    atômica do repositório)
	// --------------------------------------------------
	booked, err := uc.repo.ListBookedIntervals(
		ctx,
		in.BarberID,
		schedule.Midnight(start),
		schedule.Midnight(start).AddDate(0, 0, 1),
		0,
	)
	if err != nil {
		return nil, err
	}
	if schedule.HasConflict(schedule.Interval{Start: start, End: end}, booked) {
		return nil, httperr.ErrBusiness("time_conflict")
	}

	// --------------------------------------------------
	// 6. Cliente (get or create por telefone)
	// --------------------------------------------------
	clientID := in.ClientID
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

	// --------------------------------------------------
	// 7. Persist (atômico)
	// --------------------------------------------------
	ap := &models.Appointment{
		BarbershopID:    in.BarbershopID,
		BarberID:        in.BarberID,
		ClientID:        clientID,
		BarberProductID: product.ID,
		DurationMin:     product.DurationMin,
		Price:           product.Price,
		StartTime:       start,
		EndTime:         end,
		Status:          string(domain.InitialStatus(in.ByStaff)),
		Notes:           in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8. Notify + eventos (fire-and-forget)
	// --------------------------------------------------
	uc.notify.Dispatch(notify.Message{
		Recipient: in.ClientPhone,
		Template:  "booking_confirmed",
		Data: map[string]any{
			"shop":    shop.Name,
			"service": product.Name,
			"date":    in.Date,
			"time":    in.Time,
		},
	})

	uc.events.AvailabilityChanged(ctx, in.BarbershopID, in.BarberID, start)

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
