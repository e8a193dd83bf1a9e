package appointment

import (
	"context"

	"github.com/BruksfildServices01/booking-platform/internal/audit"
	"github.com/BruksfildServices01/booking-platform/internal/clock"
	domain "github.com/BruksfildServices01/booking-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-platform/internal/events"
	"github.com/BruksfildServices01/booking-platform/internal/httperr"
	"github.com/BruksfildServices01/booking-platform/internal/models"
	"github.com/BruksfildServices01/booking-platform/internal/timezone"
)

type CancelAppointment struct {
	repo   domain.Repository
	events *events.Publisher
	audit  *audit.Dispatcher
	clk    clock.Clock
}

func NewCancelAppointment(
	repo domain.Repository,
	publisher *events.Publisher,
	auditor *audit.Dispatcher,
	clk clock.Clock,
) *CancelAppointment {
	return &CancelAppointment{
		repo:   repo,
		events: publisher,
		audit:  auditor,
		clk:    clk,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := uc.clk.Now().In(timezone.Location(shop.Timezone))
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// cancelamento libera o slot na hora
	uc.events.AvailabilityChanged(ctx, barbershopID, barberID, ap.StartTime)

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "appointment_cancelled",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
