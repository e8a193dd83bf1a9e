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

type RescheduleAppointmentInput struct {
	BarbershopID  uint
	BarberID      uint
	AppointmentID uint

	Date string // "2006-01-02"
	Time string // "15:04"
}

type RescheduleAppointment struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	events *events.Publisher
	audit  *audit.Dispatcher
	clk    clock.Clock
}

func NewRescheduleAppointment(
	repo domain.Repository,
	notifier *notify.Dispatcher,
	publisher *events.Publisher,
	auditor *audit.Dispatcher,
	clk clock.Clock,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:   repo,
		notify: notifier,
		events: publisher,
		audit:  auditor,
		clk:    clk,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForBarber(ctx, in.AppointmentID, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	newStart, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	newEnd := newStart.Add(time.Duration(ap.DurationMin) * time.Minute)

	today := schedule.Midnight(uc.clk.Now().In(loc))
	reason, err := ValidateSlot(ctx, uc.repo, in.BarbershopID, in.BarberID, newStart, newEnd, today)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		return nil, httperr.ErrBusiness(reason)
	}

	oldStart := ap.StartTime.In(loc)

	// ocorrência de série remarcada avulsa diverge da aritmética da
	// série: guarda a data original uma única vez
	dateChanged := !schedule.Midnight(oldStart).Equal(schedule.Midnight(newStart))
	if ap.SeriesID != nil && dateChanged && ap.OriginalDate == nil {
		prior := schedule.Midnight(oldStart)
		ap.OriginalDate = &prior
	}

	if err := uc.repo.RescheduleAppointment(ctx, ap, newStart, newEnd); err != nil {
		return nil, err
	}

	var recipient string
	if client, err := uc.repo.GetClientByID(ctx, ap.ClientID); err == nil {
		recipient = client.Phone
	}

	uc.notify.Dispatch(notify.Message{
		Recipient: recipient,
		Template:  "booking_rescheduled",
		Data: map[string]any{
			"shop": shop.Name,
			"from": oldStart.Format("2006-01-02 15:04"),
			"to":   newStart.Format("2006-01-02 15:04"),
		},
	})

	// libera o horário antigo e ocupa o novo
	uc.events.AvailabilityChanged(ctx, in.BarbershopID, in.BarberID, oldStart)
	uc.events.AvailabilityChanged(ctx, in.BarbershopID, in.BarberID, newStart)

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "appointment_rescheduled",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
