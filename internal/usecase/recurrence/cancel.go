package recurrence

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

type CancelSeriesInput struct {
	BarbershopID  uint
	BarberID      uint
	AppointmentID uint

	Scope domain.Scope
}

// CancelSeries segue a mesma semântica de escopo da remarcação, mas a
// mutação é status=cancelled (o histórico de slots fica preservado).
type CancelSeries struct {
	repo   domain.Repository
	events *events.Publisher
	audit  *audit.Dispatcher
	clk    clock.Clock
}

func NewCancelSeries(
	repo domain.Repository,
	publisher *events.Publisher,
	auditor *audit.Dispatcher,
	clk clock.Clock,
) *CancelSeries {
	return &CancelSeries{
		repo:   repo,
		events: publisher,
		audit:  auditor,
		clk:    clk,
	}
}

func (uc *CancelSeries) Execute(
	ctx context.Context,
	in CancelSeriesInput,
) ([]models.Appointment, error) {

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
			if domain.CanCancel(domain.Status(ap.Status)) != nil {
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

	now := uc.clk.Now().In(timezone.Location(shop.Timezone))

	var cancelled []models.Appointment
	for i := range targets {
		ap := targets[i]

		if err := domain.Cancel(&ap, now); err != nil {
			continue
		}
		if err := uc.repo.UpdateAppointment(ctx, &ap); err != nil {
			return nil, err
		}

		cancelled = append(cancelled, ap)
		uc.events.AvailabilityChanged(ctx, in.BarbershopID, in.BarberID, ap.StartTime)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "series_cancelled",
		Entity:       "appointment_series",
		EntityID:     &target.ID,
		Metadata: map[string]any{
			"scope":     string(in.Scope),
			"cancelled": len(cancelled),
		},
	})

	return cancelled, nil
}
