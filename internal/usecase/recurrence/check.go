package recurrence

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/booking-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-platform/internal/domain/schedule"
	ucappointment "github.com/BruksfildServices01/booking-platform/internal/usecase/appointment"
)

// checkOccurrence roda resolver + contenção + conflito para uma data da
// série, exatamente como o caminho de reserva unitária faria.
func checkOccurrence(
	ctx context.Context,
	repo domain.Repository,
	barbershopID uint,
	barberID uint,
	start time.Time,
	end time.Time,
	today time.Time,
	excludeID uint,
) (string, error) {

	reason, err := ucappointment.ValidateSlot(ctx, repo, barbershopID, barberID, start, end, today)
	if err != nil {
		return "", err
	}
	if reason != "" {
		return reason, nil
	}

	day := schedule.Midnight(start)
	booked, err := repo.ListBookedIntervals(ctx, barberID, day, day.AddDate(0, 0, 1), excludeID)
	if err != nil {
		return "", err
	}
	if schedule.HasConflict(schedule.Interval{Start: start, End: end}, booked) {
		return "time_conflict", nil
	}

	return "", nil
}
