package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-platform/internal/clock"
	domain "github.com/BruksfildServices01/booking-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-platform/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-platform/internal/httperr"
	"github.com/BruksfildServices01/booking-platform/internal/timezone"
)

type AvailabilityResult struct {
	Valid  bool              `json:"valid"`
	Reason string            `json:"reason,omitempty"`
	Slots  []domain.TimeSlot `json:"slots"`
}

type GetAvailability struct {
	repo domain.Repository
	clk  clock.Clock
}

func NewGetAvailability(repo domain.Repository, clk clock.Clock) *GetAvailability {
	return &GetAvailability{repo: repo, clk: clk}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*AvailabilityResult, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	product, err := uc.repo.GetProduct(ctx, in.BarbershopID, in.ProductID)
	if err != nil {
		return nil, httperr.ErrBusiness("product_not_found")
	}

	loc := timezone.Location(shop.Timezone)
	day := schedule.Midnight(in.Date.In(loc))
	today := schedule.Midnight(uc.clk.Now().In(loc))

	rules, err := uc.repo.LoadDayRules(ctx, in.BarbershopID, in.BarberID, day)
	if err != nil {
		return nil, err
	}

	res := schedule.Resolve(schedule.ResolveInput{
		Date:   day,
		Today:  today,
		UnitID: in.BarbershopID,
		Rules:  rules,
	})
	if !res.Valid {
		return &AvailabilityResult{Valid: false, Reason: res.Reason, Slots: []domain.TimeSlot{}}, nil
	}

	duration := time.Duration(product.DurationMin) * time.Minute
	candidates := schedule.GenerateSlots(res.Window, duration)

	booked, err := uc.repo.ListBookedIntervals(
		ctx,
		in.BarberID,
		day,
		day.AddDate(0, 0, 1),
		0,
	)
	if err != nil {
		return nil, err
	}

	free := schedule.FilterAvailable(candidates, booked)

	slots := make([]domain.TimeSlot, 0, len(free))
	for _, s := range free {
		slots = append(slots, domain.TimeSlot{
			Start: s.Start.Format("15:04"),
			End:   s.End.Format("15:04"),
		})
	}

	return &AvailabilityResult{Valid: true, Slots: slots}, nil
}
