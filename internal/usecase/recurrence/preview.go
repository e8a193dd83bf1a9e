package recurrence

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-platform/internal/clock"
	domain "github.com/BruksfildServices01/booking-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-platform/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-platform/internal/httperr"
	"github.com/BruksfildServices01/booking-platform/internal/timezone"
)

// PreviewSeries expande a regra e checa cada ocorrência sem gravar nada,
// para o chamador decidir de posse da lista completa de conflitos.
type PreviewSeries struct {
	repo domain.Repository
	clk  clock.Clock
}

func NewPreviewSeries(repo domain.Repository, clk clock.Clock) *PreviewSeries {
	return &PreviewSeries{repo: repo, clk: clk}
}

func (uc *PreviewSeries) Execute(
	ctx context.Context,
	in SeriesInput,
) ([]OccurrenceCheck, error) {

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

	checks := make([]OccurrenceCheck, 0, len(dates))
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

		checks = append(checks, OccurrenceCheck{
			Index:  i,
			Date:   start.Format(schedule.DateKeyLayout),
			Valid:  reason == "",
			Reason: reason,
		})
	}

	return checks, nil
}
