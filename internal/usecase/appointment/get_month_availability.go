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

type MonthAvailabilityInput struct {
	BarbershopID uint
	BarberID     uint
	ProductID    uint
	Year         int
	Month        int
}

// GetMonthAvailability pinta o calendário: para cada dia do mês roda a
// MESMA cadeia resolver → gerador → conflito do caminho unitário (nunca
// uma reimplementação das regras), com uma única leitura de agendamentos
// e de configuração para o mês inteiro.
type GetMonthAvailability struct {
	repo domain.Repository
	clk  clock.Clock
}

func NewGetMonthAvailability(repo domain.Repository, clk clock.Clock) *GetMonthAvailability {
	return &GetMonthAvailability{repo: repo, clk: clk}
}

func (uc *GetMonthAvailability) Execute(
	ctx context.Context,
	in MonthAvailabilityInput,
) ([]domain.DayAvailability, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	product, err := uc.repo.GetProduct(ctx, in.BarbershopID, in.ProductID)
	if err != nil {
		return nil, httperr.ErrBusiness("product_not_found")
	}

	loc := timezone.Location(shop.Timezone)
	monthStart := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)
	today := schedule.Midnight(uc.clk.Now().In(loc))

	rules, err := uc.repo.LoadMonthRules(ctx, in.BarbershopID, in.BarberID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	booked, err := uc.repo.ListBookedIntervals(ctx, in.BarberID, monthStart, monthEnd, 0)
	if err != nil {
		return nil, err
	}

	// agrupa os intervalos ocupados por dia, no fuso da barbearia
	byDay := map[string][]schedule.Interval{}
	for _, iv := range booked {
		key := iv.Start.In(loc).Format(schedule.DateKeyLayout)
		byDay[key] = append(byDay[key], iv)
	}

	duration := time.Duration(product.DurationMin) * time.Minute

	var out []domain.DayAvailability
	for day := monthStart; day.Before(monthEnd); day = day.AddDate(0, 0, 1) {
		key := day.Format(schedule.DateKeyLayout)

		res := schedule.Resolve(schedule.ResolveInput{
			Date:   day,
			Today:  today,
			UnitID: in.BarbershopID,
			Rules:  rules.ForDate(day),
		})

		if !res.Valid {
			out = append(out, domain.DayAvailability{
				Date:   key,
				Status: string(schedule.DayClosed),
			})
			continue
		}

		candidates := schedule.GenerateSlots(res.Window, duration)
		free := schedule.FilterAvailable(candidates, byDay[key])

		out = append(out, domain.DayAvailability{
			Date:      key,
			Status:    string(schedule.ClassifyDay(len(candidates), len(free))),
			Available: len(free),
			Total:     len(candidates),
		})
	}

	return out, nil
}
