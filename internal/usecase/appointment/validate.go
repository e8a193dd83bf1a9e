package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/booking-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-platform/internal/domain/schedule"
)

// ValidateSlot re-executa, na hora do commit, a resolução de horário e o
// teste de contenção do slot escolhido — a configuração pode ter mudado
// desde que a lista de horários foi montada. Retorna o motivo de recusa
// ("" quando o slot é válido) ou erro de leitura.
func ValidateSlot(
	ctx context.Context,
	repo domain.Repository,
	barbershopID uint,
	barberID uint,
	start time.Time,
	end time.Time,
	today time.Time,
) (string, error) {

	day := schedule.Midnight(start)

	rules, err := repo.LoadDayRules(ctx, barbershopID, barberID, day)
	if err != nil {
		return "", err
	}

	res := schedule.Resolve(schedule.ResolveInput{
		Date:   day,
		Today:  today,
		UnitID: barbershopID,
		Rules:  rules,
	})
	if !res.Valid {
		return res.Reason, nil
	}

	if !res.Window.Contains(start, end) {
		return "outside_working_hours", nil
	}

	return "", nil
}
