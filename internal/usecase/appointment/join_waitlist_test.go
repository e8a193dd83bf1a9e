package appointment

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-platform/internal/audit"
	"github.com/BruksfildServices01/booking-platform/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-platform/internal/httperr"
)

func TestJoinWaitlistRejectedWhenSlotsExist(t *testing.T) {
	d := newTestDeps(t)
	uc := NewJoinWaitlist(d.repo, d.clk, audit.NewDispatcher(nil, zerolog.Nop()))

	_, err := uc.Execute(context.Background(), JoinWaitlistInput{
		BarbershopID: 1,
		BarberID:     7,
		ProductID:    1,
		ClientName:   "Maria",
		ClientPhone:  "+5511988880000",
		Date:         "2024-01-15",
	})

	// dia com vaga não entra na lista: reserva direto
	assert.True(t, httperr.IsBusiness(err, "slots_available"))
}

func TestJoinWaitlistOnFullDay(t *testing.T) {
	d := newTestDeps(t)

	// janela mínima: um único candidato, já ocupado
	d.repo.rules = schedule.DayRules{
		Shop: &schedule.DayRecord{Active: true, StartTime: "09:00", EndTime: "09:30"},
	}

	_, err := d.uc.Execute(context.Background(), staffBooking("2024-01-15", "09:00"))
	require.NoError(t, err)

	uc := NewJoinWaitlist(d.repo, d.clk, audit.NewDispatcher(nil, zerolog.Nop()))
	entry, err := uc.Execute(context.Background(), JoinWaitlistInput{
		BarbershopID: 1,
		BarberID:     7,
		ProductID:    1,
		ClientName:   "Maria",
		ClientPhone:  "+5511988880000",
		Date:         "2024-01-15",
	})
	require.NoError(t, err)

	assert.Equal(t, "waiting", entry.Status)
	assert.Equal(t, "2024-01-15", entry.PreferredDate.Format("2006-01-02"))

	listed, err := d.repo.ListWaitlist(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestJoinWaitlistOnClosedDay(t *testing.T) {
	d := newTestDeps(t)
	d.repo.rules = schedule.DayRules{Shop: &schedule.DayRecord{Active: false}}

	uc := NewJoinWaitlist(d.repo, d.clk, audit.NewDispatcher(nil, zerolog.Nop()))
	entry, err := uc.Execute(context.Background(), JoinWaitlistInput{
		BarbershopID: 1,
		BarberID:     7,
		ProductID:    1,
		ClientName:   "Maria",
		ClientPhone:  "+5511988880000",
		Date:         "2024-01-15",
	})

	// dia fechado também aceita espera (não há nenhum horário livre)
	require.NoError(t, err)
	assert.Equal(t, "waiting", entry.Status)
}
