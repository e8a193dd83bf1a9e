package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(start, end string) *DayRecord {
	return &DayRecord{Active: true, StartTime: start, EndTime: end}
}

func recWithLunch(start, end, lunchStart, lunchEnd string) *DayRecord {
	return &DayRecord{
		Active:     true,
		StartTime:  start,
		EndTime:    end,
		LunchStart: lunchStart,
		LunchEnd:   lunchEnd,
	}
}

func closedRec() *DayRecord {
	return &DayRecord{Active: false}
}

func TestResolvePrecedence(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	today := time.Date(2024, 1, 10, 0, 0, 0, 0, loc)
	monday := time.Date(2024, 1, 15, 0, 0, 0, 0, loc)

	tests := []struct {
		name   string
		date   time.Time
		unitID uint
		rules  DayRules

		wantValid  bool
		wantReason string
	}{
		{
			name:       "data passada vence tudo, mesmo com horario aberto",
			date:       time.Date(2024, 1, 5, 0, 0, 0, 0, loc),
			unitID:     1,
			rules:      DayRules{Shop: rec("09:00", "18:00")},
			wantReason: ReasonPastDate,
		},
		{
			name:   "bloqueio vence horario excepcional aberto",
			date:   monday,
			unitID: 1,
			rules: DayRules{
				Blocked: true,
				Special: rec("10:00", "14:00"),
				Shop:    rec("09:00", "18:00"),
			},
			wantReason: ReasonBlockedDate,
		},
		{
			name:   "horario excepcional fechado vence agenda do barbeiro",
			date:   monday,
			unitID: 1,
			rules: DayRules{
				Special: closedRec(),
				Staff:   rec("08:00", "16:00"),
				Shop:    rec("09:00", "18:00"),
			},
			wantReason: ReasonClosedForDate,
		},
		{
			name:   "horario excepcional aberto substitui as demais camadas",
			date:   monday,
			unitID: 1,
			rules: DayRules{
				Special: rec("10:00", "14:00"),
				Staff:   rec("08:00", "16:00"),
				Shop:    rec("09:00", "18:00"),
			},
			wantValid: true,
		},
		{
			name:   "barbeiro escalado em outra unidade nesse dia",
			date:   monday,
			unitID: 1,
			rules: DayRules{
				StaffUnitID: 2,
				Staff:       rec("09:00", "18:00"),
				Shop:        rec("09:00", "18:00"),
			},
			wantReason: ReasonBarberOtherUnit,
		},
		{
			name:   "unidade correta segue para a agenda do barbeiro",
			date:   monday,
			unitID: 1,
			rules: DayRules{
				StaffUnitID: 1,
				Staff:       rec("10:00", "15:00"),
				Shop:        rec("09:00", "18:00"),
			},
			wantValid: true,
		},
		{
			name:   "folga do barbeiro mesmo com a casa aberta",
			date:   monday,
			unitID: 1,
			rules: DayRules{
				Staff: closedRec(),
				Shop:  rec("09:00", "18:00"),
			},
			wantReason: ReasonBarberDayOff,
		},
		{
			name:       "casa fechada no dia da semana",
			date:       monday,
			unitID:     1,
			rules:      DayRules{Shop: closedRec()},
			wantReason: ReasonShopClosed,
		},
		{
			name:       "sem nenhuma configuracao o dia nunca abre",
			date:       monday,
			unitID:     1,
			rules:      DayRules{},
			wantReason: ReasonNoHoursConfigured,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(ResolveInput{
				Date:   tt.date,
				Today:  today,
				UnitID: tt.unitID,
				Rules:  tt.rules,
			})

			assert.Equal(t, tt.wantValid, res.Valid)
			assert.Equal(t, tt.wantReason, res.Reason)
		})
	}
}

func TestResolveStaffWindowReplacesShop(t *testing.T) {
	loc := time.UTC
	today := time.Date(2024, 1, 10, 0, 0, 0, 0, loc)
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, loc)

	res := Resolve(ResolveInput{
		Date:   date,
		Today:  today,
		UnitID: 1,
		Rules: DayRules{
			Staff: rec("11:00", "15:00"),
			Shop:  rec("09:00", "18:00"),
		},
	})

	require.True(t, res.Valid)
	// a agenda propria substitui por inteiro, nao intersecta
	assert.Equal(t, 11, res.Window.Start.Hour())
	assert.Equal(t, 15, res.Window.End.Hour())
}

func TestResolveSpecialHoursCarryLunch(t *testing.T) {
	loc := time.UTC
	today := time.Date(2024, 1, 10, 0, 0, 0, 0, loc)
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, loc)

	res := Resolve(ResolveInput{
		Date:   date,
		Today:  today,
		UnitID: 1,
		Rules: DayRules{
			Special: recWithLunch("10:00", "16:00", "12:00", "13:00"),
		},
	})

	require.True(t, res.Valid)
	assert.True(t, res.Window.HasLunch())
	assert.Equal(t, 12, res.Window.LunchStart.Hour())
}

func TestResolveSameDayIsNotPast(t *testing.T) {
	loc := time.UTC
	today := time.Date(2024, 1, 15, 0, 0, 0, 0, loc)

	res := Resolve(ResolveInput{
		Date:   today,
		Today:  today,
		UnitID: 1,
		Rules:  DayRules{Shop: rec("09:00", "18:00")},
	})

	assert.True(t, res.Valid)
}
