package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDay(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		available int
		want      DayStatus
	}{
		{"sem candidatos e dia fechado", 0, 0, DayClosed},
		{"tudo ocupado", 10, 0, DayFull},
		{"ocupacao exatamente no limiar", 10, 3, DayPartial},
		{"ocupacao acima do limiar", 10, 1, DayPartial},
		{"ocupacao abaixo do limiar", 10, 4, DayAvailable},
		{"dia totalmente livre", 10, 10, DayAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDay(tt.total, tt.available))
		})
	}
}

func TestMonthRulesForDate(t *testing.T) {
	monday := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	rules := &MonthRules{
		Blocked: map[string]bool{"2024-01-16": true},
		Special: map[string]*DayRecord{
			"2024-01-15": {Active: true, StartTime: "10:00", EndTime: "14:00"},
		},
		Staff:     map[int]*DayRecord{int(time.Monday): {Active: true, StartTime: "09:00", EndTime: "17:00"}},
		StaffUnit: map[int]uint{int(time.Monday): 2},
		Shop:      map[int]*DayRecord{int(time.Monday): {Active: true, StartTime: "09:00", EndTime: "18:00"}},
	}

	mon := rules.ForDate(monday)
	assert.False(t, mon.Blocked)
	assert.NotNil(t, mon.Special)
	assert.NotNil(t, mon.Staff)
	assert.Equal(t, uint(2), mon.StaffUnitID)
	assert.NotNil(t, mon.Shop)

	tue := rules.ForDate(tuesday)
	assert.True(t, tue.Blocked)
	assert.Nil(t, tue.Special)
	assert.Nil(t, tue.Staff)
	assert.Zero(t, tue.StaffUnitID)
	assert.Nil(t, tue.Shop)
}

// O agregador mensal e o caminho unitário usam o MESMO Resolve: o veredito
// projetado por ForDate tem de bater com o snapshot equivalente.
func TestMonthRulesAgreesWithDayResolution(t *testing.T) {
	loc := time.UTC
	today := time.Date(2024, 1, 1, 0, 0, 0, 0, loc)

	monthRules := &MonthRules{
		Blocked: map[string]bool{"2024-01-20": true},
		Special: map[string]*DayRecord{},
		Staff:   map[int]*DayRecord{},
		StaffUnit: map[int]uint{},
		Shop: map[int]*DayRecord{
			int(time.Monday):  {Active: true, StartTime: "09:00", EndTime: "18:00"},
			int(time.Tuesday): {Active: false},
		},
	}

	for day := today; day.Month() == time.January; day = day.AddDate(0, 0, 1) {
		got := Resolve(ResolveInput{
			Date:   day,
			Today:  today,
			UnitID: 1,
			Rules:  monthRules.ForDate(day),
		})

		switch {
		case day.Format(DateKeyLayout) == "2024-01-20":
			assert.Equal(t, ReasonBlockedDate, got.Reason)
		case day.Weekday() == time.Monday:
			assert.True(t, got.Valid, "segunda %s deveria abrir", day.Format(DateKeyLayout))
		case day.Weekday() == time.Tuesday:
			assert.Equal(t, ReasonShopClosed, got.Reason)
		default:
			assert.Equal(t, ReasonNoHoursConfigured, got.Reason)
		}
	}
}
