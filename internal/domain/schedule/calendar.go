package schedule

import "time"

// Status de um dia no calendário mensal.
type DayStatus string

const (
	DayClosed    DayStatus = "closed"
	DayFull      DayStatus = "full"
	DayPartial   DayStatus = "partial"
	DayAvailable DayStatus = "available"
)

// Acima desta ocupação o dia aparece como "quase cheio" no calendário.
const partialThreshold = 0.7

// ClassifyDay traduz a contagem de horários em status de exibição.
func ClassifyDay(total, available int) DayStatus {
	switch {
	case total == 0:
		return DayClosed
	case available == 0:
		return DayFull
	case float64(total-available)/float64(total) >= partialThreshold:
		return DayPartial
	default:
		return DayAvailable
	}
}

// MonthRules agrupa tudo que o agregador mensal precisa, carregado do
// banco de uma vez só. Datas são chaveadas por "2006-01-02" no fuso da
// barbearia; regras semanais por weekday.
type MonthRules struct {
	Blocked map[string]bool
	Special map[string]*DayRecord

	Staff     map[int]*DayRecord
	StaffUnit map[int]uint
	Shop      map[int]*DayRecord
}

const DateKeyLayout = "2006-01-02"

// ForDate projeta as regras do mês no snapshot de um único dia, para que o
// agregador reutilize exatamente o mesmo Resolve do caminho unitário.
func (m *MonthRules) ForDate(date time.Time) DayRules {
	key := date.Format(DateKeyLayout)
	weekday := int(date.Weekday())

	return DayRules{
		Blocked:     m.Blocked[key],
		Special:     m.Special[key],
		Staff:       m.Staff[weekday],
		StaffUnitID: m.StaffUnit[weekday],
		Shop:        m.Shop[weekday],
	}
}
