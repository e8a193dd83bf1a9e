package schedule

import "time"

// DayRecord é o formato comum de um dia de expediente, compartilhado por
// BusinessHours, SpecialHours, WorkingHours e BarberUnitSchedule.
type DayRecord struct {
	Active     bool
	StartTime  string // "15:04"
	EndTime    string
	LunchStart string
	LunchEnd   string
}

func (r DayRecord) HasHours() bool {
	return r.Active && r.StartTime != "" && r.EndTime != ""
}

// Window é a janela efetiva de atendimento de um dia, já resolvida a
// precedência de overrides, em instantes concretos no fuso da barbearia.
type Window struct {
	Start time.Time
	End   time.Time

	LunchStart time.Time
	LunchEnd   time.Time
}

func (w Window) HasLunch() bool {
	return !w.LunchStart.IsZero() && !w.LunchEnd.IsZero()
}

// Contains informa se [start, end) cabe inteiro na janela sem tocar o
// almoço. Sobreposição parcial com o almoço também desqualifica.
func (w Window) Contains(start, end time.Time) bool {
	if start.Before(w.Start) || end.After(w.End) {
		return false
	}
	if w.HasLunch() && start.Before(w.LunchEnd) && end.After(w.LunchStart) {
		return false
	}
	return true
}

// windowFromRecord materializa o registro "HH:MM" na data concreta.
func windowFromRecord(date time.Time, rec DayRecord) Window {
	w := Window{
		Start: atClock(date, rec.StartTime),
		End:   atClock(date, rec.EndTime),
	}

	if rec.LunchStart != "" && rec.LunchEnd != "" {
		w.LunchStart = atClock(date, rec.LunchStart)
		w.LunchEnd = atClock(date, rec.LunchEnd)
	}

	return w
}

// Midnight normaliza um instante para a meia-noite do próprio dia, no
// mesmo fuso.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func atClock(date time.Time, hm string) time.Time {
	t, _ := time.Parse("15:04", hm)
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	)
}
