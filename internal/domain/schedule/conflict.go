package schedule

import "time"

// Interval é um intervalo semiaberto [Start, End) já ocupado na agenda.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps usa a regra clássica de sobreposição semiaberta: encostar no
// fim do anterior (10:00–10:30 seguido de 10:30–11:00) não conflita.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// HasConflict testa um candidato contra os intervalos ocupados.
func HasConflict(candidate Interval, booked []Interval) bool {
	for _, b := range booked {
		if Overlaps(candidate, b) {
			return true
		}
	}
	return false
}

// FilterAvailable remove da lista de candidatos os que colidem com algum
// intervalo ocupado, preservando a ordem.
func FilterAvailable(slots []Slot, booked []Interval) []Slot {
	if len(booked) == 0 {
		return slots
	}

	free := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if HasConflict(Interval{Start: s.Start, End: s.End}, booked) {
			continue
		}
		free = append(free, s)
	}
	return free
}
