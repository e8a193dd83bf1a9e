package schedule

import "time"

// GridMinutes é a grade fixa de candidatos: um possível início a cada 30
// minutos, independente da duração do serviço.
const GridMinutes = 30

type Slot struct {
	Start time.Time
	End   time.Time
}

// GenerateSlots caminha de window.Start até window.End em passos da grade e
// mantém o candidato somente se o serviço inteiro [start, start+duration)
// couber na janela sem encostar no almoço. A duração não precisa ser
// múltipla da grade.
func GenerateSlots(w Window, duration time.Duration) []Slot {
	if duration <= 0 {
		return nil
	}

	step := GridMinutes * time.Minute
	var slots []Slot

	for cur := w.Start; cur.Before(w.End); cur = cur.Add(step) {
		end := cur.Add(duration)
		if !w.Contains(cur, end) {
			continue
		}
		slots = append(slots, Slot{Start: cur, End: end})
	}

	return slots
}
