package schedule

import (
	"encoding/json"
	"errors"
	"time"
)

// Limite de ocorrências geradas de uma vez (um ano de semanais).
const maxOccurrences = 52

var (
	ErrRuleWithoutEnd = errors.New("recurrence rule needs count or until")
	ErrRuleTooLong    = errors.New("recurrence rule expands to too many occurrences")
)

// RecurrenceRule descreve uma série semanal: a cada IntervalWeeks semanas,
// no mesmo dia da semana da data inicial, por Count ocorrências ou até
// Until (o que vier primeiro quando ambos são dados).
type RecurrenceRule struct {
	IntervalWeeks int    `json:"interval_weeks"`
	Count         int    `json:"count,omitempty"`
	Until         string `json:"until,omitempty"` // "2006-01-02"
}

func (r RecurrenceRule) Encode() string {
	b, _ := json.Marshal(r)
	return string(b)
}

func DecodeRule(raw string) (RecurrenceRule, error) {
	var r RecurrenceRule
	err := json.Unmarshal([]byte(raw), &r)
	return r, err
}

// Expand gera as datas da série a partir da data inicial (ocorrência 0).
func (r RecurrenceRule) Expand(start time.Time) ([]time.Time, error) {
	interval := r.IntervalWeeks
	if interval <= 0 {
		interval = 1
	}

	var until time.Time
	if r.Until != "" {
		t, err := time.ParseInLocation(DateKeyLayout, r.Until, start.Location())
		if err != nil {
			return nil, err
		}
		until = t
	}

	if r.Count <= 0 && until.IsZero() {
		return nil, ErrRuleWithoutEnd
	}
	if r.Count > maxOccurrences {
		return nil, ErrRuleTooLong
	}

	var dates []time.Time
	for cur := start; ; cur = cur.AddDate(0, 0, 7*interval) {
		// until é uma data, inclusiva: ocorrência caindo no próprio dia vale
		if !until.IsZero() && Midnight(cur).After(until) {
			break
		}
		if r.Count > 0 && len(dates) >= r.Count {
			break
		}
		if len(dates) >= maxOccurrences {
			return nil, ErrRuleTooLong
		}
		dates = append(dates, cur)
	}

	return dates, nil
}

// DayDelta é o deslocamento em dias inteiros entre a data atual da
// ocorrência alvo e a nova data. Edições future/all aplicam esse mesmo
// delta sobre a data corrente de CADA ocorrência afetada (não re-derivam
// da regra), o que preserva o espaçamento relativo e carrega junto
// ocorrências que já haviam divergido individualmente.
func DayDelta(oldDate, newDate time.Time) int {
	o := time.Date(oldDate.Year(), oldDate.Month(), oldDate.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(newDate.Year(), newDate.Month(), newDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(n.Sub(o).Hours() / 24)
}
