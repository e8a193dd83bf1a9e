package schedule

import "time"

// Motivos de dia não reservável. São resultados esperados, não falhas.
const (
	ReasonPastDate          = "past_date"
	ReasonBlockedDate       = "blocked_date"
	ReasonClosedForDate     = "closed_for_date"
	ReasonBarberOtherUnit   = "barber_other_unit"
	ReasonBarberDayOff      = "barber_day_off"
	ReasonShopClosed        = "shop_closed"
	ReasonNoHoursConfigured = "no_hours_configured"
)

// DayRules é o snapshot das quatro camadas de configuração para um
// (barbearia, barbeiro, data). Carregado pelo repositório, consumido aqui
// como função pura.
type DayRules struct {
	Blocked bool

	// Horário excepcional da data; nil quando não há. Active=false
	// significa fechado naquele dia.
	Special *DayRecord

	// Agenda do barbeiro para o dia da semana (WorkingHours ou
	// BarberUnitSchedule, já escolhida pelo repositório). Quando presente,
	// substitui por completo o horário da casa.
	Staff *DayRecord

	// Unidade onde o barbeiro trabalha nesse dia da semana (0 = sem
	// escala multi-unidade configurada).
	StaffUnitID uint

	Shop *DayRecord
}

type ResolveInput struct {
	// Data pedida e "hoje", ambos à meia-noite no fuso da barbearia.
	Date  time.Time
	Today time.Time

	// Barbearia onde se quer atender (para a checagem de unidade).
	UnitID uint

	Rules DayRules
}

type Resolution struct {
	Valid  bool
	Reason string
	Window Window
}

func invalid(reason string) *Resolution {
	return &Resolution{Valid: false, Reason: reason}
}

func open(date time.Time, rec DayRecord) *Resolution {
	return &Resolution{Valid: true, Window: windowFromRecord(date, rec)}
}

// Cadeia ordenada de overrides, do mais específico para o mais genérico.
// O primeiro que se pronunciar decide; adicionar uma nova camada (ex.:
// feriados regionais) é inserir um passo, sem tocar nos demais.
var overrideChain = []func(in ResolveInput) *Resolution{
	pastDateRule,
	blockedDateRule,
	specialHoursRule,
	staffUnitRule,
	staffScheduleRule,
	businessHoursRule,
}

// Resolve aplica a precedência bloqueio > horário excepcional > agenda do
// barbeiro > horário da casa. Dia sem nenhuma configuração NUNCA abre por
// omissão.
func Resolve(in ResolveInput) Resolution {
	for _, rule := range overrideChain {
		if res := rule(in); res != nil {
			return *res
		}
	}
	return *invalid(ReasonNoHoursConfigured)
}

func pastDateRule(in ResolveInput) *Resolution {
	if in.Date.Before(in.Today) {
		return invalid(ReasonPastDate)
	}
	return nil
}

func blockedDateRule(in ResolveInput) *Resolution {
	if in.Rules.Blocked {
		return invalid(ReasonBlockedDate)
	}
	return nil
}

func specialHoursRule(in ResolveInput) *Resolution {
	if in.Rules.Special == nil {
		return nil
	}
	if !in.Rules.Special.HasHours() {
		return invalid(ReasonClosedForDate)
	}
	return open(in.Date, *in.Rules.Special)
}

func staffUnitRule(in ResolveInput) *Resolution {
	if in.Rules.StaffUnitID == 0 {
		return nil
	}
	if in.Rules.StaffUnitID != in.UnitID {
		return invalid(ReasonBarberOtherUnit)
	}
	return nil
}

func staffScheduleRule(in ResolveInput) *Resolution {
	if in.Rules.Staff == nil {
		return nil
	}
	// agenda própria fecha o dia ou substitui o horário da casa por inteiro
	if !in.Rules.Staff.HasHours() {
		return invalid(ReasonBarberDayOff)
	}
	return open(in.Date, *in.Rules.Staff)
}

func businessHoursRule(in ResolveInput) *Resolution {
	if in.Rules.Shop == nil {
		return nil
	}
	if !in.Rules.Shop.HasHours() {
		return invalid(ReasonShopClosed)
	}
	return open(in.Date, *in.Rules.Shop)
}
