package recurrence

import (
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/booking-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-platform/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-platform/internal/models"
)

type SeriesInput struct {
	BarbershopID uint
	BarberID     uint
	ProductID    uint

	ClientID    uint
	ClientName  string
	ClientPhone string
	ClientEmail string

	StartDate string // "2006-01-02", ocorrência 0
	Time      string // "15:04", mesmo horário em todas
	Rule      schedule.RecurrenceRule
	Notes     string
}

// OccurrenceCheck é o veredito de uma data candidata da série.
type OccurrenceCheck struct {
	Index  int    `json:"index"`
	Date   string `json:"date"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// OccurrenceFailure relata uma ocorrência que perdeu a corrida na
// persistência (outra reserva entrou entre a checagem e o commit).
type OccurrenceFailure struct {
	Index  int    `json:"index"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// SeriesCreateResult: ou a série inteira foi recusada (Conflicts traz a
// lista completa, nada persistido), ou foi gravada em lote com eventuais
// perdas de corrida relatadas uma a uma.
type SeriesCreateResult struct {
	SeriesID  uuid.UUID            `json:"series_id"`
	Created   []models.Appointment `json:"created"`
	Failed    []OccurrenceFailure  `json:"failed,omitempty"`
	Conflicts []OccurrenceCheck    `json:"conflicts,omitempty"`
}

type UpdateSeriesInput struct {
	BarbershopID  uint
	BarberID      uint
	AppointmentID uint // ocorrência alvo

	Scope domain.Scope

	NewDate      string // "2006-01-02", nova data do alvo
	NewTime      string // "15:04", opcional; vazio mantém o horário de cada uma
	NewProductID uint   // opcional; troca o serviço nas ocorrências do escopo
}

type SeriesUpdateResult struct {
	Updated []models.Appointment `json:"updated"`
	Failed  []OccurrenceFailure  `json:"failed,omitempty"`
}
