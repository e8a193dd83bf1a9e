package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-platform/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-platform/internal/models"
)

type Repository interface {
	// -------- Barbershop --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	// -------- Product --------
	GetProduct(
		ctx context.Context,
		barbershopID uint,
		productID uint,
	) (*models.BarberProduct, error)

	// -------- Client --------
	GetClientByID(
		ctx context.Context,
		clientID uint,
	) (*models.Client, error)

	GetOrCreateClient(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Scheduling rules --------
	// Snapshot das quatro camadas de configuração para um dia. Qualquer
	// leitura que falhe aborta o cálculo inteiro: nunca gerar horários
	// com parte das regras faltando.
	LoadDayRules(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		date time.Time,
	) (schedule.DayRules, error)

	LoadMonthRules(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		from time.Time,
		to time.Time,
	) (*schedule.MonthRules, error)

	// -------- Booked intervals --------
	// Intervalos com status ativo do barbeiro no período; excludeID > 0
	// tira o próprio agendamento da conta (edição).
	ListBookedIntervals(
		ctx context.Context,
		barberID uint,
		from time.Time,
		to time.Time,
		excludeID uint,
	) ([]schedule.Interval, error)

	// -------- Appointment (create / reschedule) --------
	// Inserção atômica: a re-checagem de conflito e o INSERT acontecem na
	// mesma transação, com lock das linhas concorrentes. Conflito retorna
	// httperr "time_conflict".
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	RescheduleAppointment(
		ctx context.Context,
		ap *models.Appointment,
		newStart time.Time,
		newEnd time.Time,
	) error

	// -------- Appointment (state change / queries) --------
	GetAppointmentForBarber(
		ctx context.Context,
		appointmentID uint,
		barberID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Series --------
	ListSeries(
		ctx context.Context,
		seriesID uuid.UUID,
		barberID uint,
	) ([]models.Appointment, error)

	// -------- Waitlist --------
	CreateWaitlistEntry(
		ctx context.Context,
		entry *models.WaitlistEntry,
	) error

	ListWaitlist(
		ctx context.Context,
		barbershopID uint,
	) ([]models.WaitlistEntry, error)
}
