package recurrence

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/booking-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-platform/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-platform/internal/httperr"
	"github.com/BruksfildServices01/booking-platform/internal/models"
)

// memRepo é o repositório em memória dos testes de série: checagem de
// conflito e inserção sob o mesmo lock, como o repositório real.
type memRepo struct {
	mu sync.Mutex

	shop     models.Barbershop
	products map[uint]models.BarberProduct
	rules    schedule.DayRules

	// slots que passam na checagem prévia mas perdem a corrida na
	// persistência (chaveados por "2006-01-02 15:04")
	loseRaceAt map[string]bool

	nextID       uint
	appointments map[uint]*models.Appointment
	clients      map[uint]*models.Client
	waitlist     []models.WaitlistEntry
}

var _ domain.Repository = (*memRepo)(nil)

func newMemRepo() *memRepo {
	openAllWeek := &schedule.DayRecord{Active: true, StartTime: "09:00", EndTime: "18:00"}

	return &memRepo{
		shop: models.Barbershop{
			ID:                1,
			Name:              "Barbearia Central",
			Slug:              "central",
			Timezone:          "America/Sao_Paulo",
			MinAdvanceMinutes: 120,
		},
		products: map[uint]models.BarberProduct{
			1: {
				ID:           1,
				BarbershopID: 1,
				Name:         "Corte",
				DurationMin:  30,
				Price:        50,
				Active:       true,
			},
			2: {
				ID:           2,
				BarbershopID: 1,
				Name:         "Corte + Barba",
				DurationMin:  60,
				Price:        85,
				Active:       true,
			},
		},
		rules:        schedule.DayRules{Shop: openAllWeek},
		loseRaceAt:   map[string]bool{},
		appointments: map[uint]*models.Appointment{},
		clients:      map[uint]*models.Client{},
	}
}

func (r *memRepo) loc() *time.Location {
	loc, _ := time.LoadLocation(r.shop.Timezone)
	return loc
}

func (r *memRepo) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	if id != r.shop.ID {
		return nil, httperr.ErrBusiness("barbershop_not_found")
	}
	shop := r.shop
	return &shop, nil
}

func (r *memRepo) GetProduct(_ context.Context, barbershopID, productID uint) (*models.BarberProduct, error) {
	p, ok := r.products[productID]
	if barbershopID != r.shop.ID || !ok {
		return nil, httperr.ErrBusiness("product_not_found")
	}
	return &p, nil
}

func (r *memRepo) GetClientByID(_ context.Context, clientID uint) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.clients[clientID]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, httperr.ErrBusiness("client_not_found")
}

func (r *memRepo) GetOrCreateClient(
	_ context.Context,
	barbershopID uint,
	name, phone, email string,
) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.clients {
		if c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}

	r.nextID++
	c := &models.Client{
		ID:           r.nextID,
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}
	r.clients[c.ID] = c

	cp := *c
	return &cp, nil
}

func (r *memRepo) LoadDayRules(
	_ context.Context,
	_ uint,
	_ uint,
	_ time.Time,
) (schedule.DayRules, error) {
	return r.rules, nil
}

func (r *memRepo) LoadMonthRules(
	_ context.Context,
	_ uint,
	_ uint,
	_ time.Time,
	_ time.Time,
) (*schedule.MonthRules, error) {
	m := &schedule.MonthRules{
		Blocked:   map[string]bool{},
		Special:   map[string]*schedule.DayRecord{},
		Staff:     map[int]*schedule.DayRecord{},
		StaffUnit: map[int]uint{},
		Shop:      map[int]*schedule.DayRecord{},
	}
	for wd := 0; wd < 7; wd++ {
		m.Shop[wd] = r.rules.Shop
	}
	return m, nil
}

func (r *memRepo) ListBookedIntervals(
	_ context.Context,
	barberID uint,
	from, to time.Time,
	excludeID uint,
) ([]schedule.Interval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.bookedLocked(barberID, from, to, excludeID), nil
}

func (r *memRepo) bookedLocked(barberID uint, from, to time.Time, excludeID uint) []schedule.Interval {
	var out []schedule.Interval
	for _, ap := range r.appointments {
		if ap.BarberID != barberID || ap.ID == excludeID {
			continue
		}
		if !domain.Status(ap.Status).OccupiesSlot() {
			continue
		}
		if ap.StartTime.Before(to) && from.Before(ap.EndTime) {
			out = append(out, schedule.Interval{Start: ap.StartTime, End: ap.EndTime})
		}
	}
	return out
}

func (r *memRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loseRaceAt[ap.StartTime.In(r.loc()).Format("2006-01-02 15:04")] {
		return httperr.ErrBusiness("time_conflict")
	}

	candidate := schedule.Interval{Start: ap.StartTime, End: ap.EndTime}
	if schedule.HasConflict(candidate, r.bookedLocked(ap.BarberID, ap.StartTime, ap.EndTime, 0)) {
		return httperr.ErrBusiness("time_conflict")
	}

	r.nextID++
	ap.ID = r.nextID

	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *memRepo) RescheduleAppointment(
	_ context.Context,
	ap *models.Appointment,
	newStart, newEnd time.Time,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	candidate := schedule.Interval{Start: newStart, End: newEnd}
	if schedule.HasConflict(candidate, r.bookedLocked(ap.BarberID, newStart, newEnd, ap.ID)) {
		return httperr.ErrBusiness("time_conflict")
	}

	ap.StartTime = newStart
	ap.EndTime = newEnd

	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *memRepo) GetAppointmentForBarber(
	_ context.Context,
	appointmentID, barberID uint,
) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[appointmentID]
	if !ok || ap.BarberID != barberID {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	cp := *ap
	return &cp, nil
}

func (r *memRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *memRepo) ListAppointmentsForPeriod(
	_ context.Context,
	barberID uint,
	start, end time.Time,
) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID != barberID {
			continue
		}
		if ap.StartTime.Before(end) && !ap.StartTime.Before(start) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *memRepo) ListSeries(
	_ context.Context,
	seriesID uuid.UUID,
	barberID uint,
) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID != barberID || ap.SeriesID == nil || *ap.SeriesID != seriesID {
			continue
		}
		out = append(out, *ap)
	}

	sort.Slice(out, func(i, j int) bool {
		return indexOf(out[i]) < indexOf(out[j])
	})
	return out, nil
}

func (r *memRepo) CreateWaitlistEntry(_ context.Context, entry *models.WaitlistEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	entry.ID = r.nextID
	r.waitlist = append(r.waitlist, *entry)
	return nil
}

func (r *memRepo) ListWaitlist(_ context.Context, barbershopID uint) ([]models.WaitlistEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.WaitlistEntry
	for _, e := range r.waitlist {
		if e.BarbershopID == barbershopID {
			out = append(out, e)
		}
	}
	return out, nil
}
