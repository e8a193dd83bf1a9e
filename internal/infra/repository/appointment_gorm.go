package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/booking-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-platform/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-platform/internal/httperr"
	"github.com/BruksfildServices01/booking-platform/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// --------------------------------------------------
// Product
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProduct(
	ctx context.Context,
	barbershopID uint,
	productID uint,
) (*models.BarberProduct, error) {

	var product models.BarberProduct
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", productID, barbershopID).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClientByID(
	ctx context.Context,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, clientID).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client = models.Client{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Scheduling rules
// --------------------------------------------------

func dayRecord(active bool, start, end, lunchStart, lunchEnd string) *schedule.DayRecord {
	return &schedule.DayRecord{
		Active:     active,
		StartTime:  start,
		EndTime:    end,
		LunchStart: lunchStart,
		LunchEnd:   lunchEnd,
	}
}

// LoadDayRules monta o snapshot das quatro camadas para um dia. Qualquer
// erro de leitura (fora "não existe") aborta: não se calcula agenda com
// regra faltando.
func (r *AppointmentGormRepository) LoadDayRules(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	date time.Time,
) (schedule.DayRules, error) {

	var rules schedule.DayRules

	dateKey := date.Format(schedule.DateKeyLayout)
	weekday := int(date.Weekday())

	// 1. data bloqueada
	var blockedCount int64
	if err := r.db.WithContext(ctx).
		Model(&models.BlockedDate{}).
		Where("barbershop_id = ? AND date = ?", barbershopID, dateKey).
		Count(&blockedCount).Error; err != nil {
		return rules, err
	}
	rules.Blocked = blockedCount > 0

	// 2. horário excepcional
	var special models.SpecialHours
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND date = ?", barbershopID, dateKey).
		First(&special).Error
	switch {
	case err == nil:
		rules.Special = dayRecord(
			!special.Closed,
			special.StartTime, special.EndTime,
			special.LunchStart, special.LunchEnd,
		)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return rules, err
	}

	// 3. agenda do barbeiro (escala multi-unidade tem prioridade)
	if barberID != 0 {
		var unit models.BarberUnitSchedule
		err = r.db.WithContext(ctx).
			Where("barber_id = ? AND weekday = ?", barberID, weekday).
			First(&unit).Error
		switch {
		case err == nil:
			rules.StaffUnitID = unit.BarbershopID
			rules.Staff = dayRecord(
				unit.Active,
				unit.StartTime, unit.EndTime,
				unit.LunchStart, unit.LunchEnd,
			)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return rules, err
		default:
			var wh models.WorkingHours
			err = r.db.WithContext(ctx).
				Where("barber_id = ? AND weekday = ?", barberID, weekday).
				First(&wh).Error
			switch {
			case err == nil:
				rules.Staff = dayRecord(
					wh.Active,
					wh.StartTime, wh.EndTime,
					wh.LunchStart, wh.LunchEnd,
				)
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return rules, err
			}
		}
	}

	// 4. horário da casa
	var bh models.BusinessHours
	err = r.db.WithContext(ctx).
		Where("barbershop_id = ? AND weekday = ?", barbershopID, weekday).
		First(&bh).Error
	switch {
	case err == nil:
		rules.Shop = dayRecord(
			bh.Active,
			bh.StartTime, bh.EndTime,
			bh.LunchStart, bh.LunchEnd,
		)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return rules, err
	}

	return rules, nil
}

// LoadMonthRules carrega de uma vez tudo que o calendário mensal precisa:
// bloqueios e excepcionais do intervalo, regras semanais uma vez só.
func (r *AppointmentGormRepository) LoadMonthRules(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	from time.Time,
	to time.Time,
) (*schedule.MonthRules, error) {

	rules := &schedule.MonthRules{
		Blocked:   map[string]bool{},
		Special:   map[string]*schedule.DayRecord{},
		Staff:     map[int]*schedule.DayRecord{},
		StaffUnit: map[int]uint{},
		Shop:      map[int]*schedule.DayRecord{},
	}

	fromKey := from.Format(schedule.DateKeyLayout)
	toKey := to.Format(schedule.DateKeyLayout)

	var blocked []models.BlockedDate
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND date >= ? AND date < ?", barbershopID, fromKey, toKey).
		Find(&blocked).Error; err != nil {
		return nil, err
	}
	for _, b := range blocked {
		rules.Blocked[b.Date.Format(schedule.DateKeyLayout)] = true
	}

	var specials []models.SpecialHours
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND date >= ? AND date < ?", barbershopID, fromKey, toKey).
		Find(&specials).Error; err != nil {
		return nil, err
	}
	for _, s := range specials {
		rules.Special[s.Date.Format(schedule.DateKeyLayout)] = dayRecord(
			!s.Closed,
			s.StartTime, s.EndTime,
			s.LunchStart, s.LunchEnd,
		)
	}

	if barberID != 0 {
		var units []models.BarberUnitSchedule
		if err := r.db.WithContext(ctx).
			Where("barber_id = ?", barberID).
			Find(&units).Error; err != nil {
			return nil, err
		}
		for _, u := range units {
			rules.StaffUnit[u.Weekday] = u.BarbershopID
			rules.Staff[u.Weekday] = dayRecord(
				u.Active,
				u.StartTime, u.EndTime,
				u.LunchStart, u.LunchEnd,
			)
		}

		var whs []models.WorkingHours
		if err := r.db.WithContext(ctx).
			Where("barber_id = ?", barberID).
			Find(&whs).Error; err != nil {
			return nil, err
		}
		for _, wh := range whs {
			if _, ok := rules.Staff[wh.Weekday]; ok {
				continue // escala de unidade prevalece
			}
			rules.Staff[wh.Weekday] = dayRecord(
				wh.Active,
				wh.StartTime, wh.EndTime,
				wh.LunchStart, wh.LunchEnd,
			)
		}
	}

	var bhs []models.BusinessHours
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ?", barbershopID).
		Find(&bhs).Error; err != nil {
		return nil, err
	}
	for _, bh := range bhs {
		rules.Shop[bh.Weekday] = dayRecord(
			bh.Active,
			bh.StartTime, bh.EndTime,
			bh.LunchStart, bh.LunchEnd,
		)
	}

	return rules, nil
}

// --------------------------------------------------
// Booked intervals
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBookedIntervals(
	ctx context.Context,
	barberID uint,
	from time.Time,
	to time.Time,
	excludeID uint,
) ([]schedule.Interval, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("start_time", "end_time").
		Where(
			"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			barberID, domain.ActiveStatuses(), to, from,
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	intervals := make([]schedule.Interval, 0, len(apps))
	for _, ap := range apps {
		intervals = append(intervals, schedule.Interval{
			Start: ap.StartTime,
			End:   ap.EndTime,
		})
	}

	return intervals, nil
}

// --------------------------------------------------
// Appointment (create / reschedule)
// --------------------------------------------------

// CreateAppointment é a escrita atômica da reserva: re-checa conflito e
// insere dentro da MESMA transação, com lock das linhas concorrentes.
// Qualquer checagem feita antes, fora daqui, é apenas cortesia para o
// usuário — esta é a que vale.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				ap.BarberID, domain.ActiveStatuses(), ap.EndTime, ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(ap).Error
	})

	if err != nil && httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("time_conflict")
	}

	return err
}

func (r *AppointmentGormRepository) RescheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
	newStart time.Time,
	newEnd time.Time,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"barber_id = ? AND id <> ? AND status IN ? AND start_time < ? AND end_time > ?",
				ap.BarberID, ap.ID, domain.ActiveStatuses(), newEnd, newStart,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		ap.StartTime = newStart
		ap.EndTime = newEnd
		return tx.Save(ap).Error
	})

	if err != nil && httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("time_conflict")
	}

	return err
}

// --------------------------------------------------
// Appointment (state change / queries)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForBarber(
	ctx context.Context,
	appointmentID uint,
	barberID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", appointmentID, barberID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("BarberProduct").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Series
// --------------------------------------------------

func (r *AppointmentGormRepository) ListSeries(
	ctx context.Context,
	seriesID uuid.UUID,
	barberID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("series_id = ? AND barber_id = ?", seriesID, barberID).
		Order("series_index ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Waitlist
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateWaitlistEntry(
	ctx context.Context,
	entry *models.WaitlistEntry,
) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *AppointmentGormRepository) ListWaitlist(
	ctx context.Context,
	barbershopID uint,
) ([]models.WaitlistEntry, error) {

	var entries []models.WaitlistEntry
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND status = 'waiting'", barbershopID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
