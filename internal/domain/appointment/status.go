package appointment

import "github.com/BruksfildServices01/booking-platform/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// Somente estes ocupam horário na agenda; cancelado e no-show liberam o
// slot imediatamente.
func ActiveStatuses() []string {
	return []string{
		string(StatusPending),
		string(StatusConfirmed),
		string(StatusCompleted),
	}
}

func (s Status) OccupiesSlot() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

func isOpen(current Status) bool {
	return current == StatusPending || current == StatusConfirmed
}

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if !isOpen(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if !isOpen(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanMarkNoShow(current Status) error {
	if !isOpen(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReschedule(current Status) error {
	if !isOpen(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus: reserva feita pelo próprio barbeiro nasce confirmada;
// reserva pública aguarda confirmação.
func InitialStatus(byStaff bool) Status {
	if byStaff {
		return StatusConfirmed
	}
	return StatusPending
}
