package appointment

import "github.com/BruksfildServices01/booking-platform/internal/httperr"

// Scope define a abrangência de uma edição em série recorrente.
type Scope string

const (
	// ScopeSingle muda só a ocorrência alvo (que passa a divergir da série).
	ScopeSingle Scope = "single"
	// ScopeFuture muda o alvo e toda ocorrência de índice maior ou igual.
	ScopeFuture Scope = "future"
	// ScopeAll muda todas as ocorrências ainda abertas da série.
	ScopeAll Scope = "all"
)

func ParseScope(raw string) (Scope, error) {
	switch Scope(raw) {
	case ScopeSingle, ScopeFuture, ScopeAll:
		return Scope(raw), nil
	}
	return "", httperr.ErrBusiness("invalid_scope")
}
