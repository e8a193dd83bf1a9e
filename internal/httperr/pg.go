package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsExclusionConflict reconhece a violação da constraint de exclusão (ou
// de unicidade) do Postgres na tabela de agendamentos — o backstop do
// banco contra double-booking quando duas transações passam pela checagem
// de aplicação ao mesmo tempo.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// 23P01 = exclusion_violation, 23505 = unique_violation
	return pgErr.Code == "23P01" || pgErr.Code == "23505"
}
