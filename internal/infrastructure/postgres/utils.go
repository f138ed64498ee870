package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation: violación de constraint único (p. ej. codigo o email duplicado).
func isUniqueViolation(err error) bool {
	return pgErrCode(err) == "23505"
}

// isForeignKeyViolation: la fila referenciada no existe (producto, registro o cirugía borrados).
func isForeignKeyViolation(err error) bool {
	return pgErrCode(err) == "23503"
}
