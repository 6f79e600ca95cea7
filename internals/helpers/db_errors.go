package helper

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	PgUniqueViolation     = "23505"
	PgForeignKeyViolation = "23503"
)

// IsUniqueViolation recognises duplicate-key errors from pgx and lib/pq.
func IsUniqueViolation(err error) bool {
	return IsPgCode(err, PgUniqueViolation) || errors.Is(err, gorm.ErrDuplicatedKey)
}

func IsForeignKeyViolation(err error) bool {
	return IsPgCode(err, PgForeignKeyViolation) || errors.Is(err, gorm.ErrForeignKeyViolated)
}

func IsPgCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE/ILIKE wildcards so user text matches literally.
func EscapeLike(s string) string { return likeEscaper.Replace(s) }
