package repository

import (
	"errors"
	"regexp"
	"strings"
	"user-directory/app/server/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	FieldEmail    = "email"
	FieldUsername = "username"
)

const pgUniqueViolation = "23505"

// Key (username)=(ana01) already exists.
var pgDetailKey = regexp.MustCompile(`^Key \(([^)]+)\)=`)

// conflictError translates a store specific unique violation into errs.Conflict, or returns nil when err is not
// one. The conflicting field is recovered from the constraint name (postgres) or the message (sqlite).
func conflictError(err error) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr):
		if pgErr.Code != pgUniqueViolation {
			return nil
		}
		return errs.Conflict(pgConflictField(pgErr), err)
	case strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return errs.Conflict(conflictField(err.Error()), err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.Conflict("", err)
	}
	return nil
}

func conflictField(s string) string {
	switch {
	case strings.Contains(s, FieldEmail):
		return FieldEmail
	case strings.Contains(s, FieldUsername):
		return FieldUsername
	default:
		return ""
	}
}

// pgConflictField reads the column from the detail line, falling back to the index name (idx_users_<col>). The
// duplicated value in the detail is never inspected.
func pgConflictField(pgErr *pgconn.PgError) string {
	if m := pgDetailKey.FindStringSubmatch(pgErr.Detail); m != nil {
		switch m[1] {
		case FieldEmail, FieldUsername:
			return m[1]
		}
	}

	switch {
	case strings.HasSuffix(pgErr.ConstraintName, "_"+FieldEmail):
		return FieldEmail
	case strings.HasSuffix(pgErr.ConstraintName, "_"+FieldUsername):
		return FieldUsername
	default:
		return ""
	}
}
