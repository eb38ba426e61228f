package db

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	pgUniqueViolation    = "23505"
	mysqlDuplicateEntry  = 1062
	sqliteUniqueFragment = "UNIQUE constraint failed"
)

// IsUniqueViolation reports whether err is a unique constraint violation on
// any supported driver. When constraint is provided, the constraint (or, for
// sqlite, the column list) must also appear in the driver error.
func IsUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation && matches(pgErr.ConstraintName+" "+pgErr.Message, constraint)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation && matches(pqErr.Constraint+" "+pqErr.Message, constraint)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry && matches(myErr.Message, constraint)
	}

	msg := err.Error()
	if strings.Contains(msg, sqliteUniqueFragment) || strings.Contains(msg, "duplicate key value") {
		return matches(msg, constraint)
	}
	return false
}

func matches(haystack, constraint string) bool {
	return constraint == "" || strings.Contains(haystack, constraint)
}
