package errors

// Postgres mapping. Repos wrap driver failures here so handlers only
// ever see project ErrorCodes.

import (
	stderrs "errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE values the sync and report paths can actually hit.
const (
	pgErrUniqueViolation           = "23505"
	pgErrForeignKeyViolation       = "23503"
	pgErrNotNullViolation          = "23502"
	pgErrCheckViolation            = "23514"
	pgErrStringDataRightTruncation = "22001"
	pgErrInvalidTextRepresentation = "22P02"
	pgErrReadOnlySQLTransaction    = "25006"
	pgErrCannotConnectNow          = "57P03" // database still starting up
)

// ExtractPgError digs a *pgconn.PgError out of the cause chain.
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(Root(err), &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// DBErrorCode classifies a postgres failure. ok is false when err does
// not carry a PgError at all, callers then fall back to generic
// handling.
func DBErrorCode(err error) (ErrorCode, bool) {
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}

	switch pgErr.Code {
	case pgErrUniqueViolation:
		return ErrorCodeDuplicateKey, true

	case pgErrForeignKeyViolation:
		// the payload referenced a row we never synced
		return ErrorCodeInvalidArgument, true

	case pgErrNotNullViolation, pgErrCheckViolation:
		return ErrorCodeValidation, true

	case pgErrStringDataRightTruncation, pgErrInvalidTextRepresentation:
		return ErrorCodeInvalidArgument, true

	case pgErrReadOnlySQLTransaction, pgErrCannotConnectNow:
		return ErrorCodeUnavailable, true
	}

	return ErrorCodeDB, true
}

// FromPostgresf wraps err with its mapped ErrorCode and a formatted
// message. Nil in, nil out.
func FromPostgresf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return Wrap(err, code, fmt.Sprintf(format, a...))
}
