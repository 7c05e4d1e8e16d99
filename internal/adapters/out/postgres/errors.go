package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"medshop/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	codeUniqueViolation       = "23505"
	codeQueryCanceled         = "57014"
	codeSerializationFailure  = "40001"
	codeDeadlockDetected      = "40P01"
	classConnectionException  = "08"
	classOperatorIntervention = "57P"
	classDataException        = "22"
)

// Classify maps driver failures onto the error taxonomy: connection loss,
// cancellation, timeouts and serialization failures become
// TransientStoreError, unique violations become ConflictError and data
// exceptions (numeric overflow, invalid text) become ValueIsInvalidError.
// Anything else, including gorm.ErrRecordNotFound, is returned unchanged.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errs.ErrTransientStore) || errors.Is(err, errs.ErrConflict) || errs.IsValidation(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation:
			return errs.NewConflictErrorWithCause(constraintSubject(pgErr), err)
		case pgErr.Code == codeQueryCanceled,
			pgErr.Code == codeSerializationFailure,
			pgErr.Code == codeDeadlockDetected,
			strings.HasPrefix(pgErr.Code, classConnectionException),
			strings.HasPrefix(pgErr.Code, classOperatorIntervention):
			return errs.NewTransientStoreError(op, err)
		case strings.HasPrefix(pgErr.Code, classDataException):
			return errs.NewValueIsInvalidErrorWithCause(dataSubject(pgErr), errors.New(pgErr.Message))
		}
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) ||
		pgconn.Timeout(err) ||
		pgconn.SafeToRetry(err) {
		return errs.NewTransientStoreError(op, err)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return errs.NewTransientStoreError(op, err)
	}
	return err
}

// ClassifyCommit is Classify for COMMIT. A transient failure that neither
// came back from the server as a PgError nor failed before sending leaves the
// outcome unknown and also matches errs.ErrCommitUnconfirmed.
func ClassifyCommit(err error) error {
	classified := Classify("commit", err)
	if classified == nil || !errors.Is(classified, errs.ErrTransientStore) {
		return classified
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) || pgconn.SafeToRetry(err) {
		return classified
	}
	return fmt.Errorf("%w: %w", errs.ErrCommitUnconfirmed, classified)
}

func constraintSubject(pgErr *pgconn.PgError) string {
	if pgErr.ConstraintName != "" {
		return "duplicate " + pgErr.ConstraintName
	}
	return "duplicate " + pgErr.TableName
}

func dataSubject(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if pgErr.TableName != "" {
		return pgErr.TableName + " value"
	}
	return "value"
}

// RegisterErrorClassifier installs gorm callbacks that pass every statement
// error through Classify, so repositories and query handlers share one
// mapping.
func RegisterErrorClassifier(db *gorm.DB) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().After("gorm:create").Register("medshop:classify_create", classifyCallback("create")),
		cb.Query().After("gorm:query").Register("medshop:classify_query", classifyCallback("query")),
		cb.Update().After("gorm:update").Register("medshop:classify_update", classifyCallback("update")),
		cb.Delete().After("gorm:delete").Register("medshop:classify_delete", classifyCallback("delete")),
		cb.Row().After("gorm:row").Register("medshop:classify_row", classifyCallback("row")),
		cb.Raw().After("gorm:raw").Register("medshop:classify_raw", classifyCallback("raw")),
	)
}

func classifyCallback(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		if db.Error == nil {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "sql"
		}
		db.Error = Classify(op+" "+table, db.Error)
	}
}
