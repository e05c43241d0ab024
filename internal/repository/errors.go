package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// Store failures fall into three kinds; callers react differently to each
// (not-found page, inline form error, retry hint).
var (
	ErrNotFound            = errors.New("not found")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrTransientIO         = errors.New("store unavailable")
)

// translateError tags err with its kind, keeping the cause in the chain
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConstraintViolation) || errors.Is(err, ErrTransientIO) {
		return err
	}
	return fmt.Errorf("%w: %w", classify(err), err)
}

func classify(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrConstraintViolation
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// SQLSTATE class 23: integrity constraint violation
		if strings.HasPrefix(pgErr.Code, "23") {
			return ErrConstraintViolation
		}
		return ErrTransientIO
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		if liteErr.Code == sqlite3.ErrConstraint {
			return ErrConstraintViolation
		}
		return ErrTransientIO
	}

	if isConstraintMessage(err) {
		return ErrConstraintViolation
	}
	return ErrTransientIO
}

// isConstraintMessage catches drivers that only report constraint
// failures as text
func isConstraintMessage(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "constraint failed") ||
		strings.Contains(s, "violates foreign key") ||
		strings.Contains(s, "violates unique")
}

// notFoundIfNone turns an update/delete that touched nothing into ErrNotFound
func notFoundIfNone(result *gorm.DB, what string) error {
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
