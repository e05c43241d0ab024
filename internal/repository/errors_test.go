package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"record not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"wrapped not found", fmt.Errorf("find: %w", gorm.ErrRecordNotFound), ErrNotFound},
		{"duplicated key", gorm.ErrDuplicatedKey, ErrConstraintViolation},
		{"foreign key", gorm.ErrForeignKeyViolated, ErrConstraintViolation},
		{"postgres fk", &pgconn.PgError{Code: "23503"}, ErrConstraintViolation},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, ErrConstraintViolation},
		{"postgres connection", &pgconn.PgError{Code: "08006"}, ErrTransientIO},
		{"sqlite constraint", sqlite3.Error{Code: sqlite3.ErrConstraint}, ErrConstraintViolation},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, ErrTransientIO},
		{"constraint text", errors.New("FOREIGN KEY constraint failed"), ErrConstraintViolation},
		{"anything else", errors.New("connection reset by peer"), ErrTransientIO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err, "cause must stay in the chain")
		})
	}
}

func TestTranslateErrorKeepsKind(t *testing.T) {
	assert.NoError(t, translateError(nil))

	already := fmt.Errorf("meal x: %w", ErrNotFound)
	assert.Same(t, already, translateError(already))
}
