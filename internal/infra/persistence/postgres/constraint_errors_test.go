package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintHelpers(t *testing.T) {
	t.Parallel()

	wrappedPg := func(code string) error {
		return errors.Wrap(&pgconn.PgError{Code: code}, "insert")
	}

	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueConstraintViolation(wrappedPg(pgUniqueViolation)))
	assert.True(t, isUniqueConstraintViolation(fmt.Errorf("UNIQUE constraint failed: stores.slug")))
	assert.False(t, isUniqueConstraintViolation(wrappedPg(pgForeignKeyViolation)))

	assert.True(t, isForeignKeyConstraintViolation(wrappedPg(pgForeignKeyViolation)))
	assert.True(t, isForeignKeyConstraintViolation(gorm.ErrForeignKeyViolated))
	assert.True(t, isNotNullConstraintViolation(wrappedPg(pgNotNullViolation)))
	assert.True(t, isNotNullConstraintViolation(fmt.Errorf("NOT NULL constraint failed: users.email")))
	assert.True(t, isCheckConstraintViolation(wrappedPg(pgCheckViolation)))
	assert.False(t, isCheckConstraintViolation(fmt.Errorf("connection reset")))
}
