// Package sqlitetest opens a migrated in-memory SQLite database for tests. A single
// connection is shared so transactions serialize the way row locks would on PostgreSQL.
package sqlitetest

import (
	"context"
	"testing"

	"storefront/internal/infra/persistence/model"
	"storefront/internal/infra/persistence/postgres"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Fixture holds reference rows every test database starts with.
type Fixture struct {
	DB       *gorm.DB
	Category model.CategoryModel
	Plan     model.SubscriptionPlanModel
}

// Open returns a migrated database seeded with the default reference data.
func Open(t testing.TB) *Fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:                 logger.Discard,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()
	require.NoError(t, postgres.Migrate(ctx, db))
	require.NoError(t, postgres.SeedReferenceData(ctx, db))

	fixture := &Fixture{DB: db}
	require.NoError(t, db.Where("slug = ?", "crafts").First(&fixture.Category).Error)
	require.NoError(t, db.Where("slug = ?", "starter").First(&fixture.Plan).Error)

	return fixture
}

// Count returns the number of rows in the table backing m.
func (f *Fixture) Count(t testing.TB, m any) int64 {
	t.Helper()

	var count int64
	require.NoError(t, f.DB.Model(m).Count(&count).Error)

	return count
}
