package postgres

import (
	"context"

	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultRestrictedSlugs are words that collide with platform routes or impersonate staff.
var DefaultRestrictedSlugs = []string{
	"account", "admin", "api", "app", "assets", "auth", "billing", "cart", "checkout",
	"dashboard", "help", "login", "logout", "merchant", "register", "root", "settings",
	"signup", "static", "store", "stores", "support", "system", "www",
}

// Migrate creates or updates every table and index.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}

	return nil
}

// SeedReferenceData inserts default categories, plans and restricted slugs. Existing rows
// are left untouched, so the function can run on every deploy.
func SeedReferenceData(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	categories := []model.CategoryModel{
		{Slug: "retail", Name: "Retail"},
		{Slug: "food-beverage", Name: "Food & Beverage"},
		{Slug: "crafts", Name: "Arts & Crafts"},
		{Slug: "beauty", Name: "Beauty & Wellness"},
		{Slug: "services", Name: "Services"},
		{Slug: "electronics", Name: "Electronics"},
	}
	for i := range categories {
		if err := db.Where(model.CategoryModel{Slug: categories[i].Slug}).FirstOrCreate(&categories[i]).Error; err != nil {
			return errors.Wrapf(err, "seed category %s", categories[i].Slug)
		}
	}

	plans := []model.SubscriptionPlanModel{
		{Slug: "free", Name: "Free", PriceCents: 0, Features: datatypes.JSONSlice[string]{"storefront", "10 products"}, ProductLimit: 10, ServiceLimit: 2, BookingLimit: 20},
		{Slug: "starter", Name: "Starter", PriceCents: 1900, Features: datatypes.JSONSlice[string]{"storefront", "custom theme", "100 products"}, ProductLimit: 100, ServiceLimit: 10, BookingLimit: 200},
		{Slug: "pro", Name: "Pro", PriceCents: 4900, Features: datatypes.JSONSlice[string]{"storefront", "custom theme", "unlimited products", "priority support"}, ProductLimit: 0, ServiceLimit: 0, BookingLimit: 0},
	}
	for i := range plans {
		if err := db.Where(model.SubscriptionPlanModel{Slug: plans[i].Slug}).FirstOrCreate(&plans[i]).Error; err != nil {
			return errors.Wrapf(err, "seed plan %s", plans[i].Slug)
		}
	}

	for _, word := range DefaultRestrictedSlugs {
		restricted := model.RestrictedSlugModel{Word: word, Reason: "platform route"}
		if err := db.Where(model.RestrictedSlugModel{Word: word}).FirstOrCreate(&restricted).Error; err != nil {
			return errors.Wrapf(err, "seed restricted slug %s", word)
		}
	}

	return nil
}
