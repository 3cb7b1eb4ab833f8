// Package model holds the GORM persistence models. IDs are UUIDv7 assigned before insert,
// so ordering by id follows creation order on every supported database.
package model

import (
	"github.com/google/uuid"
)

// All lists every model in dependency order for migrations.
func All() []any {
	return []any{
		&UserModel{},
		&AdminUserModel{},
		&CategoryModel{},
		&SubscriptionPlanModel{},
		&RestrictedSlugModel{},
		&BusinessApplicationModel{},
		&StoreModel{},
		&VerificationModel{},
	}
}

func assignID(id *uuid.UUID) error {
	if *id != uuid.Nil {
		return nil
	}

	generated, err := uuid.NewV7()
	if err != nil {
		return err
	}
	*id = generated

	return nil
}
