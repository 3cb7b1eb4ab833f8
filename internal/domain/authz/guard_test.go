package authz

import (
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subject(kind entity.SubjectKind, role entity.Role) *entity.Subject {
	return &entity.Subject{Kind: kind, ID: uuid.New(), Role: role}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	customer := subject(entity.SubjectKindUser, entity.RoleCustomer)
	merchant := subject(entity.SubjectKindUser, entity.RoleMerchant)
	admin := subject(entity.SubjectKindAdmin, entity.RoleAdmin)
	superAdmin := subject(entity.SubjectKindAdmin, entity.RoleSuperAdmin)

	tests := []struct {
		name    string
		subject *entity.Subject
		minimum entity.Role
		wantErr error
	}{
		{name: "no session", subject: nil, minimum: entity.RoleCustomer, wantErr: domainerrors.ErrUnauthorized},
		{name: "customer on customer", subject: customer, minimum: entity.RoleCustomer},
		{name: "merchant on customer", subject: merchant, minimum: entity.RoleCustomer},
		{name: "customer on merchant", subject: customer, minimum: entity.RoleMerchant, wantErr: domainerrors.ErrForbidden},
		{name: "customer on admin", subject: customer, minimum: entity.RoleAdmin, wantErr: domainerrors.ErrForbidden},
		{name: "merchant on admin", subject: merchant, minimum: entity.RoleAdmin, wantErr: domainerrors.ErrForbidden},
		{name: "admin on admin", subject: admin, minimum: entity.RoleAdmin},
		{name: "admin on super admin", subject: admin, minimum: entity.RoleSuperAdmin, wantErr: domainerrors.ErrForbidden},
		{name: "super admin on admin", subject: superAdmin, minimum: entity.RoleAdmin},
		{name: "super admin on merchant", subject: superAdmin, minimum: entity.RoleMerchant, wantErr: domainerrors.ErrForbidden},
		{name: "admin role on user kind", subject: subject(entity.SubjectKindUser, entity.RoleAdmin), minimum: entity.RoleAdmin, wantErr: domainerrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RequireRole(tt.subject, tt.minimum)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.subject, got)
		})
	}
}

func TestRequireStatusChangeAllowed(t *testing.T) {
	t.Parallel()

	actor := subject(entity.SubjectKindAdmin, entity.RoleSuperAdmin)
	other := uuid.New()

	assert.ErrorIs(t, RequireStatusChangeAllowed(actor, actor.ID, entity.AdminStatusDisabled), domainerrors.ErrSelfLockout)
	assert.ErrorIs(t, RequireStatusChangeAllowed(actor, actor.ID, entity.AdminStatusSuspended), domainerrors.ErrSelfLockout)
	assert.NoError(t, RequireStatusChangeAllowed(actor, actor.ID, entity.AdminStatusActive))
	assert.NoError(t, RequireStatusChangeAllowed(actor, other, entity.AdminStatusDisabled))
}

func TestRequireRoleChangeAllowed(t *testing.T) {
	t.Parallel()

	actor := subject(entity.SubjectKindAdmin, entity.RoleSuperAdmin)

	assert.ErrorIs(t, RequireRoleChangeAllowed(actor, actor.ID, entity.RoleAdmin), domainerrors.ErrSelfLockout)
	assert.NoError(t, RequireRoleChangeAllowed(actor, actor.ID, entity.RoleSuperAdmin))
	assert.NoError(t, RequireRoleChangeAllowed(actor, uuid.New(), entity.RoleAdmin))
}
