package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Hierarchies(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SubjectKindUser, RoleCustomer.Kind())
	assert.Equal(t, SubjectKindUser, RoleMerchant.Kind())
	assert.Equal(t, SubjectKindAdmin, RoleAdmin.Kind())
	assert.Equal(t, SubjectKindAdmin, RoleSuperAdmin.Kind())
	assert.Equal(t, SubjectKind(""), Role("owner").Kind())

	assert.Less(t, RoleCustomer.Rank(), RoleMerchant.Rank())
	assert.Less(t, RoleAdmin.Rank(), RoleSuperAdmin.Rank())
	assert.Equal(t, -1, Role("owner").Rank())
	assert.False(t, Role("owner").IsValid())
}

func TestRole_EscalateNeverDowngrades(t *testing.T) {
	t.Parallel()

	assert.Equal(t, RoleMerchant, RoleCustomer.Escalate(RoleMerchant))
	assert.Equal(t, RoleMerchant, RoleMerchant.Escalate(RoleCustomer))
	assert.Equal(t, RoleMerchant, RoleMerchant.Escalate(RoleMerchant))
	assert.Equal(t, RoleCustomer, RoleCustomer.Escalate(RoleSuperAdmin))
}
