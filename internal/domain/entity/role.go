// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the role of a subject in one of the two disjoint hierarchies:
// storefront users (customer < merchant) and platform admins (admin < super_admin).
type Role string

const (
	// RoleCustomer indicates a regular shopper account.
	RoleCustomer Role = "customer"
	// RoleMerchant indicates a store owner account.
	RoleMerchant Role = "merchant"
	// RoleAdmin indicates a platform administrator.
	RoleAdmin Role = "admin"
	// RoleSuperAdmin indicates an administrator that can manage other administrators.
	RoleSuperAdmin Role = "super_admin"
)

// SubjectKind tells which identity table a subject belongs to.
type SubjectKind string

const (
	SubjectKindUser  SubjectKind = "user"
	SubjectKindAdmin SubjectKind = "admin"
)

var (
	userHierarchy  = []Role{RoleCustomer, RoleMerchant}
	adminHierarchy = []Role{RoleAdmin, RoleSuperAdmin}
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	return slices.Contains(userHierarchy, r) || slices.Contains(adminHierarchy, r)
}

// Kind returns the hierarchy the role belongs to. Invalid roles return an empty kind.
func (r Role) Kind() SubjectKind {
	switch {
	case slices.Contains(userHierarchy, r):
		return SubjectKindUser
	case slices.Contains(adminHierarchy, r):
		return SubjectKindAdmin
	default:
		return ""
	}
}

// Rank returns the position of the role inside its own hierarchy, or -1 when invalid.
func (r Role) Rank() int {
	if idx := slices.Index(userHierarchy, r); idx >= 0 {
		return idx
	}

	return slices.Index(adminHierarchy, r)
}

// IsUserRole reports whether the role can be stored on a User.
func (r Role) IsUserRole() bool {
	return r.Kind() == SubjectKindUser
}

// IsAdminRole reports whether the role can be stored on an AdminUser.
func (r Role) IsAdminRole() bool {
	return r.Kind() == SubjectKindAdmin
}

// Escalate returns the higher of r and target when both belong to the same hierarchy.
// A role never moves down through escalation.
func (r Role) Escalate(target Role) Role {
	if r.Kind() != target.Kind() || target.Rank() <= r.Rank() {
		return r
	}

	return target
}
