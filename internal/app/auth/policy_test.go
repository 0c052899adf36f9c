package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campuscrm/admitdesk/internal/app/models"
)

func principal(id int64, role models.Role) Principal {
	return Principal{ID: id, Name: "Test", Role: role}
}

func user(id int64, role models.Role) *models.User {
	return &models.User{ID: id, Role: role}
}

func TestCanManageAccount(t *testing.T) {
	tests := []struct {
		name   string
		actor  Principal
		target *models.User
		want   bool
	}{
		{"super admin manages admin", principal(1, models.RoleSuperAdmin), user(2, models.RoleAdmin), true},
		{"super admin manages faculty", principal(1, models.RoleSuperAdmin), user(2, models.RoleFaculty), true},
		{"super admin manages super admin", principal(1, models.RoleSuperAdmin), user(2, models.RoleSuperAdmin), true},
		{"super admin cannot manage self", principal(1, models.RoleSuperAdmin), user(1, models.RoleSuperAdmin), false},
		{"admin manages faculty", principal(1, models.RoleAdmin), user(2, models.RoleFaculty), true},
		{"admin cannot manage admin", principal(1, models.RoleAdmin), user(2, models.RoleAdmin), false},
		{"admin cannot manage super admin", principal(1, models.RoleAdmin), user(2, models.RoleSuperAdmin), false},
		{"admin cannot manage self", principal(1, models.RoleAdmin), user(1, models.RoleFaculty), false},
		{"faculty manages nobody", principal(1, models.RoleFaculty), user(2, models.RoleFaculty), false},
		{"faculty cannot manage admin", principal(1, models.RoleFaculty), user(2, models.RoleAdmin), false},
		{"faculty cannot manage super admin", principal(1, models.RoleFaculty), user(2, models.RoleSuperAdmin), false},
		{"nil target", principal(1, models.RoleSuperAdmin), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanManageAccount(tt.actor, tt.target))
		})
	}
}

func TestCanChangeRole(t *testing.T) {
	assert.True(t, CanChangeRole(principal(1, models.RoleSuperAdmin)))
	assert.False(t, CanChangeRole(principal(1, models.RoleAdmin)))
	assert.False(t, CanChangeRole(principal(1, models.RoleFaculty)))
}

func TestCanCreateAccount(t *testing.T) {
	assert.True(t, CanCreateAccount(principal(1, models.RoleSuperAdmin)))
	assert.True(t, CanCreateAccount(principal(1, models.RoleAdmin)))
	assert.False(t, CanCreateAccount(principal(1, models.RoleFaculty)))
}

func TestListScope(t *testing.T) {
	assert.False(t, ListScope(principal(1, models.RoleSuperAdmin)).Restricted())

	adminScope := ListScope(principal(7, models.RoleAdmin))
	assert.True(t, adminScope.Restricted())
	assert.Equal(t, int64(7), adminScope.UploadedByID)

	facultyScope := ListScope(principal(9, models.RoleFaculty))
	assert.True(t, facultyScope.Restricted())
	assert.Equal(t, int64(9), facultyScope.UploadedByID)
}

func TestAggregateScope(t *testing.T) {
	assert.False(t, AggregateScope(principal(1, models.RoleSuperAdmin)).Restricted())
	assert.False(t, AggregateScope(principal(7, models.RoleAdmin)).Restricted())

	facultyScope := AggregateScope(principal(9, models.RoleFaculty))
	assert.True(t, facultyScope.Restricted())
	assert.Equal(t, int64(9), facultyScope.UploadedByID)
}

// An ADMIN is restricted in the calling list but unrestricted in aggregates.
// Both must hold for the same principal at the same time.
func TestAdminVisibilityAsymmetry(t *testing.T) {
	admin := principal(7, models.RoleAdmin)
	assert.True(t, ListScope(admin).Restricted())
	assert.False(t, AggregateScope(admin).Restricted())
}
