package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleIsValid(t *testing.T) {
	for _, role := range AllRoles {
		assert.True(t, role.IsValid(), "expected %s to be valid", role)
	}
	assert.False(t, Role("warden").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestRoleModulePermissions(t *testing.T) {
	t.Run("ict admin manages everything", func(t *testing.T) {
		modules := []Module{
			ModuleDashboard, ModulePrograms, ModuleHouseholds, ModuleBusinessGroups,
			ModuleSavingsGroups, ModuleSurveys, ModuleTraining, ModuleGrants,
			ModuleReports, ModuleSettings,
		}
		for _, m := range modules {
			assert.True(t, RoleICTAdmin.CanManage(m), "ict_admin should manage %s", m)
		}
	})

	t.Run("county executive manages grants but only views households", func(t *testing.T) {
		assert.True(t, RoleCountyExecutive.CanManage(ModuleGrants))
		assert.False(t, RoleCountyExecutive.CanManage(ModuleHouseholds))
		assert.True(t, RoleCountyExecutive.CanView(ModuleHouseholds))
	})

	t.Run("me staff views grants read-only", func(t *testing.T) {
		assert.False(t, RoleMEStaff.CanManage(ModuleGrants))
		assert.True(t, RoleMEStaff.CanView(ModuleGrants))
		assert.True(t, RoleMEStaff.CanManage(ModuleSurveys))
	})

	t.Run("mentor has no grants access", func(t *testing.T) {
		assert.False(t, RoleMentor.CanManage(ModuleGrants))
		assert.False(t, RoleMentor.CanView(ModuleGrants))
		assert.True(t, RoleMentor.CanManage(ModuleHouseholds))
		assert.True(t, RoleMentor.CanView(ModulePrograms))
	})

	t.Run("beneficiary views but manages only dashboard", func(t *testing.T) {
		assert.True(t, RoleBeneficiary.CanManage(ModuleDashboard))
		assert.False(t, RoleBeneficiary.CanManage(ModuleHouseholds))
		assert.True(t, RoleBeneficiary.CanView(ModuleHouseholds))
		assert.False(t, RoleBeneficiary.CanView(ModuleSettings))
	})

	t.Run("county assembly has no settings access", func(t *testing.T) {
		assert.False(t, RoleCountyAssembly.HasModulePermission(ModuleSettings, PermissionAny))
	})
}

func TestRoleGrantWorkflowPermissions(t *testing.T) {
	assert.True(t, RoleCountyExecutive.CanApproveGrants())
	assert.True(t, RoleICTAdmin.CanApproveGrants())
	assert.False(t, RoleMEStaff.CanApproveGrants())

	assert.True(t, RoleMEStaff.CanReviewGrants())
	assert.True(t, RoleFieldAssociate.CanReviewGrants())
	assert.False(t, RoleMentor.CanReviewGrants())
	assert.False(t, RoleBeneficiary.CanReviewGrants())
}

func TestRoleDisplayName(t *testing.T) {
	assert.Equal(t, "M&E Staff", RoleMEStaff.DisplayName())
	assert.Equal(t, "County Executive (CECM & Governor)", RoleCountyExecutive.DisplayName())
	assert.Equal(t, "custom", Role("custom").DisplayName())
}
