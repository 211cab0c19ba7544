package access

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freya-systems/freya-dashboard/internal/model"
)

func TestAllowedPagesFullAccessRoles(t *testing.T) {
	expected := []string{PageDashboard, PageUserManagement, PageMasterDB, PageSubmittedDB}

	require.Equal(t, expected, AllowedPages(model.RoleMasterUser))
	require.Equal(t, expected, AllowedPages(model.RoleAdmin))
}

func TestAllowedPagesSupervisoryRolesExcludeUserManagement(t *testing.T) {
	expected := []string{PageDashboard, PageMasterDB, PageSubmittedDB}

	require.Equal(t, expected, AllowedPages(model.RoleSupervisor))
	require.Equal(t, expected, AllowedPages(model.RoleForeman))
}

func TestAllowedPagesMemberSeesDashboardOnly(t *testing.T) {
	require.Equal(t, []string{PageDashboard}, AllowedPages(model.RoleMember))
	require.False(t, PageAllowed(model.RoleMember, PageMasterDB))
}

func TestAllowedPagesUnknownRolesGetNothing(t *testing.T) {
	require.Nil(t, AllowedPages(model.RoleGuest))
	require.Nil(t, AllowedPages("intruder"))
	require.Nil(t, AllowedPages(""))
}

func TestAllowedPagesReturnsACopy(t *testing.T) {
	first := AllowedPages(model.RoleAdmin)
	first[0] = "tampered"

	require.Equal(t, PageDashboard, AllowedPages(model.RoleAdmin)[0])
}

func TestPageAllowedMatchesAllowList(t *testing.T) {
	require.True(t, PageAllowed(model.RoleSupervisor, PageMasterDB))
	require.False(t, PageAllowed(model.RoleSupervisor, PageUserManagement))
	require.False(t, PageAllowed(model.RoleGuest, PageDashboard))
}

func TestEditAndUserManagementCapabilities(t *testing.T) {
	require.True(t, CanEditRecords(model.RoleAdmin))
	require.True(t, CanEditRecords(model.RoleMasterUser))
	require.False(t, CanEditRecords(model.RoleSupervisor))
	require.False(t, CanEditRecords(model.RoleMember))

	require.True(t, CanManageUsers(model.RoleMasterUser))
	require.False(t, CanManageUsers(model.RoleForeman))
}

func TestIconClassKnownForEveryPage(t *testing.T) {
	for _, page := range AllowedPages(model.RoleAdmin) {
		require.NotEmpty(t, IconClass(page), page)
	}
}

func TestAssignableRolesCoverEveryAccessTier(t *testing.T) {
	roles := AssignableRoles()

	require.Contains(t, roles, model.RoleAdmin)
	require.Contains(t, roles, model.RoleMasterUser)
	require.Contains(t, roles, model.RoleSupervisor)
	require.Contains(t, roles, model.RoleForeman)
	require.Contains(t, roles, model.RoleMember)
	require.NotContains(t, roles, model.RoleGuest)
}
