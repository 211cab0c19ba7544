// Package access holds the static role capability table. Pages outside a
// role's allow-list are omitted from navigation entirely; the router performs
// no second check.
package access

import "github.com/freya-systems/freya-dashboard/internal/model"

const (
	// PageDashboard is the device-overview landing page.
	PageDashboard = "dashboard"
	// PageUserManagement is the admin-only user administration page.
	PageUserManagement = "userManagement"
	// PageMasterDB is the product master catalog page.
	PageMasterDB = "masterDB"
	// PageSubmittedDB is the production log browser page.
	PageSubmittedDB = "submittedDB"
)

// pageAccessByRole fixes, per role, the ordered set of pages the role may
// view. The order is the navigation order.
var pageAccessByRole = map[string][]string{
	model.RoleMasterUser: {PageDashboard, PageUserManagement, PageMasterDB, PageSubmittedDB},
	model.RoleAdmin:      {PageDashboard, PageUserManagement, PageMasterDB, PageSubmittedDB},
	model.RoleSupervisor: {PageDashboard, PageMasterDB, PageSubmittedDB},
	model.RoleForeman:    {PageDashboard, PageMasterDB, PageSubmittedDB},
	model.RoleMember:     {PageDashboard},
}

// iconClassByPage maps each page to its Remix Icon class.
var iconClassByPage = map[string]string{
	PageDashboard:      "ri-dashboard-line",
	PageMasterDB:       "ri-database-2-line",
	PageSubmittedDB:    "ri-file-upload-line",
	PageUserManagement: "ri-user-settings-line",
}

// AllowedPages returns the ordered page identifiers the role may view. Unknown
// roles (including guest) get no pages.
func AllowedPages(role string) []string {
	allowed, known := pageAccessByRole[role]
	if !known {
		return nil
	}
	pages := make([]string, len(allowed))
	copy(pages, allowed)
	return pages
}

// PageAllowed reports whether the role's allow-list contains pageID.
func PageAllowed(role string, pageID string) bool {
	for _, allowed := range pageAccessByRole[role] {
		if allowed == pageID {
			return true
		}
	}
	return false
}

// IconClass returns the navigation icon class for a page identifier.
func IconClass(pageID string) string {
	return iconClassByPage[pageID]
}

// CanEditRecords reports whether the role may edit, insert, or bulk-delete
// master records and upload product images.
func CanEditRecords(role string) bool {
	return role == model.RoleAdmin || role == model.RoleMasterUser
}

// CanManageUsers reports whether the role may view and administer tenant users.
func CanManageUsers(role string) bool {
	return role == model.RoleAdmin || role == model.RoleMasterUser
}

// AssignableRoles lists the roles offered when creating or editing a user.
func AssignableRoles() []string {
	return []string{model.RoleAdmin, model.RoleMasterUser, model.RoleSupervisor, model.RoleForeman, model.RoleMember}
}
