package model

import "strings"

const (
	// RoleMasterUser is the tenant-owner tier with full page access.
	RoleMasterUser = "masterUser"
	// RoleAdmin is the administrative tier with full page access.
	RoleAdmin = "admin"
	// RoleSupervisor is the supervisory tier (班長): no user management.
	RoleSupervisor = "班長"
	// RoleForeman is the alternate supervisory label (職長) offered on user
	// creation; it carries the same page access as RoleSupervisor.
	RoleForeman = "職長"
	// RoleMember is the basic tier: dashboard only.
	RoleMember = "member"
	// RoleGuest is the degraded role used when session data is absent or malformed.
	RoleGuest = "guest"
)

// Session is the authenticated browser session. It is issued by the upstream
// backend at login and read-only afterwards. DBName scopes every backend call
// to the tenant database.
type Session struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	DBName   string `json:"dbName"`
}

// Normalized degrades missing or blank fields to safe defaults instead of
// failing: a blank role becomes RoleGuest.
func (session Session) Normalized() Session {
	normalized := session
	normalized.Username = strings.TrimSpace(normalized.Username)
	normalized.Role = strings.TrimSpace(normalized.Role)
	normalized.DBName = strings.TrimSpace(normalized.DBName)
	if normalized.Role == "" {
		normalized.Role = RoleGuest
	}
	return normalized
}

// IsAuthenticated reports whether the session belongs to a logged-in user.
func (session Session) IsAuthenticated() bool {
	return session.Username != "" && session.Role != RoleGuest && session.Role != ""
}
