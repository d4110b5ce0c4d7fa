package domain

import "slices"

// Role is the access level of a staff member or of the current session.
// A guest has no session at all, so there is no guest role.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
	RoleOwner   Role = "owner"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

// StaffManagers are the roles allowed to list staff and change roles.
var StaffManagers = []Role{RoleManager, RoleAdmin, RoleOwner}

// CanManageStaff reports whether r is one of StaffManagers.
func (r Role) CanManageStaff() bool {
	return slices.Contains(StaffManagers, r)
}

// ParseRole returns the role named by s, falling back to RoleUser for
// anything the client does not recognise.
func ParseRole(s string) Role {
	r := Role(s)
	if !r.Valid() {
		return RoleUser
	}
	return r
}

// User is the application-shape staff/client record.
//
// PlatformID is the stable key used by every mutating call. ID is the
// backend's internal numeric id and is only good as a list key.
type User struct {
	ID         int64  `json:"id"`
	PlatformID string `json:"platformId"`
	FirstName  string `json:"firstName"`
	Username   string `json:"username"`
	Phone      string `json:"phone"`
	Role       Role   `json:"role"`
}

// DisplayName is the name shown for the user in lists and headers.
func (u User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

// CanChangeRole reports whether this client may change u's role.
func (u User) CanChangeRole() bool {
	return u.Role != RoleOwner
}

// Session is the authenticated principal as known to the client.
// A nil *Session means unauthenticated; a non-nil one is always complete.
type Session struct {
	UserID        int64
	DisplayName   string
	Role          Role
	Authenticated bool
	User          User
}

// NewSession builds a fully populated session for u.
func NewSession(u User) *Session {
	return &Session{
		UserID:        u.ID,
		DisplayName:   u.DisplayName(),
		Role:          ParseRole(string(u.Role)),
		Authenticated: true,
		User:          u,
	}
}
