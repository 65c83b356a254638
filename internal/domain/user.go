package domain

import "time"

// Role represents the kind of account a user holds.
type Role string

const (
	RoleAspirant  Role = "aspirant"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// AuthProvider represents an OAuth provider.
type AuthProvider string

const (
	AuthProviderGoogle AuthProvider = "google"
	AuthProviderGitHub AuthProvider = "github"
)

// User represents an authenticated user. Recruiters carry the ID of the
// company they work for; aspirants and admins do not.
type User struct {
	ID          int64        `json:"id" db:"id"`
	Provider    AuthProvider `json:"provider" db:"provider"`
	ProviderID  string       `json:"provider_id" db:"provider_id"`
	Email       string       `json:"email" db:"email"`
	DisplayName string       `json:"display_name" db:"display_name"`
	AvatarURL   *string      `json:"avatar_url,omitempty" db:"avatar_url"`
	Role        Role         `json:"role" db:"role"`
	CompanyID   *int64       `json:"company_id,omitempty" db:"company_id"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// Principal is the resolved identity of a caller, threaded explicitly
// through every service call rather than read from ambient state.
type Principal struct {
	ID        int64
	Role      Role
	CompanyID int64 // zero unless Role is recruiter
}

// IsAdmin reports whether the principal bypasses ownership checks.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Principal derives the caller identity from a stored user.
func (u User) Principal() Principal {
	p := Principal{ID: u.ID, Role: u.Role}
	if u.CompanyID != nil {
		p.CompanyID = *u.CompanyID
	}
	return p
}
