package models

import (
	"strings"

	"gorm.io/gorm"
)

// Roles a platform user can hold. Role gates project submission and the
// admin moderation dashboard.
const (
	RoleStudent    = "student"
	RoleViewer     = "viewer"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

type User struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	FirebaseUID string `json:"firebase_uid" gorm:"uniqueIndex"`
	Email       string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhotoURL    string `json:"photo_url,omitempty"`
	Role        string `json:"role" gorm:"size:20;default:student;index"`
}

// DisplayName returns the user's full name, falling back to the email
// local part when no name was ever synced from the identity provider.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}

// IsAdmin reports whether the user may act on the moderation dashboard.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperadmin
}

// CanSubmit reports whether the user may create projects, topics and
// collaborations. Viewers are read-only.
func (u *User) CanSubmit() bool {
	return u.Role != RoleViewer
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name,omitempty" validate:"omitempty,min=1,max=50"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,min=1,max=50"`
	PhotoURL  string `json:"photo_url,omitempty" validate:"omitempty,url"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=student viewer admin superadmin"`
}
