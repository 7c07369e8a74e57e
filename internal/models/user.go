package models

import "time"

type User struct {
	BaseModel
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	FullName     string `gorm:"not null" json:"full_name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	ActiveRole   Role   `gorm:"type:varchar(20);not null;default:'buyer'" json:"active_role"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`
	IsSuspended  bool   `gorm:"default:false" json:"is_suspended"`

	// Relations
	RoleApplications []RoleApplication `gorm:"foreignKey:UserID" json:"role_applications,omitempty"`
	RefreshTokens    []RefreshToken    `gorm:"foreignKey:UserID" json:"-"`
}

// RoleStatus returns the application status for a role, not_applied when the
// user never applied.
func (u *User) RoleStatus(role Role) ApplicationStatus {
	for _, app := range u.RoleApplications {
		if app.Role == role {
			return app.Status
		}
	}
	return ApplicationStatusNotApplied
}

// HasApprovedRole reports whether the role may be activated.
func (u *User) HasApprovedRole(role Role) bool {
	return u.RoleStatus(role) == ApplicationStatusApproved
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
