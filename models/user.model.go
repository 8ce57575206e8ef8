package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleAssociate = "associate"
	RoleManager   = "manager"
)

type User struct {
	// IDs follow the "<role>-<uuid fragment>" convention, e.g. "associate-3f2a9c1d"
	ID string `gorm:"primaryKey;size:50" json:"id"`

	// Login
	Email    string `gorm:"unique;not null;size:100" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Profile
	Name string `gorm:"not null;size:100" json:"name"`

	// Role & store assignment
	Role      string `gorm:"not null;size:20;index" json:"role"` // associate, manager
	StoreID   string `gorm:"not null;size:50;index" json:"store_id"`
	StoreName string `gorm:"not null;size:100" json:"store_name"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	// System Timestamps
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ValidRole reports whether r is a recognized user role.
func ValidRole(r string) bool {
	return r == RoleAssociate || r == RoleManager
}
