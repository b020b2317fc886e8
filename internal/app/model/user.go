package model

import (
	"time"
)

type UserRole string

const (
	RoleStaff UserRole = "staff"
	RoleOwner UserRole = "owner"
	RoleAdmin UserRole = "admin"
)

// CanManageReferenceData reports whether the role may create branches
// and reply templates.
func (r UserRole) CanManageReferenceData() bool {
	return r == RoleAdmin || r == RoleOwner
}

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     string    `gorm:"not null" json:"full_name"`
	Role         UserRole  `gorm:"type:varchar(20);default:'staff'" json:"role"`
	BranchID     *uint     `gorm:"index" json:"branch_id,omitempty"` // assigned branch, scopes what staff can see
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Branch *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (User) TableName() string {
	return "users"
}
