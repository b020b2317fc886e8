package model

import (
	"time"
)

// Branch is a physical business location reviews are attributed to.
// Immutable once created; there is no update or delete operation.
type Branch struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Location   string    `gorm:"not null" json:"location"`
	BranchCode string    `gorm:"uniqueIndex;not null" json:"branch_code"` // human-facing code printed on QR forms
	CreatedAt  time.Time `json:"created_at"`

	Reviews []Review `gorm:"foreignKey:BranchID" json:"-"`
}

func (Branch) TableName() string {
	return "branches"
}

// PublicBranch is the unauthenticated subset exposed to the collection form.
type PublicBranch struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (b *Branch) Public() PublicBranch {
	return PublicBranch{ID: b.ID, Name: b.Name, Location: b.Location}
}
