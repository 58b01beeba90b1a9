package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Project struct {
	gorm.Model

	ClientID    uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Status      string `gorm:"not null"` // "open", "in_progress", "completed"
	BudgetMin   float64
	BudgetMax   float64
	Deadline    time.Time
	Skills      datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	Client    User       `gorm:"foreignKey:ClientID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Proposals []Proposal `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Contracts []Contract `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
