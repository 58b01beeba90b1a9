package models

import (
	"time"

	"gorm.io/gorm"
)

type Milestone struct {
	gorm.Model

	ContractID  uint   `gorm:"not null;uniqueIndex:idx_contract_order"`
	OrderIndex  int    `gorm:"not null;uniqueIndex:idx_contract_order"` // 0-based position in the contract's sequence
	Title       string `gorm:"not null"`
	Description string
	Amount      float64 `gorm:"not null"`
	DueDate     time.Time
	Status      string `gorm:"not null"` // "pending", "submitted", "approved"

	// Relationships
	Contract Contract `gorm:"foreignKey:ContractID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
