package models

import "gorm.io/gorm"

type Contract struct {
	gorm.Model

	ProjectID    uint    `gorm:"not null;index"`
	ClientID     uint    `gorm:"not null;index"`
	FreelancerID uint    `gorm:"not null;index"`
	TotalAmount  float64 `gorm:"not null"`
	Status       string  `gorm:"not null"` // "active", "completed"

	// Relationships
	Project    Project     `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Client     User        `gorm:"foreignKey:ClientID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Freelancer User        `gorm:"foreignKey:FreelancerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Milestones []Milestone `gorm:"foreignKey:ContractID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Reviews    []Review    `gorm:"foreignKey:ContractID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
