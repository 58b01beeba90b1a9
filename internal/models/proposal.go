package models

import "gorm.io/gorm"

type Proposal struct {
	gorm.Model

	ProjectID     uint `gorm:"not null;uniqueIndex:idx_project_freelancer"`
	FreelancerID  uint `gorm:"not null;uniqueIndex:idx_project_freelancer"`
	CoverLetter   string
	ProposedPrice float64 `gorm:"not null"`
	DeliveryDays  int
	Status        string `gorm:"not null"` // "pending", "accepted", "rejected"

	// Relationships
	Project    Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Freelancer User    `gorm:"foreignKey:FreelancerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
