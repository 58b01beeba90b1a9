package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	gorm.Model

	FreelancerID uint   `gorm:"not null;index"`
	Title        string `gorm:"not null"`
	Description  string
	Category     string  `gorm:"not null;index"`
	Price        float64 `gorm:"not null"`
	DeliveryDays int
	Rating       float64        `gorm:"default:0"` // running average, updated on client reviews
	TotalReviews int            `gorm:"default:0"`
	Tags         datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	Freelancer User `gorm:"foreignKey:FreelancerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
