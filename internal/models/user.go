package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null"` // "client" or "freelancer"
	Bio          string

	// Relationships
	Projects        []Project  `gorm:"foreignKey:ClientID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Proposals       []Proposal `gorm:"foreignKey:FreelancerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Services        []Service  `gorm:"foreignKey:FreelancerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ReviewsWritten  []Review   `gorm:"foreignKey:ReviewerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ReviewsReceived []Review   `gorm:"foreignKey:RevieweeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
