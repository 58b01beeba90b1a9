package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model

	ContractID uint `gorm:"not null;uniqueIndex:idx_contract_reviewer"`
	ReviewerID uint `gorm:"not null;uniqueIndex:idx_contract_reviewer"`
	RevieweeID uint `gorm:"not null;index"`
	Rating     int  `gorm:"not null"` // 1-5
	Comment    string

	// Relationships
	Contract Contract `gorm:"foreignKey:ContractID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Reviewer User     `gorm:"foreignKey:ReviewerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Reviewee User     `gorm:"foreignKey:RevieweeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
