package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Specialization struct {
	gorm.Model
	Name        string `gorm:"column:name;size:255;not null;uniqueIndex" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description,omitempty"`
}

type Doctor struct {
	gorm.Model
	Name             string `gorm:"column:name;size:255;not null" json:"name"`
	Email            string `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	SpecializationID uint   `gorm:"column:specialization_id;not null" json:"specialization_id"`
	LicenseNumber    string `gorm:"column:license_number;size:100" json:"license_number"`
	Phone            string `gorm:"column:phone;size:20" json:"phone"`
	Bio              string `gorm:"column:bio;type:text" json:"bio,omitempty"`
	IsActive         bool   `gorm:"column:is_active;default:true" json:"is_active"`

	Languages pq.StringArray `gorm:"type:text[];column:languages" json:"languages,omitempty"`

	Specialization *Specialization `gorm:"foreignKey:SpecializationID" json:"specialization,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
