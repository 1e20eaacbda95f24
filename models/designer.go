package models

import (
	"time"

	"gorm.io/gorm"
)

// Designer represents a fashion designer offering custom tailoring
type Designer struct {
	ID                     uint           `gorm:"primaryKey" json:"id"`
	Name                   string         `gorm:"not null;index" json:"name"`
	Email                  string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash           string         `gorm:"not null" json:"-"`
	Bio                    string         `gorm:"type:text" json:"bio"`
	ProfileImage           string         `json:"profile_image"`
	ProfessionalBackground string         `gorm:"type:text" json:"professional_background"`
	Skills                 StringSlice    `gorm:"type:text" json:"skills"`
	Awards                 StringSlice    `gorm:"type:text" json:"awards"`
	Experience             int            `json:"experience"` // years
	Services               StringSlice    `gorm:"type:text" json:"services"`
	IsTopDesigner          bool           `gorm:"default:false" json:"is_top_designer"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Designer model
func (Designer) TableName() string {
	return "designers"
}
