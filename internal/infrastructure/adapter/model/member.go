package model

import (
	"time"
)

// Member represents the database model for members. IsActive is a pointer
// so an explicit false survives the insert instead of being skipped as a
// zero value in favor of the column default.
type Member struct {
	ID          uint64  `gorm:"primaryKey"`
	Name        string  `gorm:"size:10;not null;uniqueIndex"`
	IPAddress   string  `gorm:"size:45;not null;index"`
	URLReport   *string `gorm:"size:255"`
	PIN         string  `gorm:"size:6;not null"`
	Password    string  `gorm:"size:10;not null"`
	IsActive    *bool   `gorm:"not null;default:true"`
	AllowNoSign bool    `gorm:"not null;default:false"`
	Balance     int64   `gorm:"not null;default:0"` // Balance in cents
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for Member
func (Member) TableName() string {
	return "members"
}
