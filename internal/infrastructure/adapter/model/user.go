package model

import (
	"time"
)

// User represents the database model for operator accounts. IsActive is a
// pointer so an explicit false survives the insert instead of being skipped
// as a zero value in favor of the column default.
type User struct {
	ID           uint64 `gorm:"primaryKey"`
	Username     string `gorm:"size:50;not null;uniqueIndex"`
	Email        string `gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:128;not null"`
	IsActive     *bool  `gorm:"not null;default:true"`
	IsSuperuser  bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
