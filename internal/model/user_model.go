package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID               string    `gorm:"type:uuid;primary_key"`
	Username         string    `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email            string    `gorm:"type:varchar(254);uniqueIndex;not null"`
	FirstName        string    `gorm:"type:varchar(150)"`
	LastName         string    `gorm:"type:varchar(150)"`
	Bio              string    `gorm:"type:text"`
	Role             string    `gorm:"type:varchar(10);not null;default:'user'"`
	IsStaff          bool      `gorm:"not null;default:false"`
	EmailVerified    bool      `gorm:"not null;default:false"`
	ConfirmationCode string    `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
