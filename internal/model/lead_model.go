package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Lead struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId  string         `gorm:"type:varchar(64);index"`
	Name       string         `gorm:"type:varchar(255);not null"`
	Email      string         `gorm:"type:varchar(255);not null;index"`
	Platform   string         `gorm:"type:varchar(100);not null"`
	Plan       string         `gorm:"type:varchar(20)"` // basic | pro | ""
	Metadata   datatypes.JSON `gorm:"type:jsonb"`
	CapturedAt time.Time      `gorm:"not null"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Lead) TableName() string {
	return "leads"
}
