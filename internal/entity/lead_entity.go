package entity

import (
	"time"

	"github.com/google/uuid"
)

type Lead struct {
	Id         uuid.UUID
	SessionId  string
	Name       string
	Email      string
	Platform   string
	Plan       string
	Metadata   map[string]interface{}
	CapturedAt time.Time
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
