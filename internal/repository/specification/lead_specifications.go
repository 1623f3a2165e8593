package specification

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// LeadByEmail matches case-insensitively
type LeadByEmail struct {
	Email string
}

func (s LeadByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(s.Email)))
}

type LeadBySession struct {
	SessionId string
}

func (s LeadBySession) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionId)
}

type LeadByPlan struct {
	Plan string
}

func (s LeadByPlan) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("plan = ?", s.Plan)
}

// CapturedBetween is inclusive of From and exclusive of To. A zero bound is open.
type CapturedBetween struct {
	From time.Time
	To   time.Time
}

func (s CapturedBetween) Apply(db *gorm.DB) *gorm.DB {
	if !s.From.IsZero() {
		db = db.Where("captured_at >= ?", s.From)
	}
	if !s.To.IsZero() {
		db = db.Where("captured_at < ?", s.To)
	}
	return db
}
