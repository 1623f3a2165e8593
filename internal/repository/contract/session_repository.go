package contract

import (
	"context"

	"autostream-assistant/pkg/store"
)

// SessionRepository persists conversation state between turns.
// Get returns store.ErrSessionNotFound for unknown or expired ids.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*store.Session, error)
	Save(ctx context.Context, session *store.Session) error
	Delete(ctx context.Context, id string) error
}
