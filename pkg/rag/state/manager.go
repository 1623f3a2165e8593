package state

import (
	"errors"

	"autostream-assistant/internal/pkg/logger"
	"autostream-assistant/pkg/rag/intent"
	"autostream-assistant/pkg/store"
)

var ErrIncompleteLead = errors.New("lead cannot be captured before all required fields are known")

// Manager handles session state transitions
type Manager struct {
	logger logger.ILogger
}

func NewManager(logger logger.ILogger) *Manager {
	return &Manager{logger: logger}
}

// ApplyClassification records the turn's intent. A resolved plan choice is never cleared.
func (m *Manager) ApplyClassification(session *store.Session, result intent.Result) {
	session.Intent = result.Intent
	if result.PlanChoice != "" {
		session.PlanChoice = result.PlanChoice
	}
	m.logger.Debug("StateManager", "Intent applied", map[string]interface{}{
		"session_id":  session.ID,
		"intent":      result.Intent,
		"source":      string(result.Source),
		"plan_choice": session.PlanChoice,
	})
}

func (m *Manager) ApplyRetrieval(session *store.Session, passages []string) {
	session.Retrieved = append([]string(nil), passages...)
}

func (m *Manager) ApplyLead(session *store.Session, info map[string]string, plan string) {
	session.LeadInfo = info
	if plan != "" {
		session.PlanChoice = plan
	}
}

// MarkCaptured flips LeadCaptured to true. It never flips it back.
func (m *Manager) MarkCaptured(session *store.Session) error {
	if session.LeadCaptured {
		return nil
	}
	if !session.HasRequiredFields() {
		return ErrIncompleteLead
	}
	session.LeadCaptured = true
	m.logger.Info("StateManager", "Lead marked as captured", map[string]interface{}{
		"session_id": session.ID,
	})
	return nil
}
