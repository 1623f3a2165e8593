package store

import (
	"errors"
	"maps"
	"time"

	"autostream-assistant/internal/constant"
	"autostream-assistant/pkg/llm"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the conversation state carried across turns
type Session struct {
	ID string `json:"id"`

	// Append-only conversation history
	Messages []llm.Message `json:"messages"`

	// Result of the last classification: greeting | inquiry | high_intent | other | ""
	Intent string `json:"intent"`

	// Passages from the last retrieval
	Retrieved []string `json:"retrieved"`

	// name | email | platform, empty = unknown
	LeadInfo     map[string]string `json:"lead_info"`
	LeadCaptured bool              `json:"lead_captured"`

	// basic | pro | "" (sticky once set)
	PlanChoice string `json:"plan_choice"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Lead is a captured prospect, handed to the capture sink once all required fields are known
type Lead struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Platform  string `json:"platform"`
	Plan      string `json:"plan"`
}

func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		Messages:  []llm.Message{},
		Retrieved: []string{},
		LeadInfo:  map[string]string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy; a turn mutates the copy so a failed turn leaves the original intact.
func (s *Session) Clone() *Session {
	c := *s
	c.Messages = append([]llm.Message(nil), s.Messages...)
	c.Retrieved = append([]string(nil), s.Retrieved...)
	c.LeadInfo = maps.Clone(s.LeadInfo)
	if c.LeadInfo == nil {
		c.LeadInfo = map[string]string{}
	}
	return &c
}

func (s *Session) AddUserMessage(text string) {
	s.Messages = append(s.Messages, llm.UserMessage(text))
	s.UpdatedAt = time.Now()
}

func (s *Session) AddAssistantMessage(text string) {
	s.Messages = append(s.Messages, llm.AssistantMessage(text))
	s.UpdatedAt = time.Now()
}

// LastUserText is the content of the latest message, "" for an empty history.
func (s *Session) LastUserText() string {
	if len(s.Messages) == 0 {
		return ""
	}
	return s.Messages[len(s.Messages)-1].Content
}

// LastReply returns the latest assistant message.
func (s *Session) LastReply() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == llm.RoleAssistant {
			return s.Messages[i].Content
		}
	}
	return ""
}

// HasRequiredFields reports whether every required lead field is known.
func (s *Session) HasRequiredFields() bool {
	for _, f := range constant.RequiredFields {
		if s.LeadInfo[f] == "" {
			return false
		}
	}
	return true
}

func (s *Session) Lead() Lead {
	return Lead{
		SessionID: s.ID,
		Name:      s.LeadInfo[constant.LeadFieldName],
		Email:     s.LeadInfo[constant.LeadFieldEmail],
		Platform:  s.LeadInfo[constant.LeadFieldPlatform],
		Plan:      s.PlanChoice,
	}
}
