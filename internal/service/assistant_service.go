package service

import (
	"context"
	"errors"

	"autostream-assistant/internal/dto"
	"autostream-assistant/internal/pkg/logger"
	"autostream-assistant/internal/repository/contract"
	"autostream-assistant/pkg/store"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = store.ErrSessionNotFound

// Conversation runs one assistant turn; implemented by executor.Graph.
type Conversation interface {
	Turn(ctx context.Context, session *store.Session, text string) (*store.Session, error)
}

type IAssistantService interface {
	Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
	GetSession(ctx context.Context, sessionId string) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, sessionId string) error
}

type assistantService struct {
	conversation Conversation
	sessionRepo  contract.SessionRepository
	locks        *sessionLocks
	logger       logger.ILogger
}

func NewAssistantService(conversation Conversation, sessionRepo contract.SessionRepository, log logger.ILogger) IAssistantService {
	return &assistantService{
		conversation: conversation,
		sessionRepo:  sessionRepo,
		locks:        newSessionLocks(),
		logger:       log,
	}
}

// Chat runs one turn. An empty session id starts a new conversation; an unknown one
// starts a conversation under that id. A failed turn leaves the stored session as it was.
func (s *assistantService) Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	sessionId := request.SessionId
	if sessionId == "" {
		sessionId = uuid.NewString()
	}

	unlock := s.locks.Lock(sessionId)
	defer unlock()

	session, err := s.sessionRepo.Get(ctx, sessionId)
	if errors.Is(err, store.ErrSessionNotFound) {
		session = store.NewSession(sessionId)
		s.logger.Info("AssistantService", "Session started", map[string]interface{}{"session_id": sessionId})
	} else if err != nil {
		return nil, err
	}

	next, err := s.conversation.Turn(ctx, session, request.Message)
	if err != nil {
		s.logger.Error("AssistantService", "Turn failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return nil, err
	}

	if err := s.sessionRepo.Save(ctx, next); err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		SessionId:    next.ID,
		Intent:       next.Intent,
		Reply:        next.LastReply(),
		PlanChoice:   next.PlanChoice,
		LeadCaptured: next.LeadCaptured,
		Retrieved:    next.Retrieved,
	}, nil
}

func (s *assistantService) GetSession(ctx context.Context, sessionId string) (*dto.SessionResponse, error) {
	session, err := s.sessionRepo.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	messages := make([]dto.SessionMessageDTO, 0, len(session.Messages))
	for _, m := range session.Messages {
		messages = append(messages, dto.SessionMessageDTO{Role: m.Role, Content: m.Content})
	}

	return &dto.SessionResponse{
		SessionId:    session.ID,
		Intent:       session.Intent,
		PlanChoice:   session.PlanChoice,
		LeadInfo:     session.LeadInfo,
		LeadCaptured: session.LeadCaptured,
		Messages:     messages,
		CreatedAt:    session.CreatedAt,
		UpdatedAt:    session.UpdatedAt,
	}, nil
}

func (s *assistantService) DeleteSession(ctx context.Context, sessionId string) error {
	unlock := s.locks.Lock(sessionId)
	defer unlock()

	if _, err := s.sessionRepo.Get(ctx, sessionId); err != nil {
		return err
	}
	return s.sessionRepo.Delete(ctx, sessionId)
}
