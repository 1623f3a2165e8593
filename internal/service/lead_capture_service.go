package service

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"autostream-assistant/internal/dto"
	"autostream-assistant/internal/pkg/logger"
	"autostream-assistant/pkg/rag/executor"
	"autostream-assistant/pkg/store"
)

// LeadCaptureService is the lead-capture side effect of the conversation: it prints the
// confirmation line and hands the lead to the background pipeline.
type LeadCaptureService struct {
	printer   *executor.PrintCapturer
	publisher IPublisherService // nil = print only
	logger    logger.ILogger
	now       func() time.Time
}

var _ executor.LeadCapturer = (*LeadCaptureService)(nil)

func NewLeadCaptureService(out io.Writer, publisher IPublisherService, log logger.ILogger) *LeadCaptureService {
	if out == nil {
		out = io.Discard
	}
	return &LeadCaptureService{
		printer:   executor.NewPrintCapturer(out),
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

func (s *LeadCaptureService) Capture(ctx context.Context, lead store.Lead) string {
	msg := s.printer.Capture(ctx, lead)

	s.logger.Info("LeadCapture", "Lead captured", map[string]interface{}{
		"session_id": lead.SessionID,
		"email":      lead.Email,
		"platform":   lead.Platform,
		"plan":       lead.Plan,
	})

	if s.publisher == nil {
		return msg
	}

	payload, err := json.Marshal(dto.LeadCapturedMessage{
		SessionId:  lead.SessionID,
		Name:       lead.Name,
		Email:      lead.Email,
		Platform:   lead.Platform,
		Plan:       lead.Plan,
		CapturedAt: s.now(),
	})
	if err != nil {
		s.logger.Error("LeadCapture", "Failed to marshal lead message", map[string]interface{}{"error": err.Error()})
		return msg
	}

	// Downstream delivery is best-effort; the conversation never sees its failures.
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Warn("LeadCapture", "Failed to publish lead", map[string]interface{}{
			"session_id": lead.SessionID,
			"error":      err.Error(),
		})
	}

	return msg
}
