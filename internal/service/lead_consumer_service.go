package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"autostream-assistant/internal/dto"
	"autostream-assistant/internal/entity"
	"autostream-assistant/internal/pkg/logger"
	"autostream-assistant/internal/pkg/mailer"
	"autostream-assistant/internal/repository/specification"
	"autostream-assistant/internal/repository/unitofwork"
	"autostream-assistant/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

const sinkTimeout = 30 * time.Second

type ILeadConsumerService interface {
	// Consume subscribes and processes messages in the background until ctx is done
	// or the subscriber is closed.
	Consume(ctx context.Context) error
	// Wait blocks until the background loop has exited.
	Wait()
}

type leadConsumerService struct {
	subscriber     message.Subscriber
	topicName      string
	uowFactory     unitofwork.RepositoryFactory // nil = no database
	eventPublisher events.Publisher             // nil = no NATS
	emailService   mailer.IEmailService         // nil = no SMTP
	logger         logger.ILogger
	wg             sync.WaitGroup
}

func NewLeadConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher events.Publisher,
	emailService mailer.IEmailService,
	log logger.ILogger,
) ILeadConsumerService {
	return &leadConsumerService{
		subscriber:     subscriber,
		topicName:      topicName,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		emailService:   emailService,
		logger:         log,
	}
}

func (cs *leadConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	cs.wg.Add(1)
	go func() {
		defer cs.wg.Done()
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *leadConsumerService) Wait() {
	cs.wg.Wait()
}

// processMessage always acks: every sink is best-effort and a redelivery would
// duplicate the sinks that already succeeded.
func (cs *leadConsumerService) processMessage(msg *message.Message) {
	defer msg.Ack()

	// Detached from the request that captured the lead, which has usually finished by now.
	ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
	defer cancel()

	var payload dto.LeadCapturedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("LeadConsumer", "Failed to unmarshal lead message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	cs.persist(ctx, payload)
	cs.forward(ctx, payload)
	cs.sendOnboarding(payload)
}

func (cs *leadConsumerService) persist(ctx context.Context, payload dto.LeadCapturedMessage) {
	if cs.uowFactory == nil {
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.LeadRepository().FindOne(ctx, specification.LeadBySession{SessionId: payload.SessionId})
	if err != nil {
		cs.logger.Error("LeadConsumer", "Failed to look up lead", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
		return
	}
	if existing != nil {
		cs.logger.Debug("LeadConsumer", "Lead already persisted", map[string]interface{}{"session_id": payload.SessionId})
		return
	}

	lead := &entity.Lead{
		SessionId:  payload.SessionId,
		Name:       payload.Name,
		Email:      payload.Email,
		Platform:   payload.Platform,
		Plan:       payload.Plan,
		Metadata:   map[string]interface{}{"source": "assistant"},
		CapturedAt: payload.CapturedAt,
	}
	if err := uow.LeadRepository().Create(ctx, lead); err != nil {
		cs.logger.Error("LeadConsumer", "Failed to persist lead", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
		return
	}

	cs.logger.Info("LeadConsumer", "Lead persisted", map[string]interface{}{"lead_id": lead.Id.String()})
}

func (cs *leadConsumerService) forward(ctx context.Context, payload dto.LeadCapturedMessage) {
	if cs.eventPublisher == nil {
		return
	}

	occurredAt := payload.CapturedAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	evt := events.BaseEvent{
		Type: events.LeadCaptured,
		Data: map[string]interface{}{
			"session_id": payload.SessionId,
			"name":       payload.Name,
			"email":      payload.Email,
			"platform":   payload.Platform,
			"plan":       payload.Plan,
		},
		OccurredAt: occurredAt,
	}
	if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
		cs.logger.Warn("LeadConsumer", "Failed to publish LEAD_CAPTURED event", map[string]interface{}{
			"session_id": payload.SessionId,
			"error":      err.Error(),
		})
	}
}

func (cs *leadConsumerService) sendOnboarding(payload dto.LeadCapturedMessage) {
	if cs.emailService == nil {
		return
	}
	// The mailer logs its own failures.
	_ = cs.emailService.SendOnboarding(payload.Email, payload.Name, payload.Plan)
}
