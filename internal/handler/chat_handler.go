package handler

import (
	"context"
	"strings"

	"autostream-assistant/internal/dto"
	"autostream-assistant/internal/pkg/logger"
	"autostream-assistant/internal/pkg/serverutils"
	"autostream-assistant/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ChatFrame is written back for every text frame received.
type ChatFrame struct {
	Data  *dto.ChatResponse `json:"data,omitempty"`
	Error string            `json:"error,omitempty"`
}

// frameConn is the part of *websocket.Conn the chat loop uses.
type frameConn interface {
	ReadMessage() (int, []byte, error)
	WriteJSON(v interface{}) error
}

type ChatHandler struct {
	service service.IAssistantService
	logger  logger.ILogger

	// cancelled by Close; parent of every turn context
	ctx    context.Context
	cancel context.CancelFunc
}

func NewChatHandler(service service.IAssistantService, log logger.ILogger) *ChatHandler {
	ctx, cancel := context.WithCancel(context.Background())
	return &ChatHandler{
		service: service,
		logger:  log,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Close aborts turns still running on open sockets.
func (h *ChatHandler) Close() {
	h.cancel()
}

func (h *ChatHandler) RegisterRoutes(r fiber.Router, middleware ...fiber.Handler) {
	handlers := append(middleware, h.ServeWs)
	r.Get("/ws/chat", handlers...)
}

// ServeWs upgrades the connection; every text frame is one turn of the session named by
// the session_id query parameter (a new one when absent).
func (h *ChatHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	sessionId := c.Query("session_id")
	if sessionId == "" {
		sessionId = uuid.NewString()
	} else if _, err := uuid.Parse(sessionId); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "session_id must be a valid UUID"))
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("ChatHandler", "WebSocket session started", map[string]interface{}{"session_id": sessionId})
		h.serve(conn, sessionId)
		h.logger.Info("ChatHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionId})
	})(c)
}

// serve runs turns until the socket closes or the handler is closed. Reading happens
// on its own goroutine so a closed socket cancels the turn in flight.
func (h *ChatHandler) serve(conn frameConn, sessionId string) {
	ctx, cancel := context.WithCancel(h.ctx)
	defer cancel()

	texts := make(chan string)
	go func() {
		defer cancel()
		defer close(texts)
		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if mt != websocket.TextMessage {
				continue
			}
			text := strings.TrimSpace(string(data))
			if text == "" {
				continue
			}
			select {
			case texts <- text:
			case <-ctx.Done():
				return
			}
		}
	}()

	for text := range texts {
		frame := h.turn(ctx, sessionId, text)
		if ctx.Err() != nil {
			return
		}
		if err := conn.WriteJSON(frame); err != nil {
			h.logger.Warn("ChatHandler", "Failed to write frame", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
			return
		}
	}
}

func (h *ChatHandler) turn(ctx context.Context, sessionId, text string) ChatFrame {
	req := &dto.ChatRequest{SessionId: sessionId, Message: text}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ChatFrame{Error: err.Error()}
	}

	res, err := h.service.Chat(ctx, req)
	if err != nil {
		return ChatFrame{Error: err.Error()}
	}
	return ChatFrame{Data: res}
}
