package websocket

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"ai-style-review-be/internal/pkg/logger"
	"ai-style-review-be/internal/service"
)

const defaultConcurrency = 4

// Handler upgrades requests to live analysis sessions.
type Handler struct {
	hub         *Hub
	analysis    service.IAnalysisService
	suggestions service.ISuggestionService
	logger      logger.ILogger
	concurrency int
	ctx         context.Context
}

// NewHandler binds sessions to ctx; ending it cancels their rounds.
func NewHandler(ctx context.Context, hub *Hub, analysis service.IAnalysisService, suggestions service.ISuggestionService, log logger.ILogger) *Handler {
	return &Handler{
		hub:         hub,
		analysis:    analysis,
		suggestions: suggestions,
		logger:      log,
		concurrency: defaultConcurrency,
		ctx:         ctx,
	}
}

func (h *Handler) RegisterRoutes(r fiber.Router, middleware ...fiber.Handler) {
	handlers := append(append([]fiber.Handler{}, middleware...), h.requireUpgrade, websocket.New(h.serve))
	r.Get("/live/v1/analysis", handlers...)
}

func (h *Handler) requireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// serve runs the write pump in its own goroutine and the read pump in the
// handler goroutine, which must not return while the socket is in use.
func (h *Handler) serve(conn *websocket.Conn) {
	subject, _ := conn.Locals("subject").(string)
	s := newSession(h.hub, conn, subject, h)
	if !h.hub.Register(s) {
		conn.Close()
		return
	}
	h.logger.Info("LIVE", "Starting live session", map[string]interface{}{"subject": subject})
	go s.writePump()
	s.readPump(h.ctx)
	h.logger.Info("LIVE", "Live session ended", map[string]interface{}{"subject": subject})
}
