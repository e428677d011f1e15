package websocket

import (
	"context"
	"sync"

	"ai-style-review-be/internal/pkg/logger"
	"ai-style-review-be/pkg/metrics"
)

// Hub tracks open live sessions and closes them on shutdown.
type Hub struct {
	sessions map[*Session]struct{}

	register   chan *Session
	unregister chan *Session
	done       chan struct{}

	mu sync.RWMutex

	metrics *metrics.Metrics
	logger  logger.ILogger
}

func NewHub(m *metrics.Metrics, log logger.ILogger) *Hub {
	return &Hub{
		sessions:   make(map[*Session]struct{}),
		register:   make(chan *Session),
		unregister: make(chan *Session),
		done:       make(chan struct{}),
		metrics:    m,
		logger:     log,
	}
}

// Run serves registrations until ctx ends, then closes every session.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case s := <-h.register:
			h.mu.Lock()
			h.sessions[s] = struct{}{}
			n := len(h.sessions)
			h.mu.Unlock()
			h.metrics.LiveSessions(n)
			h.logger.Debug("Hub", "Session registered", map[string]interface{}{"subject": s.Subject, "sessions": n})

		case s := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.sessions[s]; ok {
				delete(h.sessions, s)
				s.closeSend()
			}
			n := len(h.sessions)
			h.mu.Unlock()
			h.metrics.LiveSessions(n)
			h.logger.Debug("Hub", "Session unregistered", map[string]interface{}{"subject": s.Subject, "sessions": n})

		case <-ctx.Done():
			h.mu.Lock()
			for s := range h.sessions {
				delete(h.sessions, s)
				s.closeSend()
			}
			h.mu.Unlock()
			h.metrics.LiveSessions(0)
			h.logger.Info("Hub", "Closed all live sessions", nil)
			return
		}
	}
}

// Register reports false once the hub has stopped.
func (h *Hub) Register(s *Session) bool {
	select {
	case h.register <- s:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(s *Session) {
	select {
	case h.unregister <- s:
	case <-h.done:
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}
