package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"golang.org/x/sync/errgroup"

	"ai-style-review-be/internal/dto"
	"ai-style-review-be/internal/pkg/logger"
	"ai-style-review-be/internal/pkg/serverutils"
	"ai-style-review-be/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024
	sendBuffer     = 256
)

// Session is one live analysis socket. Each analyze frame starts a round:
// the analysis result, then one frame per resolved suggestion, then done.
type Session struct {
	Subject string

	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	analysis    service.IAnalysisService
	suggestions service.ISuggestionService
	logger      logger.ILogger
	concurrency int

	mu     sync.Mutex
	closed bool
	cancel context.CancelFunc
	rounds sync.WaitGroup
}

func newSession(hub *Hub, conn *websocket.Conn, subject string, h *Handler) *Session {
	return &Session{
		Subject:     subject,
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, sendBuffer),
		analysis:    h.analysis,
		suggestions: h.suggestions,
		logger:      h.logger,
		concurrency: h.concurrency,
	}
}

// readPump reads client frames until the connection fails. Running rounds
// are cancelled on exit.
func (s *Session) readPump(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	defer func() {
		cancel()
		s.rounds.Wait()
		s.hub.Unregister(s)
		s.conn.Close()
	}()
	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("LIVE", "Unexpected close", map[string]interface{}{"subject": s.Subject, "error": err.Error()})
			}
			return
		}
		s.handle(ctx, data)
	}
}

// writePump drains send to the connection and keeps it alive with pings.
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Session) handle(ctx context.Context, data []byte) {
	var req dto.LiveRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.enqueue(dto.LiveMessage{Type: dto.LiveError, Message: "Invalid frame"})
		return
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		msg := err.Error()
		var appErr *serverutils.AppError
		if errors.As(err, &appErr) {
			msg = appErr.Message
		}
		s.enqueue(dto.LiveMessage{Type: dto.LiveError, RequestId: req.RequestId, Message: msg})
		return
	}

	switch req.Type {
	case dto.LiveCancel:
		s.supersede(nil)
	case dto.LiveAnalyze:
		roundCtx, cancel := context.WithCancel(ctx)
		s.supersede(cancel)
		s.rounds.Add(1)
		go func() {
			defer s.rounds.Done()
			defer cancel()
			s.runRound(roundCtx, req)
		}()
	}
}

// supersede cancels the running round, if any, and installs next.
func (s *Session) supersede(next context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = next
}

func (s *Session) runRound(ctx context.Context, req dto.LiveRequest) {
	resp, err := s.analysis.Analyze(ctx, &dto.AnalyzeRequest{Blocks: req.Blocks})
	if err != nil {
		s.emit(ctx, dto.LiveMessage{Type: dto.LiveError, RequestId: req.RequestId, Message: err.Error()})
		return
	}
	s.emit(ctx, dto.LiveMessage{Type: dto.LiveAnalysis, RequestId: req.RequestId, Data: resp})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, issue := range resp.Issues {
		g.Go(func() error {
			res := s.suggestions.Suggest(gctx, &dto.SuggestionRequest{
				Sentence: dto.SentenceRequestOf(resp.Sentences[issue.SentenceIndex]),
				Issue:    dto.IssueRequestOf(issue),
			})
			if err := gctx.Err(); err != nil {
				return err
			}
			s.emit(gctx, dto.LiveMessage{Type: dto.LiveSuggestion, RequestId: req.RequestId, Data: res})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return
	}
	s.emit(ctx, dto.LiveMessage{Type: dto.LiveDone, RequestId: req.RequestId})
}

func (s *Session) enqueue(msg dto.LiveMessage) {
	s.emit(context.Background(), msg)
}

// emit drops the frame when the session is closed or ctx, the round that
// produced it, has been superseded. supersede cancels under s.mu, so a
// superseded round cannot slip a frame in after it. A full buffer means the
// client stopped reading, so the session is dropped.
func (s *Session) emit(ctx context.Context, msg dto.LiveMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("LIVE", "Failed to encode frame", map[string]interface{}{"type": msg.Type, "error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || ctx.Err() != nil {
		return
	}
	select {
	case s.send <- data:
	default:
		s.logger.Warn("LIVE", "Send buffer full, dropping session", map[string]interface{}{"subject": s.Subject})
		go s.hub.Unregister(s)
	}
}

func (s *Session) closeSend() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	close(s.send)
}
