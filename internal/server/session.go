package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/hit/internal/advisor"
	"github.com/lox/hit/internal/game"
	"github.com/lox/hit/internal/shoe"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

// ErrSessionClosed is returned when sending on a closed session
var ErrSessionClosed = errors.New("session closed")

// Session is one WebSocket client playing its own game. Commands are
// applied one at a time under mu.
type Session struct {
	id     string
	conn   *websocket.Conn
	logger *log.Logger

	mu   sync.Mutex
	game *game.Game

	clock       quartz.Clock
	idleTimeout time.Duration
	idle        *quartz.Timer

	send     chan *Message
	sendMu   sync.Mutex
	closed   bool
	ctx      context.Context
	cancel   context.CancelFunc
	shutdown sync.Once
}

func newSession(id string, conn *websocket.Conn, g *game.Game, clock quartz.Clock, idleTimeout time.Duration, logger *log.Logger) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		id:          id,
		conn:        conn,
		game:        g,
		clock:       clock,
		idleTimeout: idleTimeout,
		send:        make(chan *Message, 64),
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger.With("session", id),
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Rounds returns how many rounds the session has dealt
func (s *Session) Rounds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Round()
}

// Done is closed once the connection has been torn down
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

// start arms the idle timer, launches the pumps and greets the client
// with the initial table
func (s *Session) start() {
	s.idle = s.clock.AfterFunc(s.idleTimeout, func() {
		s.logger.Info("Closing idle session", "timeout", s.idleTimeout)
		s.Close()
	}, "session", "idle")

	go s.writePump()
	go s.readPump()

	s.mu.Lock()
	s.sendState(nil)
	s.mu.Unlock()
}

// Close flushes queued messages and closes the connection
func (s *Session) Close() {
	s.shutdown.Do(func() {
		s.sendMu.Lock()
		s.closed = true
		close(s.send)
		s.sendMu.Unlock()
		if s.idle != nil {
			s.idle.Stop()
		}
	})
}

func (s *Session) sendMessage(msg *Message) error {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}

	select {
	case s.send <- msg:
		return nil
	default:
		s.logger.Warn("Session send buffer full, dropping message", "type", msg.Type)
		return ErrSessionClosed
	}
}

func (s *Session) readPump() {
	defer s.Close()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := s.conn.ReadJSON(&msg); err != nil {
			var (
				syntaxErr *json.SyntaxError
				typeErr   *json.UnmarshalTypeError
			)
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				s.sendError(CodeInvalidMessage, "Failed to parse message")
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("WebSocket error", "error", err)
			}
			return
		}
		s.handleMessage(&msg)
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
		s.cancel()
	}()

	for {
		select {
		case message, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := s.conn.WriteJSON(message); err != nil {
				s.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage applies one client command
func (s *Session) handleMessage(msg *Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.idle.Reset(s.idleTimeout, "session", "idle")
	s.logger.Debug("Received message", "type", msg.Type)

	var (
		err    error
		credit *int
	)
	switch msg.Type {
	case MessageTypeDeal:
		err = s.game.NewDeal()
	case MessageTypeHit:
		err = s.game.Hit()
	case MessageTypeStand:
		err = s.game.Stand()
	case MessageTypeSettle:
		var c int
		if c, err = s.game.Settle(); err == nil {
			credit = &c
		}
	case MessageTypeAdvice:
		s.handleAdvice()
		return
	default:
		s.sendError(CodeUnknownMessageType, "Unknown message type: "+msg.Type.String())
		return
	}

	if err != nil {
		s.logger.Debug("Command rejected", "type", msg.Type, "error", err)
		s.sendError(errorCode(err), err.Error())
		if errors.Is(err, shoe.ErrShoeExhausted) {
			s.logger.Info("Shoe exhausted, ending session", "rounds", s.game.Round())
			s.Close()
		}
		return
	}
	s.sendState(credit)
}

func (s *Session) handleAdvice() {
	if s.game.State() != game.Playing {
		s.sendError(CodeInvalidTransition, "advice is only available while a round is being played")
		return
	}
	advice := advisor.Recommend(s.game.Player(), s.game.Dealer(), s.game.BonusRule())
	s.reply(MessageTypeAdviceReply, advice)
}

// sendState sends the table; callers hold mu
func (s *Session) sendState(credit *int) {
	s.reply(MessageTypeState, StateData{
		Session:  s.id,
		Snapshot: s.game.Snapshot(),
		Credit:   credit,
	})
}

func (s *Session) sendError(code, message string) {
	s.reply(MessageTypeError, ErrorData{Code: code, Message: message})
}

func (s *Session) reply(t MessageType, data any) {
	msg, err := NewMessage(t, data)
	if err != nil {
		s.logger.Error("Failed to encode message", "type", t, "error", err)
		return
	}
	if err := s.sendMessage(msg); err != nil {
		s.logger.Debug("Dropped message", "type", t, "error", err)
	}
}
