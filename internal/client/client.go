// Package client plays a remote session hosted by `hit serve`.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/hit/internal/advisor"
	"github.com/lox/hit/internal/game"
	"github.com/lox/hit/internal/server" // Reuse message types
	"github.com/lox/hit/internal/shoe"
)

// ErrDisconnected is returned once the server has closed the session
var ErrDisconnected = errors.New("disconnected from server")

// RemoteError is a command the server rejected
type RemoteError struct {
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap maps wire codes back onto the game's sentinel errors so callers
// can use errors.Is the same way for local and remote games
func (e *RemoteError) Unwrap() error {
	switch e.Code {
	case server.CodeShoeExhausted:
		return shoe.ErrShoeExhausted
	case server.CodeInvalidTransition:
		return game.ErrInvalidTransition
	case server.CodeInsufficientFunds:
		return game.ErrInsufficientFunds
	case server.CodeAlreadySettled:
		return game.ErrAlreadySettled
	case server.CodeWageringDisabled:
		return game.ErrWageringDisabled
	default:
		return nil
	}
}

// Client is one WebSocket session. Commands are synchronous: each waits
// for the server's reply before returning. A command that fails in transit
// ends the session, since its reply could otherwise be taken as the answer
// to the next command.
type Client struct {
	conn    *websocket.Conn
	receive chan *server.Message
	logger  *log.Logger
	timeout time.Duration

	cmdMu sync.Mutex

	mu       sync.Mutex
	session  string
	snapshot game.Snapshot
	err      error

	closeOnce sync.Once
}

// Dial connects to a server and waits for the opening table
func Dial(ctx context.Context, serverURL string, logger *log.Logger) (*Client, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	// Convert http/https to ws/wss
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = "/ws"

	logger = logger.WithPrefix("client")
	logger.Info("Connecting to server", "url", u.String())

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	_ = resp.Body.Close()

	c := &Client{
		conn:    conn,
		receive: make(chan *server.Message, 16),
		logger:  logger,
		timeout: 10 * time.Second,
	}
	go c.readPump()

	msg, err := c.next(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.apply(msg); err != nil {
		_ = c.Close()
		return nil, err
	}

	logger.Info("Connected to server", "session", c.Session())
	return c, nil
}

// Session returns the identifier the server assigned
func (c *Client) Session() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Snapshot returns the last table the server sent
func (c *Client) Snapshot() game.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// NewDeal starts a round
func (c *Client) NewDeal() error {
	_, err := c.command(server.MessageTypeDeal)
	return err
}

// Hit draws a card for the player
func (c *Client) Hit() error {
	_, err := c.command(server.MessageTypeHit)
	return err
}

// Stand ends the player's turn
func (c *Client) Stand() error {
	_, err := c.command(server.MessageTypeStand)
	return err
}

// Settle credits the round and returns the credit
func (c *Client) Settle() (int, error) {
	state, err := c.command(server.MessageTypeSettle)
	if err != nil {
		return 0, err
	}
	if state.Credit == nil {
		return 0, errors.New("settle reply carried no credit")
	}
	return *state.Credit, nil
}

// Advice asks the server for the expected value of each action
func (c *Client) Advice() (advisor.Advice, error) {
	var advice advisor.Advice
	msg, err := c.roundTrip(server.MessageTypeAdvice)
	if err != nil {
		return advice, err
	}
	if msg.Type != server.MessageTypeAdviceReply {
		return advice, fmt.Errorf("unexpected reply %q", msg.Type)
	}
	if err := json.Unmarshal(msg.Data, &advice); err != nil {
		return advice, fmt.Errorf("decode advice: %w", err)
	}
	return advice, nil
}

// Close ends the session
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		_ = c.conn.SetWriteDeadline(time.Now().Add(time.Second))
		_ = c.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		err = c.conn.Close()
		c.logger.Info("Disconnected from server")
	})
	return err
}

func (c *Client) command(t server.MessageType) (server.StateData, error) {
	msg, err := c.roundTrip(t)
	if err != nil {
		return server.StateData{}, err
	}
	if msg.Type != server.MessageTypeState {
		return server.StateData{}, fmt.Errorf("unexpected reply %q", msg.Type)
	}
	var state server.StateData
	if err := json.Unmarshal(msg.Data, &state); err != nil {
		return state, fmt.Errorf("decode state: %w", err)
	}
	c.mu.Lock()
	c.snapshot = state.Snapshot
	c.mu.Unlock()
	return state, nil
}

// roundTrip sends one command and returns the reply, turning error replies
// into a *RemoteError
func (c *Client) roundTrip(t server.MessageType) (*server.Message, error) {
	c.cmdMu.Lock()
	defer c.cmdMu.Unlock()

	if err := c.broken(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	msg, err := server.NewMessage(t, nil)
	if err != nil {
		return nil, err
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
	if err := c.conn.WriteJSON(msg); err != nil {
		return nil, c.fail(fmt.Errorf("send %s: %w", t, err))
	}

	reply, err := c.next(ctx)
	if err != nil {
		return nil, c.fail(fmt.Errorf("waiting for %s reply: %w", t, err))
	}
	if reply.Type == server.MessageTypeError {
		var data server.ErrorData
		if err := json.Unmarshal(reply.Data, &data); err != nil {
			return nil, fmt.Errorf("decode error: %w", err)
		}
		c.logger.Debug("Command rejected", "type", t, "code", data.Code)
		return nil, &RemoteError{Code: data.Code, Message: data.Message}
	}
	return reply, nil
}

// fail records the first transport error and closes the session. The
// returned error matches both ErrDisconnected and the cause.
func (c *Client) fail(cause error) error {
	err := fmt.Errorf("%w: %w", ErrDisconnected, cause)
	c.mu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.mu.Unlock()
	c.logger.Warn("Session lost", "error", err)
	_ = c.Close()
	return err
}

// broken reports whether an earlier command ended the session
func (c *Client) broken() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Client) next(ctx context.Context) (*server.Message, error) {
	select {
	case msg, ok := <-c.receive:
		if !ok {
			return nil, errors.New("connection closed")
		}
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// apply records the session and table from a state message
func (c *Client) apply(msg *server.Message) error {
	if msg.Type != server.MessageTypeState {
		return fmt.Errorf("unexpected greeting %q", msg.Type)
	}
	var state server.StateData
	if err := json.Unmarshal(msg.Data, &state); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	c.mu.Lock()
	c.session = state.Session
	c.snapshot = state.Snapshot
	c.mu.Unlock()
	return nil
}

// readPump keeps reading so pings are answered while the player thinks
func (c *Client) readPump() {
	defer close(c.receive)
	for {
		var msg server.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("WebSocket error", "error", err)
			}
			return
		}
		c.logger.Debug("Received message", "type", msg.Type)
		c.receive <- &msg
	}
}
