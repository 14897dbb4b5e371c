package server

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/lox/hit/internal/game"
	"github.com/lox/hit/internal/shoe"
)

// MessageType identifies a WebSocket message
type MessageType string

// Client → Server
const (
	MessageTypeDeal   MessageType = "deal"
	MessageTypeHit    MessageType = "hit"
	MessageTypeStand  MessageType = "stand"
	MessageTypeSettle MessageType = "settle"
	MessageTypeAdvice MessageType = "advice"
)

// Server → Client
const (
	MessageTypeState       MessageType = "state"
	MessageTypeAdviceReply MessageType = "advice"
	MessageTypeError       MessageType = "error"
)

func (t MessageType) String() string {
	return string(t)
}

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	return &Message{
		Type:      messageType,
		Data:      raw,
		Timestamp: time.Now(),
	}, nil
}

// StateData is sent after every successful command
type StateData struct {
	Session  string        `json:"session"`
	Snapshot game.Snapshot `json:"snapshot"`
	Credit   *int          `json:"credit,omitempty"`
}

// ErrorData reports a rejected command
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes sent to clients
const (
	CodeInvalidMessage     = "invalid_message"
	CodeUnknownMessageType = "unknown_message_type"
	CodeInvalidTransition  = "invalid_transition"
	CodeInsufficientFunds  = "insufficient_funds"
	CodeAlreadySettled     = "already_settled"
	CodeWageringDisabled   = "wagering_disabled"
	CodeShoeExhausted      = "shoe_exhausted"
	CodeInternal           = "internal_error"
)

// errorCode maps a game error onto its wire code
func errorCode(err error) string {
	switch {
	case errors.Is(err, shoe.ErrShoeExhausted):
		return CodeShoeExhausted
	case errors.Is(err, game.ErrInvalidTransition):
		return CodeInvalidTransition
	case errors.Is(err, game.ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, game.ErrAlreadySettled):
		return CodeAlreadySettled
	case errors.Is(err, game.ErrWageringDisabled):
		return CodeWageringDisabled
	default:
		return CodeInternal
	}
}
