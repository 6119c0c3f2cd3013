package messages

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cbodonnell/woodblock/pkg/game/types"
)

const (
	// MessageBufferSize represents the maximum size of a message
	MessageBufferSize = 4096
)

type MessageType byte

// Message types
const (
	MessageTypeClientPing MessageType = iota + 1
	MessageTypeServerPong
	MessageTypeClientPlace
	MessageTypeClientRestart
	MessageTypeClientSnapshot
	MessageTypeServerSnapshot
	MessageTypeServerError
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeClientPing:
		return "ping"
	case MessageTypeServerPong:
		return "pong"
	case MessageTypeClientPlace:
		return "place"
	case MessageTypeClientRestart:
		return "restart"
	case MessageTypeClientSnapshot:
		return "snapshot"
	case MessageTypeServerSnapshot:
		return "server_snapshot"
	case MessageTypeServerError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", byte(t))
	}
}

// Message represents a generic message for serialization/deserialization
type Message struct {
	SessionID string
	Type      MessageType
	Payload   []byte
}

// PlaceRequest is the JSON payload of a place message.
type PlaceRequest struct {
	Piece int `json:"piece"`
	X     int `json:"x"`
	Y     int `json:"y"`
}

func NewPlaceMessage(sessionID string, req PlaceRequest) (*Message, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal place request: %v", err)
	}
	return &Message{
		SessionID: sessionID,
		Type:      MessageTypeClientPlace,
		Payload:   payload,
	}, nil
}

func ParsePlaceRequest(m *Message) (PlaceRequest, error) {
	var req PlaceRequest
	if err := json.Unmarshal(m.Payload, &req); err != nil {
		return PlaceRequest{}, fmt.Errorf("failed to unmarshal place request: %v", err)
	}
	return req, nil
}

// Error kinds carried by error messages.
const (
	ErrorKindInvalidState     = "invalid_state"
	ErrorKindInvalidPiece     = "invalid_piece"
	ErrorKindIllegalPlacement = "illegal_placement"
	ErrorKindOther            = "other"
)

// ErrorPayload is the JSON payload of an error message.
type ErrorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"msg"`
}

// ErrorKind classifies err by the session error it wraps.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, types.ErrInvalidState):
		return ErrorKindInvalidState
	case errors.Is(err, types.ErrInvalidPiece):
		return ErrorKindInvalidPiece
	case errors.Is(err, types.ErrIllegalPlacement):
		return ErrorKindIllegalPlacement
	default:
		return ErrorKindOther
	}
}

// Err returns the session error matching the payload's kind, or nil for
// ErrorKindOther and unknown kinds.
func (p ErrorPayload) Err() error {
	switch p.Kind {
	case ErrorKindInvalidState:
		return types.ErrInvalidState
	case ErrorKindInvalidPiece:
		return types.ErrInvalidPiece
	case ErrorKindIllegalPlacement:
		return types.ErrIllegalPlacement
	default:
		return nil
	}
}

// ParseErrorPayload reads the payload of an error message. A payload that
// is not JSON is taken as a plain message of kind ErrorKindOther.
func ParseErrorPayload(m *Message) ErrorPayload {
	var p ErrorPayload
	if err := json.Unmarshal(m.Payload, &p); err != nil || p.Kind == "" {
		return ErrorPayload{Kind: ErrorKindOther, Message: string(m.Payload)}
	}
	return p
}

// SnapshotUpdate is sent by the server after every client message that
// reads or changes a session.
type SnapshotUpdate struct {
	Snapshot       types.Snapshot
	ClearedRows    []int
	ClearedColumns []int
	Refilled       bool
}

// NewSnapshotUpdate builds the update for a completed move.
func NewSnapshotUpdate(result types.MoveResult) *SnapshotUpdate {
	return &SnapshotUpdate{
		Snapshot:       result.Snapshot,
		ClearedRows:    result.ClearedRows,
		ClearedColumns: result.ClearedColumns,
		Refilled:       result.Refilled,
	}
}
