package network

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/cbodonnell/woodblock/pkg/log"
	"github.com/cbodonnell/woodblock/pkg/messages"
	servernetwork "github.com/cbodonnell/woodblock/pkg/network"
	"nhooyr.io/websocket"
)

// ErrServer is matched by every error the server reports.
var ErrServer = errors.New("server error")

// ServerError is an error message sent by the server. Besides ErrServer it
// matches the session error named by Kind, so errors.Is(err,
// game.ErrInvalidPiece) holds for a consumed piece.
type ServerError struct {
	Kind    string
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%v: %s", ErrServer, e.Message)
}

func (e *ServerError) Unwrap() []error {
	errs := []error{ErrServer}
	if kindErr := (messages.ErrorPayload{Kind: e.Kind}).Err(); kindErr != nil {
		errs = append(errs, kindErr)
	}
	return errs
}

// WSClient is a request/reply client for the WebSocket game server.
// Calls are serialized, so one WSClient can be shared between goroutines.
type WSClient struct {
	lock      sync.Mutex
	conn      *websocket.Conn
	sessionID string
	// Initial is the snapshot the server sent on connect.
	Initial *messages.SnapshotUpdate
}

// Connect dials serverAddr (ws:// or wss://). An empty sessionID asks the
// server for a new session.
func Connect(ctx context.Context, serverAddr string, sessionID string) (*WSClient, error) {
	u, err := url.Parse(serverAddr)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %v", err)
	}
	if sessionID != "" {
		q := u.Query()
		q.Set("session", sessionID)
		u.RawQuery = q.Encode()
	}

	log.Debug("Connecting to WebSocket server at %s", u.String())
	conn, _, err := websocket.Dial(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %v", err)
	}

	c := &WSClient{conn: conn}
	msg, err := servernetwork.ReadMessageFromWS(ctx, conn)
	if err != nil {
		conn.Close(websocket.StatusInternalError, "")
		return nil, fmt.Errorf("failed to read initial snapshot: %v", err)
	}
	update, err := c.decode(msg)
	if err != nil {
		conn.Close(websocket.StatusInternalError, "")
		return nil, err
	}
	c.sessionID = msg.SessionID
	c.Initial = update
	return c, nil
}

// SessionID returns the id of the session the connection is attached to.
func (c *WSClient) SessionID() string {
	return c.sessionID
}

func (c *WSClient) Place(ctx context.Context, piece, x, y int) (*messages.SnapshotUpdate, error) {
	msg, err := messages.NewPlaceMessage(c.sessionID, messages.PlaceRequest{Piece: piece, X: x, Y: y})
	if err != nil {
		return nil, err
	}
	return c.request(ctx, msg)
}

func (c *WSClient) Restart(ctx context.Context) (*messages.SnapshotUpdate, error) {
	return c.request(ctx, &messages.Message{SessionID: c.sessionID, Type: messages.MessageTypeClientRestart})
}

func (c *WSClient) Snapshot(ctx context.Context) (*messages.SnapshotUpdate, error) {
	return c.request(ctx, &messages.Message{SessionID: c.sessionID, Type: messages.MessageTypeClientSnapshot})
}

// Ping round-trips a ping message.
func (c *WSClient) Ping(ctx context.Context) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if err := servernetwork.WriteMessageToWS(ctx, c.conn, &messages.Message{SessionID: c.sessionID, Type: messages.MessageTypeClientPing}); err != nil {
		return err
	}
	msg, err := servernetwork.ReadMessageFromWS(ctx, c.conn)
	if err != nil {
		return err
	}
	if msg.Type != messages.MessageTypeServerPong {
		return fmt.Errorf("unexpected reply of type %s to ping", msg.Type)
	}
	return nil
}

func (c *WSClient) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "")
}

func (c *WSClient) request(ctx context.Context, msg *messages.Message) (*messages.SnapshotUpdate, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if err := servernetwork.WriteMessageToWS(ctx, c.conn, msg); err != nil {
		return nil, err
	}
	reply, err := servernetwork.ReadMessageFromWS(ctx, c.conn)
	if err != nil {
		return nil, err
	}
	return c.decode(reply)
}

func (c *WSClient) decode(msg *messages.Message) (*messages.SnapshotUpdate, error) {
	switch msg.Type {
	case messages.MessageTypeServerSnapshot:
		update, err := messages.DeserializeSnapshotUpdate(msg.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decode snapshot: %v", err)
		}
		return update, nil
	case messages.MessageTypeServerError:
		p := messages.ParseErrorPayload(msg)
		return nil, &ServerError{Kind: p.Kind, Message: p.Message}
	default:
		return nil, fmt.Errorf("unexpected message type %s", msg.Type)
	}
}
