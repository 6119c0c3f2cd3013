package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/woodblock/pkg/game"
	"github.com/cbodonnell/woodblock/pkg/log"
	"github.com/cbodonnell/woodblock/pkg/messages"
	"github.com/cbodonnell/woodblock/pkg/state"
	"github.com/google/uuid"
	"nhooyr.io/websocket"
)

// ErrMalformedMessage is returned by ReadMessageFromWS when a frame cannot be decoded.
var ErrMalformedMessage = errors.New("malformed message")

// WSServer represents a WebSocket server.
// Each connection is attached to one session and its messages are handled in order.
type WSServer struct {
	port           int
	tls            *TLSConfig
	sessionManager state.SessionManager
	clientManager  *ClientManager
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewWSServerOptions struct {
	Port           int
	TLS            *TLSConfig
	SessionManager state.SessionManager
	ClientManager  *ClientManager
}

// NewWSServer creates a new WebSocket server.
func NewWSServer(opts NewWSServerOptions) *WSServer {
	clientManager := opts.ClientManager
	if clientManager == nil {
		clientManager = NewClientManager()
	}
	return &WSServer{
		port:           opts.Port,
		tls:            opts.TLS,
		sessionManager: opts.SessionManager,
		clientManager:  clientManager,
	}
}

// Handler returns the http.Handler that upgrades requests to WebSocket connections.
// A "session" query parameter attaches the connection to an existing session;
// without it a new session is created.
func (s *WSServer) Handler(ctx context.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := s.resolveSession(r)
		if err != nil {
			log.Debug("Rejecting WebSocket connection from %s: %v", r.RemoteAddr, err)
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			log.Error("Failed to upgrade to WebSocket: %v", err)
			return
		}
		conn.SetReadLimit(messages.MessageBufferSize)
		log.Debug("New WebSocket connection from %s for session %s", r.RemoteAddr, sessionID)
		s.handleWSConnection(ctx, conn, sessionID)
	})
}

func (s *WSServer) resolveSession(r *http.Request) (uuid.UUID, error) {
	raw := r.URL.Query().Get("session")
	if raw == "" {
		id, _, err := s.sessionManager.Create(r.Context())
		return id, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session id: %v", err)
	}
	if err := s.sessionManager.With(r.Context(), id, func(*game.Session) error { return nil }); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Start starts the WebSocket server.
func (s *WSServer) Start(ctx context.Context) {
	addr := fmt.Sprintf(":%d", s.port)
	server := &http.Server{Addr: addr, Handler: s.Handler(ctx)}

	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	var listenAndServe func() error
	if s.tls != nil {
		log.Info("WebSocket server listening on %s with TLS", addr)
		listenAndServe = func() error {
			return server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("WebSocket server listening on %s", addr)
		listenAndServe = server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("WebSocket server closed")
			return
		}
		log.Error("WebSocket server error: %v", err)
	}
}

// handleWSConnection handles a WebSocket connection until it closes.
func (s *WSServer) handleWSConnection(ctx context.Context, conn *websocket.Conn, sessionID uuid.UUID) {
	ctx, cancel := context.WithCancel(ctx)
	clientID, err := s.clientManager.ConnectClient(conn, sessionID)
	if err != nil {
		log.Error("Failed to connect client: %v", err)
		conn.Close(websocket.StatusInternalError, "failed to connect client")
		cancel()
		return
	}
	defer func() {
		cancel()
		s.clientManager.DisconnectClient(clientID)
		conn.Close(websocket.StatusNormalClosure, "")
		log.Debug("Client %d disconnected", clientID)
	}()

	if err := WriteMessageToWS(ctx, conn, s.snapshotMessage(ctx, sessionID)); err != nil {
		log.Error("Failed to send initial snapshot to client %d: %v", clientID, err)
		return
	}

	for {
		message, err := ReadMessageFromWS(ctx, conn)
		if errors.Is(err, ErrMalformedMessage) {
			log.Debug("Client %d sent a malformed message: %v", clientID, err)
			if err := WriteMessageToWS(ctx, conn, messages.NewErrorMessage(sessionID.String(), err)); err != nil {
				log.Error("Failed to write reply to client %d: %v", clientID, err)
				return
			}
			continue
		}
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				log.Error("Error reading WebSocket message from client %d: %v", clientID, err)
			}
			log.Trace("Connection closed for client %d", clientID)
			return
		}

		reply := s.handleMessage(ctx, sessionID, message)
		if err := WriteMessageToWS(ctx, conn, reply); err != nil {
			log.Error("Failed to write reply to client %d: %v", clientID, err)
			return
		}
	}
}

func (s *WSServer) handleMessage(ctx context.Context, sessionID uuid.UUID, message *messages.Message) *messages.Message {
	id := sessionID.String()
	switch message.Type {
	case messages.MessageTypeClientPing:
		return &messages.Message{SessionID: id, Type: messages.MessageTypeServerPong}
	case messages.MessageTypeClientSnapshot:
		return s.snapshotMessage(ctx, sessionID)
	case messages.MessageTypeClientPlace:
		req, err := messages.ParsePlaceRequest(message)
		if err != nil {
			return messages.NewErrorMessage(id, err)
		}
		var update *messages.SnapshotUpdate
		err = s.sessionManager.With(ctx, sessionID, func(session *game.Session) error {
			result, err := session.AttemptPlacement(req.Piece, req.X, req.Y)
			if err != nil {
				return err
			}
			update = messages.NewSnapshotUpdate(result)
			return nil
		})
		if err != nil {
			return messages.NewErrorMessage(id, err)
		}
		return s.encodeUpdate(id, update)
	case messages.MessageTypeClientRestart:
		var update *messages.SnapshotUpdate
		err := s.sessionManager.With(ctx, sessionID, func(session *game.Session) error {
			snapshot, err := session.Restart()
			if err != nil {
				return err
			}
			update = &messages.SnapshotUpdate{Snapshot: snapshot}
			return nil
		})
		if err != nil {
			return messages.NewErrorMessage(id, err)
		}
		return s.encodeUpdate(id, update)
	default:
		return messages.NewErrorMessage(id, fmt.Errorf("unsupported message type %s", message.Type))
	}
}

func (s *WSServer) snapshotMessage(ctx context.Context, sessionID uuid.UUID) *messages.Message {
	var update *messages.SnapshotUpdate
	err := s.sessionManager.With(ctx, sessionID, func(session *game.Session) error {
		update = &messages.SnapshotUpdate{Snapshot: session.Snapshot()}
		return nil
	})
	if err != nil {
		return messages.NewErrorMessage(sessionID.String(), err)
	}
	return s.encodeUpdate(sessionID.String(), update)
}

func (s *WSServer) encodeUpdate(sessionID string, update *messages.SnapshotUpdate) *messages.Message {
	msg, err := messages.NewSnapshotMessage(sessionID, update)
	if err != nil {
		log.Error("Failed to encode snapshot for session %s: %v", sessionID, err)
		return messages.NewErrorMessage(sessionID, err)
	}
	return msg
}

// WriteMessageToWS writes a Message to a WebSocket connection
func WriteMessageToWS(ctx context.Context, conn *websocket.Conn, msg *messages.Message) error {
	b, err := messages.SerializeMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}

	if err := conn.Write(ctx, websocket.MessageBinary, b); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection: %w", err)
	}

	return nil
}

// ReadMessageFromWS reads a Message from a WebSocket connection
func ReadMessageFromWS(ctx context.Context, conn *websocket.Conn) (*messages.Message, error) {
	_, b, err := conn.Read(ctx)
	if err != nil {
		return nil, err
	}

	msg, err := messages.DeserializeMessage(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	return msg, nil
}
