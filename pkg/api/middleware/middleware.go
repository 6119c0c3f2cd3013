package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/cbodonnell/woodblock/pkg/game"
	"github.com/cbodonnell/woodblock/pkg/log"
	"github.com/cbodonnell/woodblock/pkg/state"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ContextKey int

const (
	// SessionIDContextKey is the key used to store the session id in the request context
	SessionIDContextKey ContextKey = iota
)

// SessionID returns the session id stored by NewSessionMiddleware.
func SessionID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(SessionIDContextKey).(uuid.UUID)
	return id, ok
}

// NewSessionMiddleware resolves the {id} route variable to a live session.
// Unknown or malformed ids are answered with 404.
func NewSessionMiddleware(sessionManager state.SessionManager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(mux.Vars(r)["id"])
			if err != nil {
				http.Error(w, "Session not found", http.StatusNotFound)
				return
			}
			if err := sessionManager.With(r.Context(), id, func(*game.Session) error { return nil }); err != nil {
				http.Error(w, "Session not found", http.StatusNotFound)
				return
			}

			ctx := context.WithValue(r.Context(), SessionIDContextKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CORS allows browser front-ends on any origin to call the API.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging logs every request at debug level and server errors at error level.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		if rec.status >= http.StatusInternalServerError {
			log.Error("%s %s -> %d in %s", r.Method, r.URL.Path, rec.status, time.Since(start))
			return
		}
		log.Debug("%s %s -> %d in %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
