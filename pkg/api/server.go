package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/woodblock/pkg/api/handlers"
	"github.com/cbodonnell/woodblock/pkg/api/middleware"
	"github.com/cbodonnell/woodblock/pkg/log"
	"github.com/cbodonnell/woodblock/pkg/repositories"
	"github.com/cbodonnell/woodblock/pkg/state"
	"github.com/cbodonnell/woodblock/pkg/version"
	"github.com/cbodonnell/woodblock/pkg/workers"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port           int
	TLS            *TLSConfig
	SessionManager state.SessionManager
	Repository     repositories.Repository
	SaveScoreChan  chan<- workers.SaveScoreRequest
}

// NewRouter builds the API routes.
func NewRouter(opts NewAPIServerOptions) http.Handler {
	sessionMiddleware := middleware.NewSessionMiddleware(opts.SessionManager)

	r := mux.NewRouter()
	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintln(w, version.Get())
	}).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard", handlers.HandleGetLeaderboard(opts.Repository)).Methods(http.MethodGet)
	r.HandleFunc("/sessions", handlers.HandleCreateSession(opts.SessionManager)).Methods(http.MethodPost)

	s := r.PathPrefix("/sessions/{id}").Subrouter()
	s.Use(sessionMiddleware)
	s.HandleFunc("", handlers.HandleGetSession(opts.SessionManager)).Methods(http.MethodGet)
	s.HandleFunc("", handlers.HandleDeleteSession(opts.SessionManager)).Methods(http.MethodDelete)
	s.HandleFunc("/placements", handlers.HandlePlace(opts.SessionManager)).Methods(http.MethodPost)
	s.HandleFunc("/restart", handlers.HandleRestart(opts.SessionManager)).Methods(http.MethodPost)
	s.HandleFunc("/events", handlers.HandleEvents(opts.SessionManager)).Methods(http.MethodGet)
	s.HandleFunc("/scores", handlers.HandleSubmitScore(opts.SessionManager, opts.Repository, opts.SaveScoreChan)).Methods(http.MethodPost)

	return middleware.CORS(middleware.Logging(r))
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewRouter(opts),
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
