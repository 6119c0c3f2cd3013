package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cbodonnell/woodblock/pkg/api/middleware"
	"github.com/cbodonnell/woodblock/pkg/game"
	"github.com/cbodonnell/woodblock/pkg/game/types"
	"github.com/cbodonnell/woodblock/pkg/log"
	"github.com/cbodonnell/woodblock/pkg/messages"
	"github.com/cbodonnell/woodblock/pkg/repositories"
	"github.com/cbodonnell/woodblock/pkg/state"
	"github.com/cbodonnell/woodblock/pkg/workers"
	"github.com/google/uuid"
)

var (
	errScoreDoesNotQualify = errors.New("score does not qualify")
	errSaveQueueFull       = errors.New("save queue is full")
)

// SessionResponse is returned by the endpoints that create or read a session.
type SessionResponse struct {
	ID       uuid.UUID      `json:"id"`
	Snapshot types.Snapshot `json:"snapshot"`
}

// EventResponse wraps a session event with its name.
type EventResponse struct {
	Type string      `json:"type"`
	Data types.Event `json:"data"`
}

// SubmitScoreRequest is the body of a score submission.
type SubmitScoreRequest struct {
	Name string `json:"name"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}

// writeGameError maps session errors to HTTP status codes.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidState), errors.Is(err, game.ErrScoreSubmitted):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, game.ErrInvalidPiece):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, game.ErrIllegalPlacement):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, state.ErrSessionNotFound):
		http.Error(w, "Session not found", http.StatusNotFound)
	default:
		log.Error("session operation failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.SessionID(r.Context())
	if !ok {
		log.Error("failed to get session id from context")
		http.Error(w, "Failed to get session id from context", http.StatusInternalServerError)
	}
	return id, ok
}

func HandleCreateSession(sessionManager state.SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, snapshot, err := sessionManager.Create(r.Context())
		if err != nil {
			log.Error("failed to create session: %v", err)
			http.Error(w, "Failed to create session", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, SessionResponse{ID: id, Snapshot: snapshot})
	}
}

func HandleGetSession(sessionManager state.SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(w, r)
		if !ok {
			return
		}
		var snapshot types.Snapshot
		if err := sessionManager.With(r.Context(), id, func(s *game.Session) error {
			snapshot = s.Snapshot()
			return nil
		}); err != nil {
			writeGameError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, SessionResponse{ID: id, Snapshot: snapshot})
	}
}

func HandlePlace(sessionManager state.SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(w, r)
		if !ok {
			return
		}
		var req messages.PlaceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid placement request", http.StatusBadRequest)
			return
		}

		var result types.MoveResult
		if err := sessionManager.With(r.Context(), id, func(s *game.Session) error {
			var err error
			result, err = s.AttemptPlacement(req.Piece, req.X, req.Y)
			return err
		}); err != nil {
			writeGameError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func HandleRestart(sessionManager state.SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(w, r)
		if !ok {
			return
		}
		var snapshot types.Snapshot
		if err := sessionManager.With(r.Context(), id, func(s *game.Session) error {
			var err error
			snapshot, err = s.Restart()
			return err
		}); err != nil {
			writeGameError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, SessionResponse{ID: id, Snapshot: snapshot})
	}
}

func HandleEvents(sessionManager state.SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(w, r)
		if !ok {
			return
		}
		events, err := sessionManager.Events(r.Context(), id)
		if err != nil {
			writeGameError(w, err)
			return
		}
		out := make([]EventResponse, 0, len(events))
		for _, e := range events {
			out = append(out, EventResponse{Type: e.EventName(), Data: e})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func HandleDeleteSession(sessionManager state.SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(w, r)
		if !ok {
			return
		}
		if err := sessionManager.Delete(r.Context(), id); err != nil {
			writeGameError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func HandleGetLeaderboard(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := repository.LoadLeaderboard(r.Context())
		if err != nil {
			log.Error("failed to load leaderboard: %v", err)
			http.Error(w, "Failed to load leaderboard", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

// HandleSubmitScore queues the final score of a finished session for the
// leaderboard. The write itself happens on the save worker.
func HandleSubmitScore(sessionManager state.SessionManager, repository repositories.Repository, saveScoreChan chan<- workers.SaveScoreRequest) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionID(w, r)
		if !ok {
			return
		}
		var req SubmitScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid score request", http.StatusBadRequest)
			return
		}
		name, err := game.ValidatePlayerName(req.Name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		entries, err := repository.LoadLeaderboard(r.Context())
		if err != nil {
			log.Error("failed to load leaderboard: %v", err)
			http.Error(w, "Failed to load leaderboard", http.StatusInternalServerError)
			return
		}

		// The submission is marked under the session lock so a game is saved at most once.
		var entry types.LeaderboardEntry
		err = sessionManager.With(r.Context(), id, func(s *game.Session) error {
			if !s.IsGameOver() {
				return game.ErrInvalidState
			}
			if s.ScoreSubmitted() {
				return game.ErrScoreSubmitted
			}
			if !game.QualifiesForLeaderboard(entries, s.Score()) {
				return errScoreDoesNotQualify
			}
			entry = types.LeaderboardEntry{
				Name:      name,
				Score:     s.Score(),
				CreatedAt: time.Now().UnixMilli(),
			}
			select {
			case saveScoreChan <- workers.SaveScoreRequest{Entry: entry}:
			default:
				return errSaveQueueFull
			}
			return s.MarkScoreSubmitted()
		})
		switch {
		case err == nil:
		case errors.Is(err, game.ErrInvalidState):
			http.Error(w, "Session is still playing", http.StatusConflict)
			return
		case errors.Is(err, game.ErrScoreSubmitted):
			http.Error(w, "Score was already submitted", http.StatusConflict)
			return
		case errors.Is(err, errScoreDoesNotQualify):
			http.Error(w, "Score does not qualify for the leaderboard", http.StatusForbidden)
			return
		case errors.Is(err, errSaveQueueFull):
			log.Warn("Save score channel is full, dropping score for %s", name)
			http.Error(w, "Leaderboard is busy", http.StatusServiceUnavailable)
			return
		default:
			writeGameError(w, err)
			return
		}
		writeJSON(w, http.StatusAccepted, entry)
	}
}
