package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vivasim/viva-api/internal/api/shared"
	"github.com/vivasim/viva-api/internal/session"
)

// SessionService is the interview workflow the handler exposes.
type SessionService interface {
	Start(ctx context.Context, portfolioData, language string) (*session.Session, *session.Reply, error)
	SubmitAnswer(ctx context.Context, sessionID uuid.UUID, answer string) (*session.Reply, session.Progress, error)
	Get(sessionID uuid.UUID) (*session.Session, error)
	End(sessionID uuid.UUID) error
}

// SessionHandler serves the interview session endpoints.
type SessionHandler struct {
	sessions SessionService
	logger   *slog.Logger
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(sessions SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

// Start handles POST /sessions.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "portfolio_data is required")
		return
	}

	sess, reply, err := h.sessions.Start(r.Context(), req.PortfolioData, req.Language)
	if err != nil {
		status, message := mapServiceError(err)
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}

	replyResp := newReplyResponse(reply)
	shared.RespondWithJSON(w, r, http.StatusCreated, SessionResponse{
		ID:       sess.ID.String(),
		Language: sess.Language,
		Progress: sess.Progress(),
		Reply:    &replyResp,
	})
}

// SubmitAnswer handles POST /sessions/{id}/answers.
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "answer is required")
		return
	}

	reply, progress, err := h.sessions.SubmitAnswer(r.Context(), sessionID, req.Answer)
	if err != nil {
		status, message := mapServiceError(err)
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AnswerResponse{
		Reply:    newReplyResponse(reply),
		Progress: progress,
	})
}

// Get handles GET /sessions/{id}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	sess, err := h.sessions.Get(sessionID)
	if err != nil {
		status, message := mapServiceError(err)
		shared.RespondWithError(w, r, status, message)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{
		ID:       sess.ID.String(),
		Language: sess.Language,
		Progress: sess.Progress(),
	})
}

// End handles DELETE /sessions/{id}.
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.sessions.End(sessionID); err != nil {
		status, message := mapServiceError(err)
		shared.RespondWithError(w, r, status, message)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid session ID")
		return uuid.Nil, false
	}
	return sessionID, true
}
