package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"clario/backend/internal/interfaces"
	"clario/backend/internal/markup"
	"clario/backend/internal/model"
)

// SessionHandler exposes the session lifecycle over HTTP.
type SessionHandler struct {
	sessions interfaces.SessionManager
}

func NewSessionHandler(sessions interfaces.SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// DeleteSessionResponse reports the session left active after a deletion.
type DeleteSessionResponse struct {
	StatusResponse
	Active *model.Session `json:"active"`
}

// TranscriptResponse is a session's message list prepared for display.
type TranscriptResponse struct {
	SessionID string            `json:"sessionId"`
	Messages  []markup.Rendered `json:"messages"`
}

// HandleCreateSession godoc
// @Summary      Start a new session
// @Description  Creates a session seeded with the greeting and marks it active.
// @Tags         Sessions
// @Produce      json
// @Success      201  {object}  model.Session
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/sessions [post]
func (h *SessionHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Create(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, session)
}

// HandleListSessions godoc
// @Summary      List sessions
// @Description  Returns all sessions, most recently touched first, without their messages.
// @Tags         Sessions
// @Produce      json
// @Success      200  {array}   model.SessionSummary
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/sessions [get]
func (h *SessionHandler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.List(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	summaries := make([]model.SessionSummary, len(sessions))
	for i, session := range sessions {
		summaries[i] = session.Summary()
	}
	respondWithJSON(w, http.StatusOK, summaries)
}

// HandleGetSession godoc
// @Summary      Load a session
// @Description  Makes the session active and returns it with its full message list.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {object}  model.Session
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID} [get]
func (h *SessionHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Load(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, session)
}

// HandleDeleteSession godoc
// @Summary      Delete a session
// @Description  Removes the session. Deleting the active one falls back to the most recent remaining session, or a fresh one when none remain.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {object}  DeleteSessionResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID} [delete]
func (h *SessionHandler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	active, err := h.sessions.Delete(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, DeleteSessionResponse{
		StatusResponse: StatusResponse{Status: "ok"},
		Active:         active,
	})
}

// HandleActiveSession godoc
// @Summary      Get the active session
// @Tags         Sessions
// @Produce      json
// @Success      200  {object}  model.Session
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/sessions/active [get]
func (h *SessionHandler) HandleActiveSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Active(r.Context())
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, session)
}

// HandleTranscript godoc
// @Summary      Get a session transcript
// @Description  Loads the session and returns its messages formatted for display, math markup preserved for client-side typesetting.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path  string  true  "Session ID"
// @Success      200  {object}  TranscriptResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/sessions/{sessionID}/transcript [get]
func (h *SessionHandler) HandleTranscript(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Load(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, TranscriptResponse{
		SessionID: session.ID,
		Messages:  markup.Render(session.Messages),
	})
}
