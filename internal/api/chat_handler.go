package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	app_errors "clario/backend/internal/errors"
	"clario/backend/internal/interfaces"
	"clario/backend/internal/service"
)

// ChatHandler relays chat messages to the upstream model chain and streams
// the reply back as it arrives.
type ChatHandler struct {
	service interfaces.ChatService
}

func NewChatHandler(svc interfaces.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// ChatReply is the JSON body returned when the relay fails before any bytes
// were streamed. Successful replies are a plain-text chunked stream instead.
type ChatReply struct {
	Reply string `json:"reply"`
}

// HandleChat godoc
// @Summary      Relay a chat message
// @Description  Streams the tutor's reply as chunked plain text. On failure before streaming begins, returns a JSON body with a reply field instead.
// @Tags         Chat
// @Accept       json
// @Produce      plain
// @Param        chatRequest  body  service.ChatRequest  true  "Message, prior history and optional session id"
// @Success      200  {string}  string  "streamed reply tokens"
// @Failure      400  {object}  ChatReply
// @Failure      500  {object}  ChatReply
// @Router       /chat [post]
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req service.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, ChatReply{Reply: "Error: invalid request body."})
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, ChatReply{Reply: "Error: No message provided."})
		return
	}

	result, err := h.service.Stream(r.Context(), &req)
	if err != nil {
		h.respondPreStreamError(w, err)
		return
	}

	// From here on the response is a chunked plain-text stream; errors are
	// appended inline rather than producing a second, conflicting response.
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, canFlush := w.(http.Flusher)
	var full strings.Builder

	for chunk := range result.Chunks {
		if r.Context().Err() != nil {
			slog.Info("Client disconnected during chat stream", "model", result.Model)
			return
		}
		if chunk.Err != nil {
			slog.Warn("Upstream stream failed mid-flight", "model", result.Model, "error", chunk.Err)
			fmt.Fprintf(w, "\n\nError: %s", chunk.Err)
			if canFlush {
				flusher.Flush()
			}
			break
		}
		if _, err := w.Write([]byte(chunk.Text)); err != nil {
			slog.Info("Client connection lost mid-stream", "error", err)
			return
		}
		full.WriteString(chunk.Text)
		if canFlush {
			flusher.Flush()
		}
	}

	// The reply already reached the client; recording must not depend on the
	// request context staying alive.
	h.service.Record(context.WithoutCancel(r.Context()), req.SessionID, req.Message, full.String())
}

func (h *ChatHandler) respondPreStreamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app_errors.ErrValidation):
		respondWithJSON(w, http.StatusBadRequest, ChatReply{Reply: "Error: No message provided."})
	case errors.Is(err, app_errors.ErrConfig):
		respondWithJSON(w, http.StatusInternalServerError,
			ChatReply{Reply: "Error: GEMINI_API_KEY not configured. Please set it in your .env file."})
	default:
		slog.Error("Chat relay failed before streaming", "error", err)
		respondWithJSON(w, http.StatusInternalServerError, ChatReply{Reply: "Error: " + err.Error()})
	}
}
