package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	app_errors "clario/backend/internal/errors"
	"clario/backend/internal/llm"
	"clario/backend/internal/model"
)

// StreamChain is the model-fallback surface the services depend on.
// *llm.Chain satisfies it.
type StreamChain interface {
	StreamChat(ctx context.Context, history []llm.Content, message string) (*llm.StreamResult, error)
	GenerateContent(ctx context.Context, prompt string) (string, string, error)
}

// SessionRecorder appends completed exchanges to a stored session.
// *session.Manager satisfies it.
type SessionRecorder interface {
	Append(ctx context.Context, sessionID string, messages ...model.Message) (*model.Session, error)
}

// ChatRequest is the body of a chat relay call. History is supplied by the
// client in full on every call; SessionID optionally ties the exchange to a
// stored session.
type ChatRequest struct {
	Message   string               `json:"message" validate:"required"`
	History   []model.HistoryEntry `json:"history"`
	SessionID string               `json:"sessionId,omitempty"`
}

// ChatService relays chat messages to the upstream model chain.
type ChatService struct {
	chain        StreamChain
	sessions     SessionRecorder
	credentialed bool
}

func NewChatService(chain StreamChain, sessions SessionRecorder, credentialed bool) *ChatService {
	return &ChatService{chain: chain, sessions: sessions, credentialed: credentialed}
}

// NormalizeHistory converts client-supplied history into the upstream shape:
// entries missing a role or content are dropped, any non-user role maps to
// "model", and the leading run of model entries is stripped because the
// upstream requires the first turn to be user-authored.
func NormalizeHistory(entries []model.HistoryEntry) []llm.Content {
	var history []llm.Content
	for _, entry := range entries {
		if entry.Role == "" || entry.Content == "" {
			continue
		}
		role := "model"
		if entry.Role == "user" {
			role = "user"
		}
		history = append(history, llm.Content{Role: role, Parts: []llm.Part{{Text: entry.Content}}})
	}
	for len(history) > 0 && history[0].Role != "user" {
		history = history[1:]
	}
	return history
}

// Stream validates the request and opens an upstream stream through the
// fallback chain. An error here means nothing was sent to the client yet;
// errors after this point travel in-band on the returned chunk feed.
func (s *ChatService) Stream(ctx context.Context, req *ChatRequest) (*llm.StreamResult, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("%w: no message provided", app_errors.ErrValidation)
	}
	if !s.credentialed {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY not configured", app_errors.ErrConfig)
	}
	return s.chain.StreamChat(ctx, NormalizeHistory(req.History), req.Message)
}

// Record appends a completed exchange to the referenced session. Recording is
// best-effort: the reply already reached the client, so failures are logged,
// not surfaced.
func (s *ChatService) Record(ctx context.Context, sessionID, userText, assistantText string) {
	if sessionID == "" || assistantText == "" {
		return
	}
	_, err := s.sessions.Append(ctx, sessionID,
		model.Message{Sender: model.SenderUser, Text: userText},
		model.Message{Sender: model.SenderAssistant, Text: assistantText},
	)
	if err != nil {
		slog.Warn("Could not record exchange", "session_id", sessionID, "error", err)
	}
}
