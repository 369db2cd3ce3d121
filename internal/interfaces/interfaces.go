package interfaces

import (
	"context"

	"clario/backend/internal/avatar"
	"clario/backend/internal/llm"
	"clario/backend/internal/model"
	"clario/backend/internal/service"
)

// This file defines the interfaces the API layer depends on. Handlers are
// written against these instead of concrete services so tests can substitute
// mocks.

// ChatService relays chat messages upstream and records finished exchanges.
type ChatService interface {
	Stream(ctx context.Context, req *service.ChatRequest) (*llm.StreamResult, error)
	Record(ctx context.Context, sessionID, userText, assistantText string)
}

// VideoService covers both video flows: avatar talks and motion diagrams.
type VideoService interface {
	AvatarVideo(ctx context.Context, text string) (*avatar.Talk, error)
	MotionVideo(ctx context.Context, question string) (string, model.MotionParams, error)
}

// SessionManager is the session lifecycle contract: creation, activation,
// deletion with active fallback, and listing.
type SessionManager interface {
	Create(ctx context.Context) (*model.Session, error)
	Load(ctx context.Context, sessionID string) (*model.Session, error)
	Delete(ctx context.Context, sessionID string) (*model.Session, error)
	Active(ctx context.Context) (*model.Session, error)
	List(ctx context.Context) ([]*model.Session, error)
}
