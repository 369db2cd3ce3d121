package repository

import (
	"context"

	"clario/backend/internal/model"
)

// Repository defines the storage operations behind the session collection.
// This interface makes it easy to switch storage implementations; the sqlite
// one backs the server, the in-memory one backs tests.
type Repository interface {
	// UpsertSession writes the full session, messages included. An existing
	// row with the same id is replaced wholesale.
	UpsertSession(ctx context.Context, session *model.Session) error

	// GetSession returns ErrNotFound when the id is not in the collection.
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)

	// ListSessions returns the collection most-recently-touched first.
	ListSessions(ctx context.Context) ([]*model.Session, error)

	// DeleteSession returns ErrNotFound when the id is not in the collection.
	DeleteSession(ctx context.Context, sessionID string) error
}
