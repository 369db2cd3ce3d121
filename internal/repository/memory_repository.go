package repository

import (
	"context"
	"sort"
	"sync"

	"clario/backend/internal/model"
)

// memoryRepository keeps the session collection in a mutex-guarded map.
// It backs unit tests and any deployment that does not want durable storage.
type memoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
}

func NewMemoryRepository() Repository {
	return &memoryRepository{sessions: make(map[string]*model.Session)}
}

func (r *memoryRepository) UpsertSession(_ context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = cloneSession(session)
	return nil
}

func (r *memoryRepository) GetSession(_ context.Context, sessionID string) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneSession(session), nil
}

func (r *memoryRepository) ListSessions(_ context.Context) ([]*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*model.Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		sessions = append(sessions, cloneSession(session))
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].UpdatedAt.Equal(sessions[j].UpdatedAt) {
			// Fall back to id order so listings stay deterministic.
			return sessions[i].ID > sessions[j].ID
		}
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	return sessions, nil
}

func (r *memoryRepository) DeleteSession(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sessionID]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, sessionID)
	return nil
}

// cloneSession copies a session so callers cannot mutate the stored state.
func cloneSession(s *model.Session) *model.Session {
	out := *s
	out.Messages = make([]model.Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	return &out
}
