package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	app_errors "clario/backend/internal/errors"
	"clario/backend/internal/model"
	"clario/backend/internal/repository"
)

// Greeting seeds every new session's message list.
const Greeting = "Hi! I'm Dr. Neutron. Ask me about study strategies or concepts!"

const (
	defaultTitle  = "New Chat"
	titleMaxRunes = 40
	titleEllipsis = "..."
)

// Manager owns the session collection and the active-session marker.
//
// The marker deliberately lives in process memory only, separate from the
// durable collection: it survives request-to-request "navigation" but not a
// restart. The invariant it maintains is that, when set, it always references
// an existing session.
type Manager struct {
	mu     sync.Mutex
	repo   repository.Repository
	active string
	now    func() time.Time
}

func NewManager(repo repository.Repository) *Manager {
	return &Manager{repo: repo, now: time.Now}
}

// Create allocates a new session seeded with the greeting, persists it and
// marks it active.
func (m *Manager) Create(ctx context.Context) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createLocked(ctx)
}

func (m *Manager) createLocked(ctx context.Context) (*model.Session, error) {
	id, err := m.newID(ctx)
	if err != nil {
		return nil, err
	}

	now := m.now().UTC()
	session := &model.Session{
		ID:        id,
		Title:     defaultTitle,
		Messages:  []model.Message{{Sender: model.SenderAssistant, Text: Greeting}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.repo.UpsertSession(ctx, session); err != nil {
		return nil, fmt.Errorf("could not persist new session: %w", err)
	}

	m.active = session.ID
	slog.Debug("Created session", "session_id", session.ID)
	return session, nil
}

// newID derives an id from the creation timestamp (Unix millis, decimal),
// bumping by one until it does not collide with an existing session.
func (m *Manager) newID(ctx context.Context) (string, error) {
	base := m.now().UnixMilli()
	for {
		id := strconv.FormatInt(base, 10)
		_, err := m.repo.GetSession(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return id, nil
		}
		if err != nil {
			return "", fmt.Errorf("could not check session id: %w", err)
		}
		base++
	}
}

// Load makes the session with the given id active and returns it. An unknown
// id leaves the active marker untouched and reports not-found; the state
// never changes on a failed load.
func (m *Manager) Load(ctx context.Context, sessionID string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.repo.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: session %s", app_errors.ErrNotFound, sessionID)
		}
		return nil, err
	}

	m.active = session.ID
	return session, nil
}

// Delete removes a session from the collection. Deleting the active session,
// or deleting while no session is marked active, falls back to the most
// recent remaining session, or creates a fresh one when none remain, so a
// non-empty collection is never left without an active session. The
// resulting active session is returned.
func (m *Manager) Delete(ctx context.Context, sessionID string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.repo.DeleteSession(ctx, sessionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: session %s", app_errors.ErrNotFound, sessionID)
		}
		return nil, err
	}

	if m.active != "" && m.active != sessionID {
		return m.activeLocked(ctx)
	}

	m.active = ""
	remaining, err := m.repo.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	if len(remaining) == 0 {
		return m.createLocked(ctx)
	}
	m.active = remaining[0].ID
	return remaining[0], nil
}

// Save upserts a session, deriving its title from the first user message and
// refreshing updatedAt. The original createdAt is preserved when the session
// already exists, so repeated saves never move it.
func (m *Manager) Save(ctx context.Context, session *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked(ctx, session)
}

func (m *Manager) saveLocked(ctx context.Context, session *model.Session) error {
	now := m.now().UTC()

	existing, err := m.repo.GetSession(ctx, session.ID)
	switch {
	case err == nil:
		session.CreatedAt = existing.CreatedAt
	case errors.Is(err, repository.ErrNotFound):
		if session.CreatedAt.IsZero() {
			session.CreatedAt = now
		}
	default:
		return err
	}

	session.Title = deriveTitle(session.Messages)
	session.UpdatedAt = now
	return m.repo.UpsertSession(ctx, session)
}

// Append adds messages to a session and saves it in full.
func (m *Manager) Append(ctx context.Context, sessionID string, messages ...model.Message) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.repo.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: session %s", app_errors.ErrNotFound, sessionID)
		}
		return nil, err
	}

	session.Messages = append(session.Messages, messages...)
	if err := m.saveLocked(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Active returns the currently active session, or not-found when the marker
// is unset.
func (m *Manager) Active(ctx context.Context) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeLocked(ctx)
}

func (m *Manager) activeLocked(ctx context.Context) (*model.Session, error) {
	if m.active == "" {
		return nil, fmt.Errorf("%w: no active session", app_errors.ErrNotFound)
	}
	session, err := m.repo.GetSession(ctx, m.active)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// The marker can only dangle if storage was mutated behind our
			// back; clear it rather than keep returning a dead reference.
			m.active = ""
			return nil, fmt.Errorf("%w: no active session", app_errors.ErrNotFound)
		}
		return nil, err
	}
	return session, nil
}

// List returns all sessions, most recently touched first.
func (m *Manager) List(ctx context.Context) ([]*model.Session, error) {
	return m.repo.ListSessions(ctx)
}

// deriveTitle builds a session title from the first user message: verbatim
// when it fits, the first 40 characters plus an ellipsis marker otherwise,
// and a fixed default when the user has not spoken yet.
func deriveTitle(messages []model.Message) string {
	for _, msg := range messages {
		if msg.Sender != model.SenderUser {
			continue
		}
		runes := []rune(msg.Text)
		if len(runes) > titleMaxRunes {
			return string(runes[:titleMaxRunes]) + titleEllipsis
		}
		return msg.Text
	}
	return defaultTitle
}
