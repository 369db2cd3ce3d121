package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clario/backend/internal/api"
	app_errors "clario/backend/internal/errors"
	"clario/backend/internal/model"
)

type mockSessionManager struct {
	mock.Mock
}

func (m *mockSessionManager) Create(ctx context.Context) (*model.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *mockSessionManager) Load(ctx context.Context, sessionID string) (*model.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *mockSessionManager) Delete(ctx context.Context, sessionID string) (*model.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *mockSessionManager) Active(ctx context.Context) (*model.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *mockSessionManager) List(ctx context.Context) ([]*model.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Session), args.Error(1)
}

// sessionRouter mounts the handler the way the real router does so URL
// params resolve.
func sessionRouter(handler *api.SessionHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/sessions", handler.HandleCreateSession)
	r.Get("/sessions", handler.HandleListSessions)
	r.Get("/sessions/active", handler.HandleActiveSession)
	r.Get("/sessions/{sessionID}", handler.HandleGetSession)
	r.Delete("/sessions/{sessionID}", handler.HandleDeleteSession)
	r.Get("/sessions/{sessionID}/transcript", handler.HandleTranscript)
	return r
}

func testSession(id, title string) *model.Session {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return &model.Session{
		ID:    id,
		Title: title,
		Messages: []model.Message{
			{Sender: model.SenderAssistant, Text: "Hi! I'm Dr. Neutron. Ask me about study strategies or concepts!"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSessionHandler_Create(t *testing.T) {
	manager := new(mockSessionManager)
	manager.On("Create", mock.Anything).Return(testSession("1714557600000", "New Chat"), nil)

	req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
	rec := httptest.NewRecorder()
	sessionRouter(api.NewSessionHandler(manager)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var session model.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.Equal(t, "1714557600000", session.ID)
	assert.Equal(t, "New Chat", session.Title)
	require.Len(t, session.Messages, 1)
	assert.Equal(t, model.SenderAssistant, session.Messages[0].Sender)
}

func TestSessionHandler_List(t *testing.T) {
	manager := new(mockSessionManager)
	manager.On("List", mock.Anything).Return([]*model.Session{
		testSession("2", "Recent chat"),
		testSession("1", "Older chat"),
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	rec := httptest.NewRecorder()
	sessionRouter(api.NewSessionHandler(manager)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var summaries []model.SessionSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 2)
	assert.Equal(t, "2", summaries[0].ID)
	assert.Equal(t, "Recent chat", summaries[0].Title)
	// Summaries drop the message payload.
	assert.NotContains(t, rec.Body.String(), "Dr. Neutron")
}

func TestSessionHandler_Get(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		manager := new(mockSessionManager)
		manager.On("Load", mock.Anything, "42").Return(testSession("42", "Kinematics"), nil)

		req := httptest.NewRequest(http.MethodGet, "/sessions/42", nil)
		rec := httptest.NewRecorder()
		sessionRouter(api.NewSessionHandler(manager)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		manager.AssertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		manager := new(mockSessionManager)
		manager.On("Load", mock.Anything, "missing").
			Return(nil, fmt.Errorf("%w: unknown session", app_errors.ErrNotFound))

		req := httptest.NewRequest(http.MethodGet, "/sessions/missing", nil)
		rec := httptest.NewRecorder()
		sessionRouter(api.NewSessionHandler(manager)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"The requested resource was not found."}`, rec.Body.String())
	})
}

func TestSessionHandler_Delete(t *testing.T) {
	t.Run("Reports the surviving active session", func(t *testing.T) {
		manager := new(mockSessionManager)
		manager.On("Delete", mock.Anything, "42").Return(testSession("7", "Surviving chat"), nil)

		req := httptest.NewRequest(http.MethodDelete, "/sessions/42", nil)
		rec := httptest.NewRecorder()
		sessionRouter(api.NewSessionHandler(manager)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp api.DeleteSessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		require.NotNil(t, resp.Active)
		assert.Equal(t, "7", resp.Active.ID)
	})

	t.Run("Not found", func(t *testing.T) {
		manager := new(mockSessionManager)
		manager.On("Delete", mock.Anything, "missing").
			Return(nil, fmt.Errorf("%w: unknown session", app_errors.ErrNotFound))

		req := httptest.NewRequest(http.MethodDelete, "/sessions/missing", nil)
		rec := httptest.NewRecorder()
		sessionRouter(api.NewSessionHandler(manager)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSessionHandler_Active(t *testing.T) {
	manager := new(mockSessionManager)
	manager.On("Active", mock.Anything).Return(testSession("42", "Kinematics"), nil)

	req := httptest.NewRequest(http.MethodGet, "/sessions/active", nil)
	rec := httptest.NewRecorder()
	sessionRouter(api.NewSessionHandler(manager)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var session model.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.Equal(t, "42", session.ID)
}

func TestSessionHandler_Transcript(t *testing.T) {
	session := testSession("42", "Kinematics")
	session.Messages = append(session.Messages, model.Message{
		Sender: model.SenderUser,
		Text:   "What is \\( v = u + at \\)?\nExplain.",
	})

	manager := new(mockSessionManager)
	manager.On("Load", mock.Anything, "42").Return(session, nil)

	req := httptest.NewRequest(http.MethodGet, "/sessions/42/transcript", nil)
	rec := httptest.NewRecorder()
	sessionRouter(api.NewSessionHandler(manager)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp api.TranscriptResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "42", resp.SessionID)
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, model.SenderUser, resp.Messages[1].Sender)
	assert.Equal(t, "What is \\( v = u + at \\)?<br>Explain.", resp.Messages[1].HTML)
}
