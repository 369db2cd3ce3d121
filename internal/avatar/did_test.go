package avatar_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clario/backend/internal/avatar"
	app_errors "clario/backend/internal/errors"
)

// talkServer fakes the D-ID API. statusAfter controls how many polls return
// "started" before the final status is reported.
type talkServer struct {
	*httptest.Server
	statusAfter int
	finalStatus string
	creates     int
	polls       int
	lastAuth    string
	lastCreate  map[string]any
}

func newTalkServer(t *testing.T, statusAfter int, finalStatus string) *talkServer {
	ts := &talkServer{statusAfter: statusAfter, finalStatus: finalStatus}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.lastAuth = r.Header.Get("Authorization")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/talks":
			ts.creates++
			require.NoError(t, json.NewDecoder(r.Body).Decode(&ts.lastCreate))
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"id":"talk-123","status":"created"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/talks/talk-123":
			ts.polls++
			status := "started"
			resultURL := ""
			if ts.polls >= ts.statusAfter {
				status = ts.finalStatus
				if status == "done" {
					resultURL = "https://cdn.example.com/talk-123.mp4"
				}
			}
			fmt.Fprintf(w, `{"id":"talk-123","status":%q,"result_url":%q}`, status, resultURL)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestClient_GenerateVideo(t *testing.T) {
	t.Run("Polls until done", func(t *testing.T) {
		server := newTalkServer(t, 5, "done")
		client := avatar.NewClient(server.URL, "secret-key").WithPolling(time.Millisecond, 30)

		talk, err := client.GenerateVideo(context.Background(), "Hello from Dr. Neutron")
		require.NoError(t, err)
		assert.Equal(t, "talk-123", talk.ID)
		assert.Equal(t, "done", talk.Status)
		assert.Equal(t, "https://cdn.example.com/talk-123.mp4", talk.ResultURL)

		assert.Equal(t, 1, server.creates)
		assert.Equal(t, 5, server.polls)
		assert.Equal(t, "Basic secret-key", server.lastAuth)
	})

	t.Run("Create request carries script and presenter", func(t *testing.T) {
		server := newTalkServer(t, 1, "done")
		client := avatar.NewClient(server.URL, "secret-key").WithPolling(time.Millisecond, 30)

		_, err := client.GenerateVideo(context.Background(), "a short script")
		require.NoError(t, err)

		script, ok := server.lastCreate["script"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "text", script["type"])
		assert.Equal(t, "a short script", script["input"])
		provider, ok := script["provider"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "microsoft", provider["type"])
		assert.Equal(t, "en-US-JennyNeural", provider["voice_id"])
		assert.Contains(t, server.lastCreate["source_url"], "alice.jpg")
	})

	t.Run("Exhausted attempts time out", func(t *testing.T) {
		server := newTalkServer(t, 1000, "done")
		client := avatar.NewClient(server.URL, "secret-key").WithPolling(time.Millisecond, 30)

		_, err := client.GenerateVideo(context.Background(), "never finishes")
		require.Error(t, err)
		assert.ErrorIs(t, err, app_errors.ErrTimeout)
		assert.Equal(t, 30, server.polls)
	})

	t.Run("Error status fails fast", func(t *testing.T) {
		server := newTalkServer(t, 2, "error")
		client := avatar.NewClient(server.URL, "secret-key").WithPolling(time.Millisecond, 30)

		_, err := client.GenerateVideo(context.Background(), "will fail")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "video generation failed")
		assert.Equal(t, 2, server.polls)
	})

	t.Run("Cancelled context stops polling", func(t *testing.T) {
		server := newTalkServer(t, 1000, "done")
		client := avatar.NewClient(server.URL, "secret-key").WithPolling(50*time.Millisecond, 30)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := client.GenerateVideo(ctx, "cancelled")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestClient_CreateTalk_UpstreamError(t *testing.T) {
	body := `{"kind":"ValidationError","description":"text too long","message":"bad request"}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	client := avatar.NewClient(server.URL, "secret-key")
	_, err := client.CreateTalk(context.Background(), "way too much text")
	require.Error(t, err)

	var upstreamErr *avatar.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusBadRequest, upstreamErr.StatusCode)
	assert.Equal(t, "text too long", upstreamErr.Description)
	assert.JSONEq(t, body, string(upstreamErr.Body))
	assert.Contains(t, upstreamErr.Error(), "text too long")
}

func TestClient_GetTalk_NonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream exploded")
	}))
	defer server.Close()

	client := avatar.NewClient(server.URL, "secret-key")
	_, err := client.GetTalk(context.Background(), "talk-123")
	require.Error(t, err)

	var upstreamErr *avatar.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusBadGateway, upstreamErr.StatusCode)
	assert.Equal(t, "upstream exploded", string(upstreamErr.Body))
	assert.Equal(t, "d-id returned status 502", upstreamErr.Error())
}
