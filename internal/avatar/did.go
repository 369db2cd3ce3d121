// Package avatar wraps the D-ID talking-head API: submit a text script,
// then poll the talk until its video asset is ready.
package avatar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	app_errors "clario/backend/internal/errors"
)

const (
	// Fixed presenter and voice, matching the public demo avatar.
	sourceURL     = "https://d-id-public-bucket.s3.us-west-2.amazonaws.com/alice.jpg"
	voiceProvider = "microsoft"
	voiceID       = "en-US-JennyNeural"

	defaultPollInterval    = time.Second
	defaultMaxPollAttempts = 30
)

// Talk is the slice of the D-ID talk resource this service cares about.
type Talk struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	ResultURL string `json:"result_url"`
}

// UpstreamError carries the decoded D-ID failure body so the API layer can
// forward its description to the client verbatim.
type UpstreamError struct {
	StatusCode  int
	Description string          `json:"description"`
	Message     string          `json:"message"`
	Body        json.RawMessage `json:"-"`
}

func (e *UpstreamError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("d-id returned status %d: %s", e.StatusCode, e.Description)
	}
	if e.Message != "" {
		return fmt.Sprintf("d-id returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("d-id returned status %d", e.StatusCode)
}

// Client talks to the D-ID REST API with basic-auth credentials.
type Client struct {
	httpClient      *http.Client
	baseURL         string
	apiKey          string
	pollInterval    time.Duration
	maxPollAttempts int
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient:      &http.Client{},
		baseURL:         baseURL,
		apiKey:          apiKey,
		pollInterval:    defaultPollInterval,
		maxPollAttempts: defaultMaxPollAttempts,
	}
}

// WithPolling overrides the poll cadence and attempt budget. Tests use it to
// avoid real one-second waits.
func (c *Client) WithPolling(interval time.Duration, maxAttempts int) *Client {
	c.pollInterval = interval
	c.maxPollAttempts = maxAttempts
	return c
}

type createTalkRequest struct {
	Script    script `json:"script"`
	SourceURL string `json:"source_url"`
}

type script struct {
	Type     string         `json:"type"`
	Input    string         `json:"input"`
	Provider scriptProvider `json:"provider"`
}

type scriptProvider struct {
	Type    string `json:"type"`
	VoiceID string `json:"voice_id"`
}

// CreateTalk submits a text script and returns the new talk's job id.
func (c *Client) CreateTalk(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(createTalkRequest{
		Script: script{
			Type:     "text",
			Input:    text,
			Provider: scriptProvider{Type: voiceProvider, VoiceID: voiceID},
		},
		SourceURL: sourceURL,
	})
	if err != nil {
		return "", fmt.Errorf("could not marshal talk request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/talks", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("talk creation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", decodeUpstreamError(resp)
	}

	var talk Talk
	if err := json.NewDecoder(resp.Body).Decode(&talk); err != nil {
		return "", fmt.Errorf("could not decode talk response: %w", err)
	}
	if talk.ID == "" {
		return "", fmt.Errorf("talk response contained no id")
	}
	return talk.ID, nil
}

// GetTalk fetches the current status of a talk.
func (c *Client) GetTalk(ctx context.Context, talkID string) (*Talk, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/talks/"+talkID, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("talk status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeUpstreamError(resp)
	}

	var talk Talk
	if err := json.NewDecoder(resp.Body).Decode(&talk); err != nil {
		return nil, fmt.Errorf("could not decode talk status: %w", err)
	}
	return &talk, nil
}

// GenerateVideo submits a script and polls once per interval until the talk
// reports done, reports an error, or the attempt budget runs out. Any
// transport failure on the creation call or a poll aborts the whole
// operation.
func (c *Client) GenerateVideo(ctx context.Context, text string) (*Talk, error) {
	talkID, err := c.CreateTalk(ctx, text)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < c.maxPollAttempts; attempt++ {
		select {
		case <-time.After(c.pollInterval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		talk, err := c.GetTalk(ctx, talkID)
		if err != nil {
			return nil, err
		}
		switch talk.Status {
		case "done":
			return talk, nil
		case "error":
			return nil, fmt.Errorf("video generation failed for talk %s", talkID)
		}
	}

	return nil, fmt.Errorf("%w: video generation timed out for talk %s", app_errors.ErrTimeout, talkID)
}

func decodeUpstreamError(resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(resp.Body)
	upstreamErr := &UpstreamError{StatusCode: resp.StatusCode, Body: bodyBytes}
	// The body is best-effort: keep the raw payload even when it is not JSON.
	_ = json.Unmarshal(bodyBytes, upstreamErr)
	return upstreamErr
}
