package llm

import (
	"context"
	"errors"
	"log/slog"
)

// Chain tries an ordered list of model identifiers until one accepts the
// request. There is no retry of the same identifier and no backoff: the
// failure mode being guarded against is upstream model availability, not
// transient network noise. When every identifier fails, the last failure is
// returned as-is.
type Chain struct {
	provider Provider
	models   []string
}

func NewChain(provider Provider, models []string) *Chain {
	return &Chain{provider: provider, models: models}
}

// StreamResult is a won stream attempt: the identifier that accepted the
// request and its ordered chunk feed.
type StreamResult struct {
	Model  string
	Chunks <-chan StreamChunk
}

// StreamChat walks the chain for a streaming chat request. The first
// identifier that returns a stream wins.
func (c *Chain) StreamChat(ctx context.Context, history []Content, message string) (*StreamResult, error) {
	var lastErr error
	for _, modelID := range c.models {
		slog.Debug("Trying model", "model", modelID)
		chunks, err := c.provider.StreamChat(ctx, modelID, history, message)
		if err == nil {
			slog.Info("Model accepted streaming request", "model", modelID)
			return &StreamResult{Model: modelID, Chunks: chunks}, nil
		}
		slog.Warn("Model failed, trying next", "model", modelID, "error", err)
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("no models configured")
	}
	return nil, lastErr
}

// GenerateContent walks the chain for a single-shot request and returns the
// reply text plus the identifier that produced it.
func (c *Chain) GenerateContent(ctx context.Context, prompt string) (string, string, error) {
	var lastErr error
	for _, modelID := range c.models {
		slog.Debug("Trying model", "model", modelID)
		text, err := c.provider.GenerateContent(ctx, modelID, prompt)
		if err == nil {
			slog.Info("Model accepted generate request", "model", modelID)
			return text, modelID, nil
		}
		slog.Warn("Model failed, trying next", "model", modelID, "error", err)
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("no models configured")
	}
	return "", "", lastErr
}
