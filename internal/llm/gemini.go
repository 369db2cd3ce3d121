package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// StreamChunk is one decoded increment of upstream output. Err is set on the
// final chunk when the stream breaks mid-flight.
type StreamChunk struct {
	Text string
	Err  error
}

// Part and Content mirror the generative-language API's message shape.
type Part struct {
	Text string `json:"text"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Provider defines the interface for interacting with an upstream language
// model. StreamChat returns an error when the request is rejected before any
// output arrives; once a channel is returned the stream has been accepted and
// later failures are delivered in-band as a chunk with Err set.
type Provider interface {
	StreamChat(ctx context.Context, modelID string, history []Content, message string) (<-chan StreamChunk, error)
	GenerateContent(ctx context.Context, modelID string, prompt string) (string, error)
}

type geminiProvider struct {
	client       *http.Client
	baseURL      string
	apiKey       string
	systemPrompt string
}

// NewGeminiProvider builds a provider for the generative-language REST API.
// systemPrompt is attached as the system instruction on every call.
func NewGeminiProvider(baseURL, apiKey, systemPrompt string) Provider {
	return &geminiProvider{
		client:       &http.Client{},
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		systemPrompt: systemPrompt,
	}
}

type generateRequest struct {
	Contents          []Content `json:"contents"`
	SystemInstruction *Content  `json:"systemInstruction,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content Content `json:"content"`
	} `json:"candidates"`
}

// text concatenates the parts of the first candidate.
func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}

func (p *geminiProvider) newRequest(history []Content, message string) *generateRequest {
	req := &generateRequest{
		Contents: append(append([]Content{}, history...), Content{
			Role:  "user",
			Parts: []Part{{Text: message}},
		}),
	}
	if p.systemPrompt != "" {
		req.SystemInstruction = &Content{Parts: []Part{{Text: p.systemPrompt}}}
	}
	return req
}

func (p *geminiProvider) endpoint(modelID, method, extraQuery string) string {
	query := "key=" + url.QueryEscape(p.apiKey)
	if extraQuery != "" {
		query = extraQuery + "&" + query
	}
	return fmt.Sprintf("%s/%s:%s?%s", p.baseURL, modelID, method, query)
}

func (p *geminiProvider) StreamChat(ctx context.Context, modelID string, history []Content, message string) (<-chan StreamChunk, error) {
	body, err := json.Marshal(p.newRequest(history, message))
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.endpoint(modelID, "streamGenerateContent", "alt=sse"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("model %s returned status %d: %s", modelID, resp.StatusCode, string(bodyBytes))
	}

	ch := make(chan StreamChunk)
	go p.pumpStream(ctx, resp.Body, ch)
	return ch, nil
}

// pumpStream forwards decoded SSE events in upstream order until the body
// ends. The channel is closed when the stream is done, errored or cancelled.
func (p *geminiProvider) pumpStream(ctx context.Context, body io.ReadCloser, ch chan<- StreamChunk) {
	defer close(ch)
	defer body.Close()

	scanner := bufio.NewScanner(body)
	// Single SSE events can carry large text parts.
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if !bytes.HasPrefix(line, []byte("data:")) {
			continue
		}
		data := bytes.TrimSpace(bytes.TrimPrefix(line, []byte("data:")))
		if len(data) == 0 || bytes.Equal(data, []byte("[DONE]")) {
			continue
		}

		var event generateResponse
		if err := json.Unmarshal(data, &event); err != nil {
			p.send(ctx, ch, StreamChunk{Err: fmt.Errorf("failed to decode stream chunk: %w", err)})
			return
		}
		text := event.text()
		if text == "" {
			continue
		}
		if !p.send(ctx, ch, StreamChunk{Text: text}) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		p.send(ctx, ch, StreamChunk{Err: fmt.Errorf("stream read failed: %w", err)})
	}
}

func (p *geminiProvider) send(ctx context.Context, ch chan<- StreamChunk, chunk StreamChunk) bool {
	select {
	case ch <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}

func (p *geminiProvider) GenerateContent(ctx context.Context, modelID string, prompt string) (string, error) {
	body, err := json.Marshal(p.newRequest(nil, prompt))
	if err != nil {
		return "", fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.endpoint(modelID, "generateContent", ""), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("could not create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("model %s returned status %d: %s", modelID, resp.StatusCode, string(bodyBytes))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("could not decode response: %w", err)
	}
	text := genResp.text()
	if text == "" {
		return "", fmt.Errorf("model %s returned no candidates", modelID)
	}
	return text, nil
}
