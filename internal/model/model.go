package model

import "time"

// Sender identifies who authored a message within a session.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is a single turn in a conversation. It has no identity of its own
// beyond its position in the session's message list. Text may contain inline
// math markup and literal or real line breaks.
type Message struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// Session is one persisted conversation thread. ID is immutable once
// assigned; Messages is append-only and saved in full on every update.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionSummary is the listing view of a session, without its messages.
type SessionSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summary strips a session down to its listing fields.
func (s *Session) Summary() SessionSummary {
	return SessionSummary{ID: s.ID, Title: s.Title, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
}

// HistoryEntry is one turn of client-supplied conversation history as sent to
// the chat relay. Role is free-form on the wire; normalization maps anything
// that is not "user" to the upstream "model" role.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MotionParams are the animation parameters extracted from a free-text
// physics question and handed to the render pipeline.
type MotionParams struct {
	Title           string  `json:"title"`
	MotionType      string  `json:"motionType"`
	InitialVelocity float64 `json:"initialVelocity"`
	Acceleration    float64 `json:"acceleration"`
	Angle           float64 `json:"angle"`
	ShowGraph       bool    `json:"showGraph"`
}
