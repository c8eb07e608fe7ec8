package entity

import "time"

// CommandLog is one processed turn, persisted for history and diagnostics.
type CommandLog struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	UserID       string    `json:"user_id"`
	Transcript   string    `json:"transcript"`
	Intent       string    `json:"intent"`
	ResponseType string    `json:"response_type"`
	ResponseText string    `json:"response_text"`
	CreatedAt    time.Time `json:"created_at"`
}
