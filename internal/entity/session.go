package entity

import "time"

type Topic string

const (
	TopicImageSearch  Topic = "image_search"
	TopicMediaContent Topic = "media_content"
	TopicWeather      Topic = "weather"
	TopicGeneral      Topic = "general"
)

type Mood string

const (
	MoodPositive  Mood = "positive"
	MoodNeedsHelp Mood = "needs_help"
	MoodUrgent    Mood = "urgent"
	MoodNeutral   Mood = "neutral"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// MaxTurnHistory bounds the conversational memory to the five most recent
// exchanges (one exchange = user turn + assistant turn).
const MaxTurnHistory = 10

// SessionContext is the transient per-conversation state. It is never
// persisted and never shared between sessions: the session manager hands
// out one owned instance per session id.
type SessionContext struct {
	ID     string
	UserID string

	// PendingMediaQuery arms the platform-disambiguation continuation:
	// non-empty means the next free-text turn answers "which platform?".
	PendingMediaQuery string

	// LastImageQuery and LastImageOffset drive the "more" pagination
	// continuation. The offset is 1-based and advances by the page size.
	LastImageQuery  string
	LastImageOffset int

	TurnHistory []Turn
	Topic       Topic
	Mood        Mood
	LastAction  string

	CreatedAt    time.Time
	LastActivity time.Time
}

// AppendExchange records one user/assistant exchange, trimming the oldest
// turns first once the bound is exceeded.
func (s *SessionContext) AppendExchange(userText, assistantText string) {
	s.TurnHistory = append(s.TurnHistory,
		Turn{Role: RoleUser, Text: userText},
		Turn{Role: RoleAssistant, Text: assistantText},
	)
	if len(s.TurnHistory) > MaxTurnHistory {
		s.TurnHistory = s.TurnHistory[len(s.TurnHistory)-MaxTurnHistory:]
	}
}

func (s *SessionContext) ResetHistory() {
	s.TurnHistory = nil
}
