package assistant

import (
	"time"

	"ProjectSenorita/pkg/images"
)

type CommandRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	UserID    string `json:"user_id"`
	Text      string `json:"text" validate:"required,min=1,max=500"`
}

// Envelope is the structured reply for a single command. Type selects
// which of the optional fields are meaningful; everything else is
// omitted from the wire form.
type Envelope struct {
	Type         string         `json:"type"`
	Content      string         `json:"content,omitempty"`
	TextResponse string         `json:"text_response,omitempty"`
	Device       string         `json:"device,omitempty"`
	State        string         `json:"state,omitempty"`
	AppName      string         `json:"app_name,omitempty"`
	URL          string         `json:"url,omitempty"`
	Query        string         `json:"query,omitempty"`
	StartIndex   int            `json:"start_index,omitempty"`
	Images       []images.Image `json:"images,omitempty"`
	Title        string         `json:"title,omitempty"`
	Description  string         `json:"description,omitempty"`
	StartTime    string         `json:"start_time,omitempty"`
	EndTime      string         `json:"end_time,omitempty"`
	AllDay       bool           `json:"all_day,omitempty"`
	Contact      string         `json:"contact,omitempty"`
	Message      string         `json:"message,omitempty"`
	Platform     string         `json:"platform,omitempty"`
}

const (
	TypeText             = "text"
	TypeImageList        = "image_list"
	TypeHardwareToggle   = "hardware_toggle"
	TypeOpenMobileApp    = "open_mobile_app"
	TypeMediaDeepLink    = "media_deep_link"
	TypeMapsSearch       = "maps_search"
	TypeAddCalendarEvent = "add_calendar_event"
	TypeSendMessage      = "send_message"
)

func TextEnvelope(content string) Envelope {
	return Envelope{Type: TypeText, Content: content}
}

// SpokenText is what a voice front end should read aloud for this
// envelope, regardless of its type.
func (e Envelope) SpokenText() string {
	if e.Type == TypeText {
		return e.Content
	}
	return e.TextResponse
}

type CommandHistoryItem struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	Transcript   string    `json:"transcript"`
	Intent       string    `json:"intent"`
	ResponseType string    `json:"response_type"`
	ResponseText string    `json:"response_text"`
	CreatedAt    time.Time `json:"created_at"`
}
