package intent

// Tag is the closed enumeration of intents the matcher can produce.
type Tag string

const (
	TagSetName          Tag = "set_name"
	TagRecallName       Tag = "recall_name"
	TagTime             Tag = "time"
	TagTimeInLocation   Tag = "time_in_location"
	TagGetWeather       Tag = "get_weather"
	TagGetNews          Tag = "get_news"
	TagGetApod          Tag = "get_apod"
	TagGetTrivia        Tag = "get_trivia"
	TagToggleHardware   Tag = "toggle_hardware"
	TagChangeVolume     Tag = "change_volume"
	TagOpenMobileApp    Tag = "open_mobile_app"
	TagOpenApp          Tag = "open_app"
	TagSetReminder      Tag = "set_reminder"
	TagRecallNotes      Tag = "recall_notes"
	TagClearNotes       Tag = "clear_notes"
	TagSetCalendarEvent Tag = "set_calendar_event"
	TagGetDirections    Tag = "get_directions"
	TagMediaRequest     Tag = "media_request"
	TagPlayMusic        Tag = "play_music"
	TagPlayVideo        Tag = "play_video"
	TagSendMessage      Tag = "send_message"
	TagHowAreYou        Tag = "how_are_you"
	TagGreet            Tag = "greet"
	TagSearch           Tag = "search"
	TagWakeWord         Tag = "wake_word"
	TagUnknown          Tag = "unknown"
)

// Slots carries the values a rule extracted from the utterance. The set
// of populated fields is determined by the rule that matched; an empty
// string means the slot was not captured at all.
type Slots struct {
	Query    string
	Name     string
	Location string
	Topic    string
	Device   string
	State    string
	AppName  string
	Contact  string
	Message  string
	Platform string
	Phrase   string
}

// Match is the matcher's verdict for one utterance: exactly one tag plus
// the slots its rule extracted.
type Match struct {
	Tag   Tag
	Slots Slots
}
