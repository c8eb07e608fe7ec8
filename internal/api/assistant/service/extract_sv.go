package assistantService

import (
	"context"
	"fmt"
	"strings"

	"ProjectSenorita/internal/entity"
	"ProjectSenorita/pkg/gemini"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// scanJSONObject pulls the first balanced JSON object out of a model
// reply, tolerating prose or code fences around it.
func scanJSONObject(reply string) (string, bool) {
	start := strings.IndexByte(reply, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(reply); i++ {
		c := reply[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return reply[start : i+1], true
			}
		}
	}
	return "", false
}

type reminderExtraction struct {
	Task         string  `json:"task"`
	TaskOnly     string  `json:"task_only"`
	ReminderTime *string `json:"reminder_time"`
}

const reminderPromptFmt = `Analyze the following reminder request.
Current time is: %s (in the format YYYY-MM-DD HH:MM:SS).

Rules:
1. Extract the primary 'task' or 'note' to be remembered.
2. Extract the 'reminder_time' as a clear, absolute date and time string (e.g., "Tuesday at 3 PM" or "2025-10-22 10:00 AM"). If no time is found, set it to NULL.
3. Extract the 'task_only' without the time phrases, for cleaner storage.
4. If the query is just a generic note without any time/date mentioned (e.g., "buy milk"), set reminder_time to NULL.

Query: "%s"

Respond ONLY in a JSON format like this:
{ "task": "call mom", "task_only": "call mom", "reminder_time": "2025-10-22 10:00 AM" }
OR (if no time is detected):
{ "task": "buy milk", "task_only": "buy milk", "reminder_time": null }
DO NOT include any explanation or additional text outside the JSON block.`

// extractReminder asks the model to split a reminder utterance into the
// task and an optional absolute time. Any failure falls back to storing
// the raw query untimed, so a flaky model never loses a note.
func (s *assistantService) extractReminder(ctx context.Context, query string) reminderExtraction {
	fallback := reminderExtraction{Task: query, TaskOnly: strings.TrimSpace(query)}
	if s.llm == nil {
		return fallback
	}

	prompt := fmt.Sprintf(reminderPromptFmt, s.now().Format("2006-01-02 15:04:05"), query)
	reply, err := s.llm.Generate(ctx, gemini.Request{Query: prompt})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Reminder extraction call failed, storing raw note")
		return fallback
	}

	obj, ok := scanJSONObject(reply)
	if !ok {
		obj = strings.TrimSpace(reply)
	}

	var data reminderExtraction
	if err := json.UnmarshalFromString(obj, &data); err != nil || strings.TrimSpace(data.TaskOnly) == "" {
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Warn("Failed to parse reminder extraction, storing raw note")
		}
		return fallback
	}

	if data.ReminderTime != nil && strings.EqualFold(strings.TrimSpace(*data.ReminderTime), "null") {
		data.ReminderTime = nil
	}
	return data
}

type calendarExtraction struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	AllDay      bool   `json:"all_day"`
}

const calendarPromptFmt = `Analyze the following event request.
Current time is: %s (in the format YYYY-MM-DD HH:MM:SS).

Rules:
1. Extract the 'title' of the event/meeting.
2. Extract the 'start_time' as a string in ISO 8601 format (YYYY-MM-DD HH:MM:SS). Resolve relative times (e.g., 'tomorrow 3pm').
3. Extract the 'end_time' in the same ISO 8601 format. If duration is not specified, set end_time 1 hour after start_time. If no time/date is found, use null for both.
4. Set 'all_day' to true if the event is clearly an all-day event (e.g., "birthday on Monday") or false otherwise.
5. Extract a brief 'description' for the event, or use the query itself.

Query: "%s"

Respond ONLY in a JSON format like this:
{ "title": "Team Meeting", "description": "Discuss project launch.", "start_time": "2025-11-20 15:00:00", "end_time": "2025-11-20 16:00:00", "all_day": false }
OR (if no time is detected):
{ "title": null, "description": null, "start_time": null, "end_time": null, "all_day": false }
DO NOT include any explanation or additional text outside the JSON block.`

// extractCalendarEvent returns the zero value when extraction fails; the
// caller turns missing title/times into a clarification reply.
func (s *assistantService) extractCalendarEvent(ctx context.Context, query string) calendarExtraction {
	if s.llm == nil {
		return calendarExtraction{}
	}

	prompt := fmt.Sprintf(calendarPromptFmt, s.now().Format("2006-01-02 15:04:05"), query)
	reply, err := s.llm.Generate(ctx, gemini.Request{Query: prompt})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Calendar extraction call failed")
		return calendarExtraction{}
	}

	obj, ok := scanJSONObject(reply)
	if !ok {
		obj = strings.TrimSpace(reply)
	}

	var data calendarExtraction
	if err := json.UnmarshalFromString(obj, &data); err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Failed to parse calendar extraction")
		return calendarExtraction{}
	}
	return data
}

type personalInfoExtraction struct {
	Type  string `json:"type"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

const personalInfoPromptFmt = `Analyze the user's sentence: '%s'.
If the sentence is setting a personal preference (e.g., 'My favorite color is blue' or 'I like watching sci-fi movies'), extract the key and the value.
Key examples: 'favorite color', 'favorite food', 'interest', 'hobby'.
Value examples: 'blue', 'pizza', 'sci-fi movies'.

Respond ONLY in a JSON format like this:
{ "type": "favorite", "key": "favorite food", "value": "pizza" }
OR
{ "type": "interest", "value": "sci-fi movies" }
OR if no personal info is found:
{ "type": "none" }
DO NOT include any explanation or additional text outside the JSON block.`

// extractPersonalInfo detects and saves a stated preference. It returns
// the confirmation to speak and whether anything was saved.
func (s *assistantService) extractPersonalInfo(ctx context.Context, userID, query string, prof *entity.UserProfile) (string, bool) {
	if s.llm == nil {
		return "", false
	}

	reply, err := s.llm.Generate(ctx, gemini.Request{Query: fmt.Sprintf(personalInfoPromptFmt, query)})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Personal info extraction call failed")
		return "", false
	}

	obj, ok := scanJSONObject(reply)
	if !ok {
		return "", false
	}

	var data personalInfoExtraction
	if err := json.UnmarshalFromString(obj, &data); err != nil {
		return "", false
	}

	switch data.Type {
	case "favorite":
		key := strings.ToLower(strings.TrimSpace(data.Key))
		value := strings.TrimSpace(data.Value)
		if key == "" || value == "" {
			return "", false
		}
		prof.FavoriteThings[key] = value
		if err := s.profiles.Save(userID, prof); err != nil {
			s.log.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to save profile after favorite update")
		}
		return fmt.Sprintf("Got it! I'll remember that your %s is **%s**.", key, value), true

	case "interest":
		value := strings.TrimSpace(data.Value)
		if value == "" || !prof.AddInterest(value) {
			return "", false
		}
		if err := s.profiles.Save(userID, prof); err != nil {
			s.log.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Failed to save profile after interest update")
		}
		return fmt.Sprintf("Cool! I've noted that you are interested in **%s**.", value), true
	}

	return "", false
}
