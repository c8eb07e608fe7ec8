package assistantService

import (
	"testing"

	"ProjectSenorita/internal/api/assistant"
	"ProjectSenorita/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestScanJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
		ok    bool
	}{
		{
			name:  "bare object",
			reply: `{"task": "buy milk"}`,
			want:  `{"task": "buy milk"}`,
			ok:    true,
		},
		{
			name:  "fenced code block",
			reply: "```json\n{\"task\": \"buy milk\"}\n```",
			want:  `{"task": "buy milk"}`,
			ok:    true,
		},
		{
			name:  "prose around the object",
			reply: `Sure! Here you go: {"type": "favorite"} Hope that helps.`,
			want:  `{"type": "favorite"}`,
			ok:    true,
		},
		{
			name:  "nested braces",
			reply: `{"outer": {"inner": 1}}`,
			want:  `{"outer": {"inner": 1}}`,
			ok:    true,
		},
		{
			name:  "braces inside strings are ignored",
			reply: `{"value": "curly } brace \" here"}`,
			want:  `{"value": "curly } brace \" here"}`,
			ok:    true,
		},
		{
			name:  "no object at all",
			reply: "I could not produce JSON for that.",
			ok:    false,
		},
		{
			name:  "unterminated object",
			reply: `{"task": "buy milk"`,
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := scanJSONObject(tt.reply)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsMoreFollowUp(t *testing.T) {
	assert.True(t, isMoreFollowUp("more"))
	assert.True(t, isMoreFollowUp("More!"))
	assert.True(t, isMoreFollowUp("show me more"))
	assert.True(t, isMoreFollowUp("more please"))

	assert.False(t, isMoreFollowUp("show me more pictures of cats"))
	assert.False(t, isMoreFollowUp("moreover it rained"))
	assert.False(t, isMoreFollowUp(""))
}

func TestTrackContextBuckets(t *testing.T) {
	svc := newTestService(t, Collaborators{})
	session := &entity.SessionContext{}

	svc.trackContext(session, assistant.TypeImageList, "show me pictures of cats")
	assert.Equal(t, entity.TopicImageSearch, session.Topic)
	assert.Equal(t, entity.MoodNeutral, session.Mood)
	assert.Equal(t, assistant.TypeImageList, session.LastAction)

	svc.trackContext(session, assistant.TypeMediaDeepLink, "play some music")
	assert.Equal(t, entity.TopicMediaContent, session.Topic)

	svc.trackContext(session, assistant.TypeText, "what's the weather, thanks")
	assert.Equal(t, entity.TopicWeather, session.Topic)
	assert.Equal(t, entity.MoodPositive, session.Mood)

	svc.trackContext(session, assistant.TypeText, "i have a problem, fix it quickly")
	assert.Equal(t, entity.TopicGeneral, session.Topic)
	assert.Equal(t, entity.MoodNeedsHelp, session.Mood)
}

func TestBuildSystemPromptDefaults(t *testing.T) {
	session := &entity.SessionContext{Topic: entity.TopicGeneral, Mood: entity.MoodNeutral}
	prompt := buildSystemPrompt(session, entity.DefaultProfile())

	assert.Contains(t, prompt, "friend")
	assert.Contains(t, prompt, "general")
	assert.Contains(t, prompt, "none")
	assert.Contains(t, prompt, "neutral")
}
