package assistantService

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"ProjectSenorita/internal/api/assistant"
	assistantRepository "ProjectSenorita/internal/api/assistant/repository"
	"ProjectSenorita/internal/entity"
	"ProjectSenorita/internal/profile"
	"ProjectSenorita/pkg/gemini"
	"ProjectSenorita/pkg/images"
	"ProjectSenorita/pkg/intent"
	"ProjectSenorita/pkg/utils"
	"ProjectSenorita/pkg/weather"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	fn func(req gemini.Request) (string, error)
}

func (s *stubLLM) Generate(_ context.Context, req gemini.Request) (string, error) {
	return s.fn(req)
}

type stubImageSearch struct {
	starts []int
	fn     func(query string, startIndex int) ([]images.Image, error)
}

func (s *stubImageSearch) Search(_ context.Context, query string, startIndex, _ int) ([]images.Image, error) {
	s.starts = append(s.starts, startIndex)
	return s.fn(query, startIndex)
}

type stubWeather struct {
	calls int
	fn    func(city string) (*weather.Report, error)
}

func (s *stubWeather) Current(_ context.Context, city string) (*weather.Report, error) {
	s.calls++
	return s.fn(city)
}

type memoryCache struct {
	values map[string]string
}

func (c *memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	if c.values == nil {
		c.values = make(map[string]string)
	}
	c.values[key] = value
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	return "", errors.New("cache miss")
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestService(t *testing.T, collab Collaborators) *assistantService {
	t.Helper()

	log := testLogger()
	store, err := profile.NewStore(t.TempDir(), log)
	require.NoError(t, err)

	return &assistantService{
		log:      log,
		matcher:  intent.NewMatcher(),
		sessions: NewSessionManager(log),
		profiles: store,
		utils:    utils.New(),
		llm:      collab.LLM,
		images:   collab.Images,
		weather:  collab.Weather,
		news:     collab.News,
		apod:     collab.Apod,
		trivia:   collab.Trivia,
		cache:    collab.Cache,
		whatsapp: collab.Whatsapp,
		now: func() time.Time {
			return time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
		},
	}
}

func say(t *testing.T, svc *assistantService, sessionID, text string) assistant.Envelope {
	t.Helper()

	env, err := svc.ProcessCommand(context.Background(), assistant.CommandRequest{
		SessionID: sessionID,
		Text:      text,
	})
	require.NoError(t, err)
	return env
}

func TestProcessCommandRejectsEmptyText(t *testing.T) {
	svc := newTestService(t, Collaborators{})

	_, err := svc.ProcessCommand(context.Background(), assistant.CommandRequest{
		SessionID: "s1",
		Text:      "   ",
	})
	assert.Equal(t, assistant.ErrEmptyCommand, err)
}

func TestWakeWordUsesStoredName(t *testing.T) {
	svc := newTestService(t, Collaborators{})

	env := say(t, svc, "s1", "hey senorita")
	assert.Equal(t, assistant.TypeText, env.Type)
	assert.Equal(t, "Yes, there? How can I help you?", env.Content)

	say(t, svc, "s1", "my name is Alice")
	env = say(t, svc, "s1", "hey senorita")
	assert.Equal(t, "Yes, alice? How can I help you?", env.Content)
}

func TestSetAndRecallName(t *testing.T) {
	svc := newTestService(t, Collaborators{})

	env := say(t, svc, "s1", "my name is Priya")
	assert.Equal(t, "Got it! I will remember you as priya.", env.Content)

	env = say(t, svc, "s1", "what's my name")
	assert.Equal(t, "Your name is priya.", env.Content)
}

func TestPlatformDisambiguationTwoTurns(t *testing.T) {
	svc := newTestService(t, Collaborators{})

	env := say(t, svc, "s1", "play shape of you")
	assert.Equal(t, assistant.TypeText, env.Type)
	assert.Contains(t, env.Content, "I can play **shape of you**!")
	assert.Contains(t, env.Content, "which platform")

	env = say(t, svc, "s1", "spotify")
	assert.Equal(t, assistant.TypeMediaDeepLink, env.Type)
	assert.Equal(t, "spotify", env.Platform)
	assert.Equal(t, "shape of you", env.Query)
	assert.Equal(t, "spotify:search:shape+of+you", env.URL)
	assert.Contains(t, env.TextResponse, "**Spotify**")

	// The continuation is consumed: a later turn is matched fresh.
	session := svc.sessions.Acquire("s1", "default", svc.now())
	assert.Empty(t, session.PendingMediaQuery)
}

func TestInlinePlatformSkipsDisambiguation(t *testing.T) {
	svc := newTestService(t, Collaborators{})

	env := say(t, svc, "s1", "play shape of you on youtube")
	assert.Equal(t, assistant.TypeMediaDeepLink, env.Type)
	assert.Equal(t, "youtube", env.Platform)
	assert.Equal(t, "shape of you", env.Query)
	assert.Equal(t, "vnd.youtube://www.youtube.com/results?search_query=shape+of+you", env.URL)
}

func TestUnknownPlatformFallsBackToGoogle(t *testing.T) {
	svc := newTestService(t, Collaborators{})

	say(t, svc, "s1", "play despacito")
	env := say(t, svc, "s1", "winamp please")

	assert.Equal(t, assistant.TypeMediaDeepLink, env.Type)
	assert.Equal(t, "winamp", env.Platform)
	assert.Equal(t, "https://www.google.com/search?q=despacito+winamp+music+video", env.URL)
	assert.Contains(t, env.TextResponse, "**Google for winamp**")
}

func tenImages(query string, start int) ([]images.Image, error) {
	out := make([]images.Image, images.PageSize)
	for i := range out {
		out[i] = images.Image{URL: "https://img.example/" + query, Title: query}
	}
	return out, nil
}

func TestImagePaginationAdvancesByPageSize(t *testing.T) {
	search := &stubImageSearch{fn: tenImages}
	svc := newTestService(t, Collaborators{Images: search})

	env := say(t, svc, "s1", "show me pictures of cats")
	assert.Equal(t, assistant.TypeImageList, env.Type)
	assert.Equal(t, 1, env.StartIndex)
	assert.Len(t, env.Images, images.PageSize)

	env = say(t, svc, "s1", "more")
	assert.Equal(t, 11, env.StartIndex)

	env = say(t, svc, "s1", "show me more")
	assert.Equal(t, 21, env.StartIndex)

	env = say(t, svc, "s1", "more please")
	assert.Equal(t, 31, env.StartIndex)

	assert.Equal(t, []int{1, 11, 21, 31}, search.starts)
}

func TestFreshImageQueryResetsOffset(t *testing.T) {
	search := &stubImageSearch{fn: tenImages}
	svc := newTestService(t, Collaborators{Images: search})

	say(t, svc, "s1", "show me pictures of cats")
	say(t, svc, "s1", "more")

	env := say(t, svc, "s1", "show me pictures of dogs")
	assert.Equal(t, 1, env.StartIndex)
	assert.Equal(t, "pictures of dogs", env.Query)
	assert.Equal(t, []int{1, 11, 1}, search.starts)
}

func TestFreshImageFailureClearsPagination(t *testing.T) {
	search := &stubImageSearch{fn: func(string, int) ([]images.Image, error) {
		return nil, errors.New("quota exceeded")
	}}
	svc := newTestService(t, Collaborators{Images: search})

	env := say(t, svc, "s1", "show me pictures of cats")
	assert.Contains(t, env.Content, "couldn't find any relevant images")

	env = say(t, svc, "s1", "more")
	assert.Equal(t, "More of what? Ask me to show you some pictures first.", env.Content)
}

func TestPaginationFailureKeepsQuery(t *testing.T) {
	failNext := false
	search := &stubImageSearch{fn: func(query string, start int) ([]images.Image, error) {
		if failNext {
			return nil, nil
		}
		return tenImages(query, start)
	}}
	svc := newTestService(t, Collaborators{Images: search})

	say(t, svc, "s1", "show me pictures of cats")

	failNext = true
	env := say(t, svc, "s1", "more")
	assert.Contains(t, env.Content, "That's all I could find for 'pictures of cats'.")

	// The query survives a failed page, so a later "more" retries the
	// same offset instead of starting over.
	failNext = false
	env = say(t, svc, "s1", "more")
	assert.Equal(t, 11, env.StartIndex)
	assert.Equal(t, []int{1, 11, 11}, search.starts)
}

func TestMoreWithoutPriorImages(t *testing.T) {
	svc := newTestService(t, Collaborators{})

	env := say(t, svc, "s1", "more")
	assert.Equal(t, "More of what? Ask me to show you some pictures first.", env.Content)
}

func TestFavoriteIsRememberedAcrossTurns(t *testing.T) {
	llm := &stubLLM{fn: func(req gemini.Request) (string, error) {
		return `{"type": "favorite", "key": "Favorite Food", "value": "pizza"}`, nil
	}}
	svc := newTestService(t, Collaborators{LLM: llm})

	env := say(t, svc, "s1", "my favorite food is pizza")
	assert.Equal(t, "Got it! I'll remember that your favorite food is **pizza**.", env.Content)

	prof := svc.profiles.Load("default")
	assert.Equal(t, "pizza", prof.FavoriteThings["favorite food"])
}

func TestInterestIsRemembered(t *testing.T) {
	llm := &stubLLM{fn: func(req gemini.Request) (string, error) {
		return `{"type": "interest", "key": null, "value": "astronomy"}`, nil
	}}
	svc := newTestService(t, Collaborators{LLM: llm})

	env := say(t, svc, "s1", "i'm really into astronomy lately")
	assert.Equal(t, "Cool! I've noted that you are interested in **astronomy**.", env.Content)
	assert.Contains(t, svc.profiles.Load("default").Interests, "astronomy")
}

func TestReminderFallsBackToRawTextOnBadExtraction(t *testing.T) {
	llm := &stubLLM{fn: func(req gemini.Request) (string, error) {
		return "sure, noted!", nil
	}}
	svc := newTestService(t, Collaborators{LLM: llm})

	env := say(t, svc, "s1", "remind me to buy milk")
	assert.Equal(t, "Okay, I've noted: **buy milk**.", env.Content)

	env = say(t, svc, "s1", "what's on my list")
	assert.Contains(t, env.Content, "buy milk")

	env = say(t, svc, "s1", "clear my list")
	assert.Equal(t, "I have completely cleared your notes and reminders list.", env.Content)

	env = say(t, svc, "s1", "what's on my list")
	assert.Equal(t, "You have no notes or reminders currently stored. Want to add one?", env.Content)
}

func TestTimedReminderIncludesReminderTime(t *testing.T) {
	llm := &stubLLM{fn: func(req gemini.Request) (string, error) {
		return `{"task": "call mom at 5pm", "task_only": "call mom", "reminder_time": "2026-08-28 17:00"}`, nil
	}}
	svc := newTestService(t, Collaborators{LLM: llm})

	env := say(t, svc, "s1", "remind me to call mom at 5pm")
	assert.Equal(t, "Okay, I've noted: **call mom**. I will remind you about that on **2026-08-28 17:00**.", env.Content)
}

func TestCalendarEventEnvelope(t *testing.T) {
	llm := &stubLLM{fn: func(req gemini.Request) (string, error) {
		return `{"title": "Dinner with Sam", "description": "Table for two", "start_time": "2026-08-29 19:00", "end_time": "2026-08-29 20:00", "all_day": false}`, nil
	}}
	svc := newTestService(t, Collaborators{LLM: llm})

	env := say(t, svc, "s1", "add an event for dinner with sam tomorrow at 7pm")
	assert.Equal(t, assistant.TypeAddCalendarEvent, env.Type)
	assert.Equal(t, "Dinner with Sam", env.Title)
	assert.Equal(t, "2026-08-29 19:00", env.StartTime)
	assert.Equal(t, "2026-08-29 20:00", env.EndTime)
	assert.Contains(t, env.TextResponse, "**Dinner with Sam**")
}

func TestCalendarRefusesNullExtraction(t *testing.T) {
	llm := &stubLLM{fn: func(req gemini.Request) (string, error) {
		return `{"title": null, "description": null, "start_time": null, "end_time": null, "all_day": false}`, nil
	}}
	svc := newTestService(t, Collaborators{LLM: llm})

	env := say(t, svc, "s1", "add an event")
	assert.Equal(t, "I'm sorry, I couldn't figure out the title and timing for that event. Could you be more specific?", env.Content)
}

func TestTurnHistoryIsBounded(t *testing.T) {
	llm := &stubLLM{fn: func(req gemini.Request) (string, error) {
		if req.SystemPrompt == "" {
			// Extraction probe: nothing personal in the utterance.
			return `{"type": "none", "key": null, "value": null}`, nil
		}
		return "ok", nil
	}}
	svc := newTestService(t, Collaborators{LLM: llm})

	for i := 0; i < 6; i++ {
		say(t, svc, "s1", "tell me something about space")
	}

	session := svc.sessions.Acquire("s1", "default", svc.now())
	assert.Len(t, session.TurnHistory, 10)
}

func TestHardwareToggleEnvelope(t *testing.T) {
	svc := newTestService(t, Collaborators{})

	env := say(t, svc, "s1", "turn on the torch")
	assert.Equal(t, assistant.TypeHardwareToggle, env.Type)
	assert.Equal(t, "torch", env.Device)
	assert.Equal(t, "on", env.State)
	assert.Equal(t, "Requesting the app to turn **on** the **torch**.", env.TextResponse)
}

func TestVolumeUsesHardwareToggle(t *testing.T) {
	svc := newTestService(t, Collaborators{})

	env := say(t, svc, "s1", "turn the volume up")
	assert.Equal(t, assistant.TypeHardwareToggle, env.Type)
	assert.Equal(t, "volume", env.Device)
	assert.Equal(t, "up", env.State)
}

func TestOpenAppEnvelope(t *testing.T) {
	svc := newTestService(t, Collaborators{})

	env := say(t, svc, "s1", "open chrome")
	assert.Equal(t, assistant.TypeOpenMobileApp, env.Type)
	assert.Equal(t, "Chrome", env.AppName)
	assert.Equal(t, "Requesting the app to open **Chrome**.", env.TextResponse)
}

func TestDirectionsEnvelope(t *testing.T) {
	svc := newTestService(t, Collaborators{})

	env := say(t, svc, "s1", "navigate directions to nearest coffee shop")
	assert.Equal(t, assistant.TypeMapsSearch, env.Type)
	assert.Equal(t, "nearest coffee shop", env.Query)
	assert.Equal(t, "Opening Google Maps now to search for **Nearest Coffee Shop**.", env.TextResponse)
}

func TestSendMessageDefaultsToSms(t *testing.T) {
	svc := newTestService(t, Collaborators{})

	env := say(t, svc, "s1", "send a message to john saying hello there.")
	assert.Equal(t, assistant.TypeSendMessage, env.Type)
	assert.Equal(t, "john", env.Contact)
	assert.Equal(t, "sms", env.Platform)
	assert.Equal(t, "hello there", env.Message)
	assert.Equal(t, "Sending message to john on sms.", env.TextResponse)
}

func TestWeatherReplyIsCached(t *testing.T) {
	w := &stubWeather{fn: func(city string) (*weather.Report, error) {
		return &weather.Report{City: city, Description: "clear sky", TempC: 31}, nil
	}}
	cache := &memoryCache{}
	svc := newTestService(t, Collaborators{Weather: w, Cache: cache})

	env := say(t, svc, "s1", "what's the weather in london")
	assert.Equal(t, "The weather in London is currently clear sky, with a temperature of 31 degrees Celsius.", env.Content)

	env = say(t, svc, "s1", "what's the weather in london")
	assert.Equal(t, 1, w.calls)
	assert.Contains(t, env.Content, "clear sky")
}

func TestWeatherWithoutCityAsksForOne(t *testing.T) {
	svc := newTestService(t, Collaborators{})

	env := say(t, svc, "s1", "what's the weather")
	assert.Equal(t, "Which city would you like the weather for?", env.Content)
}

func TestHistoryUnavailableWithoutDatabase(t *testing.T) {
	svc := newTestService(t, Collaborators{})

	_, err := svc.CommandHistory(context.Background(), "s1", 10)
	assert.Equal(t, assistant.ErrHistoryUnavailable, err)

	_, err = svc.UserCommandHistory(context.Background(), "u1", 10)
	assert.Equal(t, assistant.ErrHistoryUnavailable, err)
}

type stubCommands struct {
	logs []entity.CommandLog
}

func (s *stubCommands) CreateCommandLog(_ context.Context, cmd entity.CommandLog) error {
	s.logs = append(s.logs, cmd)
	return nil
}

func (s *stubCommands) GetCommandLogsBySessionID(_ context.Context, sessionID string, limit int) ([]entity.CommandLog, error) {
	var out []entity.CommandLog
	for _, l := range s.logs {
		if l.SessionID == sessionID && len(out) < limit {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *stubCommands) GetCommandLogsByUserID(_ context.Context, userID string, limit int) ([]entity.CommandLog, error) {
	var out []entity.CommandLog
	for _, l := range s.logs {
		if l.UserID == userID && len(out) < limit {
			out = append(out, l)
		}
	}
	return out, nil
}

type stubRepository struct {
	commands *stubCommands
}

func (s *stubRepository) NewClient(bool) (assistantRepository.Client, error) {
	return assistantRepository.Client{
		Commands: s.commands,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

func TestUserCommandHistorySpansSessions(t *testing.T) {
	commands := &stubCommands{}
	svc := newTestService(t, Collaborators{})
	svc.repo = &stubRepository{commands: commands}

	say(t, svc, "s1", "turn on the torch")
	say(t, svc, "s2", "open chrome")

	items, err := svc.UserCommandHistory(context.Background(), "default", 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "s1", items[0].SessionID)
	assert.Equal(t, assistant.TypeHardwareToggle, items[0].ResponseType)
	assert.Equal(t, "s2", items[1].SessionID)
	assert.Equal(t, "open chrome", items[1].Transcript)

	bySession, err := svc.CommandHistory(context.Background(), "s1", 10)
	require.NoError(t, err)
	require.Len(t, bySession, 1)
	assert.Equal(t, "turn on the torch", bySession[0].Transcript)
}
