package assistantService

import (
	"context"
	"fmt"
	"strings"

	"ProjectSenorita/internal/api/assistant"
	"ProjectSenorita/internal/entity"
	contextPkg "ProjectSenorita/pkg/context"
	"ProjectSenorita/pkg/intent"

	"github.com/sirupsen/logrus"
)

// historyResetTags are the utility intents that end any conversational
// thread: once the user switches to one of these, the chat history no
// longer describes the current exchange.
var historyResetTags = map[intent.Tag]bool{
	intent.TagOpenApp:          true,
	intent.TagTime:             true,
	intent.TagTimeInLocation:   true,
	intent.TagSetName:          true,
	intent.TagRecallName:       true,
	intent.TagGreet:            true,
	intent.TagSetReminder:      true,
	intent.TagRecallNotes:      true,
	intent.TagGetDirections:    true,
	intent.TagToggleHardware:   true,
	intent.TagOpenMobileApp:    true,
	intent.TagChangeVolume:     true,
	intent.TagSetCalendarEvent: true,
	intent.TagClearNotes:       true,
}

func (s *assistantService) ProcessCommand(ctx context.Context, req assistant.CommandRequest) (env assistant.Envelope, err error) {
	requestID := contextPkg.GetRequestID(ctx)

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return assistant.Envelope{}, assistant.ErrEmptyCommand
	}

	// A panic in any handler must never take down the request: the
	// caller always gets a spoken apology.
	defer func() {
		if r := recover(); r != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"panic":      r,
			}).Error("Recovered from panic while processing command")
			env = assistant.TextEnvelope("Sorry, something went wrong while handling that. Please try again.")
			err = nil
		}
	}()

	// Callers without real user accounts share one profile, the same
	// way a single-device deployment would.
	if req.UserID == "" {
		req.UserID = "default"
	}

	session := s.sessions.Acquire(req.SessionID, req.UserID, s.now())
	prof := s.profiles.Load(session.UserID)

	match := s.matcher.Match(text)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": session.ID,
		"intent":     string(match.Tag),
	}).Debug("Matched command intent")

	if historyResetTags[match.Tag] {
		session.ResetHistory()
	}

	env = s.route(ctx, session, prof, match, text)
	s.trackContext(session, env.Type, text)

	s.recordCommand(ctx, session, text, match.Tag, env)

	return env, nil
}

func (s *assistantService) route(ctx context.Context, session *entity.SessionContext, prof *entity.UserProfile, match intent.Match, raw string) assistant.Envelope {
	// An armed platform question wins over fresh intent matching: any
	// turn carrying a free-text query is read as "where to play it".
	if session.PendingMediaQuery != "" && match.Slots.Query != "" {
		if env, handled := s.resolvePlatformContinuation(session, match.Slots.Query); handled {
			return env
		}
	}

	if isMoreFollowUp(raw) {
		return s.handleImagePagination(ctx, session)
	}

	switch match.Tag {
	case intent.TagWakeWord:
		return assistant.TextEnvelope(fmt.Sprintf("Yes, %s? How can I help you?", prof.NameOr("there")))

	case intent.TagSetName:
		return s.handleSetName(session, prof, match.Slots.Name)

	case intent.TagRecallName:
		return s.handleRecallName(prof)

	case intent.TagTime:
		return s.handleLocalTime()

	case intent.TagTimeInLocation:
		return s.handleTimeInLocation(ctx, session, prof, match.Slots.Location)

	case intent.TagGetWeather:
		return s.handleWeather(ctx, session, match.Slots.Location)

	case intent.TagGetNews:
		return s.handleNews(ctx, match.Slots.Topic)

	case intent.TagGetApod:
		return s.handleApod(ctx)

	case intent.TagGetTrivia:
		return s.handleTrivia(ctx)

	case intent.TagToggleHardware:
		return s.handleHardware(match.Slots.Device, match.Slots.State)

	case intent.TagChangeVolume:
		return s.handleVolume(match.Slots.State)

	case intent.TagOpenMobileApp, intent.TagOpenApp:
		return s.handleOpenApp(match.Slots.AppName)

	case intent.TagSetReminder:
		return s.handleSetReminder(ctx, session, prof, match.Slots.Query)

	case intent.TagRecallNotes:
		return s.handleRecallNotes(prof)

	case intent.TagClearNotes:
		return s.handleClearNotes(session, prof)

	case intent.TagSetCalendarEvent:
		return s.handleCalendarEvent(ctx, session, match.Slots.Query)

	case intent.TagGetDirections:
		return s.handleDirections(match.Slots.Query)

	case intent.TagMediaRequest:
		return s.handleMediaRequest(ctx, session, match.Slots.Query)

	case intent.TagPlayMusic, intent.TagPlayVideo:
		return s.handlePlayRequest(session, match.Slots.Query)

	case intent.TagSendMessage:
		return s.handleSendMessage(ctx, session, match.Slots)

	case intent.TagHowAreYou:
		return s.handleHowAreYou(ctx, session, prof, raw)

	case intent.TagGreet:
		return s.handleGreet(session, prof)

	case intent.TagSearch:
		return s.handleSearch(ctx, session, prof, match.Slots.Query)

	default:
		return assistant.TextEnvelope("Sorry, I didn't recognize that command. Try 'open chrome' or 'what's the time'.")
	}
}

// isMoreFollowUp treats short utterances containing "more" as a request
// for the next page of whatever was shown last.
func isMoreFollowUp(raw string) bool {
	lower := strings.ToLower(strings.TrimSpace(raw))
	words := strings.Fields(lower)
	if len(words) == 0 || len(words) > 3 {
		return false
	}
	for _, w := range words {
		if strings.Trim(w, ".,!?") == "more" {
			return true
		}
	}
	return false
}

func (s *assistantService) recordCommand(ctx context.Context, session *entity.SessionContext, transcript string, tag intent.Tag, env assistant.Envelope) {
	if s.repo == nil {
		return
	}

	id, err := s.utils.NewULIDFromTimestamp(s.now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Failed to generate command log id")
		return
	}

	client, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Failed to open repository client for command log")
		return
	}

	logEntry := entity.CommandLog{
		ID:           id,
		SessionID:    session.ID,
		UserID:       session.UserID,
		Transcript:   transcript,
		Intent:       string(tag),
		ResponseType: env.Type,
		ResponseText: env.SpokenText(),
		CreatedAt:    s.now(),
	}

	if err := client.Commands.CreateCommandLog(ctx, logEntry); err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": session.ID,
			"error":      err.Error(),
		}).Error("Failed to persist command log")
	}
}
