package assistantService

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"ProjectSenorita/internal/api/assistant"
	"ProjectSenorita/internal/entity"
	"ProjectSenorita/pkg/gemini"

	"github.com/sirupsen/logrus"
)

const personaPromptFmt = `You are Senorita, a helpful, friendly, and intelligent personal assistant. You are designed to sound human and conversational, not like an AI or language model.

Key traits:
- Be warm, friendly, and engaging
- Remember context from previous messages in the conversation
- Ask follow-up questions when appropriate
- Show genuine interest in helping the user
- Use natural, conversational language
- Be concise but not robotic
- Remember the user's name and preferences when mentioned
- Adapt your tone to match the user's mood and needs

Current context:
- User name: %s
- Current topic: %s
- Last action: %s
- User mood: %s

Answer the user's query clearly and helpfully, maintaining context and building on previous conversation.`

func buildSystemPrompt(session *entity.SessionContext, prof *entity.UserProfile) string {
	lastAction := session.LastAction
	if lastAction == "" {
		lastAction = "none"
	}
	return fmt.Sprintf(personaPromptFmt,
		prof.NameOr("friend"),
		string(session.Topic),
		lastAction,
		string(session.Mood),
	)
}

// generalReply runs one conversational turn through the LLM with the
// session's bounded history and records the exchange.
func (s *assistantService) generalReply(ctx context.Context, session *entity.SessionContext, prof *entity.UserProfile, query string) assistant.Envelope {
	if s.llm == nil {
		return assistant.TextEnvelope("I'm sorry, my knowledge base isn't available right now.")
	}

	history := make([]gemini.Message, 0, len(session.TurnHistory))
	for _, turn := range session.TurnHistory {
		history = append(history, gemini.Message{Role: turn.Role, Text: turn.Text})
	}

	answer, err := s.llm.Generate(ctx, gemini.Request{
		SystemPrompt: buildSystemPrompt(session, prof),
		History:      history,
		Query:        query,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": session.ID,
			"error":      err.Error(),
		}).Error("Knowledge query failed")
		return assistant.TextEnvelope("I'm sorry, I'm having trouble connecting to my knowledge base right now.")
	}

	session.AppendExchange(query, answer)
	return assistant.TextEnvelope(answer)
}

// handleSearch first checks whether the utterance is actually the user
// telling us something about themselves; only then does it become a
// knowledge query.
func (s *assistantService) handleSearch(ctx context.Context, session *entity.SessionContext, prof *entity.UserProfile, query string) assistant.Envelope {
	query = strings.TrimSpace(query)
	if query == "" {
		return assistant.TextEnvelope("I need a query to search for.")
	}

	if confirmation, saved := s.extractPersonalInfo(ctx, session.UserID, query, prof); saved {
		session.ResetHistory()
		return assistant.TextEnvelope(confirmation)
	}

	return s.generalReply(ctx, session, prof, query)
}

func (s *assistantService) handleHowAreYou(ctx context.Context, session *entity.SessionContext, prof *entity.UserProfile, raw string) assistant.Envelope {
	metaQuery := "The user just said they are doing good/fine/well. Respond with a short, human-like acknowledgment (e.g., 'That's great!') and then ask how their day is going or what they are up to. Do not mention being an AI or a model."
	return s.generalReply(ctx, session, prof, metaQuery)
}

var greetingTemplates = []string{
	"Hey %s! What's up? I'm here to help.",
	"Hello %s! How can I assist you today?",
	"Hi %s. Good to hear from you!",
	"What's on your mind today, %s?",
}

func (s *assistantService) handleGreet(session *entity.SessionContext, prof *entity.UserProfile) assistant.Envelope {
	name := prof.NameOr("there")
	template := greetingTemplates[rand.Intn(len(greetingTemplates))]
	return assistant.TextEnvelope(fmt.Sprintf(template, name))
}

// trackContext folds the turn into the session's topic and mood tags,
// which seed the persona prompt on later conversational turns.
func (s *assistantService) trackContext(session *entity.SessionContext, responseType string, raw string) {
	lower := strings.ToLower(raw)

	switch {
	case containsAny(lower, "image", "picture", "photo", "show me"):
		session.Topic = entity.TopicImageSearch
	case containsAny(lower, "video", "play", "watch", "youtube", "spotify", "song", "music"):
		session.Topic = entity.TopicMediaContent
	case containsAny(lower, "weather", "temperature"):
		session.Topic = entity.TopicWeather
	default:
		session.Topic = entity.TopicGeneral
	}

	switch {
	case containsAny(lower, "thanks", "thank you", "great", "awesome", "love"):
		session.Mood = entity.MoodPositive
	case containsAny(lower, "help", "problem", "issue", "error"):
		session.Mood = entity.MoodNeedsHelp
	case containsAny(lower, "urgent", "quickly", "asap"):
		session.Mood = entity.MoodUrgent
	default:
		session.Mood = entity.MoodNeutral
	}

	session.LastAction = responseType
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
