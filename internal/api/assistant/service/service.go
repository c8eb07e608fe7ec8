package assistantService

import (
	"context"
	"time"

	"ProjectSenorita/internal/api/assistant"
	assistantRepository "ProjectSenorita/internal/api/assistant/repository"
	"ProjectSenorita/internal/entity"
	"ProjectSenorita/internal/profile"
	"ProjectSenorita/pkg/gemini"
	"ProjectSenorita/pkg/images"
	"ProjectSenorita/pkg/intent"
	"ProjectSenorita/pkg/nasa"
	"ProjectSenorita/pkg/news"
	"ProjectSenorita/pkg/redis"
	"ProjectSenorita/pkg/trivia"
	"ProjectSenorita/pkg/utils"
	"ProjectSenorita/pkg/weather"
	"ProjectSenorita/pkg/whatsapp"

	"github.com/sirupsen/logrus"
)

type IAssistantService interface {
	ProcessCommand(ctx context.Context, req assistant.CommandRequest) (assistant.Envelope, error)
	CommandHistory(ctx context.Context, sessionID string, limit int) ([]assistant.CommandHistoryItem, error)
	UserCommandHistory(ctx context.Context, userID string, limit int) ([]assistant.CommandHistoryItem, error)
	Profile(ctx context.Context, userID string) (interface{}, error)
}

type assistantService struct {
	log      *logrus.Logger
	matcher  *intent.Matcher
	sessions *SessionManager
	profiles profile.IStore
	repo     assistantRepository.Repository
	utils    utils.IUtils

	llm      gemini.IGemini
	images   images.ISearch
	weather  weather.IWeather
	news     news.INews
	apod     nasa.IApod
	trivia   trivia.ITrivia
	cache    redis.IRedis
	whatsapp whatsapp.IWhatsappSender

	// now is swappable so time-sensitive behavior can be pinned in tests.
	now func() time.Time
}

// Collaborators carries the optional external clients. Any of them may
// be nil: the router degrades to an apologetic reply for features whose
// backing client is absent instead of failing the whole request.
type Collaborators struct {
	LLM      gemini.IGemini
	Images   images.ISearch
	Weather  weather.IWeather
	News     news.INews
	Apod     nasa.IApod
	Trivia   trivia.ITrivia
	Cache    redis.IRedis
	Whatsapp whatsapp.IWhatsappSender
}

func New(
	log *logrus.Logger,
	profiles profile.IStore,
	repo assistantRepository.Repository,
	u utils.IUtils,
	collab Collaborators,
) IAssistantService {
	sessions := NewSessionManager(log)
	// nil stop channel: the sweeper lives as long as the process.
	sessions.StartSweeper(time.Hour, nil)

	return &assistantService{
		log:      log,
		matcher:  intent.NewMatcher(),
		sessions: sessions,
		profiles: profiles,
		repo:     repo,
		utils:    u,
		llm:      collab.LLM,
		images:   collab.Images,
		weather:  collab.Weather,
		news:     collab.News,
		apod:     collab.Apod,
		trivia:   collab.Trivia,
		cache:    collab.Cache,
		whatsapp: collab.Whatsapp,
		now:      time.Now,
	}
}

func (s *assistantService) Profile(ctx context.Context, userID string) (interface{}, error) {
	return s.profiles.Load(userID), nil
}

func (s *assistantService) CommandHistory(ctx context.Context, sessionID string, limit int) ([]assistant.CommandHistoryItem, error) {
	if s.repo == nil {
		return nil, assistant.ErrHistoryUnavailable
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	client, err := s.repo.NewClient(false)
	if err != nil {
		return nil, err
	}

	logs, err := client.Commands.GetCommandLogsBySessionID(ctx, sessionID, limit)
	if err != nil {
		return nil, err
	}

	return toHistoryItems(logs), nil
}

// UserCommandHistory collects a user's logged commands across all of
// their sessions, newest first.
func (s *assistantService) UserCommandHistory(ctx context.Context, userID string, limit int) ([]assistant.CommandHistoryItem, error) {
	if s.repo == nil {
		return nil, assistant.ErrHistoryUnavailable
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	client, err := s.repo.NewClient(false)
	if err != nil {
		return nil, err
	}

	logs, err := client.Commands.GetCommandLogsByUserID(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	return toHistoryItems(logs), nil
}

func toHistoryItems(logs []entity.CommandLog) []assistant.CommandHistoryItem {
	items := make([]assistant.CommandHistoryItem, 0, len(logs))
	for _, l := range logs {
		items = append(items, assistant.CommandHistoryItem{
			ID:           l.ID,
			SessionID:    l.SessionID,
			Transcript:   l.Transcript,
			Intent:       l.Intent,
			ResponseType: l.ResponseType,
			ResponseText: l.ResponseText,
			CreatedAt:    l.CreatedAt,
		})
	}
	return items
}
