package config

import (
	"ProjectSenorita/database/postgres"
	assistantHandler "ProjectSenorita/internal/api/assistant/handler"
	assistantRepository "ProjectSenorita/internal/api/assistant/repository"
	assistantService "ProjectSenorita/internal/api/assistant/service"
	"ProjectSenorita/internal/middleware"
	"ProjectSenorita/internal/profile"
	"ProjectSenorita/pkg/gemini"
	"ProjectSenorita/pkg/images"
	"ProjectSenorita/pkg/nasa"
	"ProjectSenorita/pkg/news"
	"ProjectSenorita/pkg/redis"
	"ProjectSenorita/pkg/trivia"
	"ProjectSenorita/pkg/utils"
	"ProjectSenorita/pkg/weather"
	"ProjectSenorita/pkg/whatsapp"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine         *fiber.App
	db             *sqlx.DB
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	utils          utils.IUtils
	handlers       []handler
	profileStore   profile.IStore
	redisServer    redis.IRedis
	whatsappClient whatsapp.IWhatsappSender
	geminiClient   gemini.IGemini
	imageSearch    images.ISearch
	weatherClient  weather.IWeather
	newsClient     news.INews
	apodClient     nasa.IApod
	triviaClient   trivia.ITrivia
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.profileStore == nil {
		return nil, fmt.Errorf("profile store is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

// WithDatabase is optional: without Postgres the assistant still works,
// it just keeps no durable command history.
func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database, command history disabled: %v", err)
			}
			return nil
		}
		s.db = db
		return nil
	}
}

func WithProfileStore() ServerOption {
	return func(s *Server) error {
		dir := os.Getenv("PROFILE_DIR")
		if dir == "" {
			dir = "./storage/profiles"
		}
		store, err := profile.NewStore(dir, s.log)
		if err != nil {
			return fmt.Errorf("failed to create profile store: %w", err)
		}
		s.profileStore = store
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

// WithWhatsappClient is optional: pairing needs an interactive QR scan,
// so a failure only disables direct WhatsApp delivery.
func WithWhatsappClient() ServerOption {
	return func(s *Server) error {
		client, err := whatsapp.New()
		if err != nil {
			if s.log != nil {
				s.log.Warnf("WhatsApp client unavailable, messages fall back to the mobile app: %v", err)
			}
			return nil
		}
		s.whatsappClient = client
		return nil
	}
}

func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
			}
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
		return nil
	}
}

func WithImageSearch() ServerOption {
	return func(s *Server) error {
		client, err := images.New()
		if err != nil {
			if s.log != nil {
				s.log.Warnf("Image search unavailable: %v", err)
			}
			return nil
		}
		s.imageSearch = client
		return nil
	}
}

func WithWeatherClient() ServerOption {
	return func(s *Server) error {
		client, err := weather.New()
		if err != nil {
			if s.log != nil {
				s.log.Warnf("Weather service unavailable: %v", err)
			}
			return nil
		}
		s.weatherClient = client
		return nil
	}
}

func WithNewsClient() ServerOption {
	return func(s *Server) error {
		client, err := news.New()
		if err != nil {
			if s.log != nil {
				s.log.Warnf("News service unavailable: %v", err)
			}
			return nil
		}
		s.newsClient = client
		return nil
	}
}

func WithApodClient() ServerOption {
	return func(s *Server) error {
		client, err := nasa.New()
		if err != nil {
			if s.log != nil {
				s.log.Warnf("NASA APOD service unavailable: %v", err)
			}
			return nil
		}
		s.apodClient = client
		return nil
	}
}

func WithTriviaClient() ServerOption {
	return func(s *Server) error {
		s.triviaClient = trivia.New()
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	var repo assistantRepository.Repository
	if s.db != nil {
		repo = assistantRepository.New(s.db, s.log)
	}

	assistantServices := assistantService.New(
		s.log,
		s.profileStore,
		repo,
		s.utils,
		assistantService.Collaborators{
			LLM:      s.geminiClient,
			Images:   s.imageSearch,
			Weather:  s.weatherClient,
			News:     s.newsClient,
			Apod:     s.apodClient,
			Trivia:   s.triviaClient,
			Cache:    s.redisServer,
			Whatsapp: s.whatsappClient,
		},
	)
	assistantHandlers := assistantHandler.New(s.log, s.validator, s.middleware, assistantServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, assistantHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())
	s.engine.Use(s.middleware.NewRateLimiter)

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	if err := s.engine.Listen(fmt.Sprintf(":%s", port)); err != nil {
		if s.whatsappClient != nil {
			s.whatsappClient.Disconnect()
		}
		return err
	}

	return nil
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
