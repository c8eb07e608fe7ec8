package assistantHandler

import (
	assistantService "ProjectSenorita/internal/api/assistant/service"
	"ProjectSenorita/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type AssistantHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	assistantService assistantService.IAssistantService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	as assistantService.IAssistantService,
) *AssistantHandler {
	return &AssistantHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		assistantService: as,
	}
}

func (h *AssistantHandler) Start(srv fiber.Router) {
	asst := srv.Group("/assistant")

	asst.Post("/commands", h.ProcessCommand)
	asst.Get("/sessions/:session_id/history", h.CommandHistory)
	asst.Get("/users/:user_id/history", h.UserCommandHistory)
	asst.Get("/users/:user_id/profile", h.UserProfile)

	asst.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	asst.Get("/ws", websocket.New(h.CommandStream))
}
