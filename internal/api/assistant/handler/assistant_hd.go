package assistantHandler

import (
	"ProjectSenorita/internal/api/assistant"
	contextPkg "ProjectSenorita/pkg/context"
	"ProjectSenorita/pkg/handlerUtil"
	"ProjectSenorita/pkg/log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *AssistantHandler) ProcessCommand(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 60*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing assistant command request")

	var req assistant.CommandRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	envelope, err := h.assistantService.ProcessCommand(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "process_command")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"response": envelope,
		})
	}
}

func (h *AssistantHandler) CommandHistory(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID := ctx.Params("session_id")
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))

	items, err := h.assistantService.CommandHistory(c, sessionID, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "command_history")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
		"history": items,
	})
}

func (h *AssistantHandler) UserCommandHistory(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userID := ctx.Params("user_id")
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))

	items, err := h.assistantService.UserCommandHistory(c, userID, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "user_command_history")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
		"history": items,
	})
}

func (h *AssistantHandler) UserProfile(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userID := ctx.Params("user_id")

	prof, err := h.assistantService.Profile(c, userID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "user_profile")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
		"profile": prof,
	})
}
