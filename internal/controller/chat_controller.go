package controller

import (
	"errors"

	"parts-assist-be/internal/constant"
	"parts-assist-be/internal/dto"
	"parts-assist-be/internal/pkg/logger"
	"parts-assist-be/internal/pkg/serverutils"
	"parts-assist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	SessionContext(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	logger      logger.ILogger
}

func NewChatController(chatService service.IChatService, log logger.ILogger) IChatController {
	return &chatController{
		chatService: chatService,
		logger:      log,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("", c.Chat)
	h.Get("session/:id/context", c.SessionContext)
}

// Chat always answers 200 at the protocol level; turn faults become answer
// text so one bad collaborator call never breaks the conversation contract.
func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.HandleTurn(ctx.Context(), &req)
	if err != nil {
		var fault *service.TurnFault
		if errors.As(err, &fault) {
			c.logger.Error("chat", "turn failed", map[string]interface{}{
				"session_id": fault.SessionId,
				"kind":       string(fault.Kind),
				"error":      fault.Err.Error(),
			})
			return ctx.JSON(dto.ChatResponse{
				SessionId: fault.SessionId,
				Answer:    constant.InternalErrorPrefix + fault.Err.Error(),
			})
		}
		return err
	}

	return ctx.JSON(res)
}

func (c *chatController) SessionContext(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	res, err := c.chatService.SessionContext(ctx.Context(), sessionId)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session context", res))
}
