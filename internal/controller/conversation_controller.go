package controller

import (
	"llm-chat-be/internal/dto"
	"llm-chat-be/internal/pkg/apperror"
	"llm-chat-be/internal/pkg/serverutils"
	"llm-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	UpdateMessage(ctx *fiber.Ctx) error
	DeleteMessage(ctx *fiber.Ctx) error
}

type conversationController struct {
	conversationService service.IConversationService
	messageService      service.IMessageService
}

func NewConversationController(
	conversationService service.IConversationService,
	messageService service.IMessageService,
) IConversationController {
	return &conversationController{
		conversationService: conversationService,
		messageService:      messageService,
	}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversations")
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Patch("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Get("/:id/messages", c.GetMessages)
	h.Post("/:id/messages", c.SendMessage)
	h.Patch("/:id/messages/:messageId", c.UpdateMessage)
	h.Delete("/:id/messages/:messageId", c.DeleteMessage)
}

func (c *conversationController) GetAll(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.conversationService.GetAll(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *conversationController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateConversationRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.conversationService.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *conversationController) Update(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateConversationRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.conversationService.Update(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *conversationController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.conversationService.Delete(ctx.UserContext(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Conversation deleted", nil))
}

func (c *conversationController) GetMessages(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.conversationService.GetMessages(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *conversationController) SendMessage(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.messageService.Send(ctx.UserContext(), userId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *conversationController) UpdateMessage(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}
	messageId, err := serverutils.ParamUUID(ctx, "messageId")
	if err != nil {
		return err
	}

	var req dto.UpdateMessageRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.messageService.Update(ctx.UserContext(), userId, id, messageId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *conversationController) DeleteMessage(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}
	messageId, err := serverutils.ParamUUID(ctx, "messageId")
	if err != nil {
		return err
	}

	if err := c.messageService.Delete(ctx.UserContext(), userId, id, messageId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Message deleted", nil))
}

// parseBody decodes and validates a JSON body. Both failures are client errors.
func parseBody(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return apperror.Wrap(apperror.KindValidation, "Invalid request body", err)
	}
	return serverutils.ValidateRequest(req)
}
