package controller

import (
	"llm-chat-be/internal/dto"
	"llm-chat-be/internal/pkg/serverutils"
	"llm-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IApiKeyController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Set(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type apiKeyController struct {
	service service.IApiKeyService
}

func NewApiKeyController(service service.IApiKeyService) IApiKeyController {
	return &apiKeyController{service: service}
}

func (c *apiKeyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/api-keys")
	h.Get("", c.GetAll)
	h.Post("", c.Set)
	h.Delete("/:provider", c.Delete)
}

func (c *apiKeyController) GetAll(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetAll(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *apiKeyController) Set(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.SetApiKeyRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Set(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *apiKeyController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.UserContext(), userId, ctx.Params("provider")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("API key deleted", nil))
}
