package controller

import (
	"llm-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProviderController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	GetModels(ctx *fiber.Ctx) error
}

type providerController struct {
	service service.IProviderService
}

func NewProviderController(service service.IProviderService) IProviderController {
	return &providerController{service: service}
}

func (c *providerController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/providers")
	h.Get("", c.GetAll)
	h.Get("/:provider/models", c.GetModels)
}

func (c *providerController) GetAll(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.GetAll())
}

func (c *providerController) GetModels(ctx *fiber.Ctx) error {
	res, err := c.service.GetModels(ctx.Params("provider"))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
