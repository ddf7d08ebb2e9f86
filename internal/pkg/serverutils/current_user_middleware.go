package serverutils

import (
	"llm-chat-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userIdLocal = "user_id"

// CurrentUserMiddleware runs every request as the configured mock user.
func CurrentUserMiddleware(userId uuid.UUID) fiber.Handler {
	id := userId.String()
	return func(ctx *fiber.Ctx) error {
		ctx.Locals(userIdLocal, id)
		return ctx.Next()
	}
}

func CurrentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, ok := ctx.Locals(userIdLocal).(string)
	if !ok {
		return uuid.Nil, apperror.Internal(nil)
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, apperror.Internal(err)
	}
	return userId, nil
}

// ParamUUID parses a path parameter. Malformed ids are reported as not found.
func ParamUUID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.NotFound("Resource not found")
	}
	return id, nil
}
