package serverutils

import (
	"errors"

	"llm-chat-be/internal/pkg/apperror"
	"llm-chat-be/internal/pkg/logger"
	"llm-chat-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

const genericErrorMessage = "Something went wrong. Please try again."

// ErrorHandlerMiddleware turns errors returned by handlers into the JSON error body.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status, body := mapError(err)
		if status >= fiber.StatusInternalServerError && !loggedUpstream(err) {
			log.Error("HTTP", "request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"status": status,
				"error":  err.Error(),
			})
		}
		return ctx.Status(status).JSON(body)
	}
}

// loggedUpstream reports provider failures; the orchestrator already logs those
// with conversation and provider context.
func loggedUpstream(err error) bool {
	if appErr, ok := apperror.As(err); ok {
		return appErr.Kind == apperror.KindUpstream || appErr.Kind == apperror.KindProviderTimeout
	}
	var sendErr *llm.SendError
	return errors.As(err, &sendErr)
}

func mapError(err error) (int, BaseResponse[any]) {
	if appErr, ok := apperror.As(err); ok {
		status := statusForKind(appErr.Kind)
		message := appErr.Message
		if appErr.Kind == apperror.KindInternal {
			message = genericErrorMessage
		}
		res := ErrorResponseWithData(status, message, appErr.Data)
		res.ErrorCode = string(appErr.Kind)
		return status, res
	}

	var sendErr *llm.SendError
	if errors.As(err, &sendErr) {
		if sendErr.Timeout {
			return fiber.StatusGatewayTimeout, ErrorResponse(fiber.StatusGatewayTimeout, sendErr.Error())
		}
		return fiber.StatusInternalServerError, ErrorResponse(fiber.StatusInternalServerError, sendErr.Error())
	}

	var unsupported *llm.ErrUnsupportedProvider
	if errors.As(err, &unsupported) {
		return fiber.StatusBadRequest, ErrorResponse(fiber.StatusBadRequest, unsupported.Error())
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
		return fiberErr.Code, ErrorResponse(fiberErr.Code, fiberErr.Message)
	}

	return fiber.StatusInternalServerError, ErrorResponse(fiber.StatusInternalServerError, genericErrorMessage)
}

func statusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindValidation, apperror.KindProviderNotConfigured, apperror.KindUnsupportedProvider:
		return fiber.StatusBadRequest
	case apperror.KindProviderTimeout:
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}
