package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"llm-chat-be/internal/pkg/apperror"
	"llm-chat-be/pkg/llm"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("provider", func(fl validator.FieldLevel) bool {
		_, err := llm.ParseProvider(fl.Field().String())
		return err == nil
	})
	return v
}

// ValidateRequest checks req against its validate tags and returns a validation
// error safe to show to the user.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.Wrap(apperror.KindValidation, "Invalid request", err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describeFieldError(fe))
	}
	return apperror.Validation(strings.Join(messages, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "provider":
		return fmt.Sprintf("%s must be a supported provider", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
