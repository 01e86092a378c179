package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type Response[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Code:    fiber.StatusOK,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) Response[any] {
	return Response[any]{
		Code:    code,
		Message: message,
	}
}

// ValidateRequest runs struct-tag validation and returns a readable error.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var invalidFields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, verr := range verrs {
				invalidFields = append(invalidFields, fmt.Sprintf("%s (%s)", verr.Field(), verr.Tag()))
			}
			return fmt.Errorf("validation failed: %s", strings.Join(invalidFields, ", "))
		}
		return err
	}
	return nil
}

// ErrorHandlerMiddleware converts unhandled errors bubbling out of handlers
// into a JSON 500 envelope so clients never see a bare fasthttp error page.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		if fe, ok := err.(*fiber.Error); ok {
			code = fe.Code
		}
		if strings.HasPrefix(err.Error(), "validation failed") {
			code = fiber.StatusBadRequest
		}

		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
