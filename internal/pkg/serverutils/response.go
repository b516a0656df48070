package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mrchongyl/zus-chatbot/internal/pkg/validation"
	"github.com/mrchongyl/zus-chatbot/pkg/calculator"
	"github.com/mrchongyl/zus-chatbot/pkg/retrieval"
	"github.com/mrchongyl/zus-chatbot/pkg/text2sql"
)

var validate = validator.New()

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Code    int         `json:"code,omitempty"`
}

func SuccessResponse(message string, data interface{}) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) Response {
	return Response{
		Success: false,
		Message: message,
		Code:    code,
	}
}

// ValidateRequest applies the request's validate tags. The returned error
// message is safe to surface to clients.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			reasons := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				reasons = append(reasons, fmt.Sprintf("%s failed on %s", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return fmt.Errorf("validation failed: %s", strings.Join(reasons, ", "))
		}
		return err
	}
	return nil
}

// ErrorHandlerMiddleware is the app-level fiber error handler. Unhandled
// errors become JSON envelopes instead of fiber's default text body.
func ErrorHandlerMiddleware(ctx *fiber.Ctx, err error) error {
	code := StatusForError(err)
	return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
}

// StatusForError maps typed domain errors onto HTTP status codes.
func StatusForError(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	var (
		inputErr      *validation.Error
		exprErr       *calculator.ValidationError
		evalErr       *calculator.EvalError
		searchErr     *retrieval.ValidationError
		unsafeErr     *text2sql.UnsafeQueryError
		generationErr *text2sql.GenerationError
		corruptErr    *retrieval.IndexCorruptError
	)
	switch {
	case errors.As(err, &inputErr),
		errors.As(err, &exprErr),
		errors.As(err, &searchErr):
		return fiber.StatusBadRequest
	case errors.As(err, &evalErr),
		errors.As(err, &unsafeErr):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &generationErr):
		return fiber.StatusBadGateway
	case errors.As(err, &corruptErr):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}
