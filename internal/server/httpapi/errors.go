package httpapi

import (
	"errors"

	"github.com/dmitrijs2005/duoledger/internal/common"
	"github.com/dmitrijs2005/duoledger/internal/logging"
	"github.com/gofiber/fiber/v2"
)

type errorBody struct {
	Error string `json:"error"`
}

// statusFor maps a service error to the HTTP status and the message shown
// to the client. Unknown errors are internal and their text is not exposed.
func statusFor(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case errors.Is(err, common.ErrorValidation):
		return fiber.StatusBadRequest, common.ErrorValidation.Error()
	case errors.Is(err, common.ErrorUserExists):
		return fiber.StatusBadRequest, common.ErrorUserExists.Error()
	case errors.Is(err, common.ErrorHouseholdExists):
		return fiber.StatusBadRequest, common.ErrorHouseholdExists.Error()
	case errors.Is(err, common.ErrorAlreadyExists):
		return fiber.StatusBadRequest, common.ErrorAlreadyExists.Error()
	case errors.Is(err, common.ErrorInvalidOrExpiredToken):
		return fiber.StatusBadRequest, common.ErrorInvalidOrExpiredToken.Error()
	case errors.Is(err, common.ErrorInvalidCredentials):
		return fiber.StatusUnauthorized, common.ErrorInvalidCredentials.Error()
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return fiber.StatusUnauthorized, common.ErrorUnauthorized.Error()
	case errors.Is(err, common.ErrorEmailNotVerified):
		return fiber.StatusForbidden, common.ErrorEmailNotVerified.Error()
	case errors.Is(err, common.ErrorNotFound):
		return fiber.StatusNotFound, common.ErrorNotFound.Error()
	default:
		return fiber.StatusInternalServerError, "internal server error"
	}
}

// errorHandler renders every error returned by a handler as {"error": ...}.
func errorHandler(l logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code, msg := statusFor(err)
		if code >= fiber.StatusInternalServerError {
			l.Error(c.UserContext(), "request failed",
				"method", c.Method(), "path", c.Path(), "error", err)
		}
		return c.Status(code).JSON(errorBody{Error: msg})
	}
}
