package httpapi

import (
	"time"

	"github.com/dmitrijs2005/duoledger/internal/logging"
	"github.com/gofiber/fiber/v2"
)

// requestIDKey is the locals key the requestid middleware stores its value under.
const requestIDKey = "requestid"

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey).(string)
	return id
}

// requestLogger logs one line per request. Errors are rendered here so the
// logged status is the one sent to the client. The request id is put on the
// user context so service logs carry it too.
func requestLogger(l logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		c.SetUserContext(logging.WithRequestID(c.UserContext(), requestID(c)))
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		l.Info(c.UserContext(), "request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start).String(),
		)
		return nil
	}
}
