package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
)

const (
	headerRequestID = "X-Request-ID"
	localRequestID  = "req_id"
)

// loggerMiddleware tags every request with an id and logs its outcome.
func loggerMiddleware(c *fiber.Ctx) error {
	reqID := c.Get(headerRequestID)
	if reqID == "" {
		reqID = xid.New().String()
	}
	c.Locals(localRequestID, reqID)
	c.Set(headerRequestID, reqID)

	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	log := logrus.WithFields(logrus.Fields{
		"method":    c.Method(),
		"path":      c.Path(),
		"req_id":    reqID,
		"status":    status,
		"cost_msec": time.Since(start).Milliseconds(),
	})
	switch {
	case status >= 500:
		log.Error("request completed with server error")
	case status >= 400:
		log.Warn("request completed with client error")
	default:
		log.Info("request completed")
	}
	return err
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(localRequestID).(string)
	return id
}
