package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the JSON body of every failed API request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler turns errors returned by handlers into JSON.
// A *fiber.Error keeps its code and message, anything else becomes a generic 500
// and is logged with its detail.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := MsgInternalError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	} else {
		log.Error().
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Interface("request_id", c.Locals("requestid")).
			Msg("unhandled request error")
	}

	return c.Status(code).JSON(ErrorResponse{Error: msg})
}

// Internal logs err with its context and returns a generic 500 for the client.
func Internal(c *fiber.Ctx, err error, msg string) error {
	log.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Interface("request_id", c.Locals("requestid")).
		Msg(msg)

	return fiber.NewError(fiber.StatusInternalServerError, msg)
}

// BadRequest returns a 400 with msg.
func BadRequest(msg string) error {
	return fiber.NewError(fiber.StatusBadRequest, msg)
}

// NotFound returns a 404 with msg.
func NotFound(msg string) error {
	return fiber.NewError(fiber.StatusNotFound, msg)
}
