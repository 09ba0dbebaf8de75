package response

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/stylemart/internal/logger"
)

// OK writes the standard success envelope with a data payload.
func OK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// Created writes the success envelope with a 201 status.
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

// Message writes a success envelope that carries only a message.
func Message(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": true, "message": message})
}

// ErrorHandler is the app-wide fiber error handler. It is the single place
// where error kinds become HTTP statuses: handlers raise fiber.NewError with
// the right status, gorm sentinel errors map to 404/409, and anything else
// is a 500 whose internals stay out of the response body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		message = fiberErr.Message
	case errors.Is(err, gorm.ErrRecordNotFound):
		status = fiber.StatusNotFound
		message = "resource not found"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		status = fiber.StatusConflict
		message = "resource already exists"
	default:
		logger.Error("unhandled request error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}
