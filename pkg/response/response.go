// Package response renders the JSON envelope shared by every endpoint:
// {success, data?, error?, message?}.
package response

import "github.com/gofiber/fiber/v2"

type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func OK(c *fiber.Ctx, data interface{}, message string) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Data: data, Message: message})
}

func Created(c *fiber.Ctx, data interface{}, message string) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Data: data, Message: message})
}

func Error(c *fiber.Ctx, status int, err string) error {
	return c.Status(status).JSON(Envelope{Success: false, Error: err})
}

func ErrorWithMessage(c *fiber.Ctx, status int, err, message string) error {
	return c.Status(status).JSON(Envelope{Success: false, Error: err, Message: message})
}
