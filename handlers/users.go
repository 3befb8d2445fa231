package handlers

import (
	"github.com/gofiber/fiber/v2"

	"spendwise-go-be/models"
)

// CreateUser registers a user so records can be owned by one. In a full
// deployment registration lives with the identity provider; this endpoint
// covers the ownership lifecycle the records depend on.
func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var in UserInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := in.ValidateCreate(); err != nil {
		return h.respondError(c, err)
	}

	user := models.User{Email: *in.Email}
	if err := h.store.CreateUser(c.Context(), &user); err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newUserResponse(&user))
}

// DeleteUser removes a user. The user's records survive with their owner
// cleared; financial history is never cascade-deleted.
func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	id, ok := h.recordID(c)
	if !ok {
		return nil
	}

	if err := h.store.DeleteUser(c.Context(), id); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
