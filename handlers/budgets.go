package handlers

import (
	"github.com/gofiber/fiber/v2"

	"spendwise-go-be/models"
)

// ListBudgets returns the caller's budgets ordered by category.
func (h *Handler) ListBudgets(c *fiber.Ctx) error {
	callerID, ok := h.callerID(c)
	if !ok {
		return nil
	}

	budgets, err := h.store.ListBudgets(c.Context(), callerID)
	if err != nil {
		return h.respondError(c, err)
	}

	resp := make([]BudgetResponse, 0, len(budgets))
	for i := range budgets {
		resp = append(resp, newBudgetResponse(&budgets[i]))
	}
	return c.JSON(resp)
}

func (h *Handler) CreateBudget(c *fiber.Ctx) error {
	callerID, ok := h.callerID(c)
	if !ok {
		return nil
	}

	var in BudgetInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := in.ValidateCreate(); err != nil {
		return h.respondError(c, err)
	}

	budget := models.Budget{OwnerID: &callerID}
	in.Apply(&budget)

	if err := h.store.CreateBudget(c.Context(), &budget); err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newBudgetResponse(&budget))
}

func (h *Handler) GetBudget(c *fiber.Ctx) error {
	callerID, ok := h.callerID(c)
	if !ok {
		return nil
	}
	id, ok := h.recordID(c)
	if !ok {
		return nil
	}

	budget, err := h.store.GetBudget(c.Context(), callerID, id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(newBudgetResponse(budget))
}

func (h *Handler) UpdateBudget(c *fiber.Ctx) error {
	callerID, ok := h.callerID(c)
	if !ok {
		return nil
	}
	id, ok := h.recordID(c)
	if !ok {
		return nil
	}

	var in BudgetInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}

	budget, err := h.store.GetBudget(c.Context(), callerID, id)
	if err != nil {
		return h.respondError(c, err)
	}

	in.Apply(budget)
	if err := h.store.UpdateBudget(c.Context(), budget); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(newBudgetResponse(budget))
}

func (h *Handler) DeleteBudget(c *fiber.Ctx) error {
	callerID, ok := h.callerID(c)
	if !ok {
		return nil
	}
	id, ok := h.recordID(c)
	if !ok {
		return nil
	}

	if err := h.store.DeleteBudget(c.Context(), callerID, id); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
