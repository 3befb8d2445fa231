package handlers

import (
	"github.com/gofiber/fiber/v2"

	"spendwise-go-be/models"
)

// ListLoans returns the caller's loans by due date, unpaid first on ties.
func (h *Handler) ListLoans(c *fiber.Ctx) error {
	callerID, ok := h.callerID(c)
	if !ok {
		return nil
	}

	loans, err := h.store.ListLoans(c.Context(), callerID)
	if err != nil {
		return h.respondError(c, err)
	}

	resp := make([]LoanResponse, 0, len(loans))
	for i := range loans {
		resp = append(resp, newLoanResponse(&loans[i]))
	}
	return c.JSON(resp)
}

func (h *Handler) CreateLoan(c *fiber.Ctx) error {
	callerID, ok := h.callerID(c)
	if !ok {
		return nil
	}

	var in LoanInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := in.ValidateCreate(); err != nil {
		return h.respondError(c, err)
	}

	loan := models.Loan{OwnerID: &callerID}
	in.Apply(&loan)

	if err := h.store.CreateLoan(c.Context(), &loan); err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newLoanResponse(&loan))
}

func (h *Handler) GetLoan(c *fiber.Ctx) error {
	callerID, ok := h.callerID(c)
	if !ok {
		return nil
	}
	id, ok := h.recordID(c)
	if !ok {
		return nil
	}

	loan, err := h.store.GetLoan(c.Context(), callerID, id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(newLoanResponse(loan))
}

func (h *Handler) UpdateLoan(c *fiber.Ctx) error {
	callerID, ok := h.callerID(c)
	if !ok {
		return nil
	}
	id, ok := h.recordID(c)
	if !ok {
		return nil
	}

	var in LoanInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}

	loan, err := h.store.GetLoan(c.Context(), callerID, id)
	if err != nil {
		return h.respondError(c, err)
	}

	in.Apply(loan)
	if err := h.store.UpdateLoan(c.Context(), loan); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(newLoanResponse(loan))
}

func (h *Handler) DeleteLoan(c *fiber.Ctx) error {
	callerID, ok := h.callerID(c)
	if !ok {
		return nil
	}
	id, ok := h.recordID(c)
	if !ok {
		return nil
	}

	if err := h.store.DeleteLoan(c.Context(), callerID, id); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
