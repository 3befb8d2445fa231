package handlers

import (
	"github.com/gofiber/fiber/v2"

	"spendwise-go-be/models"
)

// ListTransactions returns the caller's transactions, most recent first.
func (h *Handler) ListTransactions(c *fiber.Ctx) error {
	callerID, ok := h.callerID(c)
	if !ok {
		return nil
	}

	txns, err := h.store.ListTransactions(c.Context(), callerID)
	if err != nil {
		return h.respondError(c, err)
	}

	resp := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		resp = append(resp, newTransactionResponse(&txns[i]))
	}
	return c.JSON(resp)
}

// CreateTransaction validates the payload, attaches the caller as owner
// and persists the record.
func (h *Handler) CreateTransaction(c *fiber.Ctx) error {
	callerID, ok := h.callerID(c)
	if !ok {
		return nil
	}

	var in TransactionInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := in.ValidateCreate(); err != nil {
		return h.respondError(c, err)
	}

	txn := models.Transaction{OwnerID: &callerID}
	in.Apply(&txn)

	if err := h.store.CreateTransaction(c.Context(), &txn); err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newTransactionResponse(&txn))
}

func (h *Handler) GetTransaction(c *fiber.Ctx) error {
	callerID, ok := h.callerID(c)
	if !ok {
		return nil
	}
	id, ok := h.recordID(c)
	if !ok {
		return nil
	}

	txn, err := h.store.GetTransaction(c.Context(), callerID, id)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(newTransactionResponse(txn))
}

// UpdateTransaction applies a full or partial field set. Absent fields
// keep their stored values; id, owner and created_at cannot change.
func (h *Handler) UpdateTransaction(c *fiber.Ctx) error {
	callerID, ok := h.callerID(c)
	if !ok {
		return nil
	}
	id, ok := h.recordID(c)
	if !ok {
		return nil
	}

	var in TransactionInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}

	txn, err := h.store.GetTransaction(c.Context(), callerID, id)
	if err != nil {
		return h.respondError(c, err)
	}

	in.Apply(txn)
	if err := h.store.UpdateTransaction(c.Context(), txn); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(newTransactionResponse(txn))
}

func (h *Handler) DeleteTransaction(c *fiber.Ctx) error {
	callerID, ok := h.callerID(c)
	if !ok {
		return nil
	}
	id, ok := h.recordID(c)
	if !ok {
		return nil
	}

	if err := h.store.DeleteTransaction(c.Context(), callerID, id); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
