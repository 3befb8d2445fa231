package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"spendwise-go-be/apperrors"
	"spendwise-go-be/storage"
)

// Handler carries the dependencies shared by all resource controllers.
type Handler struct {
	store *storage.Ledger
	log   *logrus.Logger
}

func NewHandler(store *storage.Ledger, log *logrus.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// Register mounts every resource under the given router group.
func (h *Handler) Register(api fiber.Router) {
	transactions := api.Group("/transactions")
	transactions.Get("/", h.ListTransactions)
	transactions.Post("/", h.CreateTransaction)
	transactions.Get("/:id", h.GetTransaction)
	transactions.Put("/:id", h.UpdateTransaction)
	transactions.Patch("/:id", h.UpdateTransaction)
	transactions.Delete("/:id", h.DeleteTransaction)

	budgets := api.Group("/budgets")
	budgets.Get("/", h.ListBudgets)
	budgets.Post("/", h.CreateBudget)
	budgets.Get("/:id", h.GetBudget)
	budgets.Put("/:id", h.UpdateBudget)
	budgets.Patch("/:id", h.UpdateBudget)
	budgets.Delete("/:id", h.DeleteBudget)

	loans := api.Group("/loans")
	loans.Get("/", h.ListLoans)
	loans.Post("/", h.CreateLoan)
	loans.Get("/:id", h.GetLoan)
	loans.Put("/:id", h.UpdateLoan)
	loans.Patch("/:id", h.UpdateLoan)
	loans.Delete("/:id", h.DeleteLoan)

	users := api.Group("/users")
	users.Post("/", h.CreateUser)
	users.Delete("/:id", h.DeleteUser)
}

// callerID extracts the caller identity from the X-User-ID header. An auth
// middleware in front of the service is expected to populate it. When the
// header is missing or malformed the 401 response has already been written
// and ok is false.
func (h *Handler) callerID(c *fiber.Ctx) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.Get("X-User-ID"))
	if err != nil || userID == uuid.Nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User ID required in X-User-ID header"})
		return uuid.Nil, false
	}
	return userID, true
}

// recordID parses the :id path parameter, writing a 400 when it is not a
// valid uuid.
func (h *Handler) recordID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid record id"})
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps store errors onto the wire: validation failures carry
// the offending field, missing records become 404, everything else is a
// logged 500.
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, apperrors.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	default:
		h.log.WithError(err).Error("request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
}
