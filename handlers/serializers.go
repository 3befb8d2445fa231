package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"spendwise-go-be/apperrors"
	"spendwise-go-be/models"
)

// The input structs below define the writable field set per entity. All
// fields are pointers so a partial update can tell "absent" from "zero";
// server-assigned fields (id, created_at) and the owner are not part of
// the input at all, so supplying them is silently ignored. Unknown fields
// are dropped by the JSON decoder.

// TransactionInput is the writable field set for a transaction.
type TransactionInput struct {
	Type        *string          `json:"type"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *models.Date     `json:"date"`
}

// ValidateCreate checks that every required field is present.
func (in *TransactionInput) ValidateCreate() error {
	switch {
	case in.Type == nil:
		return apperrors.NewValidation("type", "type is required")
	case in.Description == nil:
		return apperrors.NewValidation("description", "description is required")
	case in.Category == nil:
		return apperrors.NewValidation("category", "category is required")
	case in.Amount == nil:
		return apperrors.NewValidation("amount", "amount is required")
	case in.Date == nil:
		return apperrors.NewValidation("date", "date is required")
	}
	return nil
}

// Apply copies the supplied fields onto t, leaving absent fields alone.
func (in *TransactionInput) Apply(t *models.Transaction) {
	if in.Type != nil {
		t.Type = models.TransactionType(*in.Type)
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Category != nil {
		t.Category = *in.Category
	}
	if in.Amount != nil {
		t.Amount = *in.Amount
	}
	if in.Date != nil {
		t.Date = *in.Date
	}
}

// TransactionResponse is the wire shape of a transaction. Amounts render
// as fixed two-decimal strings and dates as YYYY-MM-DD.
type TransactionResponse struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Amount      string    `json:"amount"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

func newTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Type:        string(t.Type),
		Description: t.Description,
		Category:    t.Category,
		Amount:      t.Amount.StringFixed(2),
		Date:        t.Date.String(),
		CreatedAt:   t.CreatedAt,
	}
}

// BudgetInput is the writable field set for a budget.
type BudgetInput struct {
	Category *string          `json:"category"`
	Amount   *decimal.Decimal `json:"amount"`
}

func (in *BudgetInput) ValidateCreate() error {
	switch {
	case in.Category == nil:
		return apperrors.NewValidation("category", "category is required")
	case in.Amount == nil:
		return apperrors.NewValidation("amount", "amount is required")
	}
	return nil
}

func (in *BudgetInput) Apply(b *models.Budget) {
	if in.Category != nil {
		b.Category = *in.Category
	}
	if in.Amount != nil {
		b.Amount = *in.Amount
	}
}

// BudgetResponse is the wire shape of a budget.
type BudgetResponse struct {
	ID       uuid.UUID `json:"id"`
	Category string    `json:"category"`
	Amount   string    `json:"amount"`
}

func newBudgetResponse(b *models.Budget) BudgetResponse {
	return BudgetResponse{
		ID:       b.ID,
		Category: b.Category,
		Amount:   b.Amount.StringFixed(2),
	}
}

// LoanInput is the writable field set for a loan.
type LoanInput struct {
	Lender  *string          `json:"lender"`
	Amount  *decimal.Decimal `json:"amount"`
	DueDate *models.Date     `json:"due_date"`
	Paid    *bool            `json:"paid"`
}

// ValidateCreate checks the required fields; paid is optional and
// defaults to false.
func (in *LoanInput) ValidateCreate() error {
	switch {
	case in.Lender == nil:
		return apperrors.NewValidation("lender", "lender is required")
	case in.Amount == nil:
		return apperrors.NewValidation("amount", "amount is required")
	case in.DueDate == nil:
		return apperrors.NewValidation("due_date", "due_date is required")
	}
	return nil
}

func (in *LoanInput) Apply(l *models.Loan) {
	if in.Lender != nil {
		l.Lender = *in.Lender
	}
	if in.Amount != nil {
		l.Amount = *in.Amount
	}
	if in.DueDate != nil {
		l.DueDate = *in.DueDate
	}
	if in.Paid != nil {
		l.Paid = *in.Paid
	}
}

// LoanResponse is the wire shape of a loan.
type LoanResponse struct {
	ID        uuid.UUID `json:"id"`
	Lender    string    `json:"lender"`
	Amount    string    `json:"amount"`
	DueDate   string    `json:"due_date"`
	Paid      bool      `json:"paid"`
	CreatedAt time.Time `json:"created_at"`
}

func newLoanResponse(l *models.Loan) LoanResponse {
	return LoanResponse{
		ID:        l.ID,
		Lender:    l.Lender,
		Amount:    l.Amount.StringFixed(2),
		DueDate:   l.DueDate.String(),
		Paid:      l.Paid,
		CreatedAt: l.CreatedAt,
	}
}

// UserInput is the writable field set for a user.
type UserInput struct {
	Email *string `json:"email"`
}

func (in *UserInput) ValidateCreate() error {
	if in.Email == nil {
		return apperrors.NewValidation("email", "email is required")
	}
	return nil
}

// UserResponse is the wire shape of a user.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}
