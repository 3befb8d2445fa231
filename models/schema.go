package models

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"spendwise-go-be/apperrors"
)

// TransactionType distinguishes money coming in from money going out.
// It does not constrain the sign of the amount; consumers interpret sign.
type TransactionType string

const (
	Income  TransactionType = "Income"
	Expense TransactionType = "Expense"
)

// maxAmount caps amounts at 10 total digits with 2 decimal places,
// i.e. the integer part must stay below 10^8.
var maxAmount = decimal.New(1, 8)

// AmountValid reports whether d fits the decimal(10,2) columns used for
// all money amounts.
func AmountValid(d decimal.Decimal) bool {
	if !d.Equal(d.Truncate(2)) {
		return false
	}
	return d.Abs().LessThan(maxAmount)
}

// User represents a user in the system. Records reference users through a
// nullable owner column; deleting a user clears that reference instead of
// deleting the records.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Transaction represents a single income or expense record.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID     *uuid.UUID      `gorm:"type:uuid;index" json:"owner_id,omitempty"`
	Type        TransactionType `gorm:"type:varchar(10);not null" json:"type"`
	Description string          `gorm:"type:varchar(255);not null" json:"description"`
	Category    string          `gorm:"type:varchar(100);not null" json:"category"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date        Date            `gorm:"type:date;not null" json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Validate checks the column-level constraints shared by create and update.
func (t *Transaction) Validate() error {
	if t.Type != Income && t.Type != Expense {
		return apperrors.NewValidation("type", "type must be Income or Expense")
	}
	if t.Description == "" {
		return apperrors.NewValidation("description", "description must not be blank")
	}
	if utf8.RuneCountInString(t.Description) > 255 {
		return apperrors.NewValidation("description", "description must be at most 255 characters")
	}
	if t.Category == "" {
		return apperrors.NewValidation("category", "category must not be blank")
	}
	if utf8.RuneCountInString(t.Category) > 100 {
		return apperrors.NewValidation("category", "category must be at most 100 characters")
	}
	if !AmountValid(t.Amount) {
		return apperrors.NewValidation("amount", "amount must have at most 10 digits and 2 decimal places")
	}
	if t.Date.IsZero() {
		return apperrors.NewValidation("date", "date must be a valid calendar date")
	}
	return nil
}

// Budget represents a spending budget for a category. A category may carry
// only one budget per owner, but the same category can appear under
// different owners.
type Budget struct {
	ID       uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID  *uuid.UUID      `gorm:"type:uuid;index;uniqueIndex:idx_budget_owner_category" json:"owner_id,omitempty"`
	Category string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_budget_owner_category" json:"category"`
	Amount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b *Budget) Validate() error {
	if b.Category == "" {
		return apperrors.NewValidation("category", "category must not be blank")
	}
	if utf8.RuneCountInString(b.Category) > 100 {
		return apperrors.NewValidation("category", "category must be at most 100 characters")
	}
	if !AmountValid(b.Amount) {
		return apperrors.NewValidation("amount", "amount must have at most 10 digits and 2 decimal places")
	}
	return nil
}

// Loan represents money lent to or borrowed from a counterparty. Direction
// is not modeled; the lender field names the other party either way.
type Loan struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID   *uuid.UUID      `gorm:"type:uuid;index" json:"owner_id,omitempty"`
	Lender    string          `gorm:"type:varchar(255);not null" json:"lender"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	DueDate   Date            `gorm:"type:date;not null" json:"due_date"`
	Paid      bool            `gorm:"default:false" json:"paid"`
	CreatedAt time.Time       `json:"created_at"`
}

func (l *Loan) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (l *Loan) Validate() error {
	if l.Lender == "" {
		return apperrors.NewValidation("lender", "lender must not be blank")
	}
	if utf8.RuneCountInString(l.Lender) > 255 {
		return apperrors.NewValidation("lender", "lender must be at most 255 characters")
	}
	if !AmountValid(l.Amount) {
		return apperrors.NewValidation("amount", "amount must have at most 10 digits and 2 decimal places")
	}
	if l.DueDate.IsZero() {
		return apperrors.NewValidation("due_date", "due_date must be a valid calendar date")
	}
	return nil
}
