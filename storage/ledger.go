package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"spendwise-go-be/apperrors"
	"spendwise-go-be/models"
)

// Ledger is the persistence layer for all record types. It owns no logic
// beyond storage, column-level validation and default ordering; every
// query is scoped to an owner.
type Ledger struct {
	db *gorm.DB
}

// NewLedger wraps an open database handle.
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// --- Transactions ---

func (l *Ledger) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := l.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

func (l *Ledger) GetTransaction(ctx context.Context, ownerID, id uuid.UUID) (*models.Transaction, error) {
	var t models.Transaction
	err := l.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

// ListTransactions returns the owner's transactions, most recent first:
// date descending, ties broken by created_at descending.
func (l *Ledger) ListTransactions(ctx context.Context, ownerID uuid.UUID) ([]models.Transaction, error) {
	var ts []models.Transaction
	err := l.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("date DESC, created_at DESC").
		Find(&ts).Error
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return ts, nil
}

// UpdateTransaction persists a previously loaded record. The id, owner and
// created_at columns keep the values the record was loaded with.
func (l *Ledger) UpdateTransaction(ctx context.Context, t *models.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := l.db.WithContext(ctx).Save(t).Error; err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

func (l *Ledger) DeleteTransaction(ctx context.Context, ownerID, id uuid.UUID) error {
	res := l.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Transaction{})
	if res.Error != nil {
		return fmt.Errorf("delete transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// --- Budgets ---

func (l *Ledger) CreateBudget(ctx context.Context, b *models.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	taken, err := l.budgetCategoryTaken(ctx, b.OwnerID, b.Category, b.ID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.NewValidation("category", "a budget for this category already exists")
	}
	if err := l.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("create budget: %w", err)
	}
	return nil
}

func (l *Ledger) GetBudget(ctx context.Context, ownerID, id uuid.UUID) (*models.Budget, error) {
	var b models.Budget
	err := l.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return &b, nil
}

// ListBudgets returns the owner's budgets ordered by category ascending.
func (l *Ledger) ListBudgets(ctx context.Context, ownerID uuid.UUID) ([]models.Budget, error) {
	var bs []models.Budget
	err := l.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("category ASC").
		Find(&bs).Error
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return bs, nil
}

func (l *Ledger) UpdateBudget(ctx context.Context, b *models.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	taken, err := l.budgetCategoryTaken(ctx, b.OwnerID, b.Category, b.ID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.NewValidation("category", "a budget for this category already exists")
	}
	if err := l.db.WithContext(ctx).Save(b).Error; err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return nil
}

func (l *Ledger) DeleteBudget(ctx context.Context, ownerID, id uuid.UUID) error {
	res := l.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Budget{})
	if res.Error != nil {
		return fmt.Errorf("delete budget: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// budgetCategoryTaken checks the per-owner category uniqueness rule,
// excluding the budget being written so updates don't collide with
// themselves.
func (l *Ledger) budgetCategoryTaken(ctx context.Context, ownerID *uuid.UUID, category string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := l.db.WithContext(ctx).Model(&models.Budget{}).
		Where("owner_id = ? AND category = ? AND id <> ?", ownerID, category, excludeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check budget category: %w", err)
	}
	return count > 0, nil
}

// --- Loans ---

func (l *Ledger) CreateLoan(ctx context.Context, loan *models.Loan) error {
	if err := loan.Validate(); err != nil {
		return err
	}
	if err := l.db.WithContext(ctx).Create(loan).Error; err != nil {
		return fmt.Errorf("create loan: %w", err)
	}
	return nil
}

func (l *Ledger) GetLoan(ctx context.Context, ownerID, id uuid.UUID) (*models.Loan, error) {
	var loan models.Loan
	err := l.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&loan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get loan: %w", err)
	}
	return &loan, nil
}

// ListLoans returns the owner's loans ordered by due_date ascending, ties
// broken by paid ascending so unpaid loans sort first.
func (l *Ledger) ListLoans(ctx context.Context, ownerID uuid.UUID) ([]models.Loan, error) {
	var loans []models.Loan
	err := l.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("due_date ASC, paid ASC").
		Find(&loans).Error
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return loans, nil
}

func (l *Ledger) UpdateLoan(ctx context.Context, loan *models.Loan) error {
	if err := loan.Validate(); err != nil {
		return err
	}
	if err := l.db.WithContext(ctx).Save(loan).Error; err != nil {
		return fmt.Errorf("update loan: %w", err)
	}
	return nil
}

func (l *Ledger) DeleteLoan(ctx context.Context, ownerID, id uuid.UUID) error {
	res := l.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Loan{})
	if res.Error != nil {
		return fmt.Errorf("delete loan: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// --- Users ---

func (l *Ledger) CreateUser(ctx context.Context, u *models.User) error {
	if u.Email == "" {
		return apperrors.NewValidation("email", "email must not be blank")
	}
	if err := l.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// DeleteUser removes a user while preserving their financial history:
// the owner reference on the user's records is cleared, never cascaded.
// Both steps commit atomically.
func (l *Ledger) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Transaction{},
			&models.Budget{},
			&models.Loan{},
		} {
			if err := tx.Model(model).Where("owner_id = ?", id).Update("owner_id", nil).Error; err != nil {
				return fmt.Errorf("clear owner: %w", err)
			}
		}
		res := tx.Where("id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}
