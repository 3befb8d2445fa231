package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"spendwise-go-be/apperrors"
	"spendwise-go-be/database"
	"spendwise-go-be/models"
)

// LedgerTestSuite runs the store against an in-memory SQLite database.
type LedgerTestSuite struct {
	suite.Suite
	ledger *Ledger
	owner  uuid.UUID
	ctx    context.Context
}

func (s *LedgerTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(s.T(), err, "failed to open test database")

	// A pooled :memory: DSN opens a fresh database per connection.
	sqlDB, err := db.DB()
	require.NoError(s.T(), err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(s.T(), database.Migrate(db))

	s.ledger = NewLedger(db)
	s.owner = uuid.New()
	s.ctx = context.Background()
}

func (s *LedgerTestSuite) newTransaction(desc string, date models.Date) *models.Transaction {
	owner := s.owner
	return &models.Transaction{
		OwnerID:     &owner,
		Type:        models.Expense,
		Description: desc,
		Category:    "Groceries",
		Amount:      decimal.RequireFromString("42.50"),
		Date:        date,
	}
}

func (s *LedgerTestSuite) TestCreateTransactionAssignsServerFields() {
	txn := s.newTransaction("Lunch", models.NewDate(2024, time.March, 5))
	require.NoError(s.T(), s.ledger.CreateTransaction(s.ctx, txn))

	assert.NotEqual(s.T(), uuid.Nil, txn.ID)
	assert.False(s.T(), txn.CreatedAt.IsZero())

	got, err := s.ledger.GetTransaction(s.ctx, s.owner, txn.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Lunch", got.Description)
	assert.Equal(s.T(), models.Expense, got.Type)
	assert.True(s.T(), got.Amount.Equal(decimal.RequireFromString("42.50")))
	assert.Equal(s.T(), "2024-03-05", got.Date.String())
}

func (s *LedgerTestSuite) TestCreateTransactionValidation() {
	cases := []struct {
		name   string
		mutate func(*models.Transaction)
		field  string
	}{
		{"bad type", func(t *models.Transaction) { t.Type = "Transfer" }, "type"},
		{"blank description", func(t *models.Transaction) { t.Description = "" }, "description"},
		{"too many decimals", func(t *models.Transaction) { t.Amount = decimal.RequireFromString("10.123") }, "amount"},
		{"too many digits", func(t *models.Transaction) { t.Amount = decimal.RequireFromString("123456789.00") }, "amount"},
		{"zero date", func(t *models.Transaction) { t.Date = models.Date{} }, "date"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			txn := s.newTransaction("Lunch", models.NewDate(2024, time.March, 5))
			tc.mutate(txn)
			err := s.ledger.CreateTransaction(s.ctx, txn)

			var ve *apperrors.ValidationError
			require.ErrorAs(s.T(), err, &ve)
			assert.Equal(s.T(), tc.field, ve.Field)
		})
	}
}

func (s *LedgerTestSuite) TestListTransactionsOrdering() {
	older := s.newTransaction("older day", models.NewDate(2024, time.March, 1))
	newer := s.newTransaction("newer day", models.NewDate(2024, time.March, 9))
	tieFirst := s.newTransaction("tie, created earlier", models.NewDate(2024, time.March, 5))
	tieSecond := s.newTransaction("tie, created later", models.NewDate(2024, time.March, 5))

	for _, txn := range []*models.Transaction{older, newer, tieFirst, tieSecond} {
		require.NoError(s.T(), s.ledger.CreateTransaction(s.ctx, txn))
	}

	// Pin created_at so the tie-break is deterministic.
	base := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	s.setCreatedAt(tieFirst.ID, base)
	s.setCreatedAt(tieSecond.ID, base.Add(time.Hour))

	got, err := s.ledger.ListTransactions(s.ctx, s.owner)
	require.NoError(s.T(), err)
	require.Len(s.T(), got, 4)

	assert.Equal(s.T(), "newer day", got[0].Description)
	assert.Equal(s.T(), "tie, created later", got[1].Description)
	assert.Equal(s.T(), "tie, created earlier", got[2].Description)
	assert.Equal(s.T(), "older day", got[3].Description)
}

func (s *LedgerTestSuite) setCreatedAt(id uuid.UUID, at time.Time) {
	err := s.ledger.db.Model(&models.Transaction{}).Where("id = ?", id).Update("created_at", at).Error
	require.NoError(s.T(), err)
}

func (s *LedgerTestSuite) TestUpdateTransactionKeepsServerFields() {
	txn := s.newTransaction("Lunch", models.NewDate(2024, time.March, 5))
	require.NoError(s.T(), s.ledger.CreateTransaction(s.ctx, txn))

	loaded, err := s.ledger.GetTransaction(s.ctx, s.owner, txn.ID)
	require.NoError(s.T(), err)

	loaded.Amount = decimal.RequireFromString("99.99")
	require.NoError(s.T(), s.ledger.UpdateTransaction(s.ctx, loaded))

	got, err := s.ledger.GetTransaction(s.ctx, s.owner, txn.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), txn.ID, got.ID)
	assert.True(s.T(), got.Amount.Equal(decimal.RequireFromString("99.99")))
	require.NotNil(s.T(), got.OwnerID)
	assert.Equal(s.T(), s.owner, *got.OwnerID)
	assert.WithinDuration(s.T(), txn.CreatedAt, got.CreatedAt, time.Second)
}

func (s *LedgerTestSuite) TestDeleteTransactionIdempotentFailure() {
	txn := s.newTransaction("Lunch", models.NewDate(2024, time.March, 5))
	require.NoError(s.T(), s.ledger.CreateTransaction(s.ctx, txn))

	require.NoError(s.T(), s.ledger.DeleteTransaction(s.ctx, s.owner, txn.ID))

	_, err := s.ledger.GetTransaction(s.ctx, s.owner, txn.ID)
	assert.True(s.T(), errors.Is(err, apperrors.ErrNotFound))

	err = s.ledger.DeleteTransaction(s.ctx, s.owner, txn.ID)
	assert.True(s.T(), errors.Is(err, apperrors.ErrNotFound), "second delete must also report not found")
}

func (s *LedgerTestSuite) TestOwnerScoping() {
	txn := s.newTransaction("Lunch", models.NewDate(2024, time.March, 5))
	require.NoError(s.T(), s.ledger.CreateTransaction(s.ctx, txn))

	stranger := uuid.New()

	_, err := s.ledger.GetTransaction(s.ctx, stranger, txn.ID)
	assert.True(s.T(), errors.Is(err, apperrors.ErrNotFound))

	err = s.ledger.DeleteTransaction(s.ctx, stranger, txn.ID)
	assert.True(s.T(), errors.Is(err, apperrors.ErrNotFound))

	list, err := s.ledger.ListTransactions(s.ctx, stranger)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), list)
}

func (s *LedgerTestSuite) newBudget(owner uuid.UUID, category string) *models.Budget {
	return &models.Budget{
		OwnerID:  &owner,
		Category: category,
		Amount:   decimal.RequireFromString("300.00"),
	}
}

func (s *LedgerTestSuite) TestListBudgetsOrdering() {
	for _, category := range []string{"Rent", "Groceries", "Travel"} {
		require.NoError(s.T(), s.ledger.CreateBudget(s.ctx, s.newBudget(s.owner, category)))
	}

	got, err := s.ledger.ListBudgets(s.ctx, s.owner)
	require.NoError(s.T(), err)
	require.Len(s.T(), got, 3)
	assert.Equal(s.T(), "Groceries", got[0].Category)
	assert.Equal(s.T(), "Rent", got[1].Category)
	assert.Equal(s.T(), "Travel", got[2].Category)
}

func (s *LedgerTestSuite) TestBudgetCategoryUniquePerOwner() {
	require.NoError(s.T(), s.ledger.CreateBudget(s.ctx, s.newBudget(s.owner, "Groceries")))

	err := s.ledger.CreateBudget(s.ctx, s.newBudget(s.owner, "Groceries"))
	var ve *apperrors.ValidationError
	require.ErrorAs(s.T(), err, &ve)
	assert.Equal(s.T(), "category", ve.Field)

	// Same category under another owner is fine.
	require.NoError(s.T(), s.ledger.CreateBudget(s.ctx, s.newBudget(uuid.New(), "Groceries")))
}

func (s *LedgerTestSuite) TestBudgetUpdateCategoryCollision() {
	groceries := s.newBudget(s.owner, "Groceries")
	rent := s.newBudget(s.owner, "Rent")
	require.NoError(s.T(), s.ledger.CreateBudget(s.ctx, groceries))
	require.NoError(s.T(), s.ledger.CreateBudget(s.ctx, rent))

	// Updating a budget without renaming it must not collide with itself.
	rent.Amount = decimal.RequireFromString("1200.00")
	require.NoError(s.T(), s.ledger.UpdateBudget(s.ctx, rent))

	rent.Category = "Groceries"
	err := s.ledger.UpdateBudget(s.ctx, rent)
	var ve *apperrors.ValidationError
	require.ErrorAs(s.T(), err, &ve)
	assert.Equal(s.T(), "category", ve.Field)
}

func (s *LedgerTestSuite) newLoan(lender string, due models.Date, paid bool) *models.Loan {
	owner := s.owner
	return &models.Loan{
		OwnerID: &owner,
		Lender:  lender,
		Amount:  decimal.RequireFromString("500.00"),
		DueDate: due,
		Paid:    paid,
	}
}

func (s *LedgerTestSuite) TestListLoansOrdering() {
	due := models.NewDate(2024, time.June, 1)
	later := models.NewDate(2024, time.July, 1)

	paidLoan := s.newLoan("Alice", due, true)
	unpaidLoan := s.newLoan("Bob", due, false)
	lastLoan := s.newLoan("Carol", later, false)

	for _, loan := range []*models.Loan{lastLoan, paidLoan, unpaidLoan} {
		require.NoError(s.T(), s.ledger.CreateLoan(s.ctx, loan))
	}

	got, err := s.ledger.ListLoans(s.ctx, s.owner)
	require.NoError(s.T(), err)
	require.Len(s.T(), got, 3)

	// Same due date: the unpaid loan sorts first.
	assert.Equal(s.T(), "Bob", got[0].Lender)
	assert.False(s.T(), got[0].Paid)
	assert.Equal(s.T(), "Alice", got[1].Lender)
	assert.Equal(s.T(), "Carol", got[2].Lender)
}

func (s *LedgerTestSuite) TestLoanRoundTrip() {
	loan := s.newLoan("Alice", models.NewDate(2024, time.June, 1), false)
	require.NoError(s.T(), s.ledger.CreateLoan(s.ctx, loan))
	assert.False(s.T(), loan.CreatedAt.IsZero())

	loaded, err := s.ledger.GetLoan(s.ctx, s.owner, loan.ID)
	require.NoError(s.T(), err)

	loaded.Paid = true
	require.NoError(s.T(), s.ledger.UpdateLoan(s.ctx, loaded))

	got, err := s.ledger.GetLoan(s.ctx, s.owner, loan.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), got.Paid)
	assert.Equal(s.T(), "2024-06-01", got.DueDate.String())
}

func (s *LedgerTestSuite) TestDeleteUserClearsOwnership() {
	user := &models.User{Email: "gone@example.com"}
	require.NoError(s.T(), s.ledger.CreateUser(s.ctx, user))

	owner := user.ID
	txn := s.newTransaction("Lunch", models.NewDate(2024, time.March, 5))
	txn.OwnerID = &owner
	budget := s.newBudget(owner, "Groceries")
	loan := s.newLoan("Alice", models.NewDate(2024, time.June, 1), false)
	loan.OwnerID = &owner

	require.NoError(s.T(), s.ledger.CreateTransaction(s.ctx, txn))
	require.NoError(s.T(), s.ledger.CreateBudget(s.ctx, budget))
	require.NoError(s.T(), s.ledger.CreateLoan(s.ctx, loan))

	require.NoError(s.T(), s.ledger.DeleteUser(s.ctx, user.ID))

	// The records survive with their owner cleared.
	var gotTxn models.Transaction
	require.NoError(s.T(), s.ledger.db.First(&gotTxn, "id = ?", txn.ID).Error)
	assert.Nil(s.T(), gotTxn.OwnerID)

	var gotBudget models.Budget
	require.NoError(s.T(), s.ledger.db.First(&gotBudget, "id = ?", budget.ID).Error)
	assert.Nil(s.T(), gotBudget.OwnerID)

	var gotLoan models.Loan
	require.NoError(s.T(), s.ledger.db.First(&gotLoan, "id = ?", loan.ID).Error)
	assert.Nil(s.T(), gotLoan.OwnerID)

	err := s.ledger.DeleteUser(s.ctx, user.ID)
	assert.True(s.T(), errors.Is(err, apperrors.ErrNotFound))
}

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}
