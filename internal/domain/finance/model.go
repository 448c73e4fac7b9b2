package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

type Currency struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	OwnerID   *string   `gorm:"type:uuid;index"`
	Name      string    `gorm:"size:16;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type Account struct {
	ID                string          `gorm:"type:uuid;primaryKey"`
	OwnerID           string          `gorm:"type:uuid;index;not null"`
	Name              string          `gorm:"not null"`
	CurrencyID        string          `gorm:"type:uuid;not null"`
	Balance           decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CountsTowardTotal bool            `gorm:"not null"`
	CreatedAt         time.Time       `gorm:"autoCreateTime"`
	UpdatedAt         time.Time
}

type Category struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	OwnerID   *string   `gorm:"type:uuid;index"`
	Name      string    `gorm:"not null"`
	Kind      Kind      `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Shared reports whether the category is visible to every user.
func (c Category) Shared() bool {
	return c.OwnerID == nil
}

// Transaction is a single income or expense record. Amount is always
// positive; the sign applied to the account balance comes from Kind.
type Transaction struct {
	ID           string          `gorm:"type:uuid;primaryKey"`
	OwnerID      string          `gorm:"type:uuid;index;not null"`
	Kind         Kind            `gorm:"type:varchar(16);index;not null"`
	Title        string          `gorm:"not null"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	OccurredAt   time.Time       `gorm:"not null"`
	CategoryID   string          `gorm:"type:uuid;not null"`
	AccountID    string          `gorm:"type:uuid;index;not null"`
	Counterparty string          `gorm:"not null"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
}

// SignedAmount is the effect of the transaction on its account balance.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == KindExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

type CurrencyTotal struct {
	Currency string          `gorm:"column:currency"`
	Total    decimal.Decimal `gorm:"column:total"`
}

type CategoryTotal struct {
	CategoryID   string          `gorm:"column:category_id"`
	CategoryName string          `gorm:"column:category_name"`
	Total        decimal.Decimal `gorm:"column:total"`
	Count        int64           `gorm:"column:count"`
}

type CategoryBreakdownFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

type Overview struct {
	AccountSum map[string]decimal.Decimal
	IncomeSum  decimal.Decimal
	ExpenseSum decimal.Decimal
	From       time.Time
	To         time.Time
}

type TransactionFilter struct {
	From       *time.Time
	To         *time.Time
	CategoryID string
	Limit      int
	Offset     int
}

type CreateTransactionInput struct {
	OwnerID      string
	Kind         Kind
	Title        string
	Amount       decimal.Decimal
	OccurredAt   time.Time
	CategoryID   string
	AccountID    string
	Counterparty string
}

// UpdateTransactionInput lists the mutable fields of a transaction. Nil
// fields keep their current value.
type UpdateTransactionInput struct {
	ID           string
	OwnerID      string
	Kind         Kind
	Title        *string
	Amount       *decimal.Decimal
	OccurredAt   *time.Time
	CategoryID   *string
	AccountID    *string
	Counterparty *string
}

type CreateAccountInput struct {
	OwnerID           string
	Name              string
	CurrencyID        string
	Balance           decimal.Decimal
	CountsTowardTotal bool
}

type UpdateAccountInput struct {
	ID                string
	OwnerID           string
	Name              *string
	CurrencyID        *string
	CountsTowardTotal *bool
}

type CreateCategoryInput struct {
	OwnerID string
	Name    string
	Kind    Kind
}

type UpdateCategoryInput struct {
	ID      string
	OwnerID string
	Name    string
}

type CreateCurrencyInput struct {
	OwnerID string
	Name    string
}
