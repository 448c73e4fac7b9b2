package finance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository is scoped to a single unit of work. Transaction runs fn
// against a repository bound to one database transaction; returning an
// error from fn rolls every write back.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	ListTransactions(ctx context.Context, ownerID string, kind Kind, filter TransactionFilter) ([]Transaction, int64, error)
	SumTransactions(ctx context.Context, ownerID string, kind Kind, from, to time.Time) (decimal.Decimal, error)
	SumTransactionsByCategory(ctx context.Context, ownerID string, kind Kind, from, to time.Time, limit int) ([]CategoryTotal, error)
	GetTransactionByID(ctx context.Context, ownerID string, kind Kind, id string) (*Transaction, error)
	CreateTransaction(ctx context.Context, transaction *Transaction) error
	UpdateTransaction(ctx context.Context, transaction *Transaction) error
	DeleteTransaction(ctx context.Context, ownerID string, kind Kind, id string) (bool, error)
	CountTransactionsByAccountID(ctx context.Context, ownerID, accountID string) (int64, error)
	CountTransactionsByCategoryID(ctx context.Context, categoryID string) (int64, error)

	ListAccounts(ctx context.Context, ownerID string) ([]Account, error)
	GetAccountByID(ctx context.Context, ownerID, id string) (*Account, error)
	LockAccount(ctx context.Context, ownerID, id string) (*Account, error)
	CreateAccount(ctx context.Context, account *Account) error
	UpdateAccount(ctx context.Context, account *Account) error
	AddToAccountBalance(ctx context.Context, ownerID, id string, delta decimal.Decimal, at time.Time) error
	DeleteAccount(ctx context.Context, ownerID, id string) (bool, error)
	SumBalancesByCurrency(ctx context.Context, ownerID string) ([]CurrencyTotal, error)

	ListCategories(ctx context.Context, ownerID string) ([]Category, error)
	GetCategoryByID(ctx context.Context, ownerID, id string) (*Category, error)
	CreateCategory(ctx context.Context, category *Category) error
	UpdateCategory(ctx context.Context, category *Category) error
	CountCategoriesByName(ctx context.Context, ownerID string, kind Kind, name, excludeID string) (int64, error)
	DeleteCategory(ctx context.Context, ownerID, id string) (bool, error)

	ListCurrencies(ctx context.Context, ownerID string) ([]Currency, error)
	GetCurrencyByID(ctx context.Context, ownerID, id string) (*Currency, error)
	CreateCurrency(ctx context.Context, currency *Currency) error
	CountCurrenciesByName(ctx context.Context, ownerID, name string) (int64, error)
}
