package finance_test

import (
	"context"
	"testing"

	"finance-app-go/internal/domain/finance"
	"finance-app-go/internal/repository/inmemory"
	"github.com/shopspring/decimal"
)

const (
	ownerA = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	ownerB = "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb"

	currencyUSD = "10000000-0000-4000-8000-000000000001"
	currencyEUR = "10000000-0000-4000-8000-000000000002"

	categorySalary = "20000000-0000-4000-8000-000000000001"
	categoryFood   = "20000000-0000-4000-8000-000000000002"
)

type testEnv struct {
	repo *inmemory.FinanceRepository
	svc  *finance.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := inmemory.NewFinanceRepository()
	repo.SeedCurrency(finance.Currency{ID: currencyUSD, Name: "USD"})
	repo.SeedCurrency(finance.Currency{ID: currencyEUR, Name: "EUR"})
	repo.SeedCategory(finance.Category{ID: categorySalary, Name: "Salary", Kind: finance.KindIncome})
	repo.SeedCategory(finance.Category{ID: categoryFood, Name: "Food", Kind: finance.KindExpense})

	return &testEnv{repo: repo, svc: finance.NewService(repo)}
}

func (e *testEnv) createAccount(t *testing.T, ownerID, currencyID string, balance int64, counted bool) *finance.Account {
	t.Helper()

	account, err := e.svc.CreateAccount(context.Background(), finance.CreateAccountInput{
		OwnerID:           ownerID,
		Name:              "Wallet",
		CurrencyID:        currencyID,
		Balance:           decimal.NewFromInt(balance),
		CountsTowardTotal: counted,
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	return account
}

func (e *testEnv) balance(t *testing.T, ownerID, accountID string) decimal.Decimal {
	t.Helper()

	account, err := e.svc.GetAccount(context.Background(), ownerID, accountID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	return account.Balance
}

func (e *testEnv) createTransaction(t *testing.T, ownerID string, kind finance.Kind, accountID string, amount string) *finance.Transaction {
	t.Helper()

	categoryID := categorySalary
	if kind == finance.KindExpense {
		categoryID = categoryFood
	}

	transaction, err := e.svc.CreateTransaction(context.Background(), finance.CreateTransactionInput{
		OwnerID:    ownerID,
		Kind:       kind,
		Title:      "Entry",
		Amount:     decimal.RequireFromString(amount),
		CategoryID: categoryID,
		AccountID:  accountID,
	})
	if err != nil {
		t.Fatalf("create %s: %v", kind, err)
	}
	return transaction
}

func expectBalance(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("expected balance %s, got %s", want, got)
	}
}
