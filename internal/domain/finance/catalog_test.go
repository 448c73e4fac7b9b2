package finance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"finance-app-go/internal/domain/finance"
	"finance-app-go/internal/repository/inmemory"
	"github.com/shopspring/decimal"
)

func TestListCategoriesIncludesShared(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.CreateCategory(ctx, finance.CreateCategoryInput{OwnerID: ownerA, Name: "Gifts", Kind: finance.KindIncome}); err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := env.svc.CreateCategory(ctx, finance.CreateCategoryInput{OwnerID: ownerB, Name: "Taxi", Kind: finance.KindExpense}); err != nil {
		t.Fatalf("create category: %v", err)
	}

	all, err := env.svc.ListCategories(ctx, ownerA, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected own and shared categories, got %+v", all)
	}

	income, err := env.svc.ListCategories(ctx, ownerA, finance.KindIncome)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(income) != 2 {
		t.Fatalf("expected two income categories, got %+v", income)
	}
	for _, category := range income {
		if category.Kind != finance.KindIncome {
			t.Fatalf("unexpected kind %s", category.Kind)
		}
	}

	if _, err := env.svc.ListCategories(ctx, ownerA, "transfer"); !errors.Is(err, finance.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateCategoryNameTaken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.CreateCategory(ctx, finance.CreateCategoryInput{OwnerID: ownerA, Name: "Rent", Kind: finance.KindExpense}); err != nil {
		t.Fatalf("create category: %v", err)
	}

	tests := []struct {
		name  string
		input finance.CreateCategoryInput
		want  error
	}{
		{name: "same name", input: finance.CreateCategoryInput{OwnerID: ownerA, Name: "rent", Kind: finance.KindExpense}, want: finance.ErrCategoryNameTaken},
		{name: "shared name", input: finance.CreateCategoryInput{OwnerID: ownerA, Name: "FOOD", Kind: finance.KindExpense}, want: finance.ErrCategoryNameTaken},
		{name: "other kind", input: finance.CreateCategoryInput{OwnerID: ownerA, Name: "Rent", Kind: finance.KindIncome}, want: nil},
		{name: "other owner", input: finance.CreateCategoryInput{OwnerID: ownerB, Name: "Rent", Kind: finance.KindExpense}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.CreateCategory(ctx, tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSharedCategoryIsReadOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.UpdateCategory(ctx, finance.UpdateCategoryInput{ID: categoryFood, OwnerID: ownerA, Name: "Groceries"}); !errors.Is(err, finance.ErrSharedReadOnly) {
		t.Fatalf("update: expected ErrSharedReadOnly, got %v", err)
	}
	if err := env.svc.DeleteCategory(ctx, ownerA, categoryFood); !errors.Is(err, finance.ErrSharedReadOnly) {
		t.Fatalf("delete: expected ErrSharedReadOnly, got %v", err)
	}
}

func TestUpdateAndDeleteCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	category, err := env.svc.CreateCategory(ctx, finance.CreateCategoryInput{OwnerID: ownerA, Name: "Fun", Kind: finance.KindExpense})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	if _, err := env.svc.UpdateCategory(ctx, finance.UpdateCategoryInput{ID: category.ID, OwnerID: ownerB, Name: "Hacked"}); !errors.Is(err, finance.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound for other owner, got %v", err)
	}

	updated, err := env.svc.UpdateCategory(ctx, finance.UpdateCategoryInput{ID: category.ID, OwnerID: ownerA, Name: "Leisure"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Name != "Leisure" || updated.Kind != finance.KindExpense {
		t.Fatalf("unexpected category %+v", updated)
	}

	account := env.createAccount(t, ownerA, currencyUSD, 100, true)
	entry, err := env.svc.CreateTransaction(ctx, finance.CreateTransactionInput{
		OwnerID:    ownerA,
		Kind:       finance.KindExpense,
		Title:      "Cinema",
		Amount:     decimal.NewFromInt(12),
		CategoryID: category.ID,
		AccountID:  account.ID,
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}

	if err := env.svc.DeleteCategory(ctx, ownerA, category.ID); !errors.Is(err, finance.ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	if err := env.svc.DeleteTransaction(ctx, ownerA, finance.KindExpense, entry.ID); err != nil {
		t.Fatalf("delete expense: %v", err)
	}
	if err := env.svc.DeleteCategory(ctx, ownerA, category.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := env.svc.GetCategory(ctx, ownerA, category.ID); !errors.Is(err, finance.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoriesCacheInvalidatedOnMutation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := finance.NewServiceWithCache(env.repo, inmemory.NewCategoriesCache(), time.Minute)

	before, err := svc.ListCategories(ctx, ownerA, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Written behind the service's back: a cached list must not see it.
	env.repo.SeedCategory(finance.Category{ID: "20000000-0000-4000-8000-000000000003", Name: "Bonus", Kind: finance.KindIncome})
	cached, err := svc.ListCategories(ctx, ownerA, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cached) != len(before) {
		t.Fatalf("expected cached list of %d, got %d", len(before), len(cached))
	}

	if _, err := svc.CreateCategory(ctx, finance.CreateCategoryInput{OwnerID: ownerA, Name: "Side job", Kind: finance.KindIncome}); err != nil {
		t.Fatalf("create category: %v", err)
	}
	after, err := svc.ListCategories(ctx, ownerA, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(after) != len(before)+2 {
		t.Fatalf("expected %d categories after invalidation, got %d", len(before)+2, len(after))
	}
}

func TestCurrencies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.CreateCurrency(ctx, finance.CreateCurrencyInput{OwnerID: ownerA, Name: " gbp "})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Name != "GBP" {
		t.Fatalf("expected upper-case name, got %q", created.Name)
	}

	for _, name := range []string{"GBP", "usd"} {
		if _, err := env.svc.CreateCurrency(ctx, finance.CreateCurrencyInput{OwnerID: ownerA, Name: name}); !errors.Is(err, finance.ErrCurrencyNameTaken) {
			t.Fatalf("%s: expected ErrCurrencyNameTaken, got %v", name, err)
		}
	}
	if _, err := env.svc.CreateCurrency(ctx, finance.CreateCurrencyInput{OwnerID: ownerA, Name: ""}); !errors.Is(err, finance.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	listA, err := env.svc.ListCurrencies(ctx, ownerA)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(listA) != 3 {
		t.Fatalf("expected shared and own currencies, got %+v", listA)
	}
	listB, err := env.svc.ListCurrencies(ctx, ownerB)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(listB) != 2 {
		t.Fatalf("expected only shared currencies for other owner, got %+v", listB)
	}

	if _, err := env.svc.GetCurrency(ctx, ownerB, created.ID); !errors.Is(err, finance.ErrCurrencyNotFound) {
		t.Fatalf("expected ErrCurrencyNotFound, got %v", err)
	}
	if _, err := env.svc.GetCurrency(ctx, ownerB, currencyUSD); err != nil {
		t.Fatalf("expected shared currency visible, got %v", err)
	}
}

func TestDeleteReferencedCategoryRefusedByStore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	category, err := env.svc.CreateCategory(ctx, finance.CreateCategoryInput{OwnerID: ownerA, Name: "Pets", Kind: finance.KindExpense})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	account := env.createAccount(t, ownerA, currencyUSD, 50, true)
	if _, err := env.svc.CreateTransaction(ctx, finance.CreateTransactionInput{
		OwnerID:    ownerA,
		Kind:       finance.KindExpense,
		Title:      "Food bowl",
		Amount:     decimal.NewFromInt(5),
		CategoryID: category.ID,
		AccountID:  account.ID,
	}); err != nil {
		t.Fatalf("create expense: %v", err)
	}

	deleted, err := env.repo.DeleteCategory(ctx, ownerA, category.ID)
	if !errors.Is(err, finance.ErrCategoryInUse) || deleted {
		t.Fatalf("expected ErrCategoryInUse from the store, got deleted=%v err=%v", deleted, err)
	}
	if _, err := env.svc.GetCategory(ctx, ownerA, category.ID); err != nil {
		t.Fatalf("expected category kept, got %v", err)
	}
}
