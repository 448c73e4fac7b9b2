package inmemory

import (
	financedomain "finance-app-go/internal/domain/finance"
)

// SeedSharedCatalog loads the shared currencies and categories that the
// postgres migrations insert, so both backends start from the same catalog.
func (r *FinanceRepository) SeedSharedCatalog() {
	currencies := []financedomain.Currency{
		{ID: "00000000-0000-4000-a000-000000000001", Name: "USD"},
		{ID: "00000000-0000-4000-a000-000000000002", Name: "EUR"},
		{ID: "00000000-0000-4000-a000-000000000003", Name: "RUB"},
	}
	for _, currency := range currencies {
		r.SeedCurrency(currency)
	}

	categories := []financedomain.Category{
		{ID: "00000000-0000-4000-b000-000000000001", Name: "Salary", Kind: financedomain.KindIncome},
		{ID: "00000000-0000-4000-b000-000000000002", Name: "Gifts", Kind: financedomain.KindIncome},
		{ID: "00000000-0000-4000-b000-000000000003", Name: "Other income", Kind: financedomain.KindIncome},
		{ID: "00000000-0000-4000-b000-000000000101", Name: "Groceries", Kind: financedomain.KindExpense},
		{ID: "00000000-0000-4000-b000-000000000102", Name: "Transport", Kind: financedomain.KindExpense},
		{ID: "00000000-0000-4000-b000-000000000103", Name: "Housing", Kind: financedomain.KindExpense},
		{ID: "00000000-0000-4000-b000-000000000104", Name: "Health", Kind: financedomain.KindExpense},
		{ID: "00000000-0000-4000-b000-000000000105", Name: "Other expense", Kind: financedomain.KindExpense},
	}
	for _, category := range categories {
		r.SeedCategory(category)
	}
}
