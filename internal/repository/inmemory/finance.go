package inmemory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	financedomain "finance-app-go/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// FinanceRepository keeps the ledger in process memory. Transaction works on
// a copy of the state and swaps it in only when fn succeeds, so a failed unit
// of work leaves nothing behind.
type FinanceRepository struct {
	mu    *sync.RWMutex
	state *financeState
	inTx  bool
}

var _ financedomain.Repository = (*FinanceRepository)(nil)

type financeState struct {
	transactions map[string]financedomain.Transaction
	accounts     map[string]financedomain.Account
	categories   map[string]financedomain.Category
	currencies   map[string]financedomain.Currency
}

func NewFinanceRepository() *FinanceRepository {
	return &FinanceRepository{
		mu: &sync.RWMutex{},
		state: &financeState{
			transactions: make(map[string]financedomain.Transaction),
			accounts:     make(map[string]financedomain.Account),
			categories:   make(map[string]financedomain.Category),
			currencies:   make(map[string]financedomain.Currency),
		},
	}
}

// SeedCurrency stores a currency as-is. A nil OwnerID makes it shared.
func (r *FinanceRepository) SeedCurrency(currency financedomain.Currency) {
	defer r.write()()
	r.state.currencies[currency.ID] = currency
}

// SeedCategory stores a category as-is. A nil OwnerID makes it shared.
func (r *FinanceRepository) SeedCategory(category financedomain.Category) {
	defer r.write()()
	r.state.categories[category.ID] = category
}

func (r *FinanceRepository) Transaction(ctx context.Context, fn func(financedomain.Repository) error) error {
	if r.inTx {
		return fn(r)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	working := r.state.clone()
	if err := fn(&FinanceRepository{mu: r.mu, state: working, inTx: true}); err != nil {
		return err
	}
	*r.state = *working
	return nil
}

func (r *FinanceRepository) ListTransactions(ctx context.Context, ownerID string, kind financedomain.Kind, filter financedomain.TransactionFilter) ([]financedomain.Transaction, int64, error) {
	defer r.read()()

	items := make([]financedomain.Transaction, 0)
	for _, transaction := range r.state.transactions {
		if transaction.OwnerID != ownerID || transaction.Kind != kind {
			continue
		}
		if filter.From != nil && transaction.OccurredAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && transaction.OccurredAt.After(*filter.To) {
			continue
		}
		if filter.CategoryID != "" && transaction.CategoryID != filter.CategoryID {
			continue
		}
		items = append(items, transaction)
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].OccurredAt.Equal(items[j].OccurredAt) {
			return items[i].OccurredAt.After(items[j].OccurredAt)
		}
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})

	total := int64(len(items))
	if filter.Offset > 0 {
		if filter.Offset >= len(items) {
			return []financedomain.Transaction{}, total, nil
		}
		items = items[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(items) {
		items = items[:filter.Limit]
	}

	return items, total, nil
}

func (r *FinanceRepository) SumTransactions(ctx context.Context, ownerID string, kind financedomain.Kind, from, to time.Time) (decimal.Decimal, error) {
	defer r.read()()

	total := decimal.Zero
	for _, transaction := range r.state.transactions {
		if transaction.OwnerID != ownerID || transaction.Kind != kind {
			continue
		}
		if transaction.OccurredAt.Before(from) || transaction.OccurredAt.After(to) {
			continue
		}
		total = total.Add(transaction.Amount)
	}
	return total, nil
}

func (r *FinanceRepository) SumTransactionsByCategory(ctx context.Context, ownerID string, kind financedomain.Kind, from, to time.Time, limit int) ([]financedomain.CategoryTotal, error) {
	defer r.read()()

	byCategory := make(map[string]*financedomain.CategoryTotal)
	for _, transaction := range r.state.transactions {
		if transaction.OwnerID != ownerID || transaction.Kind != kind {
			continue
		}
		if transaction.OccurredAt.Before(from) || transaction.OccurredAt.After(to) {
			continue
		}
		row, ok := byCategory[transaction.CategoryID]
		if !ok {
			row = &financedomain.CategoryTotal{
				CategoryID:   transaction.CategoryID,
				CategoryName: r.state.categories[transaction.CategoryID].Name,
				Total:        decimal.Zero,
			}
			byCategory[transaction.CategoryID] = row
		}
		row.Total = row.Total.Add(transaction.Amount)
		row.Count++
	}

	totals := make([]financedomain.CategoryTotal, 0, len(byCategory))
	for _, row := range byCategory {
		totals = append(totals, *row)
	}
	sort.Slice(totals, func(i, j int) bool {
		if cmp := totals[i].Total.Cmp(totals[j].Total); cmp != 0 {
			return cmp > 0
		}
		return totals[i].CategoryName < totals[j].CategoryName
	})
	if limit > 0 && len(totals) > limit {
		totals = totals[:limit]
	}
	return totals, nil
}

func (r *FinanceRepository) GetTransactionByID(ctx context.Context, ownerID string, kind financedomain.Kind, id string) (*financedomain.Transaction, error) {
	defer r.read()()

	transaction, ok := r.state.transactions[id]
	if !ok || transaction.OwnerID != ownerID || transaction.Kind != kind {
		return nil, financedomain.ErrTransactionNotFound
	}
	return &transaction, nil
}

func (r *FinanceRepository) CreateTransaction(ctx context.Context, transaction *financedomain.Transaction) error {
	defer r.write()()
	r.state.transactions[transaction.ID] = *transaction
	return nil
}

func (r *FinanceRepository) UpdateTransaction(ctx context.Context, transaction *financedomain.Transaction) error {
	defer r.write()()

	current, ok := r.state.transactions[transaction.ID]
	if !ok || current.OwnerID != transaction.OwnerID {
		return financedomain.ErrTransactionNotFound
	}
	r.state.transactions[transaction.ID] = *transaction
	return nil
}

func (r *FinanceRepository) DeleteTransaction(ctx context.Context, ownerID string, kind financedomain.Kind, id string) (bool, error) {
	defer r.write()()

	transaction, ok := r.state.transactions[id]
	if !ok || transaction.OwnerID != ownerID || transaction.Kind != kind {
		return false, nil
	}
	delete(r.state.transactions, id)
	return true, nil
}

func (r *FinanceRepository) CountTransactionsByAccountID(ctx context.Context, ownerID, accountID string) (int64, error) {
	defer r.read()()

	var count int64
	for _, transaction := range r.state.transactions {
		if transaction.OwnerID == ownerID && transaction.AccountID == accountID {
			count++
		}
	}
	return count, nil
}

func (r *FinanceRepository) CountTransactionsByCategoryID(ctx context.Context, categoryID string) (int64, error) {
	defer r.read()()

	var count int64
	for _, transaction := range r.state.transactions {
		if transaction.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (r *FinanceRepository) ListAccounts(ctx context.Context, ownerID string) ([]financedomain.Account, error) {
	defer r.read()()

	accounts := make([]financedomain.Account, 0)
	for _, account := range r.state.accounts {
		if account.OwnerID == ownerID {
			accounts = append(accounts, account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool {
		if !accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
		}
		return accounts[i].ID < accounts[j].ID
	})
	return accounts, nil
}

func (r *FinanceRepository) GetAccountByID(ctx context.Context, ownerID, id string) (*financedomain.Account, error) {
	defer r.read()()

	account, ok := r.state.accounts[id]
	if !ok || account.OwnerID != ownerID {
		return nil, financedomain.ErrAccountNotFound
	}
	return &account, nil
}

// LockAccount is GetAccountByID: inside Transaction the whole state is
// already held exclusively.
func (r *FinanceRepository) LockAccount(ctx context.Context, ownerID, id string) (*financedomain.Account, error) {
	return r.GetAccountByID(ctx, ownerID, id)
}

func (r *FinanceRepository) CreateAccount(ctx context.Context, account *financedomain.Account) error {
	defer r.write()()
	r.state.accounts[account.ID] = *account
	return nil
}

func (r *FinanceRepository) UpdateAccount(ctx context.Context, account *financedomain.Account) error {
	defer r.write()()

	current, ok := r.state.accounts[account.ID]
	if !ok || current.OwnerID != account.OwnerID {
		return financedomain.ErrAccountNotFound
	}
	current.Name = account.Name
	current.CurrencyID = account.CurrencyID
	current.CountsTowardTotal = account.CountsTowardTotal
	current.UpdatedAt = account.UpdatedAt
	r.state.accounts[account.ID] = current
	return nil
}

func (r *FinanceRepository) AddToAccountBalance(ctx context.Context, ownerID, id string, delta decimal.Decimal, at time.Time) error {
	defer r.write()()

	account, ok := r.state.accounts[id]
	if !ok || account.OwnerID != ownerID {
		return financedomain.ErrAccountNotFound
	}
	balance := account.Balance.Add(delta)
	if !financedomain.InMoneyRange(balance) {
		return financedomain.ErrBalanceOutOfRange
	}
	account.Balance = balance
	account.UpdatedAt = at
	r.state.accounts[id] = account
	return nil
}

func (r *FinanceRepository) DeleteAccount(ctx context.Context, ownerID, id string) (bool, error) {
	defer r.write()()

	account, ok := r.state.accounts[id]
	if !ok || account.OwnerID != ownerID {
		return false, nil
	}
	delete(r.state.accounts, id)
	return true, nil
}

func (r *FinanceRepository) SumBalancesByCurrency(ctx context.Context, ownerID string) ([]financedomain.CurrencyTotal, error) {
	defer r.read()()

	totals := make(map[string]decimal.Decimal)
	for _, account := range r.state.accounts {
		if account.OwnerID != ownerID || !account.CountsTowardTotal {
			continue
		}
		currency, ok := r.state.currencies[account.CurrencyID]
		if !ok {
			continue
		}
		totals[currency.Name] = totals[currency.Name].Add(account.Balance)
	}

	rows := make([]financedomain.CurrencyTotal, 0, len(totals))
	for name, total := range totals {
		rows = append(rows, financedomain.CurrencyTotal{Currency: name, Total: total})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Currency < rows[j].Currency
	})
	return rows, nil
}

func (r *FinanceRepository) ListCategories(ctx context.Context, ownerID string) ([]financedomain.Category, error) {
	defer r.read()()

	categories := make([]financedomain.Category, 0)
	for _, category := range r.state.categories {
		if visibleTo(category.OwnerID, ownerID) {
			categories = append(categories, category)
		}
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Kind != categories[j].Kind {
			return categories[i].Kind < categories[j].Kind
		}
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (r *FinanceRepository) GetCategoryByID(ctx context.Context, ownerID, id string) (*financedomain.Category, error) {
	defer r.read()()

	category, ok := r.state.categories[id]
	if !ok || !visibleTo(category.OwnerID, ownerID) {
		return nil, financedomain.ErrCategoryNotFound
	}
	return &category, nil
}

func (r *FinanceRepository) CreateCategory(ctx context.Context, category *financedomain.Category) error {
	defer r.write()()
	r.state.categories[category.ID] = *category
	return nil
}

func (r *FinanceRepository) UpdateCategory(ctx context.Context, category *financedomain.Category) error {
	defer r.write()()

	current, ok := r.state.categories[category.ID]
	if !ok || current.Shared() || category.OwnerID == nil || *current.OwnerID != *category.OwnerID {
		return financedomain.ErrCategoryNotFound
	}
	current.Name = category.Name
	r.state.categories[category.ID] = current
	return nil
}

func (r *FinanceRepository) CountCategoriesByName(ctx context.Context, ownerID string, kind financedomain.Kind, name, excludeID string) (int64, error) {
	defer r.read()()

	var count int64
	for _, category := range r.state.categories {
		if category.ID == excludeID || category.Kind != kind || !visibleTo(category.OwnerID, ownerID) {
			continue
		}
		if strings.EqualFold(category.Name, name) {
			count++
		}
	}
	return count, nil
}

func (r *FinanceRepository) DeleteCategory(ctx context.Context, ownerID, id string) (bool, error) {
	defer r.write()()

	category, ok := r.state.categories[id]
	if !ok || category.Shared() || *category.OwnerID != ownerID {
		return false, nil
	}
	for _, transaction := range r.state.transactions {
		if transaction.CategoryID == id {
			return false, financedomain.ErrCategoryInUse
		}
	}
	delete(r.state.categories, id)
	return true, nil
}

func (r *FinanceRepository) ListCurrencies(ctx context.Context, ownerID string) ([]financedomain.Currency, error) {
	defer r.read()()

	currencies := make([]financedomain.Currency, 0)
	for _, currency := range r.state.currencies {
		if visibleTo(currency.OwnerID, ownerID) {
			currencies = append(currencies, currency)
		}
	}
	sort.Slice(currencies, func(i, j int) bool {
		return currencies[i].Name < currencies[j].Name
	})
	return currencies, nil
}

func (r *FinanceRepository) GetCurrencyByID(ctx context.Context, ownerID, id string) (*financedomain.Currency, error) {
	defer r.read()()

	currency, ok := r.state.currencies[id]
	if !ok || !visibleTo(currency.OwnerID, ownerID) {
		return nil, financedomain.ErrCurrencyNotFound
	}
	return &currency, nil
}

func (r *FinanceRepository) CreateCurrency(ctx context.Context, currency *financedomain.Currency) error {
	defer r.write()()
	r.state.currencies[currency.ID] = *currency
	return nil
}

func (r *FinanceRepository) CountCurrenciesByName(ctx context.Context, ownerID, name string) (int64, error) {
	defer r.read()()

	var count int64
	for _, currency := range r.state.currencies {
		if visibleTo(currency.OwnerID, ownerID) && strings.EqualFold(currency.Name, name) {
			count++
		}
	}
	return count, nil
}

func (r *FinanceRepository) read() func() {
	if r.inTx {
		return func() {}
	}
	r.mu.RLock()
	return r.mu.RUnlock
}

func (r *FinanceRepository) write() func() {
	if r.inTx {
		return func() {}
	}
	r.mu.Lock()
	return r.mu.Unlock
}

func visibleTo(rowOwnerID *string, ownerID string) bool {
	return rowOwnerID == nil || *rowOwnerID == ownerID
}

func (s *financeState) clone() *financeState {
	cloned := &financeState{
		transactions: make(map[string]financedomain.Transaction, len(s.transactions)),
		accounts:     make(map[string]financedomain.Account, len(s.accounts)),
		categories:   make(map[string]financedomain.Category, len(s.categories)),
		currencies:   make(map[string]financedomain.Currency, len(s.currencies)),
	}
	for id, transaction := range s.transactions {
		cloned.transactions[id] = transaction
	}
	for id, account := range s.accounts {
		cloned.accounts[id] = account
	}
	for id, category := range s.categories {
		cloned.categories[id] = category
	}
	for id, currency := range s.currencies {
		cloned.currencies[id] = currency
	}
	return cloned
}
