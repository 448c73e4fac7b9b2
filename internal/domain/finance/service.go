package finance

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const amountScale = 2

type Service struct {
	repo          Repository
	categories    CategoriesCache
	categoriesTTL time.Duration
	now           func() time.Time
}

func NewService(repo Repository) *Service {
	return NewServiceWithCache(repo, noopCategoriesCache{}, 0)
}

func NewServiceWithCache(repo Repository, cache CategoriesCache, ttl time.Duration) *Service {
	if cache == nil {
		cache = noopCategoriesCache{}
	}
	if ttl < 0 {
		ttl = 0
	}

	return &Service{
		repo:          repo,
		categories:    cache,
		categoriesTTL: ttl,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) ListTransactions(ctx context.Context, ownerID string, kind Kind, filter TransactionFilter) ([]Transaction, int64, error) {
	if !kind.Valid() {
		return nil, 0, invalid("kind", "must be income or expense")
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, 0, invalid("end_date", "must not be before start_date")
	}
	if filter.CategoryID != "" && !isID(filter.CategoryID) {
		return []Transaction{}, 0, nil
	}

	items, total, err := s.repo.ListTransactions(ctx, ownerID, kind, filter)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []Transaction{}
	}
	return items, total, nil
}

func (s *Service) SumTransactions(ctx context.Context, ownerID string, kind Kind, from, to time.Time) (decimal.Decimal, error) {
	if !kind.Valid() {
		return decimal.Zero, invalid("kind", "must be income or expense")
	}
	if to.Before(from) {
		return decimal.Zero, nil
	}
	return s.repo.SumTransactions(ctx, ownerID, kind, from, to)
}

func (s *Service) GetTransaction(ctx context.Context, ownerID string, kind Kind, id string) (*Transaction, error) {
	if !isID(id) {
		return nil, ErrTransactionNotFound
	}
	return s.repo.GetTransactionByID(ctx, ownerID, kind, id)
}

func (s *Service) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*Transaction, error) {
	if !input.Kind.Valid() {
		return nil, invalid("kind", "must be income or expense")
	}
	title, err := validateTitle(input.Title)
	if err != nil {
		return nil, err
	}
	amount, err := validateAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	if !isID(input.AccountID) {
		return nil, ErrAccountNotFound
	}
	if !isID(input.CategoryID) {
		return nil, ErrCategoryNotFound
	}

	now := s.now()
	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}

	transaction := Transaction{
		ID:           uuid.NewString(),
		OwnerID:      input.OwnerID,
		Kind:         input.Kind,
		Title:        title,
		Amount:       amount,
		OccurredAt:   occurredAt.UTC(),
		CategoryID:   input.CategoryID,
		AccountID:    input.AccountID,
		Counterparty: strings.TrimSpace(input.Counterparty),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.LockAccount(ctx, input.OwnerID, transaction.AccountID); err != nil {
			return err
		}
		if err := resolveCategory(ctx, tx, input.OwnerID, transaction.CategoryID, transaction.Kind); err != nil {
			return err
		}
		if err := tx.CreateTransaction(ctx, &transaction); err != nil {
			return err
		}
		return tx.AddToAccountBalance(ctx, input.OwnerID, transaction.AccountID, transaction.SignedAmount(), now)
	})
	if err != nil {
		return nil, err
	}

	return &transaction, nil
}

func (s *Service) UpdateTransaction(ctx context.Context, input UpdateTransactionInput) (*Transaction, error) {
	if !input.Kind.Valid() {
		return nil, invalid("kind", "must be income or expense")
	}
	if !isID(input.ID) {
		return nil, ErrTransactionNotFound
	}

	var updated Transaction
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		current, err := tx.GetTransactionByID(ctx, input.OwnerID, input.Kind, input.ID)
		if err != nil {
			return err
		}

		next, err := applyTransactionPatch(*current, input)
		if err != nil {
			return err
		}

		now := s.now()
		for _, accountID := range lockOrder(current.AccountID, next.AccountID) {
			if _, err := tx.LockAccount(ctx, input.OwnerID, accountID); err != nil {
				return err
			}
		}
		if next.CategoryID != current.CategoryID {
			if err := resolveCategory(ctx, tx, input.OwnerID, next.CategoryID, next.Kind); err != nil {
				return err
			}
		}

		if err := tx.AddToAccountBalance(ctx, input.OwnerID, current.AccountID, current.SignedAmount().Neg(), now); err != nil {
			return err
		}
		if err := tx.AddToAccountBalance(ctx, input.OwnerID, next.AccountID, next.SignedAmount(), now); err != nil {
			return err
		}

		next.UpdatedAt = now
		if err := tx.UpdateTransaction(ctx, &next); err != nil {
			return err
		}

		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, ownerID string, kind Kind, id string) error {
	if !isID(id) {
		return ErrTransactionNotFound
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		current, err := tx.GetTransactionByID(ctx, ownerID, kind, id)
		if err != nil {
			return err
		}
		if _, err := tx.LockAccount(ctx, ownerID, current.AccountID); err != nil {
			return err
		}
		if err := tx.AddToAccountBalance(ctx, ownerID, current.AccountID, current.SignedAmount().Neg(), s.now()); err != nil {
			return err
		}

		deleted, err := tx.DeleteTransaction(ctx, ownerID, kind, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrTransactionNotFound
		}
		return nil
	})
}

func applyTransactionPatch(current Transaction, input UpdateTransactionInput) (Transaction, error) {
	next := current
	if input.Title != nil {
		title, err := validateTitle(*input.Title)
		if err != nil {
			return Transaction{}, err
		}
		next.Title = title
	}
	if input.Amount != nil {
		amount, err := validateAmount(*input.Amount)
		if err != nil {
			return Transaction{}, err
		}
		next.Amount = amount
	}
	if input.OccurredAt != nil {
		if input.OccurredAt.IsZero() {
			return Transaction{}, invalid("date", "is required")
		}
		next.OccurredAt = input.OccurredAt.UTC()
	}
	if input.AccountID != nil {
		if !isID(*input.AccountID) {
			return Transaction{}, ErrAccountNotFound
		}
		next.AccountID = *input.AccountID
	}
	if input.CategoryID != nil {
		if !isID(*input.CategoryID) {
			return Transaction{}, ErrCategoryNotFound
		}
		next.CategoryID = *input.CategoryID
	}
	if input.Counterparty != nil {
		next.Counterparty = strings.TrimSpace(*input.Counterparty)
	}
	return next, nil
}

func resolveCategory(ctx context.Context, tx Repository, ownerID, categoryID string, kind Kind) error {
	category, err := tx.GetCategoryByID(ctx, ownerID, categoryID)
	if err != nil {
		return err
	}
	if category.Kind != kind {
		return ErrCategoryNotFound
	}
	return nil
}

// lockOrder returns the distinct account ids sorted so that concurrent
// updates touching the same pair of accounts lock them in the same order.
func lockOrder(ids ...string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}

func validateTitle(title string) (string, error) {
	const maxLen = 200
	title = strings.TrimSpace(title)
	if title == "" {
		return "", invalid("title", "is required")
	}
	if len([]rune(title)) > maxLen {
		return "", invalid("title", "is too long")
	}
	return title, nil
}

func validateAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	amount = amount.Round(amountScale)
	if !amount.IsPositive() {
		return decimal.Zero, invalid("amount", "must be positive")
	}
	if !InMoneyRange(amount) {
		return decimal.Zero, invalid("amount", "is too large")
	}
	return amount, nil
}

func isID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil && len(value) == 36
}
