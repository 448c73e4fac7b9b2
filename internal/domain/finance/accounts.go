package finance

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (s *Service) ListAccounts(ctx context.Context, ownerID string) ([]Account, error) {
	accounts, err := s.repo.ListAccounts(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []Account{}
	}
	return accounts, nil
}

func (s *Service) GetAccount(ctx context.Context, ownerID, id string) (*Account, error) {
	if !isID(id) {
		return nil, ErrAccountNotFound
	}
	return s.repo.GetAccountByID(ctx, ownerID, id)
}

func (s *Service) CreateAccount(ctx context.Context, input CreateAccountInput) (*Account, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	balance := input.Balance.Round(amountScale)
	if !InMoneyRange(balance) {
		return nil, invalid("balance", "is too large")
	}
	if !isID(input.CurrencyID) {
		return nil, ErrCurrencyNotFound
	}
	if _, err := s.repo.GetCurrencyByID(ctx, input.OwnerID, input.CurrencyID); err != nil {
		return nil, err
	}

	now := s.now()
	account := Account{
		ID:                uuid.NewString(),
		OwnerID:           input.OwnerID,
		Name:              name,
		CurrencyID:        input.CurrencyID,
		Balance:           balance,
		CountsTowardTotal: input.CountsTowardTotal,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.CreateAccount(ctx, &account); err != nil {
		return nil, err
	}

	return &account, nil
}

// UpdateAccount edits descriptive fields only. The balance moves exclusively
// through transactions, and the currency is fixed once any transaction
// references the account.
func (s *Service) UpdateAccount(ctx context.Context, input UpdateAccountInput) (*Account, error) {
	if !isID(input.ID) {
		return nil, ErrAccountNotFound
	}

	var updated Account
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		account, err := tx.LockAccount(ctx, input.OwnerID, input.ID)
		if err != nil {
			return err
		}

		if input.Name != nil {
			name, err := validateName(*input.Name)
			if err != nil {
				return err
			}
			account.Name = name
		}
		if input.CurrencyID != nil && *input.CurrencyID != account.CurrencyID {
			if !isID(*input.CurrencyID) {
				return ErrCurrencyNotFound
			}
			if _, err := tx.GetCurrencyByID(ctx, input.OwnerID, *input.CurrencyID); err != nil {
				return err
			}
			used, err := tx.CountTransactionsByAccountID(ctx, input.OwnerID, account.ID)
			if err != nil {
				return err
			}
			if used > 0 {
				return invalid("currency_id", "cannot change once the account has transactions")
			}
			account.CurrencyID = *input.CurrencyID
		}
		if input.CountsTowardTotal != nil {
			account.CountsTowardTotal = *input.CountsTowardTotal
		}
		account.UpdatedAt = s.now()

		if err := tx.UpdateAccount(ctx, account); err != nil {
			return err
		}

		updated = *account
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *Service) DeleteAccount(ctx context.Context, ownerID, id string) error {
	if !isID(id) {
		return ErrAccountNotFound
	}

	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.LockAccount(ctx, ownerID, id); err != nil {
			return err
		}
		inUse, err := tx.CountTransactionsByAccountID(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return ErrAccountInUse
		}

		deleted, err := tx.DeleteAccount(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrAccountNotFound
		}
		return nil
	})
}

// SumByCurrency totals the balances of the owner's accounts that count
// toward the overall balance, keyed by currency name. Currencies without a
// qualifying account are absent from the result.
func (s *Service) SumByCurrency(ctx context.Context, ownerID string) (map[string]decimal.Decimal, error) {
	rows, err := s.repo.SumBalancesByCurrency(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		result[row.Currency] = result[row.Currency].Add(row.Total)
	}
	return result, nil
}

func validateName(name string) (string, error) {
	const maxLen = 100
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("name", "is required")
	}
	if len([]rune(name)) > maxLen {
		return "", invalid("name", "is too long")
	}
	return name, nil
}
