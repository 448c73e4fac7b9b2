package finance

import (
	"context"
	"errors"
	"time"

	financedomain "finance-app-go/internal/domain/finance"
	"github.com/jackc/pgerrcode"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *PostgresRepository) ListAccounts(ctx context.Context, ownerID string) ([]financedomain.Account, error) {
	var accounts []financedomain.Account
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at asc").
		Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *PostgresRepository) GetAccountByID(ctx context.Context, ownerID, id string) (*financedomain.Account, error) {
	return r.findAccount(r.db.WithContext(ctx), ownerID, id)
}

// LockAccount loads the account with a row lock held until the surrounding
// transaction ends.
func (r *PostgresRepository) LockAccount(ctx context.Context, ownerID, id string) (*financedomain.Account, error) {
	return r.findAccount(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), ownerID, id)
}

func (r *PostgresRepository) findAccount(db *gorm.DB, ownerID, id string) (*financedomain.Account, error) {
	var account financedomain.Account
	if err := db.
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, financedomain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *PostgresRepository) CreateAccount(ctx context.Context, account *financedomain.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *PostgresRepository) UpdateAccount(ctx context.Context, account *financedomain.Account) error {
	return r.db.WithContext(ctx).
		Model(&financedomain.Account{}).
		Where("id = ? AND owner_id = ?", account.ID, account.OwnerID).
		Updates(map[string]interface{}{
			"name":                account.Name,
			"currency_id":         account.CurrencyID,
			"counts_toward_total": account.CountsTowardTotal,
			"updated_at":          account.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) AddToAccountBalance(ctx context.Context, ownerID, id string, delta decimal.Decimal, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&financedomain.Account{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", delta),
			"updated_at": at,
		})
	if result.Error != nil {
		if pgErrorCode(result.Error) == pgerrcode.NumericValueOutOfRange {
			return financedomain.ErrBalanceOutOfRange
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return financedomain.ErrAccountNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteAccount(ctx context.Context, ownerID, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&financedomain.Account{}, "owner_id = ? AND id = ?", ownerID, id)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) SumBalancesByCurrency(ctx context.Context, ownerID string) ([]financedomain.CurrencyTotal, error) {
	query := "SELECT c.name AS currency, COALESCE(SUM(a.balance), 0) AS total " +
		"FROM accounts a JOIN currencies c ON c.id = a.currency_id " +
		"WHERE a.owner_id = ? AND a.counts_toward_total " +
		"GROUP BY c.name ORDER BY c.name"

	var rows []financedomain.CurrencyTotal
	if err := r.db.WithContext(ctx).Raw(query, ownerID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
