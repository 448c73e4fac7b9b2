package finance

import (
	"context"
	"errors"
	"time"

	financedomain "finance-app-go/internal/domain/finance"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ownOrShared matches rows owned by the caller and rows shared with everyone.
const ownOrShared = "(owner_id = ? OR owner_id IS NULL)"

var _ financedomain.Repository = (*PostgresRepository)(nil)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(financedomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListTransactions(ctx context.Context, ownerID string, kind financedomain.Kind, filter financedomain.TransactionFilter) ([]financedomain.Transaction, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&financedomain.Transaction{}).
		Where("owner_id = ? AND kind = ?", ownerID, kind)
	if filter.From != nil {
		query = query.Where("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("occurred_at <= ?", *filter.To)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("occurred_at desc, created_at desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var items []financedomain.Transaction
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *PostgresRepository) SumTransactions(ctx context.Context, ownerID string, kind financedomain.Kind, from, to time.Time) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal `gorm:"column:total"`
	}

	if err := r.db.WithContext(ctx).
		Model(&financedomain.Transaction{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("owner_id = ? AND kind = ? AND occurred_at >= ? AND occurred_at <= ?", ownerID, kind, from, to).
		Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}

	return row.Total, nil
}

func (r *PostgresRepository) SumTransactionsByCategory(ctx context.Context, ownerID string, kind financedomain.Kind, from, to time.Time, limit int) ([]financedomain.CategoryTotal, error) {
	query := `
		SELECT c.id AS category_id,
		       c.name AS category_name,
		       COALESCE(SUM(t.amount), 0) AS total,
		       COUNT(t.id) AS count
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.owner_id = ?
		  AND t.kind = ?
		  AND t.occurred_at >= ?
		  AND t.occurred_at <= ?
		GROUP BY c.id, c.name
		ORDER BY total DESC, c.name
		LIMIT ?
	`

	var totals []financedomain.CategoryTotal
	if err := r.db.WithContext(ctx).Raw(query, ownerID, kind, from, to, limit).Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *PostgresRepository) GetTransactionByID(ctx context.Context, ownerID string, kind financedomain.Kind, id string) (*financedomain.Transaction, error) {
	var transaction financedomain.Transaction
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND kind = ? AND id = ?", ownerID, kind, id).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, financedomain.ErrTransactionNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *PostgresRepository) CreateTransaction(ctx context.Context, transaction *financedomain.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *PostgresRepository) UpdateTransaction(ctx context.Context, transaction *financedomain.Transaction) error {
	return r.db.WithContext(ctx).
		Model(&financedomain.Transaction{}).
		Where("id = ? AND owner_id = ?", transaction.ID, transaction.OwnerID).
		Updates(map[string]interface{}{
			"title":        transaction.Title,
			"amount":       transaction.Amount,
			"occurred_at":  transaction.OccurredAt,
			"category_id":  transaction.CategoryID,
			"account_id":   transaction.AccountID,
			"counterparty": transaction.Counterparty,
			"updated_at":   transaction.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteTransaction(ctx context.Context, ownerID string, kind financedomain.Kind, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&financedomain.Transaction{}, "owner_id = ? AND kind = ? AND id = ?", ownerID, kind, id)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CountTransactionsByAccountID(ctx context.Context, ownerID, accountID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&financedomain.Transaction{}).
		Where("owner_id = ? AND account_id = ?", ownerID, accountID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CountTransactionsByCategoryID(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&financedomain.Transaction{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// pgErrorCode returns the SQLSTATE carried by err, or "" when err did not
// come from the server.
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
