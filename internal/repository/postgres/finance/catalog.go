package finance

import (
	"context"
	"errors"

	financedomain "finance-app-go/internal/domain/finance"
	"github.com/jackc/pgerrcode"
	"gorm.io/gorm"
)

func (r *PostgresRepository) ListCategories(ctx context.Context, ownerID string) ([]financedomain.Category, error) {
	var categories []financedomain.Category
	if err := r.db.WithContext(ctx).
		Where(ownOrShared, ownerID).
		Order("kind asc, name asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PostgresRepository) GetCategoryByID(ctx context.Context, ownerID, id string) (*financedomain.Category, error) {
	var category financedomain.Category
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where(ownOrShared, ownerID).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, financedomain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *financedomain.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, category *financedomain.Category) error {
	return r.db.WithContext(ctx).
		Model(&financedomain.Category{}).
		Where("id = ? AND owner_id = ?", category.ID, category.OwnerID).
		Update("name", category.Name).Error
}

func (r *PostgresRepository) CountCategoriesByName(ctx context.Context, ownerID string, kind financedomain.Kind, name, excludeID string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&financedomain.Category{}).
		Where("kind = ? AND lower(name) = lower(?)", kind, name).
		Where(ownOrShared, ownerID)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, ownerID, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&financedomain.Category{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		if pgErrorCode(result.Error) == pgerrcode.ForeignKeyViolation {
			return false, financedomain.ErrCategoryInUse
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) ListCurrencies(ctx context.Context, ownerID string) ([]financedomain.Currency, error) {
	var currencies []financedomain.Currency
	if err := r.db.WithContext(ctx).
		Where(ownOrShared, ownerID).
		Order("name asc").
		Find(&currencies).Error; err != nil {
		return nil, err
	}
	return currencies, nil
}

func (r *PostgresRepository) GetCurrencyByID(ctx context.Context, ownerID, id string) (*financedomain.Currency, error) {
	var currency financedomain.Currency
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where(ownOrShared, ownerID).
		First(&currency).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, financedomain.ErrCurrencyNotFound
		}
		return nil, err
	}
	return &currency, nil
}

func (r *PostgresRepository) CreateCurrency(ctx context.Context, currency *financedomain.Currency) error {
	return r.db.WithContext(ctx).Create(currency).Error
}

func (r *PostgresRepository) CountCurrenciesByName(ctx context.Context, ownerID, name string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&financedomain.Currency{}).
		Where("upper(name) = upper(?)", name).
		Where(ownOrShared, ownerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
