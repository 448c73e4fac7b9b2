package finance

import "time"

// CategoriesCache holds the categories visible to an owner (own and shared).
type CategoriesCache interface {
	GetByOwnerID(ownerID string) ([]Category, bool)
	SetByOwnerID(ownerID string, categories []Category, ttl time.Duration)
	DeleteByOwnerID(ownerID string)
}

type noopCategoriesCache struct{}

func (noopCategoriesCache) GetByOwnerID(string) ([]Category, bool) {
	return nil, false
}

func (noopCategoriesCache) SetByOwnerID(string, []Category, time.Duration) {}

func (noopCategoriesCache) DeleteByOwnerID(string) {}
