package inmemory

import (
	"sync"
	"time"

	financedomain "finance-app-go/internal/domain/finance"
)

type CategoriesCache struct {
	mu    sync.RWMutex
	items map[string]categoriesItem
	now   func() time.Time
}

type categoriesItem struct {
	value     []financedomain.Category
	expiresAt time.Time
}

func NewCategoriesCache() *CategoriesCache {
	return &CategoriesCache{
		items: make(map[string]categoriesItem),
		now:   time.Now,
	}
}

func (c *CategoriesCache) GetByOwnerID(ownerID string) ([]financedomain.Category, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[ownerID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[ownerID]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, ownerID)
		}
		c.mu.Unlock()
		return nil, false
	}

	return cloneCategories(item.value), true
}

func (c *CategoriesCache) SetByOwnerID(ownerID string, categories []financedomain.Category, ttl time.Duration) {
	if ttl <= 0 {
		c.DeleteByOwnerID(ownerID)
		return
	}

	c.mu.Lock()
	c.items[ownerID] = categoriesItem{
		value:     cloneCategories(categories),
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *CategoriesCache) DeleteByOwnerID(ownerID string) {
	c.mu.Lock()
	delete(c.items, ownerID)
	c.mu.Unlock()
}

func cloneCategories(categories []financedomain.Category) []financedomain.Category {
	if categories == nil {
		return nil
	}
	cloned := make([]financedomain.Category, len(categories))
	for i := range categories {
		cloned[i] = categories[i]
		if categories[i].OwnerID != nil {
			ownerID := *categories[i].OwnerID
			cloned[i].OwnerID = &ownerID
		}
	}
	return cloned
}
