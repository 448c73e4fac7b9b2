package finance

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// ListCategories returns the owner's categories together with the shared
// ones. An empty kind returns both kinds.
func (s *Service) ListCategories(ctx context.Context, ownerID string, kind Kind) ([]Category, error) {
	if kind != "" && !kind.Valid() {
		return nil, invalid("kind", "must be income or expense")
	}

	categories, ok := s.categories.GetByOwnerID(ownerID)
	if !ok {
		var err error
		categories, err = s.repo.ListCategories(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		if s.categoriesTTL > 0 {
			s.categories.SetByOwnerID(ownerID, categories, s.categoriesTTL)
		}
	}

	result := make([]Category, 0, len(categories))
	for _, category := range categories {
		if kind != "" && category.Kind != kind {
			continue
		}
		result = append(result, category)
	}
	return result, nil
}

func (s *Service) GetCategory(ctx context.Context, ownerID, id string) (*Category, error) {
	if !isID(id) {
		return nil, ErrCategoryNotFound
	}
	return s.repo.GetCategoryByID(ctx, ownerID, id)
}

func (s *Service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	if !input.Kind.Valid() {
		return nil, invalid("kind", "must be income or expense")
	}

	count, err := s.repo.CountCategoriesByName(ctx, input.OwnerID, input.Kind, name, "")
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryNameTaken
	}

	ownerID := input.OwnerID
	category := Category{
		ID:        uuid.NewString(),
		OwnerID:   &ownerID,
		Name:      name,
		Kind:      input.Kind,
		CreatedAt: s.now(),
	}

	if err := s.repo.CreateCategory(ctx, &category); err != nil {
		return nil, err
	}
	s.categories.DeleteByOwnerID(input.OwnerID)

	return &category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*Category, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	category, err := s.ownCategory(ctx, input.OwnerID, input.ID)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountCategoriesByName(ctx, input.OwnerID, category.Kind, name, category.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryNameTaken
	}

	category.Name = name
	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	s.categories.DeleteByOwnerID(input.OwnerID)

	return category, nil
}

func (s *Service) DeleteCategory(ctx context.Context, ownerID, id string) error {
	category, err := s.ownCategory(ctx, ownerID, id)
	if err != nil {
		return err
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		inUse, err := tx.CountTransactionsByCategoryID(ctx, category.ID)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return ErrCategoryInUse
		}

		deleted, err := tx.DeleteCategory(ctx, ownerID, category.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrCategoryNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.categories.DeleteByOwnerID(ownerID)
	return nil
}

func (s *Service) ownCategory(ctx context.Context, ownerID, id string) (*Category, error) {
	if !isID(id) {
		return nil, ErrCategoryNotFound
	}
	category, err := s.repo.GetCategoryByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if category.Shared() {
		return nil, ErrSharedReadOnly
	}
	return category, nil
}

func (s *Service) ListCurrencies(ctx context.Context, ownerID string) ([]Currency, error) {
	currencies, err := s.repo.ListCurrencies(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if currencies == nil {
		currencies = []Currency{}
	}
	return currencies, nil
}

func (s *Service) GetCurrency(ctx context.Context, ownerID, id string) (*Currency, error) {
	if !isID(id) {
		return nil, ErrCurrencyNotFound
	}
	return s.repo.GetCurrencyByID(ctx, ownerID, id)
}

// CreateCurrency registers a currency for the owner. Names are stored upper
// case; a name already visible to the owner (own or shared) is rejected.
func (s *Service) CreateCurrency(ctx context.Context, input CreateCurrencyInput) (*Currency, error) {
	const maxLen = 16
	name := strings.ToUpper(strings.TrimSpace(input.Name))
	if name == "" {
		return nil, invalid("name", "is required")
	}
	if len([]rune(name)) > maxLen {
		return nil, invalid("name", "is too long")
	}

	count, err := s.repo.CountCurrenciesByName(ctx, input.OwnerID, name)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCurrencyNameTaken
	}

	ownerID := input.OwnerID
	currency := Currency{
		ID:        uuid.NewString(),
		OwnerID:   &ownerID,
		Name:      name,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateCurrency(ctx, &currency); err != nil {
		return nil, err
	}

	return &currency, nil
}
