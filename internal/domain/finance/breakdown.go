package finance

import "context"

const defaultBreakdownLimit = 20

// SumByCategory totals the owner's transactions of one kind per category,
// largest first. Range defaults match Overview.
func (s *Service) SumByCategory(ctx context.Context, ownerID string, kind Kind, filter CategoryBreakdownFilter) ([]CategoryTotal, error) {
	if !kind.Valid() {
		return nil, invalid("kind", "must be income or expense")
	}

	from, to := s.defaultRange(filter.From, filter.To)
	if to.Before(from) {
		return nil, invalid("end_date", "must not be before start_date")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultBreakdownLimit
	}

	rows, err := s.repo.SumTransactionsByCategory(ctx, ownerID, kind, from, to, limit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []CategoryTotal{}
	}
	return rows, nil
}
