package finance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Overview builds the main view: per-currency account totals plus income and
// expense sums for [from, to]. A nil from defaults to the first day of the
// current month, a nil to defaults to now.
func (s *Service) Overview(ctx context.Context, ownerID string, from, to *time.Time) (Overview, error) {
	rangeFrom, rangeTo := s.defaultRange(from, to)
	if rangeTo.Before(rangeFrom) {
		return Overview{}, invalid("end_date", "must not be before start_date")
	}

	var (
		accountSum map[string]decimal.Decimal
		incomeSum  decimal.Decimal
		expenseSum decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accountSum, err = s.SumByCurrency(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		incomeSum, err = s.repo.SumTransactions(gctx, ownerID, KindIncome, rangeFrom, rangeTo)
		return err
	})
	g.Go(func() error {
		var err error
		expenseSum, err = s.repo.SumTransactions(gctx, ownerID, KindExpense, rangeFrom, rangeTo)
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	return Overview{
		AccountSum: accountSum,
		IncomeSum:  incomeSum,
		ExpenseSum: expenseSum,
		From:       rangeFrom,
		To:         rangeTo,
	}, nil
}

// defaultRange fills a missing start with the first day of the current month
// and a missing end with now.
func (s *Service) defaultRange(from, to *time.Time) (time.Time, time.Time) {
	now := s.now()
	rangeFrom := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if from != nil {
		rangeFrom = from.UTC()
	}
	rangeTo := now
	if to != nil {
		rangeTo = to.UTC()
	}
	return rangeFrom, rangeTo
}
