package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/suninet/suninet/internal/platform/httpx"
	"github.com/suninet/suninet/internal/pricing"
)

// Service coordinates the reconciliation engine with storage and cache.
type Service struct {
	repo  Repository
	table pricing.Table
	cache *Cache
	group singleflight.Group
}

// NewService builds a Service instance. cache may be nil.
func NewService(repo Repository, table pricing.Table, cache *Cache) *Service {
	return &Service{repo: repo, table: table, cache: cache}
}

// Stats computes AggregateStats for the reference date. Results are
// cached per (date, cache version) and concurrent builds for the same
// key are collapsed.
func (s *Service) Stats(ctx context.Context, asOf time.Time) (AggregateStats, error) {
	load := func(ctx context.Context) (interface{}, error) {
		customers, err := s.repo.ListCustomers(ctx)
		if err != nil {
			return nil, err
		}
		return ComputeStats(customers, s.table, asOf), nil
	}

	if s.cache == nil {
		value, err := load(ctx)
		if err != nil {
			return AggregateStats{}, err
		}
		return value.(AggregateStats), nil
	}

	key, err := s.cache.StatsKey(ctx, asOf)
	if err != nil {
		return AggregateStats{}, err
	}

	result := s.group.DoChan(key, func() (interface{}, error) {
		var stats AggregateStats
		if err := s.cache.FetchJSON(ctx, key, &stats, load); err != nil {
			return nil, err
		}
		return stats, nil
	})
	select {
	case <-ctx.Done():
		return AggregateStats{}, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return AggregateStats{}, res.Err
		}
		return res.Val.(AggregateStats), nil
	}
}

// RecordPayment applies one payment to the journal and the subscriber's
// stored pending balance, atomically.
//
// The two branches are deliberately asymmetric and not algebraically
// equivalent: the first payment of a period applies the full bill once
// (balance += totalBill - amount), while any further payment in the same
// period only reduces the balance (balance -= amount), on the assumption
// the bill was already applied. If totalBill differs between calls within
// one period the branches diverge further; that matches the historical
// behavior and callers rely on it.
func (s *Service) RecordPayment(ctx context.Context, customerID int64, amount int, date time.Time, totalBill int) error {
	month := int(date.Month())
	year := date.Year()

	err := s.repo.WithTx(ctx, func(ctx context.Context, r Repository) error {
		if _, err := r.GetCustomer(ctx, customerID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return fmt.Errorf("%w: customer %d", httpx.ErrNotFound, customerID)
			}
			return err
		}

		existing, err := r.PaymentForPeriod(ctx, customerID, month, year)
		if err != nil {
			return err
		}

		if existing != nil {
			if err := r.UpdatePayment(ctx, existing.ID, existing.AmountPaid+amount, date); err != nil {
				return err
			}
			return r.AdjustPendingBalance(ctx, customerID, -amount)
		}

		if _, err := r.InsertPayment(ctx, Payment{
			CustomerID:  customerID,
			AmountPaid:  amount,
			PaymentDate: date,
			Month:       month,
			Year:        year,
		}); err != nil {
			return err
		}
		return r.AdjustPendingBalance(ctx, customerID, totalBill-amount)
	})
	if err != nil {
		return err
	}

	return s.cache.Bump(ctx)
}
