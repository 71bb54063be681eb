package subscribers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/suninet/suninet/internal/platform/httpx"
)

// StatsInvalidator drops cached statistics after a ledger mutation.
type StatsInvalidator interface {
	Bump(ctx context.Context) error
}

// Service handles subscriber ledger operations.
type Service struct {
	repo  Repository
	cache StatsInvalidator
}

// NewService builds a Service instance. cache may be nil.
func NewService(repo Repository, cache StatsInvalidator) *Service {
	return &Service{repo: repo, cache: cache}
}

// List returns all subscribers joined with any payment made in the asOf
// calendar month.
func (s *Service) List(ctx context.Context, asOf time.Time) ([]CustomerWithPayment, error) {
	return s.repo.ListWithPeriodPayment(ctx, int(asOf.Month()), asOf.Year())
}

// Get fetches one subscriber.
func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	c, err := s.repo.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: customer %d", httpx.ErrNotFound, id)
	}
	return c, err
}

// Update applies a partial edit. Nil fields are left untouched; a zero
// custom price clears the override (stored as NULL).
func (s *Service) Update(ctx context.Context, id int64, fields UpdateFields) error {
	updates := map[string]interface{}{}
	if fields.FullName != nil {
		updates["full_name"] = *fields.FullName
	}
	if fields.Area != nil {
		updates["area"] = *fields.Area
	}
	if fields.Address != nil {
		updates["address"] = *fields.Address
	}
	if fields.MobileNumber != nil {
		updates["mobile_number"] = *fields.MobileNumber
	}
	if fields.CustomPrice != nil {
		if *fields.CustomPrice == 0 {
			updates["custom_price"] = nil
		} else {
			updates["custom_price"] = *fields.CustomPrice
		}
	}
	if fields.ExpiryDate != nil {
		updates["expiry_date"] = *fields.ExpiryDate
	}

	err := s.repo.Update(ctx, id, updates)
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: customer %d", httpx.ErrNotFound, id)
	}
	if err != nil {
		return err
	}

	// Edits to expiry_date or custom_price feed straight into settlement
	// and aggregation, so cached statistics must not outlive them.
	if s.cache != nil {
		return s.cache.Bump(ctx)
	}
	return nil
}
