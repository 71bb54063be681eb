package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/suninet/suninet/internal/pricing"
	"github.com/suninet/suninet/internal/subscribers"
)

type memoryRepo struct {
	customers []subscribers.Customer
	payments  []PaymentJoin
	lastPaid  map[int64]PaymentJoin
}

func (r *memoryRepo) AllCustomers(ctx context.Context) ([]subscribers.Customer, error) {
	return r.customers, nil
}

func (r *memoryRepo) CustomersWithLastPayment(ctx context.Context) ([]CustomerWithLastPayment, error) {
	var out []CustomerWithLastPayment
	for _, c := range r.customers {
		cl := CustomerWithLastPayment{Customer: c}
		if p, ok := r.lastPaid[c.ID]; ok {
			amount := p.AmountPaid
			paidAt := p.PaymentDate
			cl.LastPaidAmount = &amount
			cl.LastPaymentDate = &paidAt
		}
		out = append(out, cl)
	}
	return out, nil
}

func (r *memoryRepo) PaidCustomerIDs(ctx context.Context, month, year int) (map[int64]bool, error) {
	ids := make(map[int64]bool)
	for _, p := range r.payments {
		if p.Month == month && p.Year == year {
			ids[p.CustomerID] = true
		}
	}
	return ids, nil
}

func (r *memoryRepo) PaidCustomers(ctx context.Context, month, year int) ([]subscribers.CustomerWithPayment, error) {
	var out []subscribers.CustomerWithPayment
	for _, c := range r.customers {
		if c.PendingBalance != 0 {
			continue
		}
		for _, p := range r.payments {
			if p.CustomerID == c.ID && p.Month == month && p.Year == year {
				amount := p.AmountPaid
				paidAt := p.PaymentDate
				out = append(out, subscribers.CustomerWithPayment{
					Customer: c, AmountPaid: &amount, PaymentDate: &paidAt,
				})
			}
		}
	}
	return out, nil
}

func (r *memoryRepo) PaymentsFiltered(ctx context.Context, filter PeriodFilter) ([]PaymentJoin, error) {
	var out []PaymentJoin
	for _, p := range r.payments {
		switch {
		case filter.StartDate != nil && filter.EndDate != nil:
			if p.PaymentDate.Before(*filter.StartDate) || p.PaymentDate.After(*filter.EndDate) {
				continue
			}
		case filter.Date != nil:
			if !p.PaymentDate.Equal(*filter.Date) {
				continue
			}
		case filter.Month != nil && filter.Year != nil:
			if p.Month != *filter.Month || p.Year != *filter.Year {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPendingAddsCurrentBillWhenExpiredAndUnpaid(t *testing.T) {
	repo := &memoryRepo{
		customers: []subscribers.Customer{
			{ID: 1, Username: "a", Status: "Active", Bandwidth: "17", ExpiryDate: day(2026, 2, 20), PendingBalance: 300},
		},
	}
	svc := NewService(repo, pricing.Default())

	entries, err := svc.Pending(context.Background(), day(2026, 2, 28))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 300, entries[0].Stored)
	require.Equal(t, 300+1400, entries[0].Projected)
}

func TestPendingSkipsBillWhenPaidThisPeriod(t *testing.T) {
	repo := &memoryRepo{
		customers: []subscribers.Customer{
			{ID: 1, Username: "a", Status: "Active", Bandwidth: "17", ExpiryDate: day(2026, 2, 20), PendingBalance: 300},
		},
		payments: []PaymentJoin{{ID: 1, CustomerID: 1, AmountPaid: 1400, PaymentDate: day(2026, 2, 5), Month: 2, Year: 2026}},
	}
	svc := NewService(repo, pricing.Default())

	entries, err := svc.Pending(context.Background(), day(2026, 2, 28))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 300, entries[0].Projected)
}

func TestPendingSkipsBillWhenExpiryInFuture(t *testing.T) {
	repo := &memoryRepo{
		customers: []subscribers.Customer{
			{ID: 1, Username: "a", Status: "Active", Bandwidth: "17", ExpiryDate: day(2026, 3, 20)},
		},
	}
	svc := NewService(repo, pricing.Default())

	entries, err := svc.Pending(context.Background(), day(2026, 2, 28))
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestPendingUsesCustomPriceOverride(t *testing.T) {
	override := 1000
	repo := &memoryRepo{
		customers: []subscribers.Customer{
			{ID: 1, Username: "a", Status: "Active", Bandwidth: "17", ExpiryDate: day(2026, 2, 20), CustomPrice: &override},
		},
	}
	svc := NewService(repo, pricing.Default())

	entries, err := svc.Pending(context.Background(), day(2026, 2, 28))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 1000, entries[0].Projected)
}

func TestPendingIncludesTerminatedWithPositiveBalance(t *testing.T) {
	repo := &memoryRepo{
		customers: []subscribers.Customer{
			{ID: 1, Username: "a", Status: "Terminated", Bandwidth: "17", ExpiryDate: day(2026, 1, 1), PendingBalance: 700},
			{ID: 2, Username: "b", Status: "Terminated", Bandwidth: "17", ExpiryDate: day(2026, 1, 1)},
		},
	}
	svc := NewService(repo, pricing.Default())

	entries, err := svc.Pending(context.Background(), day(2026, 2, 28))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, int64(1), entries[0].ID)
	// No current bill for non-billable standing: stored balance only.
	require.Equal(t, 700, entries[0].Projected)
}

func TestPendingExcludesCreditBalances(t *testing.T) {
	repo := &memoryRepo{
		customers: []subscribers.Customer{
			{ID: 1, Username: "a", Status: "Active", Bandwidth: "17", ExpiryDate: day(2026, 3, 20), PendingBalance: -600},
		},
	}
	svc := NewService(repo, pricing.Default())

	entries, err := svc.Pending(context.Background(), day(2026, 2, 28))
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestUnpaidListsBillableWithoutPeriodPayment(t *testing.T) {
	repo := &memoryRepo{
		customers: []subscribers.Customer{
			{ID: 1, Username: "a", Status: "Active", Bandwidth: "17"},
			{ID: 2, Username: "b", Status: "Inactive on Expiry", Bandwidth: "12"},
			{ID: 3, Username: "c", Status: "Terminated", Bandwidth: "17"},
			{ID: 4, Username: "d", Status: "Active", Bandwidth: "17"},
		},
		payments: []PaymentJoin{{ID: 1, CustomerID: 4, AmountPaid: 1400, PaymentDate: day(2026, 2, 5), Month: 2, Year: 2026}},
	}
	svc := NewService(repo, pricing.Default())

	out, err := svc.Unpaid(context.Background(), day(2026, 2, 28))
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "a", out[0].Username)
	require.Equal(t, "b", out[1].Username)
}

func TestPaidRequiresZeroBalance(t *testing.T) {
	repo := &memoryRepo{
		customers: []subscribers.Customer{
			{ID: 1, Username: "a", Status: "Active", Bandwidth: "17"},
			{ID: 2, Username: "b", Status: "Active", Bandwidth: "17", PendingBalance: 500},
		},
		payments: []PaymentJoin{
			{ID: 1, CustomerID: 1, AmountPaid: 1400, PaymentDate: day(2026, 2, 5), Month: 2, Year: 2026},
			{ID: 2, CustomerID: 2, AmountPaid: 900, PaymentDate: day(2026, 2, 6), Month: 2, Year: 2026},
		},
	}
	svc := NewService(repo, pricing.Default())

	out, err := svc.Paid(context.Background(), day(2026, 2, 28))
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "a", out[0].Username)
}

func TestPeriodReportTotalsAndPending(t *testing.T) {
	repo := &memoryRepo{
		customers: []subscribers.Customer{
			{ID: 1, Username: "a", Status: "Active", Bandwidth: "17", ExpiryDate: day(2026, 3, 20)},
			{ID: 2, Username: "b", Status: "Active", Bandwidth: "12", ExpiryDate: day(2026, 2, 10), PendingBalance: 300},
		},
		payments: []PaymentJoin{
			{ID: 1, CustomerID: 1, Username: "a", Bandwidth: "17", AmountPaid: 1400, PaymentDate: day(2026, 1, 5), Month: 1, Year: 2026},
			{ID: 2, CustomerID: 2, Username: "b", Bandwidth: "12", AmountPaid: 900, PaymentDate: day(2026, 1, 9), Month: 1, Year: 2026},
		},
	}
	svc := NewService(repo, pricing.Default())

	month, year := 1, 2026
	report, err := svc.Period(context.Background(), PeriodFilter{Month: &month, Year: &year}, day(2026, 2, 28))
	require.NoError(t, err)

	require.Equal(t, 2, report.UserCount)
	require.Equal(t, 2300, report.TotalCollected)
	require.Equal(t, 535+485, report.CompanyShare)
	require.Equal(t, (1400-535)+(900-485), report.Profit)

	// Pending is current-as-of, not the filtered January period: customer 2
	// owes the stored 300 plus February's 1200 bill.
	require.Equal(t, 300+1200, report.TotalPending)
}

func TestPeriodReportPricingGapRowCountsCompanyZero(t *testing.T) {
	repo := &memoryRepo{
		customers: []subscribers.Customer{
			{ID: 1, Username: "a", Status: "Active", Bandwidth: "99", ExpiryDate: day(2026, 3, 20)},
		},
		payments: []PaymentJoin{
			{ID: 1, CustomerID: 1, Username: "a", Bandwidth: "99", AmountPaid: 800, PaymentDate: day(2026, 2, 5), Month: 2, Year: 2026},
		},
	}
	svc := NewService(repo, pricing.Default())

	report, err := svc.Period(context.Background(), PeriodFilter{}, day(2026, 2, 28))
	require.NoError(t, err)
	require.Equal(t, 800, report.TotalCollected)
	require.Zero(t, report.CompanyShare)
	require.Equal(t, 800, report.Profit)
}
