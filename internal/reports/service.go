package reports

import (
	"context"
	"time"

	"github.com/suninet/suninet/internal/pricing"
	"github.com/suninet/suninet/internal/subscribers"
)

// Service builds the report projections. Every method is deterministic
// given the same ledger state and reference date.
type Service struct {
	repo  Repository
	table pricing.Table
}

// NewService builds a Service instance.
func NewService(repo Repository, table pricing.Table) *Service {
	return &Service{repo: repo, table: table}
}

// currentDue is the forward-looking current-period charge: zero once the
// period is paid, the expiry lies after asOf, or the subscriber is not
// billable.
func (s *Service) currentDue(c subscribers.Customer, paidThisPeriod bool, asOf time.Time) int {
	if paidThisPeriod || !c.Standing().Billable() || c.ExpiryDate.After(asOf) {
		return 0
	}
	return c.MonthlyBill(s.table.ResaleFor(c.Bandwidth))
}

// Pending returns the pending-balance report: billable subscribers (or
// any subscriber carrying a positive stored balance) with a display total
// of stored balance plus any unpaid current-period bill, filtered to
// totals above zero.
func (s *Service) Pending(ctx context.Context, asOf time.Time) ([]PendingEntry, error) {
	customers, err := s.repo.CustomersWithLastPayment(ctx)
	if err != nil {
		return nil, err
	}
	paid, err := s.repo.PaidCustomerIDs(ctx, int(asOf.Month()), asOf.Year())
	if err != nil {
		return nil, err
	}

	out := make([]PendingEntry, 0, len(customers))
	for _, c := range customers {
		if !c.Standing().Billable() && c.PendingBalance <= 0 {
			continue
		}
		projected := c.PendingBalance + s.currentDue(c.Customer, paid[c.ID], asOf)
		if projected <= 0 {
			continue
		}
		out = append(out, PendingEntry{
			CustomerWithLastPayment: c,
			Stored:                  c.PendingBalance,
			Projected:               projected,
		})
	}
	return out, nil
}

// Paid returns subscribers who paid in the asOf period and carry no
// stored balance.
func (s *Service) Paid(ctx context.Context, asOf time.Time) ([]subscribers.CustomerWithPayment, error) {
	return s.repo.PaidCustomers(ctx, int(asOf.Month()), asOf.Year())
}

// Unpaid returns billable subscribers without a journal row for the asOf
// period, regardless of balance.
func (s *Service) Unpaid(ctx context.Context, asOf time.Time) ([]subscribers.Customer, error) {
	customers, err := s.repo.AllCustomers(ctx)
	if err != nil {
		return nil, err
	}
	paid, err := s.repo.PaidCustomerIDs(ctx, int(asOf.Month()), asOf.Year())
	if err != nil {
		return nil, err
	}

	out := make([]subscribers.Customer, 0, len(customers))
	for _, c := range customers {
		if c.Standing().Billable() && !paid[c.ID] {
			out = append(out, c)
		}
	}
	return out, nil
}

// Period builds the financial report for the filtered journal rows.
// Collected/company/profit figures derive from the matched rows, while
// TotalPending is recomputed for the asOf period across all subscribers
// using the same current-period-due rule as the pending report.
func (s *Service) Period(ctx context.Context, filter PeriodFilter, asOf time.Time) (PeriodReport, error) {
	records, err := s.repo.PaymentsFiltered(ctx, filter)
	if err != nil {
		return PeriodReport{}, err
	}

	report := PeriodReport{
		UserCount: len(records),
		Details:   make([]PeriodDetail, 0, len(records)),
	}
	for _, p := range records {
		company := 0
		if entry, ok := s.table.PriceOf(pricing.TierFor(p.Bandwidth)); ok {
			company = entry.CompanyCost
		}
		profit := p.AmountPaid - company

		report.TotalCollected += p.AmountPaid
		report.CompanyShare += company
		report.Profit += profit

		report.Details = append(report.Details, PeriodDetail{
			PaymentJoin: p,
			Total:       p.AmountPaid,
			Company:     company,
			Profit:      profit,
		})
	}

	customers, err := s.repo.AllCustomers(ctx)
	if err != nil {
		return PeriodReport{}, err
	}
	paid, err := s.repo.PaidCustomerIDs(ctx, int(asOf.Month()), asOf.Year())
	if err != nil {
		return PeriodReport{}, err
	}
	for _, c := range customers {
		report.TotalPending += c.PendingBalance
		report.TotalPending += s.currentDue(c, paid[c.ID], asOf)
	}

	return report, nil
}
