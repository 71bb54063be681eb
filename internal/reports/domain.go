// Package reports provides read-only projections over the reconciliation
// engine: pending/paid/unpaid lists and the period financial report. None
// of these mutate stored state.
package reports

import (
	"time"

	"github.com/suninet/suninet/internal/subscribers"
)

// CustomerWithLastPayment is a ledger record joined with the subscriber's
// most recent payment of any period, absent when none exists.
type CustomerWithLastPayment struct {
	subscribers.Customer
	LastPaidAmount  *int
	LastPaymentDate *time.Time
}

// PendingEntry is one row of the pending-balance report. Stored is the
// carry-forward balance exactly as persisted; Projected layers the
// current-period due on top for display. The stored figure is never
// touched by this projection.
type PendingEntry struct {
	CustomerWithLastPayment
	Stored    int
	Projected int
}

// PaymentJoin is one journal row joined with its owning subscriber,
// used by the period financial report.
type PaymentJoin struct {
	ID             int64
	CustomerID     int64
	Username       string
	FullName       string
	Bandwidth      string
	Area           string
	PendingBalance int
	AmountPaid     int
	PaymentDate    time.Time
	Month          int
	Year           int
}

// PeriodFilter selects journal rows by exact date, date range or
// month+year. Empty filter matches everything.
type PeriodFilter struct {
	Date      *time.Time
	StartDate *time.Time
	EndDate   *time.Time
	Month     *int
	Year      *int
}

// PeriodDetail is one row of the period financial report with figures
// derived from the row's bandwidth tier.
type PeriodDetail struct {
	PaymentJoin
	Total   int
	Company int
	Profit  int
}

// PeriodReport sums the filtered journal rows. TotalPending is always the
// current-as-of outstanding amount across all subscribers, deliberately
// independent of the filter; the two notions of "pending" must not be
// conflated.
type PeriodReport struct {
	TotalCollected int
	CompanyShare   int
	Profit         int
	TotalPending   int
	UserCount      int
	Details        []PeriodDetail
}
