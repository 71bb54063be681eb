package subscribers

import (
	"strings"
	"time"
)

// Status is the closed set of subscriber standings. Raw status strings in
// the ledger are free text; they are normalized case-insensitively on read
// and anything unrecognized maps to StatusUnknown, which is excluded from
// billing aggregation but still visible in listings.
type Status int

const (
	StatusUnknown Status = iota
	StatusActive
	StatusInactiveOnExpiry
	StatusTerminated
)

// ParseStatus normalizes a raw status string.
func ParseStatus(raw string) Status {
	switch {
	case strings.EqualFold(raw, "active"):
		return StatusActive
	case strings.EqualFold(raw, "inactive on expiry"):
		return StatusInactiveOnExpiry
	case strings.EqualFold(raw, "terminated"):
		return StatusTerminated
	default:
		return StatusUnknown
	}
}

// Billable reports whether the subscriber participates in settlement and
// profit aggregation.
func (s Status) Billable() bool {
	return s == StatusActive || s == StatusInactiveOnExpiry
}

// Customer is one subscriber ledger record. PendingBalance is the stored
// running carry-forward figure; it is mutated only by the payment
// operation, never recomputed on read. A negative balance is a credit and
// must be preserved as-is.
type Customer struct {
	ID             int64
	Username       string
	FullName       string
	Status         string
	PackageName    string
	Bandwidth      string
	ExpiryDate     time.Time
	Area           string
	Address        string
	MobileNumber   string
	CustomPrice    *int
	PendingBalance int
}

// Standing returns the normalized status.
func (c Customer) Standing() Status {
	return ParseStatus(c.Status)
}

// MonthlyBill is the subscriber's current-period charge: the custom price
// override when set, otherwise the tier's resale price. A zero custom
// price counts as unset.
func (c Customer) MonthlyBill(standardResale int) int {
	if c.CustomPrice != nil && *c.CustomPrice != 0 {
		return *c.CustomPrice
	}
	return standardResale
}

// CustomerWithPayment is a Customer left-joined with its payment row for
// one billing period; AmountPaid and PaymentDate are nil when no payment
// exists for that period.
type CustomerWithPayment struct {
	Customer
	AmountPaid  *int
	PaymentDate *time.Time
}

// UpdateFields carries a partial edit. Nil fields are left unchanged; a
// zero CustomPrice clears the override.
type UpdateFields struct {
	FullName     *string
	Area         *string
	Address      *string
	MobileNumber *string
	CustomPrice  *int
	ExpiryDate   *time.Time
}

// ImportRow is the normalized shape produced by the external
// import-field-mapper for one spreadsheet row. Username is the upsert key;
// rows without one are skipped.
type ImportRow struct {
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	Status       string `json:"status"`
	PackageName  string `json:"package"`
	Bandwidth    string `json:"bandwidth"`
	ExpiryDate   string `json:"expiry_date"`
	Area         string `json:"area"`
	Address      string `json:"address"`
	MobileNumber string `json:"mobile_number"`
}
