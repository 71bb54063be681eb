// Package billing implements the reconciliation engine: the billing-period
// settlement check, the payment recording rule and the aggregate statistics
// derived from the subscriber ledger and the price table.
package billing

import "time"

// Payment is one journal row: the cumulative amount a subscriber paid in
// one calendar month. At most one row exists per (customer, month, year);
// a second payment in the same period updates the row instead of
// inserting a new one.
type Payment struct {
	ID          int64
	CustomerID  int64
	AmountPaid  int
	PaymentDate time.Time
	Month       int
	Year        int
}

// BandwidthStat is the per-tier breakdown within AggregateStats.
type BandwidthStat struct {
	Count          int `json:"count"`
	Profit         int `json:"profit"`
	CompanyPayable int `json:"companyPayable"`
	Paid           int `json:"paid"`
	Pending        int `json:"pending"`
}

// AggregateStats summarises the whole subscriber base as of a reference
// date. TotalCollected is a billing-basis figure (sum of resale prices of
// priced billable subscribers), not cash received.
type AggregateStats struct {
	TotalActive         int                       `json:"totalActive"`
	TotalTerminated     int                       `json:"totalTerminated"`
	PaidCount           int                       `json:"paidCount"`
	PendingCount        int                       `json:"pendingCount"`
	PaidProfit          int                       `json:"paidProfit"`
	PendingProfit       int                       `json:"pendingProfit"`
	TotalCollected      int                       `json:"totalCollected"`
	BandwidthStats      map[string]*BandwidthStat `json:"bandwidthStats"`
	AreaStats           map[string]int            `json:"areaStats"`
	TotalProfit         int                       `json:"totalProfit"`
	TotalCompanyPayable int                       `json:"totalCompanyPayable"`
	TotalPendingBalance int                       `json:"totalPendingBalance"`
}
