// Package pricing holds the static bandwidth tier price table. Prices are
// integer currency units: CompanyCost is payable upstream per subscriber
// per month, ResalePrice is what the subscriber is charged.
package pricing

// Entry is one tier of the price table.
type Entry struct {
	CompanyCost int `json:"company"`
	ResalePrice int `json:"my"`
}

// Profit is the per-subscriber monthly margin for this tier.
func (e Entry) Profit() int {
	return e.ResalePrice - e.CompanyCost
}

// Table maps a tier label ("17 MB") to its prices. Immutable after startup.
type Table map[string]Entry

// Default returns the standard Suninet price table.
func Default() Table {
	return Table{
		"12 MB": {CompanyCost: 485, ResalePrice: 1200},
		"17 MB": {CompanyCost: 535, ResalePrice: 1400},
		"22 MB": {CompanyCost: 625, ResalePrice: 1800},
		"27 MB": {CompanyCost: 710, ResalePrice: 2500},
		"32 MB": {CompanyCost: 810, ResalePrice: 3500},
		"52 MB": {CompanyCost: 1950, ResalePrice: 5000},
	}
}

// TierFor derives the tier label from a subscriber's raw bandwidth value.
// The ledger stores the bare number ("17"); the table is keyed by "17 MB".
func TierFor(bandwidth string) string {
	return bandwidth + " MB"
}

// PriceOf looks up a tier by exact label. A missing tier is not an error:
// the subscriber is simply excluded from priced aggregation.
func (t Table) PriceOf(tier string) (Entry, bool) {
	e, ok := t[tier]
	return e, ok
}

// ResaleFor returns the resale price for a bandwidth value, or zero when
// the tier is absent from the table.
func (t Table) ResaleFor(bandwidth string) int {
	e, ok := t.PriceOf(TierFor(bandwidth))
	if !ok {
		return 0
	}
	return e.ResalePrice
}
