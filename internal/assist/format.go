// Package assist renders aggregate figures as plain text for the
// conversational layer that sits outside this service. The language
// model itself is not part of this codebase; we only prepare a stable,
// deterministic context block for it.
package assist

import (
	"fmt"
	"sort"
	"strings"

	"github.com/suninet/suninet/internal/billing"
)

// FormatStats serialises stats into an ordered key-value block. Map
// sections are emitted in sorted key order so two calls over the same
// stats produce byte-identical output.
func FormatStats(stats billing.AggregateStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "total_active: %d\n", stats.TotalActive)
	fmt.Fprintf(&b, "total_terminated: %d\n", stats.TotalTerminated)
	fmt.Fprintf(&b, "paid_count: %d\n", stats.PaidCount)
	fmt.Fprintf(&b, "pending_count: %d\n", stats.PendingCount)
	fmt.Fprintf(&b, "paid_profit: %d\n", stats.PaidProfit)
	fmt.Fprintf(&b, "pending_profit: %d\n", stats.PendingProfit)
	fmt.Fprintf(&b, "total_collected: %d\n", stats.TotalCollected)
	fmt.Fprintf(&b, "total_profit: %d\n", stats.TotalProfit)
	fmt.Fprintf(&b, "total_company_payable: %d\n", stats.TotalCompanyPayable)
	fmt.Fprintf(&b, "total_pending_balance: %d\n", stats.TotalPendingBalance)

	tiers := make([]string, 0, len(stats.BandwidthStats))
	for tier := range stats.BandwidthStats {
		tiers = append(tiers, tier)
	}
	sort.Strings(tiers)
	for _, tier := range tiers {
		s := stats.BandwidthStats[tier]
		fmt.Fprintf(&b, "bandwidth[%s]: count=%d profit=%d company=%d paid=%d pending=%d\n",
			tier, s.Count, s.Profit, s.CompanyPayable, s.Paid, s.Pending)
	}

	areas := make([]string, 0, len(stats.AreaStats))
	for area := range stats.AreaStats {
		areas = append(areas, area)
	}
	sort.Strings(areas)
	for _, area := range areas {
		fmt.Fprintf(&b, "area[%s]: %d\n", area, stats.AreaStats[area])
	}

	return b.String()
}
