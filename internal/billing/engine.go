package billing

import (
	"time"

	"github.com/suninet/suninet/internal/pricing"
	"github.com/suninet/suninet/internal/subscribers"
)

// ComputeStats folds the full subscriber set into AggregateStats for a
// fixed reference date. Pure: the same inputs always give the same
// output, and accumulation is commutative so iteration order is
// irrelevant.
//
// Terminated subscribers count only toward TotalTerminated. Billable
// subscribers always count in AreaStats; tiers missing from the price
// table are skipped from every priced tally (no pricing basis) but the
// subscriber remains visible elsewhere. Stored pending balances sum over
// every subscriber regardless of status.
func ComputeStats(customers []subscribers.Customer, table pricing.Table, asOf time.Time) AggregateStats {
	stats := AggregateStats{
		BandwidthStats: make(map[string]*BandwidthStat),
		AreaStats:      make(map[string]int),
	}

	for _, c := range customers {
		stats.TotalPendingBalance += c.PendingBalance

		switch standing := c.Standing(); {
		case standing.Billable():
			if standing == subscribers.StatusActive {
				stats.TotalActive++
			}

			tier := pricing.TierFor(c.Bandwidth)
			entry, priced := table.PriceOf(tier)
			settled := Settled(c.ExpiryDate, asOf)

			if priced {
				bws := stats.BandwidthStats[tier]
				if bws == nil {
					bws = &BandwidthStat{}
					stats.BandwidthStats[tier] = bws
				}
				profit := entry.Profit()
				bws.Count++
				bws.Profit += profit
				bws.CompanyPayable += entry.CompanyCost

				stats.TotalCollected += entry.ResalePrice

				if settled {
					stats.PaidCount++
					stats.PaidProfit += profit
					bws.Paid++
				} else {
					stats.PendingCount++
					stats.PendingProfit += profit
					bws.Pending++
				}

				stats.TotalProfit += profit
				stats.TotalCompanyPayable += entry.CompanyCost
			}

			area := c.Area
			if area == "" {
				area = "Unknown"
			}
			stats.AreaStats[area]++

		case standing == subscribers.StatusTerminated:
			stats.TotalTerminated++
		}
	}

	return stats
}
