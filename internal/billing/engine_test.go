package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/suninet/suninet/internal/pricing"
	"github.com/suninet/suninet/internal/subscribers"
)

func TestSettled(t *testing.T) {
	asOf := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	require.True(t, Settled(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), asOf))
	require.True(t, Settled(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), asOf))
	require.False(t, Settled(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), asOf))
	require.False(t, Settled(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), asOf))
	require.False(t, Settled(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), asOf))
	require.False(t, Settled(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), asOf))
	// Missing expiry behaves as long expired.
	require.False(t, Settled(time.Time{}, asOf))
}

func TestComputeStatsTerminatedExcluded(t *testing.T) {
	asOf := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	customers := []subscribers.Customer{
		{ID: 1, Status: "Active", Bandwidth: "17", Area: "SECTOR-4-A", ExpiryDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Status: "Terminated", Bandwidth: "17", Area: "SECTOR-4-A", PendingBalance: 1000},
	}

	stats := ComputeStats(customers, pricing.Default(), asOf)

	require.Equal(t, 1, stats.TotalActive)
	require.Equal(t, 1, stats.TotalTerminated)
	require.Equal(t, 865, stats.TotalProfit)
	require.Equal(t, 1, stats.AreaStats["SECTOR-4-A"])
	// Stored balances sum over every subscriber, terminated included.
	require.Equal(t, 1000, stats.TotalPendingBalance)
}

func TestComputeStatsPricingGap(t *testing.T) {
	asOf := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	customers := []subscribers.Customer{
		{ID: 1, Status: "Active", Bandwidth: "99", Area: "SECTOR-4-A", ExpiryDate: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)},
	}

	stats := ComputeStats(customers, pricing.Default(), asOf)

	require.Equal(t, 1, stats.TotalActive)
	require.Empty(t, stats.BandwidthStats)
	require.Zero(t, stats.TotalProfit)
	require.Zero(t, stats.TotalCompanyPayable)
	require.Zero(t, stats.PaidCount)
	require.Zero(t, stats.PendingCount)
	// Still counted in the area breakdown.
	require.Equal(t, 1, stats.AreaStats["SECTOR-4-A"])
}

func TestComputeStatsInactiveOnExpiry(t *testing.T) {
	asOf := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	customers := []subscribers.Customer{
		{ID: 1, Status: "Inactive on Expiry", Bandwidth: "12", Area: "SECTOR-4-A", ExpiryDate: time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)},
	}

	stats := ComputeStats(customers, pricing.Default(), asOf)

	// Participates in billing but not in the active headcount.
	require.Zero(t, stats.TotalActive)
	require.Equal(t, 1, stats.PendingCount)
	require.Equal(t, 715, stats.PendingProfit)
	require.Equal(t, 1200, stats.TotalCollected)
	require.Equal(t, 485, stats.TotalCompanyPayable)
	bws := stats.BandwidthStats["12 MB"]
	require.NotNil(t, bws)
	require.Equal(t, 1, bws.Count)
	require.Equal(t, 1, bws.Pending)
}

func TestComputeStatsUnknownAreaBucketed(t *testing.T) {
	asOf := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	customers := []subscribers.Customer{
		{ID: 1, Status: "Active", Bandwidth: "17", ExpiryDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
	}

	stats := ComputeStats(customers, pricing.Default(), asOf)
	require.Equal(t, 1, stats.AreaStats["Unknown"])
}
