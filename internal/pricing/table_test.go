package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPriceOfKnownTier(t *testing.T) {
	table := Default()

	entry, ok := table.PriceOf("17 MB")
	require.True(t, ok)
	require.Equal(t, 535, entry.CompanyCost)
	require.Equal(t, 1400, entry.ResalePrice)
	require.Equal(t, 865, entry.Profit())
}

func TestPriceOfUnknownTier(t *testing.T) {
	table := Default()

	_, ok := table.PriceOf("99 MB")
	require.False(t, ok)
	require.Zero(t, table.ResaleFor("99"))
}

func TestTierFor(t *testing.T) {
	require.Equal(t, "12 MB", TierFor("12"))
	require.Equal(t, 1200, Default().ResaleFor("12"))
}
