package importer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUpsertQueryNeverWritesProtectedColumns(t *testing.T) {
	// pending_balance and custom_price belong to the payment and edit
	// flows; a username-matching import must leave both untouched.
	require.NotContains(t, upsertQuery, "pending_balance")
	require.NotContains(t, upsertQuery, "custom_price")
	require.Contains(t, upsertQuery, "ON CONFLICT (username) DO UPDATE")
}
