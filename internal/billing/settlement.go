package billing

import "time"

// Settled reports whether a subscriber has settled the current billing
// period as of the reference date: an expiry date in a later month than
// asOf proves a forward payment was already made. Expiry in the asOf
// month or earlier means the subscriber still owes for the period.
func Settled(expiry, asOf time.Time) bool {
	if expiry.Year() != asOf.Year() {
		return expiry.Year() > asOf.Year()
	}
	return expiry.Month() > asOf.Month()
}
