package subscribers

import "time"

const dateLayout = "2006-01-02"

// CustomerDTO is the wire shape of a ledger record. Dates travel as
// YYYY-MM-DD strings, empty when unset.
type CustomerDTO struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	Status         string `json:"status"`
	PackageName    string `json:"package"`
	Bandwidth      string `json:"bandwidth"`
	ExpiryDate     string `json:"expiry_date"`
	Area           string `json:"area"`
	Address        string `json:"address"`
	MobileNumber   string `json:"mobile_number"`
	CustomPrice    *int   `json:"custom_price"`
	PendingBalance int    `json:"pending_balance"`
}

// CustomerWithPaymentDTO adds the current-period payment columns; both are
// null when the subscriber has not paid this period.
type CustomerWithPaymentDTO struct {
	CustomerDTO
	AmountPaid  *int    `json:"amount_paid"`
	PaymentDate *string `json:"payment_date"`
}

// ToDTO converts a Customer for the wire.
func ToDTO(c Customer) CustomerDTO {
	dto := CustomerDTO{
		ID:             c.ID,
		Username:       c.Username,
		FullName:       c.FullName,
		Status:         c.Status,
		PackageName:    c.PackageName,
		Bandwidth:      c.Bandwidth,
		Area:           c.Area,
		Address:        c.Address,
		MobileNumber:   c.MobileNumber,
		CustomPrice:    c.CustomPrice,
		PendingBalance: c.PendingBalance,
	}
	if !c.ExpiryDate.IsZero() {
		dto.ExpiryDate = c.ExpiryDate.Format(dateLayout)
	}
	return dto
}

// ToPaymentDTO converts a joined row for the wire.
func ToPaymentDTO(cp CustomerWithPayment) CustomerWithPaymentDTO {
	dto := CustomerWithPaymentDTO{CustomerDTO: ToDTO(cp.Customer), AmountPaid: cp.AmountPaid}
	if cp.PaymentDate != nil {
		s := cp.PaymentDate.Format(dateLayout)
		dto.PaymentDate = &s
	}
	return dto
}

// ParseDate parses a YYYY-MM-DD string, returning the zero time for empty
// or malformed input. Ledger dates are tolerant: a missing expiry simply
// behaves as long expired.
func ParseDate(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
