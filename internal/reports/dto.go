package reports

import "github.com/suninet/suninet/internal/subscribers"

const dateLayout = "2006-01-02"

// PendingEntryDTO keeps the stored and projected balances as two distinct
// fields; other projections rely on the stored value alone.
type PendingEntryDTO struct {
	subscribers.CustomerDTO
	ProjectedPendingBalance int     `json:"projected_pending_balance"`
	LastPaidAmount          *int    `json:"last_paid_amount"`
	LastPaymentDate         *string `json:"last_payment_date"`
}

func toPendingDTO(e PendingEntry) PendingEntryDTO {
	dto := PendingEntryDTO{
		CustomerDTO:             subscribers.ToDTO(e.Customer),
		ProjectedPendingBalance: e.Projected,
		LastPaidAmount:          e.LastPaidAmount,
	}
	dto.PendingBalance = e.Stored
	if e.LastPaymentDate != nil {
		s := e.LastPaymentDate.Format(dateLayout)
		dto.LastPaymentDate = &s
	}
	return dto
}

// PeriodDetailDTO is the wire shape of one period report row.
type PeriodDetailDTO struct {
	ID             int64  `json:"id"`
	CustomerID     int64  `json:"customer_id"`
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	Bandwidth      string `json:"bandwidth"`
	Area           string `json:"area"`
	PendingBalance int    `json:"pending_balance"`
	AmountPaid     int    `json:"amount_paid"`
	PaymentDate    string `json:"payment_date"`
	Month          int    `json:"month"`
	Year           int    `json:"year"`
	Total          int    `json:"total"`
	Company        int    `json:"company"`
	Profit         int    `json:"profit"`
}

// PeriodReportDTO is the wire shape of the period financial report.
type PeriodReportDTO struct {
	TotalCollected int               `json:"totalCollected"`
	CompanyShare   int               `json:"companyShare"`
	MyProfit       int               `json:"myProfit"`
	TotalPending   int               `json:"totalPending"`
	UserCount      int               `json:"userCount"`
	Details        []PeriodDetailDTO `json:"details"`
}

func toPeriodDTO(r PeriodReport) PeriodReportDTO {
	dto := PeriodReportDTO{
		TotalCollected: r.TotalCollected,
		CompanyShare:   r.CompanyShare,
		MyProfit:       r.Profit,
		TotalPending:   r.TotalPending,
		UserCount:      r.UserCount,
		Details:        make([]PeriodDetailDTO, 0, len(r.Details)),
	}
	for _, d := range r.Details {
		dto.Details = append(dto.Details, PeriodDetailDTO{
			ID:             d.ID,
			CustomerID:     d.CustomerID,
			Username:       d.Username,
			FullName:       d.FullName,
			Bandwidth:      d.Bandwidth,
			Area:           d.Area,
			PendingBalance: d.PendingBalance,
			AmountPaid:     d.AmountPaid,
			PaymentDate:    d.PaymentDate.Format(dateLayout),
			Month:          d.Month,
			Year:           d.Year,
			Total:          d.Total,
			Company:        d.Company,
			Profit:         d.Profit,
		})
	}
	return dto
}
