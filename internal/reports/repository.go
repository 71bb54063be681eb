package reports

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suninet/suninet/internal/subscribers"
)

// Repository defines read access for report projections.
type Repository interface {
	AllCustomers(ctx context.Context) ([]subscribers.Customer, error)
	CustomersWithLastPayment(ctx context.Context) ([]CustomerWithLastPayment, error)
	PaidCustomerIDs(ctx context.Context, month, year int) (map[int64]bool, error)
	PaidCustomers(ctx context.Context, month, year int) ([]subscribers.CustomerWithPayment, error)
	PaymentsFiltered(ctx context.Context, filter PeriodFilter) ([]PaymentJoin, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const customerCols = `%[1]s.id, %[1]s.username, %[1]s.full_name, %[1]s.status, %[1]s.package, %[1]s.bandwidth,
	%[1]s.expiry_date, %[1]s.area, %[1]s.address, %[1]s.mobile_number, %[1]s.custom_price, %[1]s.pending_balance`

func scanInto(rows pgx.Rows, c *subscribers.Customer, extra ...any) error {
	var expiry pgtype.Date
	var customPrice pgtype.Int8

	dest := []any{
		&c.ID, &c.Username, &c.FullName, &c.Status, &c.PackageName, &c.Bandwidth,
		&expiry, &c.Area, &c.Address, &c.MobileNumber, &customPrice, &c.PendingBalance,
	}
	dest = append(dest, extra...)
	if err := rows.Scan(dest...); err != nil {
		return err
	}
	if expiry.Valid {
		c.ExpiryDate = expiry.Time
	}
	if customPrice.Valid {
		v := int(customPrice.Int64)
		c.CustomPrice = &v
	}
	return nil
}

func (r *repository) AllCustomers(ctx context.Context) ([]subscribers.Customer, error) {
	query := fmt.Sprintf("SELECT "+customerCols+" FROM isp_customers c ORDER BY c.id", "c")
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []subscribers.Customer
	for rows.Next() {
		var c subscribers.Customer
		if err := scanInto(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CustomersWithLastPayment joins every subscriber with its most recent
// journal row, regardless of period.
func (r *repository) CustomersWithLastPayment(ctx context.Context) ([]CustomerWithLastPayment, error) {
	query := fmt.Sprintf(`
		SELECT `+customerCols+`, p.amount_paid, p.payment_date
		FROM isp_customers c
		LEFT JOIN (
			SELECT DISTINCT ON (customer_id) customer_id, amount_paid, payment_date
			FROM payments
			ORDER BY customer_id, id DESC
		) p ON c.id = p.customer_id
		ORDER BY c.id`, "c")

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CustomerWithLastPayment
	for rows.Next() {
		var cl CustomerWithLastPayment
		var amount pgtype.Int8
		var paidAt pgtype.Date
		if err := scanInto(rows, &cl.Customer, &amount, &paidAt); err != nil {
			return nil, err
		}
		if amount.Valid {
			v := int(amount.Int64)
			cl.LastPaidAmount = &v
		}
		if paidAt.Valid {
			t := paidAt.Time
			cl.LastPaymentDate = &t
		}
		out = append(out, cl)
	}
	return out, rows.Err()
}

func (r *repository) PaidCustomerIDs(ctx context.Context, month, year int) (map[int64]bool, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT customer_id FROM payments WHERE month = $1 AND year = $2", month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// PaidCustomers lists subscribers with a journal row for the period and a
// zero stored balance.
func (r *repository) PaidCustomers(ctx context.Context, month, year int) ([]subscribers.CustomerWithPayment, error) {
	query := fmt.Sprintf(`
		SELECT `+customerCols+`, p.amount_paid, p.payment_date
		FROM isp_customers c
		JOIN payments p ON c.id = p.customer_id
		WHERE p.month = $1 AND p.year = $2 AND c.pending_balance = 0
		ORDER BY c.id`, "c")

	rows, err := r.pool.Query(ctx, query, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []subscribers.CustomerWithPayment
	for rows.Next() {
		var cp subscribers.CustomerWithPayment
		var amount pgtype.Int8
		var paidAt pgtype.Date
		if err := scanInto(rows, &cp.Customer, &amount, &paidAt); err != nil {
			return nil, err
		}
		if amount.Valid {
			v := int(amount.Int64)
			cp.AmountPaid = &v
		}
		if paidAt.Valid {
			t := paidAt.Time
			cp.PaymentDate = &t
		}
		out = append(out, cp)
	}
	return out, rows.Err()
}

func (r *repository) PaymentsFiltered(ctx context.Context, filter PeriodFilter) ([]PaymentJoin, error) {
	query := `
		SELECT p.id, p.customer_id, c.username, c.full_name, c.bandwidth, c.area,
			c.pending_balance, p.amount_paid, p.payment_date, p.month, p.year
		FROM payments p
		JOIN isp_customers c ON p.customer_id = c.id
		WHERE 1=1`
	var args []interface{}
	argPos := 1

	switch {
	case filter.StartDate != nil && filter.EndDate != nil:
		query += fmt.Sprintf(" AND p.payment_date >= $%d AND p.payment_date <= $%d", argPos, argPos+1)
		args = append(args, *filter.StartDate, *filter.EndDate)
	case filter.Date != nil:
		query += fmt.Sprintf(" AND p.payment_date = $%d", argPos)
		args = append(args, *filter.Date)
	case filter.Month != nil && filter.Year != nil:
		query += fmt.Sprintf(" AND p.month = $%d AND p.year = $%d", argPos, argPos+1)
		args = append(args, *filter.Month, *filter.Year)
	}
	query += " ORDER BY p.id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PaymentJoin
	for rows.Next() {
		var pj PaymentJoin
		if err := rows.Scan(
			&pj.ID, &pj.CustomerID, &pj.Username, &pj.FullName, &pj.Bandwidth, &pj.Area,
			&pj.PendingBalance, &pj.AmountPaid, &pj.PaymentDate, &pj.Month, &pj.Year,
		); err != nil {
			return nil, err
		}
		out = append(out, pj)
	}
	return out, rows.Err()
}
