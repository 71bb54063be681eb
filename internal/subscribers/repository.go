package subscribers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the subscriber does not exist.
var ErrNotFound = errors.New("subscribers: not found")

// Repository defines ledger data access.
type Repository interface {
	Get(ctx context.Context, id int64) (*Customer, error)
	ListWithPeriodPayment(ctx context.Context, month, year int) ([]CustomerWithPayment, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const customerColumns = `id, username, full_name, status, package, bandwidth,
	expiry_date, area, address, mobile_number, custom_price, pending_balance`

func (r *repository) Get(ctx context.Context, id int64) (*Customer, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM isp_customers WHERE id = $1", customerColumns), id)
	return scanCustomer(row)
}

// ListWithPeriodPayment returns every subscriber left-joined with the
// payment row for the given period, absent when unpaid that period.
func (r *repository) ListWithPeriodPayment(ctx context.Context, month, year int) ([]CustomerWithPayment, error) {
	query := fmt.Sprintf(`
		SELECT %s, p.amount_paid, p.payment_date
		FROM isp_customers c
		LEFT JOIN payments p ON c.id = p.customer_id AND p.month = $1 AND p.year = $2
		ORDER BY c.id`, joinColumns("c"))

	rows, err := r.pool.Query(ctx, query, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CustomerWithPayment
	for rows.Next() {
		var cp CustomerWithPayment
		var expiry, paymentDate pgtype.Date
		var customPrice, amountPaid pgtype.Int8

		if err := rows.Scan(
			&cp.ID, &cp.Username, &cp.FullName, &cp.Status, &cp.PackageName, &cp.Bandwidth,
			&expiry, &cp.Area, &cp.Address, &cp.MobileNumber, &customPrice, &cp.PendingBalance,
			&amountPaid, &paymentDate,
		); err != nil {
			return nil, err
		}
		if expiry.Valid {
			cp.ExpiryDate = expiry.Time
		}
		if customPrice.Valid {
			v := int(customPrice.Int64)
			cp.CustomPrice = &v
		}
		if amountPaid.Valid {
			v := int(amountPaid.Int64)
			cp.AmountPaid = &v
		}
		if paymentDate.Valid {
			t := paymentDate.Time
			cp.PaymentDate = &t
		}
		out = append(out, cp)
	}
	return out, rows.Err()
}

// Update applies a partial edit built from the provided column map.
func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if len(updates) == 0 {
		_, err := r.Get(ctx, id)
		return err
	}

	query := "UPDATE isp_customers SET "
	var args []interface{}
	argPos := 1
	first := true

	for _, col := range []string{"full_name", "area", "address", "mobile_number", "custom_price", "expiry_date"} {
		v, ok := updates[col]
		if !ok {
			continue
		}
		if !first {
			query += ", "
		}
		query += fmt.Sprintf("%s = $%d", col, argPos)
		args = append(args, v)
		argPos++
		first = false
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func joinColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, %[1]s.username, %[1]s.full_name, %[1]s.status, %[1]s.package, %[1]s.bandwidth,
	%[1]s.expiry_date, %[1]s.area, %[1]s.address, %[1]s.mobile_number, %[1]s.custom_price, %[1]s.pending_balance`, alias)
}

func scanCustomer(row pgx.Row) (*Customer, error) {
	var c Customer
	var expiry pgtype.Date
	var customPrice pgtype.Int8

	err := row.Scan(
		&c.ID, &c.Username, &c.FullName, &c.Status, &c.PackageName, &c.Bandwidth,
		&expiry, &c.Area, &c.Address, &c.MobileNumber, &customPrice, &c.PendingBalance,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if expiry.Valid {
		c.ExpiryDate = expiry.Time
	}
	if customPrice.Valid {
		v := int(customPrice.Int64)
		c.CustomPrice = &v
	}
	return &c, nil
}
