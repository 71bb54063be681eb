package billing

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suninet/suninet/internal/platform/db"
	"github.com/suninet/suninet/internal/subscribers"
)

// ErrNotFound indicates a missing subscriber or payment row.
var ErrNotFound = errors.New("billing: not found")

// Repository defines data access for the reconciliation engine. WithTx
// yields a transaction-bound Repository so the payment upsert and the
// balance adjustment commit or roll back together.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	ListCustomers(ctx context.Context) ([]subscribers.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*subscribers.Customer, error)
	PaymentForPeriod(ctx context.Context, customerID int64, month, year int) (*Payment, error)
	InsertPayment(ctx context.Context, p Payment) (int64, error)
	UpdatePayment(ctx context.Context, id int64, amountPaid int, paymentDate time.Time) error
	AdjustPendingBalance(ctx context.Context, customerID int64, delta int) error
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

func (r *repository) ListCustomers(ctx context.Context) ([]subscribers.Customer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, username, full_name, status, package, bandwidth,
			expiry_date, area, address, mobile_number, custom_price, pending_balance
		FROM isp_customers
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []subscribers.Customer
	for rows.Next() {
		var c subscribers.Customer
		var expiry pgtype.Date
		var customPrice pgtype.Int8

		if err := rows.Scan(
			&c.ID, &c.Username, &c.FullName, &c.Status, &c.PackageName, &c.Bandwidth,
			&expiry, &c.Area, &c.Address, &c.MobileNumber, &customPrice, &c.PendingBalance,
		); err != nil {
			return nil, err
		}
		if expiry.Valid {
			c.ExpiryDate = expiry.Time
		}
		if customPrice.Valid {
			v := int(customPrice.Int64)
			c.CustomPrice = &v
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repository) GetCustomer(ctx context.Context, id int64) (*subscribers.Customer, error) {
	var c subscribers.Customer
	var expiry pgtype.Date
	var customPrice pgtype.Int8

	err := r.db.QueryRow(ctx, `
		SELECT id, username, full_name, status, package, bandwidth,
			expiry_date, area, address, mobile_number, custom_price, pending_balance
		FROM isp_customers WHERE id = $1`, id).Scan(
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

// PaymentForPeriod returns the journal row for one billing period, or nil
// when the subscriber has not paid in that period yet.
func (r *repository) PaymentForPeriod(ctx context.Context, customerID int64, month, year int) (*Payment, error) {
	var p Payment
	err := r.db.QueryRow(ctx, `
		SELECT id, customer_id, amount_paid, payment_date, month, year
		FROM payments
		WHERE customer_id = $1 AND month = $2 AND year = $3`,
		customerID, month, year).Scan(
		&p.ID, &p.CustomerID, &p.AmountPaid, &p.PaymentDate, &p.Month, &p.Year,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) InsertPayment(ctx context.Context, p Payment) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO payments (customer_id, amount_paid, payment_date, month, year)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		p.CustomerID, p.AmountPaid, p.PaymentDate, p.Month, p.Year).Scan(&id)
	return id, err
}

func (r *repository) UpdatePayment(ctx context.Context, id int64, amountPaid int, paymentDate time.Time) error {
	_, err := r.db.Exec(ctx,
		"UPDATE payments SET amount_paid = $1, payment_date = $2 WHERE id = $3",
		amountPaid, paymentDate, id)
	return err
}

func (r *repository) AdjustPendingBalance(ctx context.Context, customerID int64, delta int) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE isp_customers SET pending_balance = pending_balance + $1 WHERE id = $2",
		delta, customerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
