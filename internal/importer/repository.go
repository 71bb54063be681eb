package importer

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suninet/suninet/internal/platform/db"
	"github.com/suninet/suninet/internal/subscribers"
)

// Repository persists import batches.
type Repository interface {
	UpsertAll(ctx context.Context, rows []subscribers.ImportRow) (int, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const upsertQuery = `
	INSERT INTO isp_customers (
		username, full_name, status, package, bandwidth, expiry_date, area, address, mobile_number
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (username) DO UPDATE SET
		full_name = EXCLUDED.full_name,
		status = EXCLUDED.status,
		package = EXCLUDED.package,
		bandwidth = EXCLUDED.bandwidth,
		expiry_date = EXCLUDED.expiry_date,
		area = EXCLUDED.area,
		address = EXCLUDED.address,
		mobile_number = EXCLUDED.mobile_number`

// UpsertAll applies the whole batch in a single transaction: a failure on
// any row rolls back everything. Rows matching an existing username update
// the mutable import fields only; pending_balance and custom_price are
// never touched.
func (r *repository) UpsertAll(ctx context.Context, rows []subscribers.ImportRow) (int, error) {
	count := 0
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		for _, row := range rows {
			expiry := pgtype.Date{}
			if t := subscribers.ParseDate(row.ExpiryDate); !t.IsZero() {
				expiry = pgtype.Date{Time: t, Valid: true}
			}
			if _, err := tx.Exec(ctx, upsertQuery,
				row.Username, row.FullName, row.Status, row.PackageName, row.Bandwidth,
				expiry, row.Area, row.Address, row.MobileNumber,
			); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
