// Package seed loads a starter subscriber set into an empty database.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suninet/suninet/internal/platform/db"
)

type row struct {
	Username   string
	FullName   string
	Status     string
	Package    string
	Bandwidth  string
	ExpiryDate string
	Area       string
}

var starterCustomers = []row{
	{"enl212", "Mr Umair Dubai", "Active", "ABB-Silver", "17", "2026-03-20", "SECTOR-4-A"},
	{"earthnet1381", "Owais anda", "Active", "ABB-Bronze", "12", "2026-03-21", "SECTOR-4-A"},
	{"earth81", "Mr Rehman", "Active", "ABB-Bronze", "12", "2026-03-22", "SECTOR-4-A"},
	{"earth70", "Azar", "Active", "ABB-Silver", "17", "2026-03-22", "SECTOR-4-A"},
	{"earthnet453", "Israr", "Active", "ABB-Silver", "17", "2026-03-08", "SECTOR-4-A"},
	{"earthnet707", "Mr Azeem", "Active", "ABB-Bronze", "12", "2026-03-18", "SECTOR-4-A"},
	{"earthnet134", "Ali khan", "Active", "ABB-Silver", "17", "2026-03-05", "SECTOR-4-A"},
	{"earthnet103", "Danish Atm", "Active", "ABB-Gold", "22", "2026-03-17", "SECTOR-4-A"},
	{"earthnet248", "Mr Aatir", "Active", "ABB-Bronze", "12", "2026-03-17", "SECTOR-4-A"},
	{"earth60", "Mr Salman", "Active", "ABB-Bronze", "12", "2026-03-19", "SECTOR-4-A"},
	{"earth21", "Shahid", "Active", "ABB-Silver", "17", "2026-03-18", "SECTOR-4-A"},
	{"earth104", "Mr waseem", "Active", "ABB-Bronze", "12", "2026-03-17", "SECTOR-4-A"},
	{"earthnet925", "Mr Mohsin", "Active", "ABB-Silver", "17", "2026-03-16", "SECTOR-4-A"},
	{"earth006", "Jamal", "Active", "ABB-Silver", "17", "2026-03-16", "SECTOR-4-A"},
	{"enl603", "Amir", "Active", "ABB-Bronze", "12", "2026-03-16", "SECTOR-4-A"},
	{"earth2", "Naveed Mohiudeen", "Active", "ABB-Silver", "17", "2026-03-15", "SECTOR-4-A"},
	{"earth12", "Mr Tahseen", "Active", "ABB-Silver", "17", "2026-03-20", "SECTOR-4-A"},
	{"j.net-1006", "Noman", "Active", "ABB-Silver", "17", "2026-03-15", "SECTOR-4-A"},
	{"j.net-59", "Daniyal", "Active", "ABB-Silver", "17", "2026-03-18", "SECTOR-4-A"},
	{"earth27", "Abrar", "Active", "ABB-Bronze", "12", "2026-03-13", "SECTOR-4-A"},
}

// Customers inserts the starter set when the ledger is empty. Re-running
// against a populated database is a no-op.
func Customers(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM isp_customers`).Scan(&count); err != nil {
		return fmt.Errorf("count customers: %w", err)
	}
	if count > 0 {
		return nil
	}
	return db.WithTx(ctx, pool, func(tx pgx.Tx) error {
		for _, c := range starterCustomers {
			_, err := tx.Exec(ctx, `
				INSERT INTO isp_customers (username, full_name, status, package, bandwidth, expiry_date, area)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (username) DO NOTHING`,
				c.Username, c.FullName, c.Status, c.Package, c.Bandwidth, c.ExpiryDate, c.Area)
			if err != nil {
				return fmt.Errorf("seed customer %s: %w", c.Username, err)
			}
		}
		return nil
	})
}
