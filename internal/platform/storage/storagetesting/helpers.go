// Package storagetesting provides helpers for storage integration
// tests running against a real database.
package storagetesting

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/marketfeed/trendyol-sync/internal/platform/models"

	_ "github.com/lib/pq"
)

// Open opens connection to DB. The test is skipped when DATABASE_URL is
// not set.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("set DATABASE_URL to run storage integration tests")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		t.Fatalf("can't open connection to %q: %s", dbURL, err)
	}

	return db
}

// InsertSupplier is a helper test function to insert a supplier with
// default settings. Returns the supplier id.
func InsertSupplier(t *testing.T, db *sql.DB, supplier models.Supplier) int {
	t.Helper()

	var id int
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO suppliers (name, feed_url, is_active) VALUES ($1, $2, $3) RETURNING id`,
		supplier.Name, supplier.FeedURL, supplier.IsActive,
	).Scan(&id)
	if err != nil {
		t.Fatal("can't insert supplier:", err)
	}

	_, err = db.ExecContext(context.Background(),
		`INSERT INTO supplier_settings (supplier_id) VALUES ($1)`,
		id,
	)
	if err != nil {
		t.Fatal("can't insert supplier settings:", err)
	}

	return id
}

// DeleteSupplier is a helper test function removing a supplier and its
// dependent rows.
func DeleteSupplier(t *testing.T, db *sql.DB, supplierID int) {
	t.Helper()

	if _, err := db.ExecContext(context.Background(),
		`DELETE FROM suppliers WHERE id = $1`, supplierID,
	); err != nil {
		t.Fatal("can't delete supplier:", err)
	}
}
