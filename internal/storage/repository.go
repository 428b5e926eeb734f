// Package storage persists dataset snapshots to SQLite so the last good
// dataset survives restarts and failed fetch cycles.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"salesdash/internal/core"
)

type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository opens (and if needed creates) the snapshot database
// and applies pending migrations.
func NewSnapshotRepository(dbPath string) (*SnapshotRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SnapshotRepository{db: db}, nil
}

func (r *SnapshotRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const insertRecordSQL = `INSERT INTO sale_records (
	snapshot_id, position,
	member_id, customer_name, customer_email, sale_item_id, payment_category,
	payment_date, payment_value, paid_in_credits, payment_vat,
	payment_item, payment_method, payment_status, transaction_id, token,
	sold_by, sale_reference, location, product, category, host_id,
	mrp_pre_tax, mrp_post_tax, discount_amount, discount_percent, membership_type
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Save writes a new snapshot and prunes every older one in the same
// transaction; the repository only ever holds the latest dataset.
func (r *SnapshotRepository) Save(ctx context.Context, records []core.SaleRecord, fetchedAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (fetched_at, record_count) VALUES (?, ?)`,
		fetchedAt.UTC().Format(time.RFC3339), len(records))
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	snapshotID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("snapshot id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertRecordSQL)
	if err != nil {
		return fmt.Errorf("prepare record insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			snapshotID, i,
			rec.MemberID, rec.CustomerName, rec.CustomerEmail, rec.SaleItemID, rec.PaymentCategory,
			rec.PaymentDate.ISO(), rec.PaymentValue, rec.PaidInCredits, rec.PaymentVAT,
			rec.PaymentItem, rec.PaymentMethod, rec.PaymentStatus, rec.TransactionID, rec.Token,
			rec.SoldBy, rec.SaleReference, rec.Location, rec.Product, rec.Category, rec.HostID,
			rec.MRPPreTax, rec.MRPPostTax, rec.DiscountAmount, rec.DiscountPercent, rec.MembershipType,
		); err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE id != ?`, snapshotID); err != nil {
		return fmt.Errorf("prune old snapshots: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sale_records WHERE snapshot_id != ?`, snapshotID); err != nil {
		return fmt.Errorf("prune old records: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot saved", "snapshot_id", snapshotID, "records", len(records))
	return nil
}

// Load returns the latest snapshot's records in their original fetch order.
// An empty repository yields an empty dataset and a zero fetch time.
func (r *SnapshotRepository) Load(ctx context.Context) ([]core.SaleRecord, time.Time, error) {
	var (
		snapshotID int64
		fetchedRaw string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, fetched_at FROM snapshots ORDER BY id DESC LIMIT 1`).
		Scan(&snapshotID, &fetchedRaw)
	if err == sql.ErrNoRows {
		return []core.SaleRecord{}, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("select snapshot: %w", err)
	}

	fetchedAt, err := time.Parse(time.RFC3339, fetchedRaw)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("parse fetched_at: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT
		member_id, customer_name, customer_email, sale_item_id, payment_category,
		payment_date, payment_value, paid_in_credits, payment_vat,
		payment_item, payment_method, payment_status, transaction_id, token,
		sold_by, sale_reference, location, product, category, host_id,
		mrp_pre_tax, mrp_post_tax, discount_amount, discount_percent, membership_type
	FROM sale_records WHERE snapshot_id = ? ORDER BY position`, snapshotID)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("select records: %w", err)
	}
	defer rows.Close()

	var records []core.SaleRecord
	for rows.Next() {
		var rec core.SaleRecord
		var dateRaw string
		if err := rows.Scan(
			&rec.MemberID, &rec.CustomerName, &rec.CustomerEmail, &rec.SaleItemID, &rec.PaymentCategory,
			&dateRaw, &rec.PaymentValue, &rec.PaidInCredits, &rec.PaymentVAT,
			&rec.PaymentItem, &rec.PaymentMethod, &rec.PaymentStatus, &rec.TransactionID, &rec.Token,
			&rec.SoldBy, &rec.SaleReference, &rec.Location, &rec.Product, &rec.Category, &rec.HostID,
			&rec.MRPPreTax, &rec.MRPPostTax, &rec.DiscountAmount, &rec.DiscountPercent, &rec.MembershipType,
		); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan record: %w", err)
		}
		rec.PaymentDate = core.ParseDate(dateRaw)
		rec.GrossRevenue = rec.PaymentValue
		rec.NetRevenue = rec.PaymentValue - rec.PaymentVAT
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("iterate records: %w", err)
	}
	if records == nil {
		records = []core.SaleRecord{}
	}
	return records, fetchedAt, nil
}
