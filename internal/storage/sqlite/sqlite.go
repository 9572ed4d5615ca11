// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
	"github.com/mmynk/settleup/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// DefaultListLimit is used when ListReceipts is called with a non-positive limit.
const DefaultListLimit = 50

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return newWithDB(db), nil
}

func newWithDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateReceipt persists a receipt with its balances and transfers in one transaction.
func (s *SQLiteStore) CreateReceipt(ctx context.Context, receipt *models.Receipt) error {
	// Generate ID and timestamp if not set
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.CreatedAt == 0 {
		receipt.CreatedAt = s.now().Unix()
	}
	if receipt.Title == "" {
		receipt.Title = generateTitle(receipt.Balances.People, s.now())
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO receipts (id, title, transaction_count, total_cents, created_at) VALUES (?, ?, ?, ?, ?)",
		receipt.ID, receipt.Title, receipt.TransactionCount, int64(receipt.Total), receipt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}

	b := receipt.Balances
	for i, person := range b.People {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO receipt_balances (receipt_id, position, person, paid_cents, consumed_cents, net_cents)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			receipt.ID, i, person, int64(b.Paid[person]), int64(b.Consumed[person]), int64(b.Net[person]),
		)
		if err != nil {
			return fmt.Errorf("failed to insert balance: %w", err)
		}
	}

	for i, t := range receipt.Transfers {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO receipt_transfers (receipt_id, position, from_person, to_person, amount_cents)
			 VALUES (?, ?, ?, ?, ?)`,
			receipt.ID, i, t.From, t.To, int64(t.Amount),
		)
		if err != nil {
			return fmt.Errorf("failed to insert transfer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetReceipt retrieves a receipt by ID, including balances and transfers in their original order.
func (s *SQLiteStore) GetReceipt(ctx context.Context, receiptID string) (*models.Receipt, error) {
	receipt := &models.Receipt{}
	var total int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, transaction_count, total_cents, created_at FROM receipts WHERE id = ?",
		receiptID,
	).Scan(&receipt.ID, &receipt.Title, &receipt.TransactionCount, &total, &receipt.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("receipt %s: %w", receiptID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	receipt.Total = money.Cents(total)

	if err := s.loadBalances(ctx, receipt); err != nil {
		return nil, err
	}
	if err := s.loadTransfers(ctx, receipt); err != nil {
		return nil, err
	}

	return receipt, nil
}

// ListReceipts returns up to limit receipts, newest first.
func (s *SQLiteStore) ListReceipts(ctx context.Context, limit int) ([]*models.Receipt, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM receipts ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan receipt id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipts: %w", err)
	}

	receipts := make([]*models.Receipt, 0, len(ids))
	for _, id := range ids {
		r, err := s.GetReceipt(ctx, id)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, r)
	}
	return receipts, nil
}

func (s *SQLiteStore) loadBalances(ctx context.Context, receipt *models.Receipt) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT person, paid_cents, consumed_cents, net_cents
		 FROM receipt_balances WHERE receipt_id = ? ORDER BY position`,
		receipt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get balances: %w", err)
	}
	defer rows.Close()

	b := models.BalanceSheet{
		Paid:     map[string]money.Cents{},
		Consumed: map[string]money.Cents{},
		Net:      map[string]money.Cents{},
	}
	for rows.Next() {
		var person string
		var paid, consumed, net int64
		if err := rows.Scan(&person, &paid, &consumed, &net); err != nil {
			return fmt.Errorf("failed to scan balance: %w", err)
		}
		b.People = append(b.People, person)
		b.Paid[person] = money.Cents(paid)
		b.Consumed[person] = money.Cents(consumed)
		b.Net[person] = money.Cents(net)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate balances: %w", err)
	}

	receipt.Balances = b
	return nil
}

func (s *SQLiteStore) loadTransfers(ctx context.Context, receipt *models.Receipt) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT from_person, to_person, amount_cents
		 FROM receipt_transfers WHERE receipt_id = ? ORDER BY position`,
		receipt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get transfers: %w", err)
	}
	defer rows.Close()

	receipt.Transfers = []models.Transfer{}
	for rows.Next() {
		var t models.Transfer
		var amount int64
		if err := rows.Scan(&t.From, &t.To, &amount); err != nil {
			return fmt.Errorf("failed to scan transfer: %w", err)
		}
		t.Amount = money.Cents(amount)
		receipt.Transfers = append(receipt.Transfers, t)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate transfers: %w", err)
	}
	return nil
}

// generateTitle creates an auto-generated title from people.
func generateTitle(people []string, now time.Time) string {
	if len(people) == 0 {
		return fmt.Sprintf("Settlement - %s", now.Format("Jan 2, 2006"))
	}
	if len(people) <= 3 {
		return fmt.Sprintf("Settle up with %s", strings.Join(people, ", "))
	}
	return fmt.Sprintf("Settle up with %s and %d others",
		strings.Join(people[:2], ", "),
		len(people)-2,
	)
}
