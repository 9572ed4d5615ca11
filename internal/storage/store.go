// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/settleup/internal/models"
)

// ErrNotFound is returned when a receipt does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for settlement receipt storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateReceipt persists a new receipt.
	// The receipt.ID and receipt.CreatedAt fields are populated by the store when empty.
	CreateReceipt(ctx context.Context, receipt *models.Receipt) error

	// GetReceipt retrieves a receipt by its ID.
	// Returns an error wrapping ErrNotFound if the receipt does not exist.
	GetReceipt(ctx context.Context, receiptID string) (*models.Receipt, error)

	// ListReceipts returns up to limit receipts, newest first.
	ListReceipts(ctx context.Context, limit int) ([]*models.Receipt, error)

	// Close releases any resources held by the store.
	Close() error
}
