package models

import "github.com/mmynk/settleup/internal/money"

// Receipt is the stored outcome of one settlement computation.
// It keeps the balances and transfers, not the transactions that produced them.
type Receipt struct {
	// ID is the unique identifier for the receipt (UUID format).
	ID string

	// Title is a short label, auto-generated from the people when empty.
	Title string

	// Balances are the per-person totals, in people order.
	Balances BalanceSheet

	// Transfers are in the order the engine generated them.
	Transfers []Transfer

	// TransactionCount is the number of ledger rows settled.
	TransactionCount int

	// Total is the sum of all transaction amounts.
	Total money.Cents

	// CreatedAt is the Unix timestamp when the receipt was stored.
	CreatedAt int64
}
