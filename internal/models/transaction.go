package models

import "github.com/mmynk/settleup/internal/money"

// Transaction is a validated ledger row.
type Transaction struct {
	// Row is the 1-based position of the row in the request.
	Row int

	// Day is an optional free-form date label (e.g., "Mon", "2024-05-01").
	Day string

	// Description is an optional label (e.g., "Dinner").
	Description string

	// Payer is the person who fronted the money.
	Payer string

	// Amount is the total paid, always > 0.
	Amount money.Cents

	// Shares holds one entry per known person; absent people were filled with 0.
	// Shares sum exactly to Amount.
	Shares map[string]money.Cents
}
