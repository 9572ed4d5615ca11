package models

import "github.com/mmynk/settleup/internal/money"

// BalanceSheet holds per-person totals for one computation.
type BalanceSheet struct {
	// People is the input order used for display.
	People []string

	// Paid is the sum of amounts where the person was payer.
	Paid map[string]money.Cents

	// Consumed is the sum of the person's shares.
	Consumed map[string]money.Cents

	// Net is Paid - Consumed. Positive = owed money, negative = owes money.
	Net map[string]money.Cents
}

// Transfer is a recommended payment from a debtor to a creditor.
type Transfer struct {
	From   string
	To     string
	Amount money.Cents
}

// Settlement is the output of the settlement engine.
type Settlement struct {
	Balances  BalanceSheet
	Transfers []Transfer
}

// Settled reports whether nobody owes anybody ("nothing to settle").
func (s *Settlement) Settled() bool {
	return len(s.Transfers) == 0
}
