// Package calculator validates expense ledgers and settles them.
//
// The pipeline is NormalizeAndValidate (per-row validation, paid/consumed
// totals) followed by Settle (net balances, greedy transfer matching). Both
// steps are pure functions over their arguments and safe for concurrent use.
package calculator

import "github.com/mmynk/settleup/internal/models"

// Compute validates the transactions and settles the resulting ledger.
func Compute(people []string, txs []RawTransaction) (*Ledger, *models.Settlement, error) {
	ledger, err := NormalizeAndValidate(people, txs)
	if err != nil {
		return nil, nil, err
	}
	settlement, err := SettleLedger(ledger)
	if err != nil {
		return nil, nil, err
	}
	return ledger, settlement, nil
}
