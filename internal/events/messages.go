package events

import (
	"encoding/json"
	"time"

	"github.com/mmynk/settleup/internal/models"
)

// SettlementComputed is published after every successful settlement.
// It carries totals and transfers, never the ledger rows.
type SettlementComputed struct {
	ReceiptID        string     `json:"receipt_id,omitempty"`
	People           int        `json:"people"`
	TransactionCount int        `json:"transaction_count"`
	Total            string     `json:"total"`
	Settled          bool       `json:"settled"`
	Transfers        []Transfer `json:"transfers"`
	Timestamp        time.Time  `json:"timestamp"`
}

// Transfer mirrors models.Transfer with a decimal amount.
type Transfer struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// NewSettlementComputed builds the event for a receipt.
func NewSettlementComputed(r *models.Receipt, now time.Time) *SettlementComputed {
	transfers := make([]Transfer, len(r.Transfers))
	for i, t := range r.Transfers {
		transfers[i] = Transfer{From: t.From, To: t.To, Amount: t.Amount.String()}
	}
	return &SettlementComputed{
		ReceiptID:        r.ID,
		People:           len(r.Balances.People),
		TransactionCount: r.TransactionCount,
		Total:            r.Total.String(),
		Settled:          len(r.Transfers) == 0,
		Transfers:        transfers,
		Timestamp:        now.UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SettlementComputed) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
