package calculator

import (
	"errors"
	"strings"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

// RawTransaction is a ledger row as received from a caller.
// Amount and share values are decimal text ("35", "12.50"); parsing and rounding
// to cents happens during validation.
type RawTransaction struct {
	Day         string
	Description string
	Payer       string
	Amount      string
	Shares      map[string]string

	// SplitAmong divides Amount evenly between these people. Only valid when
	// Shares is empty.
	SplitAmong []string
}

// Ledger is the normalized result of NormalizeAndValidate.
// Paid and Consumed have an entry for every person.
type Ledger struct {
	People       []string
	Transactions []models.Transaction
	Paid         map[string]money.Cents
	Consumed     map[string]money.Cents
	Total        money.Cents
}

// NormalizeAndValidate checks people and every transaction row and accumulates
// paid and consumed totals per person.
//
// Validation stops at the first failure. Within a row the checks run in this
// order: amount > 0, payer is known, shares >= 0, shares sum to amount.
// Share entries for names not in people are ignored. A row whose amount pushes
// the ledger total past what Cents can hold fails with KindOutOfRange.
func NormalizeAndValidate(people []string, txs []RawTransaction) (*Ledger, error) {
	if len(people) == 0 {
		return nil, &Error{Kind: KindEmptyPeopleList}
	}

	known := make(map[string]bool, len(people))
	for _, p := range people {
		if strings.TrimSpace(p) == "" {
			return nil, &Error{Kind: KindInvalidPerson}
		}
		if known[p] {
			return nil, &Error{Kind: KindInvalidPerson, Person: p}
		}
		known[p] = true
	}

	ledger := &Ledger{
		People:       append([]string(nil), people...),
		Transactions: make([]models.Transaction, 0, len(txs)),
		Paid:         zeroBalances(people),
		Consumed:     zeroBalances(people),
	}

	for i, raw := range txs {
		tx, err := normalizeRow(i+1, people, known, raw)
		if err != nil {
			return nil, err
		}

		total, err := money.Add(ledger.Total, tx.Amount)
		if err != nil {
			return nil, &Error{Kind: KindOutOfRange, Row: i + 1}
		}
		ledger.Total = total

		// Per-person totals are bounded by Total, so they cannot overflow.
		ledger.Paid[tx.Payer] += tx.Amount
		for _, p := range people {
			ledger.Consumed[p] += tx.Shares[p]
		}
		ledger.Transactions = append(ledger.Transactions, tx)
	}

	return ledger, nil
}

func normalizeRow(row int, people []string, known map[string]bool, raw RawTransaction) (models.Transaction, error) {
	amount, err := money.Parse(raw.Amount)
	if err != nil {
		return models.Transaction{}, parseError(row, err)
	}
	if amount <= 0 {
		return models.Transaction{}, &Error{Kind: KindInvalidAmount, Row: row}
	}

	if raw.Payer == "" {
		return models.Transaction{}, &Error{Kind: KindInvalidFormat, Row: row}
	}
	if !known[raw.Payer] {
		return models.Transaction{}, &Error{Kind: KindUnknownPayer, Row: row, Person: raw.Payer}
	}

	rawShares := raw.Shares
	if len(raw.SplitAmong) > 0 {
		if len(raw.Shares) > 0 {
			return models.Transaction{}, &Error{Kind: KindInvalidFormat, Row: row, Detail: "both shares and split_among given"}
		}
		rawShares, err = EqualShares(raw.SplitAmong, amount)
		if err != nil {
			return models.Transaction{}, &Error{Kind: KindInvalidFormat, Row: row, Detail: err.Error()}
		}
	}

	shares := make(map[string]money.Cents, len(people))
	for _, p := range people {
		var share money.Cents
		if s, ok := rawShares[p]; ok {
			share, err = money.Parse(s)
			if err != nil {
				return models.Transaction{}, parseError(row, err)
			}
		}
		shares[p] = share
	}

	var total money.Cents
	for _, p := range people {
		if shares[p] < 0 {
			return models.Transaction{}, &Error{Kind: KindNegativeShare, Row: row}
		}
		if total, err = money.Add(total, shares[p]); err != nil {
			return models.Transaction{}, &Error{Kind: KindOutOfRange, Row: row}
		}
	}
	if total != amount {
		return models.Transaction{}, &Error{Kind: KindShareMismatch, Row: row, TotalShares: total, Amount: amount}
	}

	return models.Transaction{
		Row:         row,
		Day:         strings.TrimSpace(raw.Day),
		Description: strings.TrimSpace(raw.Description),
		Payer:       raw.Payer,
		Amount:      amount,
		Shares:      shares,
	}, nil
}

func parseError(row int, err error) *Error {
	if errors.Is(err, money.ErrOutOfRange) {
		return &Error{Kind: KindOutOfRange, Row: row}
	}
	return &Error{Kind: KindInvalidFormat, Row: row}
}

func zeroBalances(people []string) map[string]money.Cents {
	m := make(map[string]money.Cents, len(people))
	for _, p := range people {
		m[p] = 0
	}
	return m
}
