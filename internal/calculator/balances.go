package calculator

import (
	"cmp"
	"slices"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

// position is a person's outstanding amount during matching. For debtors the
// amount is what they owe, stored positive.
type position struct {
	name   string
	amount money.Cents
}

// Settle computes net balances from paid and consumed and a transfer list that
// clears them.
//
// Algorithm:
//   - net = paid - consumed for each person; the nets must sum to zero
//   - creditors (net > 0) and debtors (net < 0) are sorted by amount, largest
//     first; equal amounts keep the order of people
//   - the largest remaining debtor pays the largest remaining creditor
//     min(owed, due); whichever side reaches zero advances
//
// This greedy matching is deterministic and O(n log n) but does not always find
// the smallest possible number of transfers. People with a zero net get none.
//
// paid and consumed must have exactly one non-negative entry per person, and
// each map must sum within the range of Cents; anything else is an invariant
// violation.
func Settle(people []string, paid, consumed map[string]money.Cents) (*models.Settlement, error) {
	if err := checkBalances(people, paid, consumed); err != nil {
		return nil, err
	}

	sheet := models.BalanceSheet{
		People:   append([]string(nil), people...),
		Paid:     make(map[string]money.Cents, len(people)),
		Consumed: make(map[string]money.Cents, len(people)),
		Net:      make(map[string]money.Cents, len(people)),
	}

	var creditors, debtors []position
	var sum money.Cents
	for _, p := range people {
		net := paid[p] - consumed[p]
		sheet.Paid[p] = paid[p]
		sheet.Consumed[p] = consumed[p]
		sheet.Net[p] = net
		sum += net

		if net > 0 {
			creditors = append(creditors, position{name: p, amount: net})
		} else if net < 0 {
			debtors = append(debtors, position{name: p, amount: -net})
		}
	}
	if sum != 0 {
		return nil, invariant("net balances sum to %s, want 0.00", sum)
	}

	return &models.Settlement{
		Balances:  sheet,
		Transfers: matchGreedy(debtors, creditors),
	}, nil
}

// SettleLedger runs Settle on a validated ledger.
func SettleLedger(l *Ledger) (*models.Settlement, error) {
	return Settle(l.People, l.Paid, l.Consumed)
}

func matchGreedy(debtors, creditors []position) []models.Transfer {
	byAmountDesc := func(a, b position) int { return cmp.Compare(b.amount, a.amount) }
	slices.SortStableFunc(debtors, byAmountDesc)
	slices.SortStableFunc(creditors, byAmountDesc)

	transfers := []models.Transfer{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		d, c := &debtors[i], &creditors[j]

		pay := money.Min(d.amount, c.amount)
		if pay > 0 {
			transfers = append(transfers, models.Transfer{From: d.name, To: c.name, Amount: pay})
		}

		d.amount -= pay
		c.amount -= pay
		if d.amount == 0 {
			i++
		}
		if c.amount == 0 {
			j++
		}
	}
	return transfers
}

func checkBalances(people []string, paid, consumed map[string]money.Cents) error {
	if len(people) == 0 {
		return invariant("no people")
	}
	if len(paid) != len(people) {
		return invariant("paid has %d entries for %d people", len(paid), len(people))
	}
	if len(consumed) != len(people) {
		return invariant("consumed has %d entries for %d people", len(consumed), len(people))
	}

	var paidTotal, consumedTotal money.Cents
	seen := make(map[string]bool, len(people))
	for _, p := range people {
		if seen[p] {
			return invariant("person %q listed twice", p)
		}
		seen[p] = true
		if _, ok := paid[p]; !ok {
			return invariant("paid is missing %q", p)
		}
		if _, ok := consumed[p]; !ok {
			return invariant("consumed is missing %q", p)
		}
		if paid[p] < 0 || consumed[p] < 0 {
			return invariant("negative total for %q", p)
		}

		var err error
		if paidTotal, err = money.Add(paidTotal, paid[p]); err != nil {
			return invariant("paid totals overflow")
		}
		if consumedTotal, err = money.Add(consumedTotal, consumed[p]); err != nil {
			return invariant("consumed totals overflow")
		}
	}
	return nil
}
