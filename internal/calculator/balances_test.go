package calculator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
)

func TestComputeSingleBill(t *testing.T) {
	ledger, settlement, err := Compute(abc, []RawTransaction{
		{Payer: "A", Amount: "35", Shares: map[string]string{"A": "15", "B": "12", "C": "8"}},
	})
	require.NoError(t, err)
	require.NotNil(t, ledger)

	b := settlement.Balances
	assert.Equal(t, map[string]money.Cents{"A": 3500, "B": 0, "C": 0}, b.Paid)
	assert.Equal(t, map[string]money.Cents{"A": 1500, "B": 1200, "C": 800}, b.Consumed)
	assert.Equal(t, map[string]money.Cents{"A": 2000, "B": -1200, "C": -800}, b.Net)

	assert.Equal(t, []models.Transfer{
		{From: "B", To: "A", Amount: 1200},
		{From: "C", To: "A", Amount: 800},
	}, settlement.Transfers)
	assert.False(t, settlement.Settled())
}

func TestComputeRejectsMismatchWithoutBalances(t *testing.T) {
	ledger, settlement, err := Compute(abc, []RawTransaction{
		{Payer: "A", Amount: "35.00", Shares: map[string]string{"A": "15", "B": "12", "C": "7.99"}},
	})
	assert.ErrorIs(t, err, ErrShareMismatch)
	assert.Nil(t, ledger)
	assert.Nil(t, settlement)
	assert.Contains(t, err.Error(), "Row 1")
}

func TestComputeEmptyPeopleBeforeRows(t *testing.T) {
	_, _, err := Compute(nil, []RawTransaction{{Payer: "?", Amount: "garbage"}})
	assert.ErrorIs(t, err, ErrEmptyPeopleList)
	assert.Contains(t, err.Error(), "provide at least one person")
}

func TestComputeNothingToSettle(t *testing.T) {
	_, settlement, err := Compute(abc, []RawTransaction{
		{Payer: "A", Amount: "30", Shares: map[string]string{"A": "10", "B": "10", "C": "10"}},
		{Payer: "B", Amount: "30", Shares: map[string]string{"A": "20", "B": "10"}},
		{Payer: "C", Amount: "10", Shares: map[string]string{"B": "10"}},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]money.Cents{"A": 0, "B": 0, "C": 0}, settlement.Balances.Net)
	assert.Empty(t, settlement.Transfers)
	assert.NotNil(t, settlement.Transfers)
	assert.True(t, settlement.Settled())
}

func TestSettleGreedyOrder(t *testing.T) {
	people := []string{"A", "B", "C", "D", "E"}
	paid := map[string]money.Cents{"A": 10000, "B": 0, "C": 6000, "D": 0, "E": 0}
	consumed := map[string]money.Cents{"A": 2000, "B": 5000, "C": 2000, "D": 3000, "E": 4000}

	s, err := Settle(people, paid, consumed)
	require.NoError(t, err)

	// net: A +80, B -50, C +40, D -30, E -40
	// debtors desc: B 50, E 40, D 30; creditors desc: A 80, C 40
	assert.Equal(t, []models.Transfer{
		{From: "B", To: "A", Amount: 5000},
		{From: "E", To: "A", Amount: 3000},
		{From: "E", To: "C", Amount: 1000},
		{From: "D", To: "C", Amount: 3000},
	}, s.Transfers)
}

func TestSettleTiesKeepPeopleOrder(t *testing.T) {
	people := []string{"Zoe", "Yan", "Xia", "Wes"}
	paid := map[string]money.Cents{"Zoe": 0, "Yan": 1000, "Xia": 0, "Wes": 1000}
	consumed := map[string]money.Cents{"Zoe": 1000, "Yan": 0, "Xia": 1000, "Wes": 0}

	s, err := Settle(people, paid, consumed)
	require.NoError(t, err)
	assert.Equal(t, []models.Transfer{
		{From: "Zoe", To: "Yan", Amount: 1000},
		{From: "Xia", To: "Wes", Amount: 1000},
	}, s.Transfers)
}

func TestSettleInvariantViolations(t *testing.T) {
	tests := []struct {
		name     string
		people   []string
		paid     map[string]money.Cents
		consumed map[string]money.Cents
	}{
		{
			name:     "no people",
			paid:     map[string]money.Cents{},
			consumed: map[string]money.Cents{},
		},
		{
			name:     "missing paid entry",
			people:   []string{"A", "B"},
			paid:     map[string]money.Cents{"A": 100},
			consumed: map[string]money.Cents{"A": 50, "B": 50},
		},
		{
			name:     "extra consumed entry",
			people:   []string{"A"},
			paid:     map[string]money.Cents{"A": 100},
			consumed: map[string]money.Cents{"A": 50, "B": 50},
		},
		{
			name:     "wrong key",
			people:   []string{"A", "B"},
			paid:     map[string]money.Cents{"A": 100, "C": 0},
			consumed: map[string]money.Cents{"A": 50, "B": 50},
		},
		{
			name:     "totals do not balance",
			people:   []string{"A", "B"},
			paid:     map[string]money.Cents{"A": 100, "B": 0},
			consumed: map[string]money.Cents{"A": 50, "B": 49},
		},
		{
			name:     "negative total",
			people:   []string{"A", "B"},
			paid:     map[string]money.Cents{"A": -100, "B": 0},
			consumed: map[string]money.Cents{"A": -100, "B": 0},
		},
		{
			name:     "paid totals overflow",
			people:   []string{"A", "B"},
			paid:     map[string]money.Cents{"A": math.MaxInt64, "B": 1},
			consumed: map[string]money.Cents{"A": 0, "B": 0},
		},
		{
			name:     "duplicate person",
			people:   []string{"A", "A"},
			paid:     map[string]money.Cents{"A": 0, "B": 0},
			consumed: map[string]money.Cents{"A": 0, "B": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Settle(tt.people, tt.paid, tt.consumed)
			assert.Nil(t, s)
			require.ErrorIs(t, err, ErrInvariantViolation)

			var calcErr *Error
			require.True(t, errors.As(err, &calcErr))
			assert.False(t, calcErr.IsValidation())
		})
	}
}

// randomLedger builds a valid ledger with n people and m rows.
func randomLedger(r *rand.Rand, n, m int) ([]string, []RawTransaction) {
	people := make([]string, n)
	for i := range people {
		people[i] = fmt.Sprintf("p%d", i)
	}

	txs := make([]RawTransaction, m)
	for i := range txs {
		shares := make(map[string]string)
		var total money.Cents
		for _, p := range people {
			if r.Intn(3) == 0 {
				continue
			}
			c := money.Cents(r.Intn(5000))
			total += c
			shares[p] = c.String()
		}
		if total == 0 {
			total = 1
			shares[people[0]] = total.String()
		}
		txs[i] = RawTransaction{
			Payer:  people[r.Intn(n)],
			Amount: total.String(),
			Shares: shares,
		}
	}
	return people, txs
}

func TestSettleProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for iter := 0; iter < 200; iter++ {
		people, txs := randomLedger(r, 2+r.Intn(8), 1+r.Intn(10))

		_, s, err := Compute(people, txs)
		require.NoError(t, err)

		// Balance conservation.
		var sum money.Cents
		for _, p := range people {
			sum += s.Balances.Net[p]
		}
		require.Zero(t, sum)

		// Applying every transfer zeroes every balance.
		adjusted := make(map[string]money.Cents, len(people))
		for p, net := range s.Balances.Net {
			adjusted[p] = net
		}
		for _, tr := range s.Transfers {
			require.NotEqual(t, tr.From, tr.To, "self transfer")
			require.Positive(t, int64(tr.Amount), "zero transfer")
			adjusted[tr.From] += tr.Amount
			adjusted[tr.To] -= tr.Amount
		}
		for p, v := range adjusted {
			require.Zerof(t, v, "person %s left with %s", p, v)
		}

		// Determinism.
		_, again, err := Compute(people, txs)
		require.NoError(t, err)
		require.Equal(t, s.Transfers, again.Transfers)

		// At most one transfer per non-zero balance minus one.
		nonZero := 0
		for _, v := range s.Balances.Net {
			if v != 0 {
				nonZero++
			}
		}
		if nonZero > 0 {
			require.LessOrEqual(t, len(s.Transfers), nonZero-1)
		}
	}
}

func TestComputeMismatchAlwaysRejected(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	people, txs := randomLedger(r, 4, 6)

	for _, delta := range []money.Cents{1, -1} {
		bad := append([]RawTransaction(nil), txs...)
		amount, err := money.Parse(bad[3].Amount)
		require.NoError(t, err)
		bad[3].Amount = (amount + delta).String()

		_, _, err = Compute(people, bad)
		var calcErr *Error
		require.True(t, errors.As(err, &calcErr), "delta %d", delta)
		if amount+delta <= 0 {
			assert.Equal(t, KindInvalidAmount, calcErr.Kind)
		} else {
			assert.Equal(t, KindShareMismatch, calcErr.Kind)
		}
		assert.Equal(t, 4, calcErr.Row)
	}
}

func TestSettleDoesNotShareStateAcrossCalls(t *testing.T) {
	people := []string{"A", "B"}
	paid := map[string]money.Cents{"A": 100, "B": 0}
	consumed := map[string]money.Cents{"A": 50, "B": 50}

	s, err := Settle(people, paid, consumed)
	require.NoError(t, err)
	s.Balances.Net["A"] = 0
	people[0] = "mutated"

	again, err := Settle([]string{"A", "B"}, paid, consumed)
	require.NoError(t, err)
	assert.Equal(t, money.Cents(50), again.Balances.Net["A"])
	assert.Equal(t, "A", s.Balances.People[0])
}
