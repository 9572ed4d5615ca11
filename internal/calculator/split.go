package calculator

import (
	"fmt"

	"github.com/mmynk/settleup/internal/money"
)

// EqualShares splits amount evenly among participants and returns share text
// ready for a RawTransaction. Leftover cents go to the first participants, so
// the shares always sum to the amount exactly.
func EqualShares(participants []string, amount money.Cents) (map[string]string, error) {
	if len(participants) == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be > 0")
	}

	parts, err := money.SplitEvenly(amount, len(participants))
	if err != nil {
		return nil, err
	}

	shares := make(map[string]string, len(participants))
	for i, p := range participants {
		if _, dup := shares[p]; dup {
			return nil, fmt.Errorf("participant %q listed twice", p)
		}
		shares[p] = parts[i].String()
	}
	return shares, nil
}
