package service

import (
	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
	"github.com/mmynk/settleup/pkg/api"
)

func toRawTransactions(txs []api.Transaction) []calculator.RawTransaction {
	raw := make([]calculator.RawTransaction, len(txs))
	for i, tx := range txs {
		var shares map[string]string
		if tx.Shares != nil {
			shares = make(map[string]string, len(tx.Shares))
			for person, share := range tx.Shares {
				shares[person] = string(share)
			}
		}
		raw[i] = calculator.RawTransaction{
			Day:         tx.Day,
			Description: tx.Description,
			Payer:       tx.Payer,
			Amount:      string(tx.Amount),
			Shares:      shares,
			SplitAmong:  tx.SplitAmong,
		}
	}
	return raw
}

func toPersonAmounts(people []string, values map[string]money.Cents) api.PersonAmounts {
	out := make(api.PersonAmounts, len(people))
	for i, p := range people {
		out[i] = api.PersonAmount{Person: p, Amount: api.Decimal(values[p].String())}
	}
	return out
}

func toBalances(b models.BalanceSheet) api.Balances {
	return api.Balances{
		Paid:     toPersonAmounts(b.People, b.Paid),
		Consumed: toPersonAmounts(b.People, b.Consumed),
		Net:      toPersonAmounts(b.People, b.Net),
	}
}

func toTransfers(transfers []models.Transfer) []api.Transfer {
	out := make([]api.Transfer, len(transfers))
	for i, t := range transfers {
		out[i] = api.Transfer{From: t.From, To: t.To, Amount: api.Decimal(t.Amount.String())}
	}
	return out
}

func toSettleResponse(s *models.Settlement) *api.SettleResponse {
	return &api.SettleResponse{
		Balances:  toBalances(s.Balances),
		Transfers: toTransfers(s.Transfers),
		Settled:   s.Settled(),
	}
}

func toReceipt(r *models.Receipt) *api.Receipt {
	return &api.Receipt{
		ID:               r.ID,
		Title:            r.Title,
		People:           r.Balances.People,
		Balances:         toBalances(r.Balances),
		Transfers:        toTransfers(r.Transfers),
		TransactionCount: r.TransactionCount,
		Total:            api.Decimal(r.Total.String()),
		CreatedAt:        r.CreatedAt,
	}
}

func newReceipt(title string, ledger *calculator.Ledger, s *models.Settlement) *models.Receipt {
	return &models.Receipt{
		Title:            title,
		Balances:         s.Balances,
		Transfers:        s.Transfers,
		TransactionCount: len(ledger.Transactions),
		Total:            ledger.Total,
	}
}

// Compute settles a request without recording or publishing it. Errors are
// *calculator.Error values.
func Compute(req *api.SettleRequest) (*api.SettleResponse, error) {
	_, settlement, err := calculator.Compute(req.People, toRawTransactions(req.Transactions))
	if err != nil {
		return nil, err
	}
	return toSettleResponse(settlement), nil
}
