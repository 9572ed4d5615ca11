package api

// SettleRequest is the input of Settle.
type SettleRequest struct {
	People       []string      `json:"people"`
	Transactions []Transaction `json:"transactions"`

	// Record asks the server to store a receipt of the result.
	Record bool `json:"record,omitempty"`

	// Title labels the stored receipt. Ignored unless Record is set.
	Title string `json:"title,omitempty"`
}

// Transaction is one ledger row.
type Transaction struct {
	Day         string             `json:"day,omitempty"`
	Description string             `json:"description,omitempty"`
	Payer       string             `json:"payer"`
	Amount      Decimal            `json:"amount"`
	Shares      map[string]Decimal `json:"shares"`

	// SplitAmong splits Amount evenly between these people, extra cents going to
	// the first names. A row must not set both SplitAmong and Shares.
	SplitAmong []string `json:"split_among,omitempty"`
}

// Balances are the per-person totals of a settlement.
type Balances struct {
	Paid     PersonAmounts `json:"paid"`
	Consumed PersonAmounts `json:"consumed"`
	Net      PersonAmounts `json:"net"`
}

// Transfer is a recommended payment.
type Transfer struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount Decimal `json:"amount"`
}

// SettleResponse is the output of Settle.
type SettleResponse struct {
	Balances  Balances   `json:"balances"`
	Transfers []Transfer `json:"transfers"`

	// Settled is true when there is nothing to settle.
	Settled bool `json:"settled"`

	// ReceiptID is set when a receipt was recorded.
	ReceiptID string `json:"receipt_id,omitempty"`
}

// Receipt is a stored settlement result.
type Receipt struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	People           []string   `json:"people"`
	Balances         Balances   `json:"balances"`
	Transfers        []Transfer `json:"transfers"`
	TransactionCount int        `json:"transaction_count"`
	Total            Decimal    `json:"total"`
	CreatedAt        int64      `json:"created_at"`
}

type GetReceiptRequest struct {
	ReceiptID string `json:"receipt_id"`
}

type GetReceiptResponse struct {
	Receipt *Receipt `json:"receipt"`
}

type ListReceiptsRequest struct {
	// Limit caps the number of receipts returned, newest first. Zero means the server default.
	Limit int `json:"limit,omitempty"`
}

type ListReceiptsResponse struct {
	Receipts []*Receipt `json:"receipts"`
}

// ErrorResponse is the body of a failed POST /api/settle.
type ErrorResponse struct {
	Error string `json:"error"`
}
