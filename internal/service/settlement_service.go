package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/events"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
)

const maxListLimit = 200

var (
	errReceiptsDisabled = errors.New("receipts are not enabled on this server")
	errServer           = errors.New("Server error")
)

// Ensure SettlementService implements the Connect handler interface
var _ api.SettlementServiceHandler = (*SettlementService)(nil)

// SettlementService implements the Connect SettlementService and the plain
// JSON /api/settle endpoint.
type SettlementService struct {
	store     storage.Store
	publisher events.Publisher
	metrics   *metrics.Metrics
}

// NewSettlementService creates a SettlementService. store and m may be nil,
// which disables receipts and metrics; a nil publisher drops events.
func NewSettlementService(store storage.Store, publisher events.Publisher, m *metrics.Metrics) *SettlementService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &SettlementService{store: store, publisher: publisher, metrics: m}
}

// Settle validates the ledger and computes balances and transfers.
func (s *SettlementService) Settle(ctx context.Context, req *connect.Request[api.SettleRequest]) (*connect.Response[api.SettleResponse], error) {
	resp, err := s.settle(ctx, req.Msg)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(resp), nil
}

// GetReceipt retrieves a stored receipt by ID.
func (s *SettlementService) GetReceipt(ctx context.Context, req *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error) {
	if s.store == nil {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errReceiptsDisabled)
	}
	if req.Msg.ReceiptID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("receipt_id is required"))
	}

	receipt, err := s.store.GetReceipt(ctx, req.Msg.ReceiptID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, connect.NewError(connect.CodeNotFound, err)
		}
		slog.ErrorContext(ctx, "GetReceipt failed", "receipt_id", req.Msg.ReceiptID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, errServer)
	}

	return connect.NewResponse(&api.GetReceiptResponse{Receipt: toReceipt(receipt)}), nil
}

// ListReceipts returns the most recent receipts.
func (s *SettlementService) ListReceipts(ctx context.Context, req *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error) {
	if s.store == nil {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errReceiptsDisabled)
	}
	limit := req.Msg.Limit
	if limit < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("limit must not be negative"))
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	receipts, err := s.store.ListReceipts(ctx, limit)
	if err != nil {
		slog.ErrorContext(ctx, "ListReceipts failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, errServer)
	}

	out := make([]*api.Receipt, len(receipts))
	for i, r := range receipts {
		out[i] = toReceipt(r)
	}
	slog.DebugContext(ctx, "ListReceipts successful", "count", len(out))
	return connect.NewResponse(&api.ListReceiptsResponse{Receipts: out}), nil
}

// settle runs one computation. Errors are *calculator.Error for rejected
// ledgers, errReceiptsDisabled, or internal failures.
func (s *SettlementService) settle(ctx context.Context, msg *api.SettleRequest) (*api.SettleResponse, error) {
	start := time.Now()

	for i, tx := range msg.Transactions {
		slog.DebugContext(ctx, "Processing transaction",
			"row", i+1,
			"payer", tx.Payer,
			"amount", tx.Amount,
			"shares_count", len(tx.Shares),
			"split_among", len(tx.SplitAmong),
		)
	}

	ledger, settlement, err := calculator.Compute(msg.People, toRawTransactions(msg.Transactions))
	if err != nil {
		var calcErr *calculator.Error
		if errors.As(err, &calcErr) && calcErr.IsValidation() {
			s.metrics.ObserveRejected(string(calcErr.Kind), time.Since(start))
			slog.InfoContext(ctx, "Ledger rejected", "kind", calcErr.Kind, "row", calcErr.Row, "error", err)
			return nil, err
		}
		s.metrics.ObserveError(time.Since(start))
		slog.ErrorContext(ctx, "Settlement failed", "error", err)
		return nil, err
	}

	resp := toSettleResponse(settlement)
	receipt := newReceipt(msg.Title, ledger, settlement)

	if msg.Record {
		if s.store == nil {
			s.metrics.ObserveError(time.Since(start))
			return nil, errReceiptsDisabled
		}
		if err := s.store.CreateReceipt(ctx, receipt); err != nil {
			s.metrics.ObserveError(time.Since(start))
			slog.ErrorContext(ctx, "CreateReceipt failed", "error", err)
			return nil, fmt.Errorf("store receipt: %w", err)
		}
		resp.ReceiptID = receipt.ID
		slog.InfoContext(ctx, "Receipt recorded", "receipt_id", receipt.ID, "title", receipt.Title)
	}

	if err := s.publisher.PublishSettlement(ctx, receipt); err != nil {
		slog.WarnContext(ctx, "Failed to publish settlement event", "error", err)
	}

	s.metrics.ObserveSettled(len(settlement.Transfers), time.Since(start))
	slog.InfoContext(ctx, "Settlement computed",
		"people", len(msg.People),
		"transactions", len(ledger.Transactions),
		"total", ledger.Total.String(),
		"transfers", len(settlement.Transfers),
		"settled", settlement.Settled(),
	)
	return resp, nil
}

// toConnectError maps settle errors to Connect codes. Rejected ledgers keep
// their message verbatim; internal failures are reported generically.
func toConnectError(err error) error {
	var calcErr *calculator.Error
	switch {
	case errors.As(err, &calcErr) && calcErr.IsValidation():
		connectErr := connect.NewError(connect.CodeInvalidArgument, err)
		connectErr.Meta().Set(api.ErrorKindHeader, string(calcErr.Kind))
		return connectErr
	case errors.Is(err, errReceiptsDisabled):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, errServer)
	}
}
