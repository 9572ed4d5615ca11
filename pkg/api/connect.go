package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	// SettlementServiceName is the fully-qualified name of the settlement service.
	SettlementServiceName = "settleup.v1.SettlementService"

	SettlementServiceSettleProcedure       = "/settleup.v1.SettlementService/Settle"
	SettlementServiceGetReceiptProcedure   = "/settleup.v1.SettlementService/GetReceipt"
	SettlementServiceListReceiptsProcedure = "/settleup.v1.SettlementService/ListReceipts"

	// ErrorKindHeader carries the calculator error kind on failed Settle calls.
	ErrorKindHeader = "Settle-Error-Kind"
)

// SettlementServiceHandler is implemented by the server.
type SettlementServiceHandler interface {
	Settle(context.Context, *connect.Request[SettleRequest]) (*connect.Response[SettleResponse], error)
	GetReceipt(context.Context, *connect.Request[GetReceiptRequest]) (*connect.Response[GetReceiptResponse], error)
	ListReceipts(context.Context, *connect.Request[ListReceiptsRequest]) (*connect.Response[ListReceiptsResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	settle := connect.NewUnaryHandler(SettlementServiceSettleProcedure, svc.Settle, opts...)
	getReceipt := connect.NewUnaryHandler(SettlementServiceGetReceiptProcedure, svc.GetReceipt, opts...)
	listReceipts := connect.NewUnaryHandler(SettlementServiceListReceiptsProcedure, svc.ListReceipts, opts...)

	return "/" + SettlementServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SettlementServiceSettleProcedure:
			settle.ServeHTTP(w, r)
		case SettlementServiceGetReceiptProcedure:
			getReceipt.ServeHTTP(w, r)
		case SettlementServiceListReceiptsProcedure:
			listReceipts.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// SettlementServiceClient calls the settlement service.
type SettlementServiceClient interface {
	Settle(context.Context, *connect.Request[SettleRequest]) (*connect.Response[SettleResponse], error)
	GetReceipt(context.Context, *connect.Request[GetReceiptRequest]) (*connect.Response[GetReceiptResponse], error)
	ListReceipts(context.Context, *connect.Request[ListReceiptsRequest]) (*connect.Response[ListReceiptsResponse], error)
}

// NewSettlementServiceClient returns a client for the service at baseURL
// (e.g., http://localhost:8080).
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &settlementServiceClient{
		settle:       connect.NewClient[SettleRequest, SettleResponse](httpClient, baseURL+SettlementServiceSettleProcedure, opts...),
		getReceipt:   connect.NewClient[GetReceiptRequest, GetReceiptResponse](httpClient, baseURL+SettlementServiceGetReceiptProcedure, opts...),
		listReceipts: connect.NewClient[ListReceiptsRequest, ListReceiptsResponse](httpClient, baseURL+SettlementServiceListReceiptsProcedure, opts...),
	}
}

type settlementServiceClient struct {
	settle       *connect.Client[SettleRequest, SettleResponse]
	getReceipt   *connect.Client[GetReceiptRequest, GetReceiptResponse]
	listReceipts *connect.Client[ListReceiptsRequest, ListReceiptsResponse]
}

func (c *settlementServiceClient) Settle(ctx context.Context, req *connect.Request[SettleRequest]) (*connect.Response[SettleResponse], error) {
	return c.settle.CallUnary(ctx, req)
}

func (c *settlementServiceClient) GetReceipt(ctx context.Context, req *connect.Request[GetReceiptRequest]) (*connect.Response[GetReceiptResponse], error) {
	return c.getReceipt.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ListReceipts(ctx context.Context, req *connect.Request[ListReceiptsRequest]) (*connect.Response[ListReceiptsResponse], error) {
	return c.listReceipts.CallUnary(ctx, req)
}
