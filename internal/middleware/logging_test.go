package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/pkg/api"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoggingInterceptor(t *testing.T) {
	rejected := connect.NewError(connect.CodeInvalidArgument, errors.New("Row 1: amount must be > 0."))
	rejected.Meta().Set(api.ErrorKindHeader, "invalid_amount")

	tests := []struct {
		name      string
		err       error
		wantMsg   string
		wantLevel string
		wantKind  string
	}{
		{name: "ok", wantMsg: "RPC ok", wantLevel: "INFO"},
		{name: "rejected ledger", err: rejected, wantMsg: "RPC failed", wantLevel: "WARN", wantKind: "invalid_amount"},
		{name: "internal", err: connect.NewError(connect.CodeInternal, errors.New("Server error")), wantMsg: "RPC failed", wantLevel: "ERROR"},
		{name: "plain error", err: errors.New("boom"), wantMsg: "RPC failed", wantLevel: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)

			next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				return nil, tt.err
			}
			ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
			_, err := LoggingInterceptor()(next)(ctx, connect.NewRequest(&api.SettleRequest{}))
			assert.Equal(t, tt.err, err)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantMsg, entry["msg"])
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "req-1", entry["request_id"])
			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, entry["kind"])
			} else {
				assert.NotContains(t, entry, "kind")
			}
		})
	}
}
