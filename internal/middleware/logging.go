package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

// LoggingInterceptor logs one line per unary RPC with the procedure, request
// ID and duration. Failed calls add the Connect code and, for rejected
// ledgers, the error kind.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"request_id", GetRequestID(ctx),
				"peer", req.Peer().Addr,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if err == nil {
				slog.InfoContext(ctx, "RPC ok", attrs...)
				return resp, nil
			}

			code := connect.CodeOf(err)
			attrs = append(attrs, "code", code.String())
			var connectErr *connect.Error
			if errors.As(err, &connectErr) {
				attrs = append(attrs, "error", connectErr.Message())
				if kind := connectErr.Meta().Get(api.ErrorKindHeader); kind != "" {
					attrs = append(attrs, "kind", kind)
				}
			} else {
				attrs = append(attrs, "error", err.Error())
			}
			slog.Log(ctx, levelFor(code), "RPC failed", attrs...)
			return resp, err
		}
	}
}

// levelFor logs caller mistakes at warn and server faults at error.
func levelFor(code connect.Code) slog.Level {
	switch code {
	case connect.CodeInvalidArgument, connect.CodeNotFound, connect.CodeFailedPrecondition, connect.CodeCanceled:
		return slog.LevelWarn
	}
	return slog.LevelError
}
