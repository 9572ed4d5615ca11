package service

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/pkg/api"
)

// SettleHTTP serves POST /api/settle with a plain JSON body. Failures are
// returned as {"error": "..."} with status 400 for rejected ledgers and 500
// for anything unexpected.
func (s *SettlementService) SettleHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req api.SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, api.ErrorResponse{Error: "Request body too large."})
			return
		}
		slog.InfoContext(r.Context(), "Invalid settle body", "error", err)
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body."})
		return
	}

	resp, err := s.settle(r.Context(), &req)
	if err != nil {
		var calcErr *calculator.Error
		switch {
		case errors.As(err, &calcErr) && calcErr.IsValidation():
			w.Header().Set(api.ErrorKindHeader, string(calcErr.Kind))
			writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, errReceiptsDisabled):
			writeJSON(w, http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, api.ErrorResponse{Error: errServer.Error()})
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}
