package health

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mealhub/mealhub/internal/app/store/kv"
	"github.com/mealhub/mealhub/internal/app/system/timeouts"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	KV  kv.Store
	Log *zap.Logger
}

// NewHandler constructs a health Handler over the KV backend.
func NewHandler(kvs kv.Store, logger *zap.Logger) *Handler {
	return &Handler{KV: kvs, Log: logger}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "storage":"connected" }
//
// On storage failure: 503 and
//
//	{ "status":"error", "storage":"disconnected", "message":"Storage unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:  "ok",
		Storage: "connected",
	}

	if err := h.KV.Ping(ctx); err != nil {
		h.Log.Error("health-check: storage ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Storage = "disconnected"
		resp.Message = "Storage unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}
