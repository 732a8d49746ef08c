// internal/app/features/report/handler.go

// Package report serves GET /api/report?activityId=: the admin-only
// per-activity aggregation of orders by meal and drink.
package report

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	activitystore "github.com/mealhub/mealhub/internal/app/store/activities"
	"github.com/mealhub/mealhub/internal/app/store/kv"
	"github.com/mealhub/mealhub/internal/app/store/queries/orderreport"
	"github.com/mealhub/mealhub/internal/app/system/apiutil"
	"github.com/mealhub/mealhub/internal/app/system/timeouts"
)

// Handler holds dependencies for the report endpoint.
type Handler struct {
	Reports *orderreport.Generator
	Log     *zap.Logger
}

// NewHandler constructs a report Handler.
func NewHandler(gen *orderreport.Generator, logger *zap.Logger) *Handler {
	return &Handler{Reports: gen, Log: logger}
}

// Serve handles GET /api/report?activityId=.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	activityID := r.URL.Query().Get("activityId")
	if activityID == "" {
		apiutil.Fail(w, http.StatusBadRequest, "activityId is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rep, err := h.Reports.Generate(ctx, activityID)
	switch {
	case errors.Is(err, activitystore.ErrActivityNotFound):
		apiutil.Fail(w, http.StatusNotFound, "Activity not found.")
	case errors.Is(err, kv.ErrUnavailable):
		h.Log.Error("generate report: storage unavailable", zap.Error(err))
		apiutil.Fail(w, http.StatusServiceUnavailable, "Storage unavailable.")
	case err != nil:
		h.Log.Error("generate report failed", zap.Error(err))
		apiutil.Fail(w, http.StatusInternalServerError, "Internal server error.")
	default:
		apiutil.OK(w, rep)
	}
}
