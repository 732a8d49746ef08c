// internal/app/features/activities/handler.go

// Package activities serves the /api/activities endpoints. Reading is
// open to everyone (the order form shows the menus); create, update,
// status toggle, and delete are admin-only.
package activities

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	activitystore "github.com/mealhub/mealhub/internal/app/store/activities"
	"github.com/mealhub/mealhub/internal/app/store/kv"
	"github.com/mealhub/mealhub/internal/app/system/apiutil"
	"github.com/mealhub/mealhub/internal/app/system/inputval"
	"github.com/mealhub/mealhub/internal/app/system/timeouts"
)

// Handler holds dependencies for the activity endpoints.
type Handler struct {
	Activities *activitystore.Store
	Log        *zap.Logger
}

// NewHandler constructs an activities Handler.
func NewHandler(store *activitystore.Store, logger *zap.Logger) *Handler {
	return &Handler{Activities: store, Log: logger}
}

// List handles GET /api/activities. With ?id= it returns the single
// matching activity; without, the whole collection.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if id := r.URL.Query().Get("id"); id != "" {
		act, err := h.Activities.GetByID(ctx, id)
		switch {
		case errors.Is(err, activitystore.ErrActivityNotFound):
			apiutil.Fail(w, http.StatusNotFound, "Activity not found.")
		case err != nil:
			h.storageError(w, "get activity", err)
		default:
			apiutil.OK(w, act)
		}
		return
	}

	acts, err := h.Activities.List(ctx)
	if err != nil {
		h.storageError(w, "list activities", err)
		return
	}
	apiutil.OK(w, acts)
}

// Create handles POST /api/activities (admin).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if err := apiutil.Decode(r, &in); err != nil {
		apiutil.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		apiutil.Fail(w, http.StatusBadRequest, res.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	act, err := h.Activities.Create(ctx, activitystore.CreateParams{
		Name:   in.Name,
		Date:   in.Date,
		Meals:  in.Meals,
		Drinks: in.Drinks,
	})
	switch {
	case errors.Is(err, activitystore.ErrInvalidInput):
		apiutil.Fail(w, http.StatusBadRequest, err.Error())
	case err != nil:
		h.storageError(w, "create activity", err)
	default:
		apiutil.OK(w, act)
	}
}

// Update handles PUT /api/activities?id= (admin): full replacement of
// name, date, and menus. Existing orders keep their name snapshots.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		apiutil.Fail(w, http.StatusBadRequest, "id is required.")
		return
	}

	var in createInput
	if err := apiutil.Decode(r, &in); err != nil {
		apiutil.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		apiutil.Fail(w, http.StatusBadRequest, res.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	act, err := h.Activities.Update(ctx, id, activitystore.CreateParams{
		Name:   in.Name,
		Date:   in.Date,
		Meals:  in.Meals,
		Drinks: in.Drinks,
	})
	switch {
	case errors.Is(err, activitystore.ErrActivityNotFound):
		apiutil.Fail(w, http.StatusNotFound, "Activity not found.")
	case errors.Is(err, activitystore.ErrInvalidInput):
		apiutil.Fail(w, http.StatusBadRequest, err.Error())
	case err != nil:
		h.storageError(w, "update activity", err)
	default:
		apiutil.OK(w, act)
	}
}

// UpdateStatus handles PATCH /api/activities?id= (admin): toggles the
// activity between active and closed.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		apiutil.Fail(w, http.StatusBadRequest, "id is required.")
		return
	}

	var in statusInput
	if err := apiutil.Decode(r, &in); err != nil {
		apiutil.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		apiutil.Fail(w, http.StatusBadRequest, res.First())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	act, err := h.Activities.UpdateStatus(ctx, id, in.Status)
	switch {
	case errors.Is(err, activitystore.ErrActivityNotFound):
		apiutil.Fail(w, http.StatusNotFound, "Activity not found.")
	case errors.Is(err, activitystore.ErrInvalidInput):
		apiutil.Fail(w, http.StatusBadRequest, err.Error())
	case err != nil:
		h.storageError(w, "update activity status", err)
	default:
		apiutil.OK(w, act)
	}
}

// Delete handles DELETE /api/activities?id= (admin). Deleting an
// activity also drops its entire order collection.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		apiutil.Fail(w, http.StatusBadRequest, "id is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	removed, err := h.Activities.Delete(ctx, id)
	if err != nil {
		h.storageError(w, "delete activity", err)
		return
	}
	if !removed {
		apiutil.Fail(w, http.StatusNotFound, "Activity not found.")
		return
	}
	apiutil.Message(w, "Activity deleted.")
}

func (h *Handler) storageError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, kv.ErrUnavailable) {
		h.Log.Error(op+": storage unavailable", zap.Error(err))
		apiutil.Fail(w, http.StatusServiceUnavailable, "Storage unavailable.")
		return
	}
	h.Log.Error(op+" failed", zap.Error(err))
	apiutil.Fail(w, http.StatusInternalServerError, "Internal server error.")
}
