// internal/app/features/employees/handler.go

// Package employees serves the /api/employees endpoints: the roster is
// readable by everyone (the order form needs it to let people pick
// themselves), mutations are admin-only.
package employees

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	employeestore "github.com/mealhub/mealhub/internal/app/store/employees"
	"github.com/mealhub/mealhub/internal/app/store/kv"
	"github.com/mealhub/mealhub/internal/app/system/apiutil"
	"github.com/mealhub/mealhub/internal/app/system/inputval"
	"github.com/mealhub/mealhub/internal/app/system/timeouts"
)

// Handler holds dependencies for the employee endpoints.
type Handler struct {
	Employees *employeestore.Store
	Defaults  []string // roster seeded by POST /init when empty
	Log       *zap.Logger
}

// NewHandler constructs an employees Handler.
func NewHandler(store *employeestore.Store, defaults []string, logger *zap.Logger) *Handler {
	return &Handler{Employees: store, Defaults: defaults, Log: logger}
}

// List handles GET /api/employees.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	emps, err := h.Employees.List(ctx)
	if err != nil {
		h.storageError(w, "list employees", err)
		return
	}
	apiutil.OK(w, emps)
}

// Create handles POST /api/employees (admin).
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

	emp, err := h.Employees.Create(ctx, in.Name)
	switch {
	case errors.Is(err, employeestore.ErrEmptyName):
		apiutil.Fail(w, http.StatusBadRequest, "Name is required.")
	case err != nil:
		h.storageError(w, "create employee", err)
	default:
		apiutil.OK(w, emp)
	}
}

// Update handles PUT /api/employees?id= (admin).
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		apiutil.Fail(w, http.StatusBadRequest, "id is required.")
		return
	}

	var in updateInput
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

	emp, err := h.Employees.Update(ctx, id, in.Name)
	switch {
	case errors.Is(err, employeestore.ErrEmployeeNotFound):
		apiutil.Fail(w, http.StatusNotFound, "Employee not found.")
	case errors.Is(err, employeestore.ErrEmptyName):
		apiutil.Fail(w, http.StatusBadRequest, "Name is required.")
	case err != nil:
		h.storageError(w, "update employee", err)
	default:
		apiutil.OK(w, emp)
	}
}

// Delete handles DELETE /api/employees?id= (admin).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		apiutil.Fail(w, http.StatusBadRequest, "id is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	removed, err := h.Employees.Delete(ctx, id)
	if err != nil {
		h.storageError(w, "delete employee", err)
		return
	}
	if !removed {
		apiutil.Fail(w, http.StatusNotFound, "Employee not found.")
		return
	}
	apiutil.Message(w, "Employee deleted.")
}

// Init handles POST /api/employees/init (admin): seeds the configured
// default roster when no employees exist yet, then returns the roster.
func (h *Handler) Init(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Employees.EnsureDefaults(ctx, h.Defaults); err != nil {
		h.storageError(w, "seed employees", err)
		return
	}
	emps, err := h.Employees.List(ctx)
	if err != nil {
		h.storageError(w, "list employees", err)
		return
	}
	apiutil.OK(w, emps)
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
