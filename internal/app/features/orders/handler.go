// internal/app/features/orders/handler.go

// Package orders serves the /api/orders endpoints. Ordering is open to
// every employee; no session is involved, people identify themselves by
// roster selection.
//
// The store persists whatever denormalized names it is handed, so this
// handler is where option ids are resolved against the activity's
// current menus and where closed activities reject new orders.
package orders

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	activitystore "github.com/mealhub/mealhub/internal/app/store/activities"
	employeestore "github.com/mealhub/mealhub/internal/app/store/employees"
	"github.com/mealhub/mealhub/internal/app/store/kv"
	orderstore "github.com/mealhub/mealhub/internal/app/store/orders"
	"github.com/mealhub/mealhub/internal/app/system/apiutil"
	"github.com/mealhub/mealhub/internal/app/system/inputval"
	"github.com/mealhub/mealhub/internal/app/system/timeouts"
	"github.com/mealhub/mealhub/internal/domain/models"
)

// Handler holds dependencies for the order endpoints.
type Handler struct {
	Orders     *orderstore.Store
	Activities *activitystore.Store
	Employees  *employeestore.Store
	Log        *zap.Logger
}

// NewHandler constructs an orders Handler.
func NewHandler(orders *orderstore.Store, activities *activitystore.Store, employees *employeestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Orders: orders, Activities: activities, Employees: employees, Log: logger}
}

// List handles GET /api/orders?activityId=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	activityID := r.URL.Query().Get("activityId")
	if activityID == "" {
		apiutil.Fail(w, http.StatusBadRequest, "activityId is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Orders.ListByActivity(ctx, activityID)
	if err != nil {
		h.storageError(w, "list orders", err)
		return
	}
	apiutil.OK(w, list)
}

// Create handles POST /api/orders: places an order for an employee in
// an active activity. 404 for unknown activity or employee, 400 for a
// closed activity or an option id not on the menus, 409 when the
// employee already ordered.
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

	act, err := h.Activities.GetByID(ctx, in.ActivityID)
	switch {
	case errors.Is(err, activitystore.ErrActivityNotFound):
		apiutil.Fail(w, http.StatusNotFound, "Activity not found.")
		return
	case err != nil:
		h.storageError(w, "get activity", err)
		return
	}
	if act.IsClosed() {
		apiutil.Fail(w, http.StatusBadRequest, "This activity is closed for ordering.")
		return
	}

	emp, err := h.Employees.GetByID(ctx, in.EmployeeID)
	switch {
	case errors.Is(err, employeestore.ErrEmployeeNotFound):
		apiutil.Fail(w, http.StatusNotFound, "Employee not found.")
		return
	case err != nil:
		h.storageError(w, "get employee", err)
		return
	}

	meal, ok := findOption(act.Meals, in.MealID)
	if !ok {
		apiutil.Fail(w, http.StatusBadRequest, "Meal is not on this activity's menu.")
		return
	}
	drink, ok := findOption(act.Drinks, in.DrinkID)
	if !ok {
		apiutil.Fail(w, http.StatusBadRequest, "Drink is not on this activity's menu.")
		return
	}

	order, err := h.Orders.Create(ctx, orderstore.CreateParams{
		ActivityID:   act.ID,
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		MealID:       meal.ID,
		MealName:     meal.Name,
		DrinkID:      drink.ID,
		DrinkName:    drink.Name,
	})
	switch {
	case errors.Is(err, orderstore.ErrDuplicateOrder):
		apiutil.Fail(w, http.StatusConflict, "You already ordered for this activity.")
	case err != nil:
		h.storageError(w, "create order", err)
	default:
		apiutil.OK(w, order)
	}
}

// Update handles PUT /api/orders?activityId=&orderId=: swaps an
// existing order's meal and drink. Allowed even after the activity
// closes; closure only blocks new orders.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	activityID := r.URL.Query().Get("activityId")
	orderID := r.URL.Query().Get("orderId")
	if activityID == "" || orderID == "" {
		apiutil.Fail(w, http.StatusBadRequest, "activityId and orderId are required.")
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

	act, err := h.Activities.GetByID(ctx, activityID)
	switch {
	case errors.Is(err, activitystore.ErrActivityNotFound):
		apiutil.Fail(w, http.StatusNotFound, "Activity not found.")
		return
	case err != nil:
		h.storageError(w, "get activity", err)
		return
	}

	meal, ok := findOption(act.Meals, in.MealID)
	if !ok {
		apiutil.Fail(w, http.StatusBadRequest, "Meal is not on this activity's menu.")
		return
	}
	drink, ok := findOption(act.Drinks, in.DrinkID)
	if !ok {
		apiutil.Fail(w, http.StatusBadRequest, "Drink is not on this activity's menu.")
		return
	}

	order, err := h.Orders.Update(ctx, activityID, orderID, orderstore.UpdateParams{
		MealID:    meal.ID,
		MealName:  meal.Name,
		DrinkID:   drink.ID,
		DrinkName: drink.Name,
	})
	switch {
	case errors.Is(err, orderstore.ErrOrderNotFound):
		apiutil.Fail(w, http.StatusNotFound, "Order not found.")
	case err != nil:
		h.storageError(w, "update order", err)
	default:
		apiutil.OK(w, order)
	}
}

// Delete handles DELETE /api/orders?activityId=&orderId=.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	activityID := r.URL.Query().Get("activityId")
	orderID := r.URL.Query().Get("orderId")
	if activityID == "" || orderID == "" {
		apiutil.Fail(w, http.StatusBadRequest, "activityId and orderId are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	removed, err := h.Orders.Delete(ctx, activityID, orderID)
	if err != nil {
		h.storageError(w, "delete order", err)
		return
	}
	if !removed {
		apiutil.Fail(w, http.StatusNotFound, "Order not found.")
		return
	}
	apiutil.Message(w, "Order deleted.")
}

func findOption(opts []models.MenuOption, id string) (models.MenuOption, bool) {
	for _, opt := range opts {
		if opt.ID == id {
			return opt, true
		}
	}
	return models.MenuOption{}, false
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
