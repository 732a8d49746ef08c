package testutil

import (
	"context"
	"testing"

	activitystore "github.com/mealhub/mealhub/internal/app/store/activities"
	employeestore "github.com/mealhub/mealhub/internal/app/store/employees"
	"github.com/mealhub/mealhub/internal/app/store/kv"
	orderstore "github.com/mealhub/mealhub/internal/app/store/orders"
	"github.com/mealhub/mealhub/internal/domain/models"
)

// SetupTestKV returns a fresh in-memory KV backend. Each test gets its
// own; nothing is shared or cleaned up.
func SetupTestKV(t *testing.T) kv.Store {
	t.Helper()
	return kv.NewMemory()
}

// Fixtures provides helper methods for creating test data. It carries
// fully wired stores over one in-memory KV backend.
type Fixtures struct {
	t *testing.T

	KV         kv.Store
	Employees  *employeestore.Store
	Activities *activitystore.Store
	Orders     *orderstore.Store
}

// NewFixtures creates a Fixtures instance over a fresh in-memory KV.
func NewFixtures(t *testing.T) *Fixtures {
	t.Helper()
	kvs := kv.NewMemory()
	orders := orderstore.New(kvs)
	return &Fixtures{
		t:          t,
		KV:         kvs,
		Employees:  employeestore.New(kvs),
		Activities: activitystore.New(kvs, orders),
		Orders:     orders,
	}
}

// CreateEmployee creates a test employee with the given name.
func (f *Fixtures) CreateEmployee(ctx context.Context, name string) models.Employee {
	f.t.Helper()
	emp, err := f.Employees.Create(ctx, name)
	if err != nil {
		f.t.Fatalf("failed to create test employee: %v", err)
	}
	return emp
}

// CreateActivity creates a test activity with the given menus.
func (f *Fixtures) CreateActivity(ctx context.Context, name string, meals, drinks []string) models.MealActivity {
	f.t.Helper()
	act, err := f.Activities.Create(ctx, activitystore.CreateParams{
		Name:   name,
		Date:   "2026-09-04",
		Meals:  meals,
		Drinks: drinks,
	})
	if err != nil {
		f.t.Fatalf("failed to create test activity: %v", err)
	}
	return act
}

// CloseActivity flips a test activity to closed.
func (f *Fixtures) CloseActivity(ctx context.Context, id string) models.MealActivity {
	f.t.Helper()
	act, err := f.Activities.UpdateStatus(ctx, id, models.StatusClosed)
	if err != nil {
		f.t.Fatalf("failed to close test activity: %v", err)
	}
	return act
}

// CreateOrder places a test order using the activity's first meal and
// drink options.
func (f *Fixtures) CreateOrder(ctx context.Context, act models.MealActivity, emp models.Employee) models.Order {
	f.t.Helper()
	order, err := f.Orders.Create(ctx, orderstore.CreateParams{
		ActivityID:   act.ID,
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		MealID:       act.Meals[0].ID,
		MealName:     act.Meals[0].Name,
		DrinkID:      act.Drinks[0].ID,
		DrinkName:    act.Drinks[0].Name,
	})
	if err != nil {
		f.t.Fatalf("failed to create test order: %v", err)
	}
	return order
}
