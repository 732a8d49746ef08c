package orderstore_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/mealhub/mealhub/internal/app/store/kv"
	orderstore "github.com/mealhub/mealhub/internal/app/store/orders"
)

func newStore() *orderstore.Store {
	return orderstore.New(kv.NewMemory())
}

func params(activityID, employeeID, employeeName string) orderstore.CreateParams {
	return orderstore.CreateParams{
		ActivityID:   activityID,
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		MealID:       "meal_1",
		MealName:     "飯",
		DrinkID:      "drink_1",
		DrinkName:    "茶",
	}
}

func TestCreate(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	order, err := store.Create(ctx, params("act_1", "emp_1", "小明"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if order.ID == "" {
		t.Error("expected generated order id")
	}
	if order.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if order.EmployeeName != "小明" || order.MealName != "飯" || order.DrinkName != "茶" {
		t.Errorf("unexpected order fields: %+v", order)
	}

	orders, err := store.ListByActivity(ctx, "act_1")
	if err != nil {
		t.Fatalf("ListByActivity failed: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != order.ID {
		t.Errorf("expected the created order to be listed, got %+v", orders)
	}
}

func TestCreate_DuplicateEmployee(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	if _, err := store.Create(ctx, params("act_1", "emp_1", "小明")); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := store.Create(ctx, params("act_1", "emp_1", "小明"))
	if !errors.Is(err, orderstore.ErrDuplicateOrder) {
		t.Errorf("expected ErrDuplicateOrder, got %v", err)
	}

	// The collection still has exactly one entry for the employee.
	orders, err := store.ListByActivity(ctx, "act_1")
	if err != nil {
		t.Fatalf("ListByActivity failed: %v", err)
	}
	count := 0
	for _, o := range orders {
		if o.EmployeeID == "emp_1" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly 1 order for emp_1, got %d", count)
	}
}

func TestCreate_SameEmployeeDifferentActivities(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	if _, err := store.Create(ctx, params("act_1", "emp_1", "小明")); err != nil {
		t.Fatalf("Create in act_1 failed: %v", err)
	}
	// The invariant is scoped per activity.
	if _, err := store.Create(ctx, params("act_2", "emp_1", "小明")); err != nil {
		t.Errorf("Create in act_2 failed: %v", err)
	}
}

func TestListByActivity_Empty(t *testing.T) {
	store := newStore()

	orders, err := store.ListByActivity(context.Background(), "act_none")
	if err != nil {
		t.Fatalf("ListByActivity failed: %v", err)
	}
	if orders == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(orders) != 0 {
		t.Errorf("expected no orders, got %d", len(orders))
	}
}

func TestListByActivity_InsertionOrder(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		emp := fmt.Sprintf("emp_%d", i)
		if _, err := store.Create(ctx, params("act_1", emp, emp)); err != nil {
			t.Fatalf("Create %s failed: %v", emp, err)
		}
	}

	orders, err := store.ListByActivity(ctx, "act_1")
	if err != nil {
		t.Fatalf("ListByActivity failed: %v", err)
	}
	for i, o := range orders {
		if want := fmt.Sprintf("emp_%d", i); o.EmployeeID != want {
			t.Errorf("position %d: got %s, want %s", i, o.EmployeeID, want)
		}
	}
}

func TestUpdate(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	created, err := store.Create(ctx, params("act_1", "emp_1", "小明"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := store.Update(ctx, "act_1", created.ID, orderstore.UpdateParams{
		MealID:    "meal_2",
		MealName:  "麵",
		DrinkID:   "drink_2",
		DrinkName: "奶茶",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	// Meal/drink fields replaced
	if updated.MealID != "meal_2" || updated.MealName != "麵" {
		t.Errorf("meal not updated: %+v", updated)
	}
	if updated.DrinkID != "drink_2" || updated.DrinkName != "奶茶" {
		t.Errorf("drink not updated: %+v", updated)
	}

	// Identity fields preserved
	if updated.ID != created.ID {
		t.Errorf("ID changed: got %s, want %s", updated.ID, created.ID)
	}
	if updated.EmployeeID != created.EmployeeID || updated.EmployeeName != created.EmployeeName {
		t.Errorf("employee fields changed: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed: got %v, want %v", updated.CreatedAt, created.CreatedAt)
	}

	// Listing reflects the change
	orders, err := store.ListByActivity(ctx, "act_1")
	if err != nil {
		t.Fatalf("ListByActivity failed: %v", err)
	}
	if len(orders) != 1 || orders[0].MealName != "麵" {
		t.Errorf("list does not reflect update: %+v", orders)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	if _, err := store.Create(ctx, params("act_1", "emp_1", "小明")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err := store.Update(ctx, "act_1", "order_missing", orderstore.UpdateParams{
		MealID: "meal_2", MealName: "麵", DrinkID: "drink_2", DrinkName: "奶茶",
	})
	if !errors.Is(err, orderstore.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	created, err := store.Create(ctx, params("act_1", "emp_1", "小明"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	removed, err := store.Delete(ctx, "act_1", created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !removed {
		t.Error("expected removal to be reported")
	}

	orders, _ := store.ListByActivity(ctx, "act_1")
	if len(orders) != 0 {
		t.Errorf("expected empty collection, got %d orders", len(orders))
	}
}

func TestDelete_NotFound(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	created, err := store.Create(ctx, params("act_1", "emp_1", "小明"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	removed, err := store.Delete(ctx, "act_1", "order_missing")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if removed {
		t.Error("expected no removal for unknown id")
	}

	// Collection unchanged: same length, same contents.
	orders, _ := store.ListByActivity(ctx, "act_1")
	if len(orders) != 1 || orders[0].ID != created.ID {
		t.Errorf("collection changed after missed delete: %+v", orders)
	}
}

func TestDelete_AbsentDocument(t *testing.T) {
	kvs := kv.NewMemory()
	store := orderstore.New(kvs)
	ctx := context.Background()

	removed, err := store.Delete(ctx, "act_ghost", "order_missing")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if removed {
		t.Error("expected no removal for absent document")
	}

	// The missed delete must not create an order document.
	if _, found, _ := kvs.Get(ctx, "orders:act_ghost"); found {
		t.Error("missed delete created a document")
	}

	orders, err := store.ListByActivity(ctx, "act_ghost")
	if err != nil {
		t.Fatalf("ListByActivity failed: %v", err)
	}
	if orders == nil || len(orders) != 0 {
		t.Errorf("expected empty order list, got %#v", orders)
	}
}

// raceDeleteKV simulates another writer deleting the document between a
// read and its conditional write: the first SetIfVersion removes the key
// and reports a version mismatch, forcing a retry against the now-absent
// document.
type raceDeleteKV struct {
	kv.Store
	tripped bool
}

func (r *raceDeleteKV) SetIfVersion(ctx context.Context, key, value string, version int64) error {
	if !r.tripped {
		r.tripped = true
		if err := r.Store.Delete(ctx, key); err != nil {
			return err
		}
		return kv.ErrVersionMismatch
	}
	return r.Store.SetIfVersion(ctx, key, value, version)
}

func TestDelete_ConcurrentDeleteWins(t *testing.T) {
	mem := kv.NewMemory()
	ctx := context.Background()

	created, err := orderstore.New(mem).Create(ctx, params("act_1", "emp_1", "小明"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	raced := orderstore.New(&raceDeleteKV{Store: mem})
	removed, err := raced.Delete(ctx, "act_1", created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	// The first attempt saw the order but lost the race; the retry found
	// nothing, so no removal is reported.
	if removed {
		t.Error("expected the concurrent delete to win")
	}
	if _, found, _ := mem.Get(ctx, "orders:act_1"); found {
		t.Error("retry recreated the deleted document")
	}
}

func TestDeleteAllForActivity(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	if _, err := store.Create(ctx, params("act_1", "emp_1", "小明")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, params("act_1", "emp_2", "小華")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.DeleteAllForActivity(ctx, "act_1"); err != nil {
		t.Fatalf("DeleteAllForActivity failed: %v", err)
	}

	orders, err := store.ListByActivity(ctx, "act_1")
	if err != nil {
		t.Fatalf("ListByActivity failed: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("expected empty collection, got %d orders", len(orders))
	}
}

func TestCreate_ConcurrentDistinctEmployees(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	// Concurrent creates for different employees on one activity must
	// not lose orders to a read-modify-write race.
	const n = 16
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			emp := fmt.Sprintf("emp_%d", i)
			if _, err := store.Create(ctx, params("act_1", emp, emp)); err != nil {
				t.Errorf("Create %s failed: %v", emp, err)
			}
		}(i)
	}
	wg.Wait()

	orders, err := store.ListByActivity(ctx, "act_1")
	if err != nil {
		t.Fatalf("ListByActivity failed: %v", err)
	}
	if len(orders) != n {
		t.Errorf("lost orders: got %d, want %d", len(orders), n)
	}
}

func TestCreate_ConcurrentSameEmployee(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	// Exactly one of the racing creates for the same employee may win.
	const n = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins, dups := 0, 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create(ctx, params("act_1", "emp_1", "小明"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, orderstore.ErrDuplicateOrder):
				dups++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if wins != 1 || dups != n-1 {
		t.Errorf("got %d wins and %d duplicates, want 1 and %d", wins, dups, n-1)
	}
}

func TestCreate_SanitizesNames(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	p := params("act_1", "emp_1", "  <script>x</script>小明  ")
	p.MealName = "<b>飯</b>"
	order, err := store.Create(ctx, p)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if order.EmployeeName != "小明" {
		t.Errorf("EmployeeName: got %q, want %q", order.EmployeeName, "小明")
	}
	if order.MealName != "飯" {
		t.Errorf("MealName: got %q, want %q", order.MealName, "飯")
	}
}
