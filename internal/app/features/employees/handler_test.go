package employees_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/mealhub/mealhub/internal/app/features/employees"
	"github.com/mealhub/mealhub/internal/app/system/auth"
	"github.com/mealhub/mealhub/internal/testutil"
)

func newHandler(t *testing.T, defaults []string) (*employees.Handler, *testutil.Fixtures) {
	t.Helper()
	f := testutil.NewFixtures(t)
	return employees.NewHandler(f.Employees, defaults, zap.NewNop()), f
}

func decodeData(t *testing.T, rec *testutil.ResponseRecorder, dst any) {
	t.Helper()
	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !env.Success {
		t.Fatalf("expected success envelope, got error %q", env.Error)
	}
	if dst != nil {
		if err := json.Unmarshal(env.Data, dst); err != nil {
			t.Fatalf("failed to parse data: %v", err)
		}
	}
}

func TestList(t *testing.T) {
	h, f := newHandler(t, nil)
	f.CreateEmployee(context.Background(), "小明")

	rec := testutil.NewRecorder()
	h.List(rec, testutil.NewRequest("GET", "/api/employees"))

	rec.AssertStatus(t, http.StatusOK)
	var emps []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	decodeData(t, rec, &emps)
	if len(emps) != 1 || emps[0].Name != "小明" {
		t.Errorf("unexpected roster: %+v", emps)
	}
}

func TestCreate(t *testing.T) {
	h, _ := newHandler(t, nil)

	rec := testutil.NewRecorder()
	h.Create(rec, testutil.NewJSONRequest("POST", "/api/employees", `{"name":"小華"}`))

	rec.AssertStatus(t, http.StatusOK)
	var emp struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	decodeData(t, rec, &emp)
	if emp.ID == "" || emp.Name != "小華" {
		t.Errorf("unexpected employee: %+v", emp)
	}
}

func TestCreate_MissingName(t *testing.T) {
	h, _ := newHandler(t, nil)

	rec := testutil.NewRecorder()
	h.Create(rec, testutil.NewJSONRequest("POST", "/api/employees", `{}`))

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "Name is required")
}

func TestCreate_BadJSON(t *testing.T) {
	h, _ := newHandler(t, nil)

	rec := testutil.NewRecorder()
	h.Create(rec, testutil.NewJSONRequest("POST", "/api/employees", `{not json`))

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestUpdate(t *testing.T) {
	h, f := newHandler(t, nil)
	emp := f.CreateEmployee(context.Background(), "小明")

	rec := testutil.NewRecorder()
	h.Update(rec, testutil.NewJSONRequest("PUT", "/api/employees?id="+emp.ID, `{"name":"小美"}`))

	rec.AssertStatus(t, http.StatusOK)
	var updated struct {
		Name string `json:"name"`
	}
	decodeData(t, rec, &updated)
	if updated.Name != "小美" {
		t.Errorf("got name %q, want %q", updated.Name, "小美")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	h, _ := newHandler(t, nil)

	rec := testutil.NewRecorder()
	h.Update(rec, testutil.NewJSONRequest("PUT", "/api/employees?id=emp_missing", `{"name":"小美"}`))

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestDelete(t *testing.T) {
	h, f := newHandler(t, nil)
	emp := f.CreateEmployee(context.Background(), "小明")

	rec := testutil.NewRecorder()
	h.Delete(rec, testutil.NewRequest("DELETE", "/api/employees?id="+emp.ID))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	h.Delete(rec, testutil.NewRequest("DELETE", "/api/employees?id="+emp.ID))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestDelete_MissingID(t *testing.T) {
	h, _ := newHandler(t, nil)

	rec := testutil.NewRecorder()
	h.Delete(rec, testutil.NewRequest("DELETE", "/api/employees"))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestInit(t *testing.T) {
	h, _ := newHandler(t, []string{"小明", "小華"})

	rec := testutil.NewRecorder()
	h.Init(rec, testutil.NewRequest("POST", "/api/employees/init"))

	rec.AssertStatus(t, http.StatusOK)
	var emps []struct {
		Name string `json:"name"`
	}
	decodeData(t, rec, &emps)
	if len(emps) != 2 {
		t.Errorf("expected 2 seeded employees, got %d", len(emps))
	}
}

func TestRoutes_AdminGate(t *testing.T) {
	h, _ := newHandler(t, nil)
	sm, err := auth.NewSessionManager("", "mealhub_session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	router := employees.Routes(h, sm)

	// Reads are open.
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest("GET", "/"))
	rec.AssertStatus(t, http.StatusOK)

	// Mutations without a session are rejected.
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewJSONRequest("POST", "/", `{"name":"小明"}`))
	rec.AssertStatus(t, http.StatusUnauthorized)

	// With an admin user in context they pass.
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.AsAdmin(testutil.NewJSONRequest("POST", "/", `{"name":"小明"}`)))
	rec.AssertStatus(t, http.StatusOK)
}
