package report_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/mealhub/mealhub/internal/app/features/report"
	"github.com/mealhub/mealhub/internal/app/store/queries/orderreport"
	"github.com/mealhub/mealhub/internal/app/system/auth"
	"github.com/mealhub/mealhub/internal/testutil"
)

func newHandler(t *testing.T) (*report.Handler, *testutil.Fixtures) {
	t.Helper()
	f := testutil.NewFixtures(t)
	gen := orderreport.New(f.Activities, f.Orders)
	return report.NewHandler(gen, zap.NewNop()), f
}

func TestServe(t *testing.T) {
	h, f := newHandler(t)
	ctx := context.Background()
	act := f.CreateActivity(ctx, "週五聚餐", []string{"飯"}, []string{"茶"})
	emp := f.CreateEmployee(ctx, "小明")
	f.CreateOrder(ctx, act, emp)

	rec := testutil.NewRecorder()
	h.Serve(rec, testutil.NewRequest("GET", "/api/report?activityId="+act.ID))

	rec.AssertStatus(t, http.StatusOK)
	var env struct {
		Success bool `json:"success"`
		Data    struct {
			ActivityID  string `json:"activityId"`
			TotalOrders int    `json:"totalOrders"`
			MealStats   map[string]struct {
				Count     int      `json:"count"`
				Employees []string `json:"employees"`
			} `json:"mealStats"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !env.Success || env.Data.ActivityID != act.ID || env.Data.TotalOrders != 1 {
		t.Errorf("unexpected report: %+v", env.Data)
	}
	if stat := env.Data.MealStats["飯"]; stat.Count != 1 || len(stat.Employees) != 1 {
		t.Errorf("unexpected meal stat: %+v", stat)
	}
}

func TestServe_MissingParam(t *testing.T) {
	h, _ := newHandler(t)

	rec := testutil.NewRecorder()
	h.Serve(rec, testutil.NewRequest("GET", "/api/report"))
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestServe_UnknownActivity(t *testing.T) {
	h, _ := newHandler(t)

	rec := testutil.NewRecorder()
	h.Serve(rec, testutil.NewRequest("GET", "/api/report?activityId=act_missing"))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestRoutes_AdminOnly(t *testing.T) {
	h, f := newHandler(t)
	act := f.CreateActivity(context.Background(), "聚餐", []string{"飯"}, []string{"茶"})
	sm, err := auth.NewSessionManager("", "mealhub_session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	router := report.Routes(h, sm)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.NewRequest("GET", "/?activityId="+act.ID))
	rec.AssertStatus(t, http.StatusUnauthorized)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.AsAdmin(testutil.NewRequest("GET", "/?activityId="+act.ID)))
	rec.AssertStatus(t, http.StatusOK)
}
