// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	activitiesfeature "github.com/mealhub/mealhub/internal/app/features/activities"
	employeesfeature "github.com/mealhub/mealhub/internal/app/features/employees"
	healthfeature "github.com/mealhub/mealhub/internal/app/features/health"
	loginfeature "github.com/mealhub/mealhub/internal/app/features/login"
	logoutfeature "github.com/mealhub/mealhub/internal/app/features/logout"
	ordersfeature "github.com/mealhub/mealhub/internal/app/features/orders"
	reportfeature "github.com/mealhub/mealhub/internal/app/features/report"
	activitystore "github.com/mealhub/mealhub/internal/app/store/activities"
	employeestore "github.com/mealhub/mealhub/internal/app/store/employees"
	orderstore "github.com/mealhub/mealhub/internal/app/store/orders"
	"github.com/mealhub/mealhub/internal/app/store/queries/orderreport"
	"github.com/mealhub/mealhub/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, storage connections, and any
// Startup hooks have completed. MealHub builds the store layer over the
// connected KV backend, applies session middleware, and mounts the
// /api feature routers plus /health.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Store layer over the configured KV backend.
	orders := orderstore.New(deps.KV)
	activities := activitystore.New(deps.KV, orders)
	employees := employeestore.New(deps.KV)
	reports := orderreport.New(activities, orders)

	r := chi.NewRouter()

	// Global auth middleware: loads the session user into context if an
	// admin is signed in. Individual routers decide what requires it.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.KV, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Admin authentication
	loginHandler := loginfeature.NewHandler(sessionMgr, appCfg.AdminPasswordHash, appCfg.AdminPassword, logger)
	r.Mount("/api/admin/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/api/admin/logout", logoutfeature.Routes(logoutHandler))

	// Roster
	employeesHandler := employeesfeature.NewHandler(employees, appCfg.DefaultEmployees, logger)
	r.Mount("/api/employees", employeesfeature.Routes(employeesHandler, sessionMgr))

	// Ordering activities and their menus
	activitiesHandler := activitiesfeature.NewHandler(activities, logger)
	r.Mount("/api/activities", activitiesfeature.Routes(activitiesHandler, sessionMgr))

	// Orders
	ordersHandler := ordersfeature.NewHandler(orders, activities, employees, logger)
	r.Mount("/api/orders", ordersfeature.Routes(ordersHandler))

	// Aggregated order report
	reportHandler := reportfeature.NewHandler(reports, logger)
	r.Mount("/api/report", reportfeature.Routes(reportHandler, sessionMgr))

	return r, nil
}
