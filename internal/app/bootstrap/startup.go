// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	employeestore "github.com/mealhub/mealhub/internal/app/store/employees"
)

// Startup runs one-time application initialization after the storage
// backend is connected but before the HTTP handler is built. MealHub
// seeds the employee roster from default_employees when it is empty;
// an already-populated roster is left alone.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if len(appCfg.DefaultEmployees) == 0 {
		return nil
	}

	emps := employeestore.New(deps.KV)
	if err := emps.EnsureDefaults(ctx, appCfg.DefaultEmployees); err != nil {
		return err
	}
	logger.Info("employee roster seeding checked",
		zap.Int("default_names", len(appCfg.DefaultEmployees)))
	return nil
}
