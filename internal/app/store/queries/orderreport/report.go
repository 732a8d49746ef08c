// internal/app/store/queries/orderreport/report.go

// Package orderreport builds the derived per-activity order report:
// total orders plus per-meal and per-drink buckets with the employees
// behind each count. Reports are computed fresh on every request.
package orderreport

import (
	"context"

	activitystore "github.com/mealhub/mealhub/internal/app/store/activities"
	orderstore "github.com/mealhub/mealhub/internal/app/store/orders"
	"github.com/mealhub/mealhub/internal/domain/models"
)

// Generator aggregates an activity's orders into an OrderReport.
type Generator struct {
	activities *activitystore.Store
	orders     *orderstore.Store
}

// New creates a report Generator over the given stores.
func New(activities *activitystore.Store, orders *orderstore.Store) *Generator {
	return &Generator{activities: activities, orders: orders}
}

// GroupKey is the group-by-label policy: orders are bucketed by option
// display name, so two options with identical names collapse into one
// bucket even across different option ids. Swapping this for id-keyed
// grouping would change the report's keys without touching Generate.
func GroupKey(optionName string) string {
	return optionName
}

// Generate builds the report for one activity in a single pass over its
// order list. Returns activitystore.ErrActivityNotFound when the
// activity does not exist; an activity with no orders yields an empty
// report, not an error.
//
// Buckets appear in first-seen order and employees within a bucket
// follow the order list's order. Count-descending presentation is the
// consumer's concern.
func (g *Generator) Generate(ctx context.Context, activityID string) (models.OrderReport, error) {
	act, err := g.activities.GetByID(ctx, activityID)
	if err != nil {
		return models.OrderReport{}, err
	}

	orders, err := g.orders.ListByActivity(ctx, activityID)
	if err != nil {
		return models.OrderReport{}, err
	}

	report := models.OrderReport{
		ActivityID:   act.ID,
		ActivityName: act.Name,
		ActivityDate: act.Date,
		TotalOrders:  len(orders),
		MealStats:    make(map[string]models.OptionStat),
		DrinkStats:   make(map[string]models.OptionStat),
		Orders:       orders,
	}

	for _, order := range orders {
		report.MealOrder = tally(report.MealStats, report.MealOrder, GroupKey(order.MealName), order.EmployeeName)
		report.DrinkOrder = tally(report.DrinkStats, report.DrinkOrder, GroupKey(order.DrinkName), order.EmployeeName)
	}
	return report, nil
}

func tally(stats map[string]models.OptionStat, keys []string, key, employee string) []string {
	stat, seen := stats[key]
	if !seen {
		keys = append(keys, key)
	}
	stat.Count++
	stat.Employees = append(stat.Employees, employee)
	stats[key] = stat
	return keys
}
