// internal/domain/models/report.go
package models

// OptionStat is the per-option bucket in an order report: how many
// orders picked the option and which employees they came from, in
// order-list order.
type OptionStat struct {
	Count     int      `json:"count"`
	Employees []string `json:"employees"`
}

// OrderReport is the derived aggregation of one activity's orders by
// meal and by drink. It is built fresh on every request and never
// persisted.
//
// Stat maps are keyed by option display name (group-by-label policy).
// Because Go maps carry no order, MealOrder and DrinkOrder record the
// first-seen insertion order of the bucket keys; consumers that want
// count-descending presentation sort on their side.
type OrderReport struct {
	ActivityID   string                `json:"activityId"`
	ActivityName string                `json:"activityName"`
	ActivityDate string                `json:"activityDate"`
	TotalOrders  int                   `json:"totalOrders"`
	MealStats    map[string]OptionStat `json:"mealStats"`
	DrinkStats   map[string]OptionStat `json:"drinkStats"`
	MealOrder    []string              `json:"mealOrder"`
	DrinkOrder   []string              `json:"drinkOrder"`
	Orders       []Order               `json:"orders"`
}
