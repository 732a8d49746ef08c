// internal/app/system/ids/ids.go

// Package ids generates the prefixed string identifiers used across all
// collections (emp_…, act_…, meal_…, drink_…, order_…). The prefix makes
// ids self-describing in stored JSON and in logs.
package ids

import "github.com/google/uuid"

// Domain prefixes.
const (
	Employee = "emp"
	Activity = "act"
	Meal     = "meal"
	Drink    = "drink"
	Order    = "order"
)

// New returns a globally unique id of the form "<prefix>_<uuid>".
func New(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
