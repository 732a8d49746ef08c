// internal/domain/models/order.go
package models

import "time"

// Order is one employee's meal+drink selection for one activity.
//
// Meal and drink names are denormalized snapshots taken at submission
// time, not live references: later edits to the activity's menus do not
// change what an existing order displays.
type Order struct {
	ID           string    `json:"id"`
	ActivityID   string    `json:"activityId"`
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	MealID       string    `json:"mealId"`
	MealName     string    `json:"mealName"`
	DrinkID      string    `json:"drinkId"`
	DrinkName    string    `json:"drinkName"`
	CreatedAt    time.Time `json:"createdAt"`
}
