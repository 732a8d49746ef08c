// internal/app/features/orders/types.go
package orders

type createInput struct {
	ActivityID string `json:"activityId" validate:"required" label:"Activity"`
	EmployeeID string `json:"employeeId" validate:"required" label:"Employee"`
	MealID     string `json:"mealId" validate:"required" label:"Meal"`
	DrinkID    string `json:"drinkId" validate:"required" label:"Drink"`
}

type updateInput struct {
	MealID  string `json:"mealId" validate:"required" label:"Meal"`
	DrinkID string `json:"drinkId" validate:"required" label:"Drink"`
}
