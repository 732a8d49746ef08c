// internal/app/features/activities/types.go
package activities

type createInput struct {
	Name   string   `json:"name" validate:"required,max=100" label:"Name"`
	Date   string   `json:"date" validate:"required" label:"Date"`
	Meals  []string `json:"meals" validate:"min=1,max=10" label:"Meal options"`
	Drinks []string `json:"drinks" validate:"min=1,max=10" label:"Drink options"`
}

type statusInput struct {
	Status string `json:"status" validate:"required,oneof=active closed" label:"Status"`
}
