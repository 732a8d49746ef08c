// internal/app/features/employees/types.go
package employees

type createInput struct {
	Name string `json:"name" validate:"required,max=100" label:"Name"`
}

type updateInput struct {
	Name string `json:"name" validate:"required,max=100" label:"Name"`
}
