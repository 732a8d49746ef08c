// internal/domain/models/employee.go
package models

import "time"

// Employee is a member of the staff roster who can place orders.
// Only the name is mutable after creation.
type Employee struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
