// internal/domain/models/activity.go
package models

import "time"

// Activity status values. An active activity accepts new orders; a
// closed one rejects them.
const (
	StatusActive = "active"
	StatusClosed = "closed"
)

// Option bounds for an activity's meal and drink menus, counted after
// blank entries are dropped.
const (
	MinOptions = 1
	MaxOptions = 10
)

// MenuOption is a single named meal or drink choice on an activity's menu.
type MenuOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MealActivity is one ordering event: a named day with its own meal and
// drink menus and a lifecycle status controlling whether orders may be
// placed.
type MealActivity struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Date      string       `json:"date"`
	Status    string       `json:"status"`
	Meals     []MenuOption `json:"meals"`
	Drinks    []MenuOption `json:"drinks"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// IsClosed reports whether the activity no longer accepts new orders.
func (a MealActivity) IsClosed() bool {
	return a.Status == StatusClosed
}
