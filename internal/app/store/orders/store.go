// internal/app/store/orders/store.go

// Package orderstore manages the per-activity order documents
// ("orders:<activityId>"), enforcing at most one order per employee per
// activity.
//
// Meal/drink ids and names are persisted exactly as handed in: the
// store does not check them against the activity's current menus. That
// mirrors the system's denormalized-snapshot contract; resolving option
// ids is the caller's job.
package orderstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mealhub/mealhub/internal/app/store/kv"
	"github.com/mealhub/mealhub/internal/app/system/htmlsanitize"
	"github.com/mealhub/mealhub/internal/app/system/ids"
	"github.com/mealhub/mealhub/internal/domain/models"
)

var (
	// ErrDuplicateOrder means the employee already has an order in this
	// activity; the caller should update or delete the existing one.
	ErrDuplicateOrder = errors.New("employee already ordered in this activity")

	ErrOrderNotFound = errors.New("order not found")
)

// Store manages order collections, one KV document per activity.
type Store struct {
	kv kv.Store
}

// New creates an order Store over the given KV backend.
func New(kvs kv.Store) *Store {
	return &Store{kv: kvs}
}

func documentKey(activityID string) string {
	return "orders:" + activityID
}

// CreateParams carries everything needed to place an order. Names are
// denormalized snapshots resolved by the caller.
type CreateParams struct {
	ActivityID   string
	EmployeeID   string
	EmployeeName string
	MealID       string
	MealName     string
	DrinkID      string
	DrinkName    string
}

// UpdateParams carries the replaceable fields of an existing order.
type UpdateParams struct {
	MealID    string
	MealName  string
	DrinkID   string
	DrinkName string
}

// ListByActivity returns the activity's orders in insertion order. An
// activity with no order document yields an empty list, never an error.
func (s *Store) ListByActivity(ctx context.Context, activityID string) ([]models.Order, error) {
	raw, found, err := s.kv.Get(ctx, documentKey(activityID))
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.Order{}, nil
	}
	return decode(raw)
}

// Create appends a new order. The one-order-per-employee check runs
// inside the CAS cycle, so it holds even against a concurrent create
// for the same employee.
func (s *Store) Create(ctx context.Context, p CreateParams) (models.Order, error) {
	order := models.Order{
		ID:           ids.New(ids.Order),
		ActivityID:   p.ActivityID,
		EmployeeID:   p.EmployeeID,
		EmployeeName: cleanName(p.EmployeeName),
		MealID:       p.MealID,
		MealName:     cleanName(p.MealName),
		DrinkID:      p.DrinkID,
		DrinkName:    cleanName(p.DrinkName),
		CreatedAt:    time.Now().UTC(),
	}

	err := kv.Update(ctx, s.kv, documentKey(p.ActivityID), func(current string, found bool) (string, error) {
		orders, err := decodeCurrent(current, found)
		if err != nil {
			return "", err
		}
		for _, existing := range orders {
			if existing.EmployeeID == p.EmployeeID {
				return "", ErrDuplicateOrder
			}
		}
		return encode(append(orders, order))
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// Update replaces an order's meal and drink fields in place, preserving
// its id, employee, and creation time.
func (s *Store) Update(ctx context.Context, activityID, orderID string, p UpdateParams) (models.Order, error) {
	var updated models.Order
	err := kv.Update(ctx, s.kv, documentKey(activityID), func(current string, found bool) (string, error) {
		orders, err := decodeCurrent(current, found)
		if err != nil {
			return "", err
		}
		for i := range orders {
			if orders[i].ID == orderID {
				orders[i].MealID = p.MealID
				orders[i].MealName = cleanName(p.MealName)
				orders[i].DrinkID = p.DrinkID
				orders[i].DrinkName = cleanName(p.DrinkName)
				updated = orders[i]
				return encode(orders)
			}
		}
		return "", ErrOrderNotFound
	})
	if err != nil {
		return models.Order{}, err
	}
	return updated, nil
}

// Delete removes an order, reporting whether one was removed. A miss is
// not an error.
func (s *Store) Delete(ctx context.Context, activityID, orderID string) (bool, error) {
	removed := false
	err := kv.Update(ctx, s.kv, documentKey(activityID), func(current string, found bool) (string, error) {
		removed = false
		orders, err := decodeCurrent(current, found)
		if err != nil {
			return "", err
		}
		kept := orders[:0]
		for _, order := range orders {
			if order.ID == orderID {
				removed = true
				continue
			}
			kept = append(kept, order)
		}
		if !removed {
			return "", kv.ErrNoChange
		}
		return encode(kept)
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// DeleteAllForActivity unconditionally removes the activity's whole
// order document. Used when the activity itself is deleted.
func (s *Store) DeleteAllForActivity(ctx context.Context, activityID string) error {
	return s.kv.Delete(ctx, documentKey(activityID))
}

func cleanName(name string) string {
	return strings.TrimSpace(htmlsanitize.Strip(name))
}

func decodeCurrent(current string, found bool) ([]models.Order, error) {
	if !found {
		return nil, nil
	}
	return decode(current)
}

func decode(raw string) ([]models.Order, error) {
	var orders []models.Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		return nil, fmt.Errorf("decode orders document: %w", err)
	}
	return orders, nil
}

func encode(orders []models.Order) (string, error) {
	b, err := json.Marshal(orders)
	if err != nil {
		return "", fmt.Errorf("encode orders document: %w", err)
	}
	return string(b), nil
}
