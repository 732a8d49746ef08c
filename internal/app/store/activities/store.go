// internal/app/store/activities/store.go

// Package activitystore manages the "activities" collection document:
// ordering events with their meal/drink menus and lifecycle status.
package activitystore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mealhub/mealhub/internal/app/store/kv"
	orderstore "github.com/mealhub/mealhub/internal/app/store/orders"
	"github.com/mealhub/mealhub/internal/app/system/htmlsanitize"
	"github.com/mealhub/mealhub/internal/app/system/ids"
	"github.com/mealhub/mealhub/internal/domain/models"
)

const collectionKey = "activities"

var (
	ErrActivityNotFound = errors.New("activity not found")

	// ErrInvalidInput covers option-count bounds and missing required
	// fields. Wrapped errors carry the specific field detail.
	ErrInvalidInput = errors.New("invalid activity input")
)

// Store manages the activity collection. It holds the order store so
// deleting an activity can drop its order document in the same call.
type Store struct {
	kv     kv.Store
	orders *orderstore.Store
}

// New creates an activity Store over the given KV backend.
func New(kvs kv.Store, orders *orderstore.Store) *Store {
	return &Store{kv: kvs, orders: orders}
}

// CreateParams carries the fields for creating or replacing an
// activity. Meals and Drinks are plain option names; blank entries are
// dropped before the 1–10 bound is checked.
type CreateParams struct {
	Name   string
	Date   string
	Meals  []string
	Drinks []string
}

// List returns all activities in insertion order.
func (s *Store) List(ctx context.Context) ([]models.MealActivity, error) {
	raw, found, err := s.kv.Get(ctx, collectionKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.MealActivity{}, nil
	}
	return decode(raw)
}

// GetByID returns the activity with the given id.
func (s *Store) GetByID(ctx context.Context, id string) (models.MealActivity, error) {
	acts, err := s.List(ctx)
	if err != nil {
		return models.MealActivity{}, err
	}
	for _, act := range acts {
		if act.ID == id {
			return act, nil
		}
	}
	return models.MealActivity{}, ErrActivityNotFound
}

// Create validates the params and appends a new active activity with
// generated ids for itself and each menu option.
func (s *Store) Create(ctx context.Context, p CreateParams) (models.MealActivity, error) {
	name, date, meals, drinks, err := validate(p)
	if err != nil {
		return models.MealActivity{}, err
	}

	now := time.Now().UTC()
	act := models.MealActivity{
		ID:        ids.New(ids.Activity),
		Name:      name,
		Date:      date,
		Status:    models.StatusActive,
		Meals:     buildOptions(ids.Meal, meals),
		Drinks:    buildOptions(ids.Drink, drinks),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = kv.Update(ctx, s.kv, collectionKey, func(current string, found bool) (string, error) {
		acts, err := decodeCurrent(current, found)
		if err != nil {
			return "", err
		}
		return encode(append(acts, act))
	})
	if err != nil {
		return models.MealActivity{}, err
	}
	return act, nil
}

// Update replaces an activity's name, date, and menus, revalidating the
// option bounds. Menu options get fresh ids; existing orders are
// unaffected because they store name snapshots, not references.
func (s *Store) Update(ctx context.Context, id string, p CreateParams) (models.MealActivity, error) {
	name, date, meals, drinks, err := validate(p)
	if err != nil {
		return models.MealActivity{}, err
	}

	var updated models.MealActivity
	err = kv.Update(ctx, s.kv, collectionKey, func(current string, found bool) (string, error) {
		acts, err := decodeCurrent(current, found)
		if err != nil {
			return "", err
		}
		for i := range acts {
			if acts[i].ID == id {
				acts[i].Name = name
				acts[i].Date = date
				acts[i].Meals = buildOptions(ids.Meal, meals)
				acts[i].Drinks = buildOptions(ids.Drink, drinks)
				acts[i].UpdatedAt = time.Now().UTC()
				updated = acts[i]
				return encode(acts)
			}
		}
		return "", ErrActivityNotFound
	})
	if err != nil {
		return models.MealActivity{}, err
	}
	return updated, nil
}

// UpdateStatus toggles an activity between active and closed.
func (s *Store) UpdateStatus(ctx context.Context, id, status string) (models.MealActivity, error) {
	if status != models.StatusActive && status != models.StatusClosed {
		return models.MealActivity{}, fmt.Errorf("%w: status must be %q or %q",
			ErrInvalidInput, models.StatusActive, models.StatusClosed)
	}

	var updated models.MealActivity
	err := kv.Update(ctx, s.kv, collectionKey, func(current string, found bool) (string, error) {
		acts, err := decodeCurrent(current, found)
		if err != nil {
			return "", err
		}
		for i := range acts {
			if acts[i].ID == id {
				acts[i].Status = status
				acts[i].UpdatedAt = time.Now().UTC()
				updated = acts[i]
				return encode(acts)
			}
		}
		return "", ErrActivityNotFound
	})
	if err != nil {
		return models.MealActivity{}, err
	}
	return updated, nil
}

// Delete removes an activity and, when one was removed, its entire
// order document. Orders are owned by their activity; nothing survives
// the cascade.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	err := kv.Update(ctx, s.kv, collectionKey, func(current string, found bool) (string, error) {
		removed = false
		acts, err := decodeCurrent(current, found)
		if err != nil {
			return "", err
		}
		kept := acts[:0]
		for _, act := range acts {
			if act.ID == id {
				removed = true
				continue
			}
			kept = append(kept, act)
		}
		if !removed {
			return "", kv.ErrNoChange
		}
		return encode(kept)
	})
	if err != nil {
		return false, err
	}
	if !removed {
		return false, nil
	}

	if err := s.orders.DeleteAllForActivity(ctx, id); err != nil {
		return true, fmt.Errorf("activity %s deleted but order cleanup failed: %w", id, err)
	}
	return true, nil
}

func validate(p CreateParams) (name, date string, meals, drinks []string, err error) {
	name = strings.TrimSpace(htmlsanitize.Strip(p.Name))
	date = strings.TrimSpace(p.Date)
	if name == "" {
		return "", "", nil, nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if date == "" {
		return "", "", nil, nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	meals = cleanOptions(p.Meals)
	if len(meals) < models.MinOptions || len(meals) > models.MaxOptions {
		return "", "", nil, nil, fmt.Errorf("%w: need between %d and %d meal options, got %d",
			ErrInvalidInput, models.MinOptions, models.MaxOptions, len(meals))
	}
	drinks = cleanOptions(p.Drinks)
	if len(drinks) < models.MinOptions || len(drinks) > models.MaxOptions {
		return "", "", nil, nil, fmt.Errorf("%w: need between %d and %d drink options, got %d",
			ErrInvalidInput, models.MinOptions, models.MaxOptions, len(drinks))
	}
	return name, date, meals, drinks, nil
}

// cleanOptions strips markup and drops blank entries, preserving order.
func cleanOptions(names []string) []string {
	var out []string
	for _, name := range names {
		name = strings.TrimSpace(htmlsanitize.Strip(name))
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

func buildOptions(prefix string, names []string) []models.MenuOption {
	opts := make([]models.MenuOption, 0, len(names))
	for _, name := range names {
		opts = append(opts, models.MenuOption{ID: ids.New(prefix), Name: name})
	}
	return opts
}

func decodeCurrent(current string, found bool) ([]models.MealActivity, error) {
	if !found {
		return nil, nil
	}
	return decode(current)
}

func decode(raw string) ([]models.MealActivity, error) {
	var acts []models.MealActivity
	if err := json.Unmarshal([]byte(raw), &acts); err != nil {
		return nil, fmt.Errorf("decode activities document: %w", err)
	}
	return acts, nil
}

func encode(acts []models.MealActivity) (string, error) {
	b, err := json.Marshal(acts)
	if err != nil {
		return "", fmt.Errorf("encode activities document: %w", err)
	}
	return string(b), nil
}
