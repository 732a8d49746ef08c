// internal/app/store/employees/store.go
package employeestore

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

// collectionKey is the KV document holding the whole employee roster.
const collectionKey = "employees"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmptyName        = errors.New("employee name is required")
)

// errAlreadySeeded aborts EnsureDefaults when a roster already exists.
var errAlreadySeeded = errors.New("roster already seeded")

// Store manages the employee roster document.
type Store struct {
	kv kv.Store
}

// New creates an employee Store over the given KV backend.
func New(kvs kv.Store) *Store {
	return &Store{kv: kvs}
}

// List returns all employees in insertion order. An absent document
// yields an empty roster, not an error.
func (s *Store) List(ctx context.Context) ([]models.Employee, error) {
	raw, found, err := s.kv.Get(ctx, collectionKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.Employee{}, nil
	}
	return decode(raw)
}

// GetByID returns the employee with the given id.
func (s *Store) GetByID(ctx context.Context, id string) (models.Employee, error) {
	emps, err := s.List(ctx)
	if err != nil {
		return models.Employee{}, err
	}
	for _, emp := range emps {
		if emp.ID == id {
			return emp, nil
		}
	}
	return models.Employee{}, ErrEmployeeNotFound
}

// Create appends a new employee with a generated id. The name is
// stripped of markup and trimmed; a blank result is ErrEmptyName.
func (s *Store) Create(ctx context.Context, name string) (models.Employee, error) {
	name = cleanName(name)
	if name == "" {
		return models.Employee{}, ErrEmptyName
	}

	emp := models.Employee{
		ID:        ids.New(ids.Employee),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	err := kv.Update(ctx, s.kv, collectionKey, func(current string, found bool) (string, error) {
		emps, err := decodeCurrent(current, found)
		if err != nil {
			return "", err
		}
		return encode(append(emps, emp))
	})
	if err != nil {
		return models.Employee{}, err
	}
	return emp, nil
}

// Update renames an employee; all other fields are immutable.
func (s *Store) Update(ctx context.Context, id, name string) (models.Employee, error) {
	name = cleanName(name)
	if name == "" {
		return models.Employee{}, ErrEmptyName
	}

	var updated models.Employee
	err := kv.Update(ctx, s.kv, collectionKey, func(current string, found bool) (string, error) {
		emps, err := decodeCurrent(current, found)
		if err != nil {
			return "", err
		}
		for i := range emps {
			if emps[i].ID == id {
				emps[i].Name = name
				updated = emps[i]
				return encode(emps)
			}
		}
		return "", ErrEmployeeNotFound
	})
	if err != nil {
		return models.Employee{}, err
	}
	return updated, nil
}

// Delete removes an employee, reporting whether one was removed.
// A miss is not an error. Existing orders keep their denormalized
// employee name; there is no cascade.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	err := kv.Update(ctx, s.kv, collectionKey, func(current string, found bool) (string, error) {
		removed = false
		emps, err := decodeCurrent(current, found)
		if err != nil {
			return "", err
		}
		kept := emps[:0]
		for _, emp := range emps {
			if emp.ID == id {
				removed = true
				continue
			}
			kept = append(kept, emp)
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

// EnsureDefaults seeds the roster with the given names when no roster
// exists yet. Once any employee is present it does nothing, so it is
// safe to call on every startup.
func (s *Store) EnsureDefaults(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	now := time.Now().UTC()
	err := kv.Update(ctx, s.kv, collectionKey, func(current string, found bool) (string, error) {
		emps, err := decodeCurrent(current, found)
		if err != nil {
			return "", err
		}
		if len(emps) > 0 {
			return "", errAlreadySeeded
		}
		for _, name := range names {
			name = cleanName(name)
			if name == "" {
				continue
			}
			emps = append(emps, models.Employee{
				ID:        ids.New(ids.Employee),
				Name:      name,
				CreatedAt: now,
			})
		}
		if len(emps) == 0 {
			return "", kv.ErrNoChange
		}
		return encode(emps)
	})
	if errors.Is(err, errAlreadySeeded) {
		return nil
	}
	return err
}

func cleanName(name string) string {
	return strings.TrimSpace(htmlsanitize.Strip(name))
}

func decodeCurrent(current string, found bool) ([]models.Employee, error) {
	if !found {
		return nil, nil
	}
	return decode(current)
}

func decode(raw string) ([]models.Employee, error) {
	var emps []models.Employee
	if err := json.Unmarshal([]byte(raw), &emps); err != nil {
		return nil, fmt.Errorf("decode employees document: %w", err)
	}
	return emps, nil
}

func encode(emps []models.Employee) (string, error) {
	b, err := json.Marshal(emps)
	if err != nil {
		return "", fmt.Errorf("encode employees document: %w", err)
	}
	return string(b), nil
}
