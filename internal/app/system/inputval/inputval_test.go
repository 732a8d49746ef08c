package inputval_test

import (
	"strings"
	"testing"

	"github.com/mealhub/mealhub/internal/app/system/inputval"
)

type sampleInput struct {
	Name   string `validate:"required,max=10" label:"Name"`
	Status string `validate:"omitempty,oneof=active closed" label:"Status"`
}

func TestValidate_Passes(t *testing.T) {
	result := inputval.Validate(sampleInput{Name: "lunch", Status: "active"})
	if result.HasErrors() {
		t.Errorf("expected no errors, got %v", result.All())
	}
	if result.First() != "" {
		t.Errorf("First on clean result: got %q, want empty", result.First())
	}
}

func TestValidate_Required(t *testing.T) {
	result := inputval.Validate(sampleInput{})
	if !result.HasErrors() {
		t.Fatal("expected errors for missing required field")
	}
	if got := result.First(); got != "Name is required." {
		t.Errorf("First: got %q", got)
	}
}

func TestValidate_UsesLabelInMessages(t *testing.T) {
	result := inputval.Validate(sampleInput{Name: "a very long activity name"})
	if !result.HasErrors() {
		t.Fatal("expected max-length error")
	}
	if !strings.HasPrefix(result.First(), "Name ") {
		t.Errorf("expected label in message, got %q", result.First())
	}
}

func TestValidate_Oneof(t *testing.T) {
	result := inputval.Validate(sampleInput{Name: "lunch", Status: "paused"})
	if !result.HasErrors() {
		t.Fatal("expected oneof error")
	}
	if got := result.First(); got != "Status must be one of: active closed." {
		t.Errorf("First: got %q", got)
	}
}

func TestValidate_SliceBounds(t *testing.T) {
	type menuInput struct {
		Meals []string `validate:"min=1,max=10" label:"Meal options"`
	}
	result := inputval.Validate(menuInput{})
	if !result.HasErrors() {
		t.Fatal("expected min-entries error")
	}
	if got := result.First(); got != "Meal options must have at least 1 entries." {
		t.Errorf("First: got %q", got)
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	result := inputval.Validate(sampleInput{Name: "", Status: "nope"})
	if len(result.All()) != 2 {
		t.Errorf("expected 2 errors, got %v", result.All())
	}
}
