package validate_test

import (
	"strings"
	"testing"

	"github.com/shashiranjanraj/dinein/pkg/validate"
)

type dishInput struct {
	Name     string  `json:"name"     validate:"required"`
	Price    float64 `json:"priceAC"  validate:"required,gt=0"`
	Quantity int     `json:"quantity" validate:"gte=1"`
	Room     string  `json:"room"     validate:"omitempty,oneof=ac nonac"`
	Flavour  string  `json:"flavour"  validate:"omitempty,flavour"`
}

func init() {
	if err := validate.RegisterString("flavour", "The %s must be sweet or sour.", func(s string) bool {
		return s == "sweet" || s == "sour"
	}); err != nil {
		panic(err)
	}
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(dishInput{Name: "Paneer Tikka", Price: 250, Quantity: 1, Room: "ac", Flavour: "sour"})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredUsesJSONNames(t *testing.T) {
	errs := validate.Struct(dishInput{Quantity: 1})
	if got := errs["name"]; got != "The name field is required." {
		t.Errorf("unexpected name message: %q", got)
	}
	if _, ok := errs["priceAC"]; !ok {
		t.Errorf("expected priceAC to be keyed by its json name, got %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	errs := validate.Struct(dishInput{Name: "x", Price: -3, Quantity: 0})
	if !strings.Contains(errs["priceAC"], "greater than 0") {
		t.Errorf("unexpected priceAC message: %q", errs["priceAC"])
	}
	if !strings.Contains(errs["quantity"], "at least 1") {
		t.Errorf("unexpected quantity message: %q", errs["quantity"])
	}
}

func TestOneOfAndCustomRule(t *testing.T) {
	errs := validate.Struct(dishInput{Name: "x", Price: 1, Quantity: 1, Room: "garden", Flavour: "bitter"})
	if errs["room"] != "The selected room is invalid." {
		t.Errorf("unexpected room message: %q", errs["room"])
	}
	if errs["flavour"] != "The flavour must be sweet or sour." {
		t.Errorf("unexpected flavour message: %q", errs["flavour"])
	}
}

func TestNonStructIsValid(t *testing.T) {
	if validate.HasErrors(validate.Struct(42)) {
		t.Error("non-struct input should not produce errors")
	}
}
