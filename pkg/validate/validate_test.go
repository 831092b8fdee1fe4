package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/tavola/pkg/validate"
)

type itemInput struct {
	Description string `json:"itemDescription" validate:"required,max=500"`
	Category    string `json:"menuCategory"    validate:"required,in=APPETIZER,ENTRE,SIDE,DESERT,DRINK,UPSELL"`
	Price       string `json:"itemPrice"       validate:"required,decimal"`
	ImageURL    string `json:"itemImageURL"    validate:"nullable,url"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(itemInput{
		Description: "Classic cheeseburger",
		Category:    "ENTRE",
		Price:       "11.75",
		ImageURL:    "", // nullable — allowed to be empty
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(itemInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["itemDescription"]; !ok {
		t.Error("expected itemDescription to be required")
	}
	if _, ok := errs["itemPrice"]; !ok {
		t.Error("expected itemPrice to be required")
	}
}

func TestInRuleMultiValue(t *testing.T) {
	// The in= parameter list contains commas; later rules must still apply.
	type in struct {
		Category string `json:"menuCategory" validate:"required,in=APPETIZER,ENTRE,SIDE,DESERT,DRINK,UPSELL,max=20"`
	}
	if errs := validate.Struct(in{Category: "DESSERT"}); !validate.HasErrors(errs) {
		t.Error("expected value outside the enum to fail")
	}
	if errs := validate.Struct(in{Category: "DESERT"}); validate.HasErrors(errs) {
		t.Errorf("expected enum member to pass: %v", errs)
	}
}

func TestNumericRule(t *testing.T) {
	type in struct {
		Price string `json:"itemPrice" validate:"required,numeric"`
	}
	if errs := validate.Struct(in{Price: "twelve"}); !validate.HasErrors(errs) {
		t.Error("expected non-numeric price to fail")
	}
	if errs := validate.Struct(in{Price: "12.50"}); validate.HasErrors(errs) {
		t.Errorf("expected decimal-as-text price to pass: %v", errs)
	}
}

func TestDecimalRule(t *testing.T) {
	type in struct {
		Price string `json:"itemPrice" validate:"required,decimal"`
	}
	for _, price := range []string{"12", "12.5", "12.50", "0.99"} {
		if errs := validate.Struct(in{Price: price}); validate.HasErrors(errs) {
			t.Errorf("expected %q to pass: %v", price, errs)
		}
	}
	// Anything without a cents-exact reading is rejected at the boundary.
	for _, price := range []string{"-3.50", "1e2", "3.555", ".50", "12.", "twelve", "+5"} {
		if errs := validate.Struct(in{Price: price}); !validate.HasErrors(errs) {
			t.Errorf("expected %q to fail", price)
		}
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		ImageURL string `json:"itemImageURL" validate:"nullable,url"`
	}
	// Empty string — nullable, should pass even though it's not a URL
	if errs := validate.Struct(in{ImageURL: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	// Non-empty but invalid URL — should fail
	if errs := validate.Struct(in{ImageURL: "not-a-url"}); !validate.HasErrors(errs) {
		t.Error("expected invalid URL to fail")
	}
}

func TestURLRule(t *testing.T) {
	type in struct {
		Site string `json:"site" validate:"required,url"`
	}
	if errs := validate.Struct(in{Site: "https://example.com/fries.png"}); validate.HasErrors(errs) {
		t.Errorf("expected valid URL to pass: %v", errs)
	}
	if errs := validate.Struct(in{Site: "ftp://example.com"}); !validate.HasErrors(errs) {
		t.Error("expected non-http scheme to fail")
	}
}

func TestAlphaDashRule(t *testing.T) {
	type in struct {
		Username string `json:"username" validate:"required,alpha_dash"`
	}
	if errs := validate.Struct(in{Username: "jane_doe-42"}); validate.HasErrors(errs) {
		t.Errorf("expected alpha_dash to pass: %v", errs)
	}
	if errs := validate.Struct(in{Username: "jane doe!"}); !validate.HasErrors(errs) {
		t.Error("expected alpha_dash to fail for spaces/punctuation")
	}
}

func TestStringLengthBounds(t *testing.T) {
	type in struct {
		Username string `json:"username" validate:"required,min=3,max=8"`
	}
	if errs := validate.Struct(in{Username: "ab"}); !validate.HasErrors(errs) {
		t.Error("expected username shorter than min to fail")
	}
	if errs := validate.Struct(in{Username: "toolongname"}); !validate.HasErrors(errs) {
		t.Error("expected username longer than max to fail")
	}
	if errs := validate.Struct(in{Username: "jane"}); validate.HasErrors(errs) {
		t.Errorf("expected in-bounds username to pass: %v", errs)
	}
}

func TestRequiredSlice(t *testing.T) {
	type in struct {
		ItemIDs []string `json:"itemIds" validate:"required"`
	}
	if errs := validate.Struct(in{}); !validate.HasErrors(errs) {
		t.Error("expected empty slice to fail required")
	}
	if errs := validate.Struct(in{ItemIDs: []string{"a"}}); validate.HasErrors(errs) {
		t.Errorf("expected non-empty slice to pass: %v", errs)
	}
}
