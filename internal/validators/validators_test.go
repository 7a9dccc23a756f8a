package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestIsPhone(t *testing.T) {
	cases := map[string]bool{
		"+56 9 1234 5678": true,
		"(11) 98765-4321": true,
		"912345678":       true,
		"1234":            false,
		"+56-abc-123":     false,
		"":                false,
	}
	for in, want := range cases {
		if got := IsPhone(in); got != want {
			t.Errorf("IsPhone(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRegisterTags(t *testing.T) {
	v := validator.New()
	Register(v)

	type req struct {
		Phone string `validate:"phone"`
		Time  string `validate:"slot_time"`
		Date  string `validate:"iso_date"`
	}

	if err := v.Struct(req{Phone: "+56912345678", Time: "9:30", Date: "2026-03-10"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := v.Struct(req{Phone: "x", Time: "25:00", Date: "10/03/2026"})
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) != 3 {
		t.Fatalf("expected 3 validation errors, got %v", err)
	}
}

func TestIsEmailDomainValidRejectsMissingDomain(t *testing.T) {
	for _, in := range []string{"ana", "ana@", "ana@localhost"} {
		if IsEmailDomainValid(in) {
			t.Errorf("IsEmailDomainValid(%q) = true", in)
		}
	}
}
