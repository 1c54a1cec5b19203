package schema_test

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/goliatone/go-regform/pkg/schema"
)

var nameRunes = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-é")

func TestRegistration_UsernameLengthProperty(t *testing.T) {
	s := schema.Registration()
	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.StringOfN(rapid.RuneFrom(nameRunes), 0, 40, -1).Draw(rt, "username")
		pad := rapid.StringOfN(rapid.RuneFrom([]rune(" \t")), 0, 3, -1).Draw(rt, "pad")

		msg := schema.MessageOf(s.ValidateAt(schema.FieldUsername, pad+name+pad))
		n := utf8.RuneCountInString(name)
		wantValid := n >= 3 && n <= 20
		if wantValid && msg != "" {
			rt.Fatalf("username %q (len %d) should be valid, got %q", name, n, msg)
		}
		if !wantValid && msg == "" {
			rt.Fatalf("username %q (len %d) should be invalid", name, n)
		}
	})
}

func TestRegistration_FavLanguageProperty(t *testing.T) {
	s := schema.Registration()
	rapid.Check(t, func(rt *rapid.T) {
		value := rapid.OneOf(
			rapid.SampledFrom([]string{"javascript", "rust", "go", "JavaScript", "Rust", "", "python"}),
			rapid.String(),
		).Draw(rt, "favLanguage")

		msg := schema.MessageOf(s.ValidateAt(schema.FieldFavLanguage, value))
		trimmed := strings.TrimSpace(value)
		wantValid := trimmed == "javascript" || trimmed == "rust"
		if wantValid != (msg == "") {
			rt.Fatalf("favLanguage %q: valid=%v, message=%q", value, wantValid, msg)
		}
	})
}

func TestRegistration_FavFoodProperty(t *testing.T) {
	s := schema.Registration()
	rapid.Check(t, func(rt *rapid.T) {
		value := rapid.OneOf(
			rapid.SampledFrom([]string{"broccoli", "spaghetti", "pizza", "Pizza", "tacos", ""}),
			rapid.String(),
		).Draw(rt, "favFood")

		msg := schema.MessageOf(s.ValidateAt(schema.FieldFavFood, value))
		switch strings.TrimSpace(value) {
		case "broccoli", "spaghetti", "pizza":
			if msg != "" {
				rt.Fatalf("favFood %q should be valid, got %q", value, msg)
			}
		default:
			if msg == "" {
				rt.Fatalf("favFood %q should be invalid", value)
			}
		}
	})
}

func TestRegistration_AgreementProperty(t *testing.T) {
	s := schema.Registration()
	rapid.Check(t, func(rt *rapid.T) {
		agreed := rapid.Bool().Draw(rt, "agreement")
		msg := schema.MessageOf(s.ValidateAt(schema.FieldAgreement, agreed))
		if agreed != (msg == "") {
			rt.Fatalf("agreement %v: message %q", agreed, msg)
		}
	})
}

func TestRegistration_Messages(t *testing.T) {
	s := schema.Registration()

	tests := []struct {
		field string
		value any
		want  string
	}{
		{schema.FieldUsername, "", "username is required"},
		{schema.FieldUsername, "   ", "username is required"},
		{schema.FieldUsername, nil, "username is required"},
		{schema.FieldUsername, "ab", "username must be at least 3 characters"},
		{schema.FieldUsername, strings.Repeat("x", 21), "username cannot exceed 20 characters"},
		{schema.FieldUsername, " abc ", ""},
		{schema.FieldFavLanguage, "", "favLanguage is required"},
		{schema.FieldFavLanguage, "go", "favLanguage must be either javascript or rust"},
		{schema.FieldFavLanguage, "rust", ""},
		{schema.FieldFavFood, "", "favFood is required"},
		{schema.FieldFavFood, "tacos", "favFood must be either broccoli, spaghetti or pizza"},
		{schema.FieldFavFood, "pizza", ""},
		{schema.FieldAgreement, nil, "agreement is required"},
		{schema.FieldAgreement, false, "agreement must be accepted"},
		{schema.FieldAgreement, "true", ""},
		{schema.FieldAgreement, true, ""},
		{schema.FieldAgreement, []string{"x"}, "agreement must be a `boolean` type"},
	}

	for _, tt := range tests {
		got := schema.MessageOf(s.ValidateAt(tt.field, tt.value))
		if got != tt.want {
			t.Errorf("ValidateAt(%s, %#v) = %q, want %q", tt.field, tt.value, got, tt.want)
		}
	}
}

func TestRegistration_ValidationErrorRule(t *testing.T) {
	err := schema.Registration().ValidateAt(schema.FieldFavFood, "tacos")

	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	want := &schema.ValidationError{
		Field:   schema.FieldFavFood,
		Rule:    schema.RuleOneOf,
		Message: "favFood must be either broccoli, spaghetti or pizza",
	}
	if diff := cmp.Diff(want, verr); diff != "" {
		t.Fatalf("validation error mismatch (-want +got):\n%s", diff)
	}
}

func TestSchema_UnknownField(t *testing.T) {
	err := schema.Registration().ValidateAt("password", "x")
	if !errors.Is(err, schema.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestSchema_ValidateWholeObject(t *testing.T) {
	s := schema.Registration()

	got := s.Validate(map[string]any{
		schema.FieldUsername:    "abc",
		schema.FieldFavLanguage: "rust",
		schema.FieldFavFood:     "tacos",
		schema.FieldAgreement:   true,
	})
	want := map[string]string{
		schema.FieldUsername:    "",
		schema.FieldFavLanguage: "",
		schema.FieldFavFood:     "favFood must be either broccoli, spaghetti or pizza",
		schema.FieldAgreement:   "",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("validate mismatch (-want +got):\n%s", diff)
	}

	if s.IsValid(map[string]any{
		schema.FieldUsername:    "abc",
		schema.FieldFavLanguage: "rust",
		schema.FieldFavFood:     "pizza",
		schema.FieldAgreement:   false,
	}) {
		t.Fatalf("expected invalid when agreement is false")
	}
}

func TestSchema_WithMessages(t *testing.T) {
	s := schema.Registration().WithMessages(schema.Messages{
		schema.UsernameMin: "too short",
	})
	if got := schema.MessageOf(s.ValidateAt(schema.FieldUsername, "ab")); got != "too short" {
		t.Fatalf("expected override, got %q", got)
	}
	if got := schema.MessageOf(s.ValidateAt(schema.FieldUsername, "")); got != "username is required" {
		t.Fatalf("expected default required message, got %q", got)
	}
}

func TestSchema_FieldOrderAndIntrospection(t *testing.T) {
	s := schema.Registration()
	want := []string{"username", "favLanguage", "favFood", "agreement"}
	if diff := cmp.Diff(want, s.Fields()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	username, _ := s.Field(schema.FieldUsername)
	if min, ok := username.MinLength(); !ok || min != 3 {
		t.Fatalf("username min = %d, %v", min, ok)
	}
	if max, ok := username.MaxLength(); !ok || max != 20 {
		t.Fatalf("username max = %d, %v", max, ok)
	}
	food, _ := s.Field(schema.FieldFavFood)
	if diff := cmp.Diff(schema.FoodOptions, food.Options()); diff != "" {
		t.Fatalf("food options mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := schema.New(nil, schema.String("a"), schema.String("a"))
	if err == nil {
		t.Fatalf("expected duplicate field error")
	}
}
