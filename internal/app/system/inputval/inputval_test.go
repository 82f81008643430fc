package inputval

import "testing"

func TestEmail(t *testing.T) {
	valid := []string{"user@example.com", "first.last@church.org"}
	for _, s := range valid {
		if !Email(s) {
			t.Errorf("Email(%q) = false, want true", s)
		}
	}

	invalid := []string{"not-an-email", "", "user@", "@example.com", "a b@c.d"}
	for _, s := range invalid {
		if Email(s) {
			t.Errorf("Email(%q) = true, want false", s)
		}
	}
}

func TestStruct(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
		Title string `validate:"required"`
	}

	if err := Struct(payload{Email: "user@example.com", Title: "hi"}); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}
	if err := Struct(payload{Email: "nope", Title: "hi"}); err == nil {
		t.Error("invalid email accepted")
	}
	if err := Struct(payload{Email: "user@example.com"}); err == nil {
		t.Error("missing title accepted")
	}
}
