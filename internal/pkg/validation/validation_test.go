package validation

import (
	"errors"
	"strings"
	"testing"
)

type loginForm struct {
	Email    string `json:"email"    validate:"required,max=255,email"`
	Password string `json:"password" validate:"required,max=255"`
}

type updateForm struct {
	FirstName   *string `json:"firstname"    validate:"omitnil,filled"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=5"`
	Password    *string `json:"password"     validate:"omitempty,password"`
}

func ptr(s string) *string { return &s }

func TestValidate_NamesFieldsAfterJSONTags(t *testing.T) {
	v := New()
	err := v.Validate(&loginForm{Email: "not-an-email"})

	var ve *Errors
	if !errors.As(err, &ve) {
		t.Fatalf("expected *Errors, got %T (%v)", err, err)
	}
	if got := ve.Fields["email"]; len(got) != 1 || got[0] != "The email must be a valid email address." {
		t.Fatalf("unexpected email messages: %v", got)
	}
	if got := ve.Fields["password"]; len(got) != 1 || got[0] != "The password field is required." {
		t.Fatalf("unexpected password messages: %v", got)
	}
	if ve.Summary() != "The email must be a valid email address. (and 1 more error)" {
		t.Fatalf("unexpected summary: %q", ve.Summary())
	}
}

func TestValidate_Passes(t *testing.T) {
	if err := New().Validate(&loginForm{Email: "a@x.com", Password: "x"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidate_OptionalPointers(t *testing.T) {
	v := New()
	if err := v.Validate(&updateForm{}); err != nil {
		t.Fatalf("absent optional fields must pass, got %v", err)
	}

	err := v.Validate(&updateForm{FirstName: ptr(" "), PhoneNumber: ptr("123456"), Password: ptr("password")})
	var ve *Errors
	if !errors.As(err, &ve) {
		t.Fatalf("expected *Errors, got %v", err)
	}
	if got := ve.Fields["phone_number"]; len(got) != 1 || got[0] != "The phone number must not be greater than 5 characters." {
		t.Fatalf("unexpected phone messages: %v", got)
	}
	if got := ve.Fields["firstname"]; len(got) != 1 || got[0] != "The firstname field must have a value." {
		t.Fatalf("unexpected firstname messages: %v", got)
	}
	if got := ve.Fields["password"]; len(got) != 2 {
		t.Fatalf("expected case and number problems, got %v", got)
	}
}

func TestPasswordProblems(t *testing.T) {
	cases := map[string]int{
		"Secret123": 0,
		"1234":      2,
		"PASSWORD1": 1,
		"password1": 1,
		"Password":  1,
		"Ab1":       1,
		"":          3,
	}
	cases["Aa1"+strings.Repeat("x", 80)] = 1
	for pw, want := range cases {
		if got := PasswordProblems(pw); len(got) != want {
			t.Fatalf("%q: expected %d problems, got %v", pw, want, got)
		}
	}

	msgs := strings.Join(PasswordProblems("1234"), "\n")
	if !strings.Contains(msgs, "at least 8 characters") || !strings.Contains(msgs, "one uppercase and one lowercase") {
		t.Fatalf("unexpected messages: %s", msgs)
	}

	msgs = strings.Join(PasswordProblems("Aa1"+strings.Repeat("é", 40)), "\n")
	if msgs != "The password must not be greater than 72 characters." {
		t.Fatalf("expected byte length limit, got %q", msgs)
	}
}

func TestVar(t *testing.T) {
	v := New()
	err := v.Var("email", "Jane", "required,email")
	var ve *Errors
	if !errors.As(err, &ve) || ve.Fields["email"][0] != "The email must be a valid email address." {
		t.Fatalf("unexpected result: %v", err)
	}
	if err := v.Var("email", "jane@example.com", "required,email"); err != nil {
		t.Fatalf("expected valid email, got %v", err)
	}
}

func TestEmailTaken(t *testing.T) {
	e := EmailTaken()
	if e.Error() != "The email has already been taken." {
		t.Fatalf("unexpected message: %q", e.Error())
	}
}
