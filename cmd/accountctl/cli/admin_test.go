package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/storefront/account-api/internal/core/domain"
)

type stubAdminCreator struct {
	err      error
	email    string
	password string
	calls    int
}

func (s *stubAdminCreator) Create(_ context.Context, email, password string) (*domain.Account, error) {
	s.calls++
	s.email, s.password = email, password
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Account{ID: "a1", Email: email}, nil
}

func TestRunAdminCreate_WithPassword(t *testing.T) {
	var out, errOut bytes.Buffer
	stub := &stubAdminCreator{}

	if err := runAdminCreate(context.Background(), &out, &errOut, stub, "admin@example.com", "Secret123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.email != "admin@example.com" || stub.password != "Secret123" {
		t.Fatalf("unexpected create args: %q %q", stub.email, stub.password)
	}
	if out.String() != "Finished\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunAdminCreate_GeneratesPassword(t *testing.T) {
	var out, errOut bytes.Buffer
	stub := &stubAdminCreator{}

	if err := runAdminCreate(context.Background(), &out, &errOut, stub, "admin@example.com", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stub.password) != generatedPasswordLength {
		t.Fatalf("expected an %d character password, got %q", generatedPasswordLength, stub.password)
	}
	if !strings.Contains(out.String(), "Generated password: "+stub.password) || !strings.HasSuffix(out.String(), "Finished\n") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunAdminCreate_ValidationFailure(t *testing.T) {
	var out, errOut bytes.Buffer
	stub := &stubAdminCreator{}

	err := runAdminCreate(context.Background(), &out, &errOut, stub, "not-an-email", "short")
	if !Reported(err) {
		t.Fatalf("expected a reported error, got %v", err)
	}
	if stub.calls != 0 {
		t.Fatalf("admin must not be created")
	}

	lines := strings.Split(strings.TrimSpace(errOut.String()), "\n")
	if len(lines) != 4 || lines[0] != "The email must be a valid email address." {
		t.Fatalf("unexpected messages: %q", errOut.String())
	}
}

func TestRunAdminCreate_RejectsOverlongPassword(t *testing.T) {
	var errOut bytes.Buffer
	stub := &stubAdminCreator{}

	err := runAdminCreate(context.Background(), &bytes.Buffer{}, &errOut, stub, "admin@example.com", "Aa1"+strings.Repeat("x", 80))
	if !Reported(err) || stub.calls != 0 {
		t.Fatalf("expected a reported error before create, got %v", err)
	}
	if errOut.String() != "The password must not be greater than 72 characters.\n" {
		t.Fatalf("unexpected output: %q", errOut.String())
	}
}

func TestRunAdminCreate_EmailTaken(t *testing.T) {
	var out, errOut bytes.Buffer
	stub := &stubAdminCreator{err: domain.ErrEmailTaken}

	err := runAdminCreate(context.Background(), &out, &errOut, stub, "admin@example.com", "Secret123")
	if !Reported(err) {
		t.Fatalf("expected a reported error, got %v", err)
	}
	if errOut.String() != "The email has already been taken.\n" {
		t.Fatalf("unexpected output: %q", errOut.String())
	}
}

func TestRunAdminCreate_StoreFailure(t *testing.T) {
	boom := errors.New("mongo down")
	stub := &stubAdminCreator{err: boom}

	err := runAdminCreate(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, stub, "admin@example.com", "Secret123")
	if !errors.Is(err, boom) || Reported(err) {
		t.Fatalf("expected the store error, got %v", err)
	}
}

func TestAdminCreateCmd_RequiresEmail(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"admin", "create"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	if err := root.Execute(); err == nil {
		t.Fatalf("expected an argument error")
	}
}
