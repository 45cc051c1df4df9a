package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid", userName: "Alice", email: "a@x.com", password: "pw123"},
		{name: "missing name", email: "a@x.com", password: "pw123", wantErr: ErrMissingFields},
		{name: "missing email", userName: "Alice", password: "pw123", wantErr: ErrMissingFields},
		{name: "missing password", userName: "Alice", email: "a@x.com", wantErr: ErrMissingFields},
		{
			name:     "password too long",
			userName: "Alice",
			email:    "a@x.com",
			password: strings.Repeat("p", MaxPasswordBytes+1),
			wantErr:  ErrPasswordTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)

			user, token, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Register() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}

			if user.ID == 0 {
				t.Error("expected generated user id")
			}
			if user.PasswordHash == tt.password {
				t.Error("password stored in plain text")
			}

			claims, err := svc.VerifyToken(context.Background(), token)
			if err != nil {
				t.Fatalf("VerifyToken() error = %v", err)
			}
			if claims.UserID != user.ID {
				t.Errorf("claims.UserID = %d, want %d", claims.UserID, user.ID)
			}
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Alice", "a@x.com", "pw123"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, _, err := svc.Register(ctx, "Alice Again", "a@x.com", "other")
	if !errors.Is(err, ErrEmailInUse) {
		t.Fatalf("second Register() error = %v, want %v", err, ErrEmailInUse)
	}

	count, err := repo.CountByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("CountByEmail() error = %v", err)
	}
	if count != 1 {
		t.Errorf("rows for email = %d, want 1", count)
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, "Alice", "a@x.com", "pw123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid credentials", email: "a@x.com", password: "pw123"},
		{name: "wrong password", email: "a@x.com", password: "wrong", wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "nobody@x.com", password: "pw123", wantErr: ErrInvalidCredentials},
		{name: "email is case-sensitive", email: "A@X.COM", password: "pw123", wantErr: ErrInvalidCredentials},
		{name: "missing email", password: "pw123", wantErr: ErrMissingCredentials},
		{name: "missing password", email: "a@x.com", wantErr: ErrMissingCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, token, err := svc.Authenticate(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Authenticate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate() error = %v", err)
			}

			if user.Name != "Alice" {
				t.Errorf("Name = %q, want %q", user.Name, "Alice")
			}

			claims, err := svc.VerifyToken(ctx, token)
			if err != nil {
				t.Fatalf("VerifyToken() error = %v", err)
			}
			if claims.UserID != registered.ID {
				t.Errorf("claims.UserID = %d, want %d", claims.UserID, registered.ID)
			}
		})
	}
}

func TestAuthService_AuthenticateErrorsAreIdentical(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Alice", "a@x.com", "pw123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, _, wrongPassword := svc.Authenticate(ctx, "a@x.com", "wrong")
	_, _, unknownEmail := svc.Authenticate(ctx, "b@x.com", "pw123")

	if wrongPassword == nil || unknownEmail == nil {
		t.Fatal("expected both attempts to fail")
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Errorf("messages differ: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestAuthService_IssueToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, 7)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	claims, err := svc.VerifyToken(ctx, token)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("claims.UserID = %d, want 7", claims.UserID)
	}

	if _, err := svc.IssueToken(ctx, 0); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("IssueToken(0) error = %v, want %v", err, ErrInvalidToken)
	}
}
