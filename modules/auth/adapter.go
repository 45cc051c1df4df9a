package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	domain "github.com/example/task-management/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort is the credential API other modules depend on.
type AuthPort interface {
	Register(ctx context.Context, name, email, password string) (*RegisterResponse, error)
	Authenticate(ctx context.Context, email, password string) (*AuthenticateResponse, error)
	VerifyToken(ctx context.Context, token string) (*domain.Claims, error)
	IssueToken(ctx context.Context, userID int64) (string, error)
}

// AuthAdapter implements AuthPort using the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

// Compile-time interface check.
var _ AuthPort = (*AuthAdapter)(nil)

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// Register creates an account via the register service.
func (a *AuthAdapter) Register(ctx context.Context, name, email, password string) (*RegisterResponse, error) {
	req := RegisterRequest{Name: name, Email: email, Password: password}
	var resp RegisterResponse
	if err := call(ctx, a.container, "register", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Authenticate logs a user in via the authenticate service.
func (a *AuthAdapter) Authenticate(ctx context.Context, email, password string) (*AuthenticateResponse, error) {
	req := AuthenticateRequest{Email: email, Password: password}
	var resp AuthenticateResponse
	if err := call(ctx, a.container, "authenticate", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyToken validates a bearer token via the verify-token service.
func (a *AuthAdapter) VerifyToken(ctx context.Context, token string) (*domain.Claims, error) {
	req := VerifyTokenRequest{Token: token}
	var resp VerifyTokenResponse
	if err := call(ctx, a.container, "verify-token", &req, &resp); err != nil {
		return nil, err
	}

	if !resp.Valid {
		if resp.Error == ErrExpiredToken.Error() {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	return &domain.Claims{UserID: resp.UserID}, nil
}

// IssueToken signs a fresh token via the issue-token service.
func (a *AuthAdapter) IssueToken(ctx context.Context, userID int64) (string, error) {
	req := IssueTokenRequest{UserID: userID}
	var resp IssueTokenResponse
	if err := call(ctx, a.container, "issue-token", &req, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func call[Req, Resp any](ctx context.Context, container mono.ServiceContainer, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx,
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fromRemoteError(service, err)
	}
	return nil
}

// knownErrors are the service errors that survive the trip over the bus as text.
var knownErrors = []error{
	ErrMissingFields,
	ErrMissingCredentials,
	ErrInvalidCredentials,
	ErrPasswordTooLong,
	ErrEmailInUse,
	ErrExpiredToken,
	ErrInvalidToken,
}

// fromRemoteError restores the sentinel named in a remote error message so callers
// can match it with errors.Is.
func fromRemoteError(service string, err error) error {
	msg := err.Error()
	for _, known := range knownErrors {
		if strings.Contains(msg, known.Error()) {
			return fmt.Errorf("%s: %w", service, known)
		}
	}
	return fmt.Errorf("%s request failed: %w", service, err)
}
