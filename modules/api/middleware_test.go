package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	userdomain "github.com/example/task-management/domain/user"
	"github.com/example/task-management/modules/auth"
	"github.com/gofiber/fiber/v2"
)

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		mockAuth       *mockAuthPort
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "missing authorization header",
			authHeader:     "",
			mockAuth:       &mockAuthPort{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"Access token is required."`,
		},
		{
			name:           "no bearer prefix",
			authHeader:     "Basic token123",
			mockAuth:       &mockAuthPort{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"unauthorized"`,
		},
		{
			name:           "bearer without token",
			authHeader:     "Bearer ",
			mockAuth:       &mockAuthPort{},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"unauthorized"`,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer invalid-token",
			mockAuth: &mockAuthPort{
				verifyTokenFunc: func(ctx context.Context, token string) (*userdomain.Claims, error) {
					return nil, auth.ErrInvalidToken
				},
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"Invalid or expired token."`,
		},
		{
			name:       "expired token",
			authHeader: "Bearer expired-token",
			mockAuth: &mockAuthPort{
				verifyTokenFunc: func(ctx context.Context, token string) (*userdomain.Claims, error) {
					return nil, auth.ErrExpiredToken
				},
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"forbidden"`,
		},
		{
			name:       "verification unavailable",
			authHeader: "Bearer some-token",
			mockAuth: &mockAuthPort{
				verifyTokenFunc: func(ctx context.Context, token string) (*userdomain.Claims, error) {
					return nil, errors.New("nats: timeout")
				},
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"internal_error"`,
		},
		{
			name:       "valid token",
			authHeader: "Bearer valid-token",
			mockAuth: &mockAuthPort{
				verifyTokenFunc: func(ctx context.Context, token string) (*userdomain.Claims, error) {
					return &userdomain.Claims{UserID: 42}, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"user_id":42`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()

			app.Use(AuthMiddleware(tt.mockAuth))

			app.Get("/test", func(c *fiber.Ctx) error {
				claims, ok := claimsFrom(c)
				if !ok {
					return c.SendStatus(fiber.StatusTeapot)
				}
				return c.JSON(fiber.Map{"user_id": claims.UserID})
			})

			req := httptest.NewRequest("GET", "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("failed to execute request: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, resp.StatusCode)
			}

			body, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(body), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedBody, string(body))
			}
		})
	}
}

func TestAuthMiddleware_PassesTokenToPort(t *testing.T) {
	var got string
	mockAuth := &mockAuthPort{
		verifyTokenFunc: func(ctx context.Context, token string) (*userdomain.Claims, error) {
			got = token
			return &userdomain.Claims{UserID: 1}, nil
		},
	}

	app := fiber.New()
	app.Use(AuthMiddleware(mockAuth))
	app.Get("/test", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("failed to execute request: %v", err)
	}
	resp.Body.Close()

	if got != "abc.def.ghi" {
		t.Errorf("expected token %q, got %q", "abc.def.ghi", got)
	}
}
