package api

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	domain "github.com/example/task-manager-api/domain/user"
	"github.com/gofiber/fiber/v2"
)

// mockAuthPort is a mock implementation of auth.AuthPort for testing.
type mockAuthPort struct {
	verifyTokenFunc func(ctx context.Context, token string, leeway time.Duration) (*domain.Claims, error)
	getUserFunc     func(ctx context.Context, userID string) (*domain.User, error)
}

func (m *mockAuthPort) VerifyToken(ctx context.Context, token string, leeway time.Duration) (*domain.Claims, error) {
	if m.verifyTokenFunc != nil {
		return m.verifyTokenFunc(ctx, token, leeway)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthPort) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		verifyFunc     func(ctx context.Context, token string, leeway time.Duration) (*domain.Claims, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "missing authorization header",
			authHeader:     "",
			expectedStatus: fiber.StatusUnauthorized,
			expectedBody:   "Authorization header is required",
		},
		{
			name:           "invalid header format",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: fiber.StatusUnauthorized,
			expectedBody:   "Invalid authorization header format",
		},
		{
			name:           "empty bearer token",
			authHeader:     "Bearer ",
			expectedStatus: fiber.StatusUnauthorized,
			expectedBody:   "Token is required",
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			verifyFunc: func(ctx context.Context, token string, leeway time.Duration) (*domain.Claims, error) {
				return nil, errors.New("token verification failed: invalid token")
			},
			expectedStatus: fiber.StatusUnauthorized,
			expectedBody:   "Invalid or expired token",
		},
		{
			name:       "expired token",
			authHeader: "Bearer expired-token",
			verifyFunc: func(ctx context.Context, token string, leeway time.Duration) (*domain.Claims, error) {
				return nil, errors.New("token verification failed: token expired")
			},
			expectedStatus: fiber.StatusUnauthorized,
			expectedBody:   "Invalid or expired token",
		},
		{
			name:       "valid token",
			authHeader: "Bearer good-token",
			verifyFunc: func(ctx context.Context, token string, leeway time.Duration) (*domain.Claims, error) {
				return &domain.Claims{UserID: "user-123", Email: "alice@example.com"}, nil
			},
			expectedStatus: fiber.StatusOK,
			expectedBody:   "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mock := &mockAuthPort{verifyTokenFunc: tt.verifyFunc}
			app.Get("/protected", AuthMiddleware(mock, 0), func(c *fiber.Ctx) error {
				return c.SendString("ok")
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, resp.StatusCode)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("failed to read body: %v", err)
			}
			if !strings.Contains(string(body), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedBody, string(body))
			}
		})
	}
}

func TestAuthMiddleware_PassesTokenAndLeeway(t *testing.T) {
	var gotToken string
	var gotLeeway time.Duration

	mock := &mockAuthPort{
		verifyTokenFunc: func(ctx context.Context, token string, leeway time.Duration) (*domain.Claims, error) {
			gotToken = token
			gotLeeway = leeway
			return &domain.Claims{UserID: "user-123", Email: "alice@example.com"}, nil
		},
	}

	app := fiber.New()
	// Routes carry their own tolerance: the create path allows clock skew,
	// the read path allows none.
	app.Post("/create", AuthMiddleware(mock, CreateClockSkew), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/read", AuthMiddleware(mock, 0), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("POST", "/create", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if gotToken != "some-token" {
		t.Errorf("expected token 'some-token', got %q", gotToken)
	}
	if gotLeeway != CreateClockSkew {
		t.Errorf("expected create leeway %v, got %v", CreateClockSkew, gotLeeway)
	}

	req = httptest.NewRequest("GET", "/read", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if gotLeeway != 0 {
		t.Errorf("expected zero leeway on read path, got %v", gotLeeway)
	}
}

func TestAuthMiddleware_UserContext(t *testing.T) {
	mock := &mockAuthPort{
		verifyTokenFunc: func(ctx context.Context, token string, leeway time.Duration) (*domain.Claims, error) {
			return &domain.Claims{UserID: "user-123", Email: "alice@example.com"}, nil
		},
	}

	var captured *domain.Claims
	app := fiber.New()
	app.Get("/protected", AuthMiddleware(mock, 0), func(c *fiber.Ctx) error {
		claims, ok := c.Locals(UserContextKey).(*domain.Claims)
		if ok {
			captured = claims
		}
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if captured == nil {
		t.Fatal("expected claims in request context")
	}
	if captured.UserID != "user-123" {
		t.Errorf("expected user id 'user-123', got %q", captured.UserID)
	}
	if captured.Email != "alice@example.com" {
		t.Errorf("expected email 'alice@example.com', got %q", captured.Email)
	}
}
