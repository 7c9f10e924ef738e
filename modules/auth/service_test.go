package auth

import (
	"context"
	"errors"
	"testing"

	domain "github.com/example/task-manager-api/domain/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return NewAuthService(
		NewUserRepository(db),
		NewPasswordHasher(),
		NewJWTManager(testJWTConfig()),
	)
}

func TestAuthService_Register(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "password123", "alice")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == "" {
		t.Error("expected a generated user id")
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected email 'alice@example.com', got %q", user.Email)
	}
	if user.Username != "alice" {
		t.Errorf("expected username 'alice', got %q", user.Username)
	}
	if user.PasswordHash == "password123" {
		t.Error("password must not be stored in plaintext")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "invalid email format",
			email:    "not-an-email",
			password: "password123",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "password too short",
			email:    "bob@example.com",
			password: "short",
			wantErr:  ErrWeakPassword,
		},
		{
			name:     "password too long",
			email:    "bob@example.com",
			password: string(make([]byte, 73)),
			wantErr:  ErrPasswordTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := setupTestService(t)
			_, err := svc.Register(context.Background(), tt.email, tt.password, "bob")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice@example.com", "password123", "alice"); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err := svc.Register(ctx, "alice@example.com", "password456", "alice2")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice@example.com", "password123", "alice"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	token, err := svc.Login(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	claims, err := svc.VerifyToken(ctx, token, 0)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected email 'alice@example.com', got %q", claims.Email)
	}
	if claims.UserID == "" {
		t.Error("expected a user id in the claims")
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice@example.com", "password123", "alice"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{
			name:     "wrong password",
			email:    "alice@example.com",
			password: "wrong-password",
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "password123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.email, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_GetUser(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, "alice@example.com", "password123", "alice")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, err := svc.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected email 'alice@example.com', got %q", user.Email)
	}
	if user.Username != "alice" {
		t.Errorf("expected username 'alice', got %q", user.Username)
	}

	if _, err := svc.GetUser(ctx, "missing-id"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_VerifyToken_Invalid(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.VerifyToken(context.Background(), "garbage-token", 0)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
