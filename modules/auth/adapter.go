package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	domain "github.com/example/task-manager-api/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort defines the interface other modules use to verify identities and
// resolve user accounts.
type AuthPort interface {
	VerifyToken(ctx context.Context, token string, leeway time.Duration) (*domain.Claims, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}

// AuthAdapter implements AuthPort using the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// VerifyToken verifies a bearer token and returns the identity claims.
func (a *AuthAdapter) VerifyToken(ctx context.Context, token string, leeway time.Duration) (*domain.Claims, error) {
	req := VerifyTokenRequest{
		Token:         token,
		LeewaySeconds: int64(leeway.Seconds()),
	}
	var resp VerifyTokenResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"verify-token",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("verify-token request failed: %w", err)
	}

	if !resp.Valid {
		return nil, fmt.Errorf("token verification failed: %s", resp.Error)
	}

	return &domain.Claims{
		UserID: resp.UserID,
		Email:  resp.Email,
	}, nil
}

// GetUser retrieves a user account by id via the get-user service.
func (a *AuthAdapter) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	req := GetUserRequest{UserID: userID}
	var resp GetUserResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get-user",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("get-user request failed: %w", err)
	}

	return &domain.User{
		ID:        resp.ID,
		Email:     resp.Email,
		Username:  resp.Username,
		CreatedAt: resp.CreatedAt,
	}, nil
}
