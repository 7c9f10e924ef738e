package api

import "time"

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username,omitempty"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents a registered user response.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse represents an authentication token response.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	TokenType string `json:"token_type"`
}

// ProfileResponse represents the authenticated user's profile.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskBody is the wire shape of a task create payload. Field names follow
// the persisted record shape (camelCase), which clients already speak.
type TaskBody struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	IsCompleted   bool       `json:"isCompleted"`
	UserEmail     string     `json:"userEmail"`
	PriorityLevel string     `json:"priorityLevel"`
	Tag           string     `json:"tag"`
	DueDate       *time.Time `json:"dueDate"`
}

// UpdateTaskBody is the wire shape of a partial update. Nil fields were not
// present in the request; unrecognized fields are silently ignored by the
// JSON decoder.
type UpdateTaskBody struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	IsCompleted   *bool      `json:"isCompleted"`
	PriorityLevel *string    `json:"priorityLevel"`
	Tag           *string    `json:"tag"`
	DueDate       *time.Time `json:"dueDate"`
}

// TaskJSON is the wire shape of a task in responses.
type TaskJSON struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	IsCompleted   bool       `json:"isCompleted"`
	UserEmail     string     `json:"userEmail"`
	PriorityLevel string     `json:"priorityLevel"`
	Tag           string     `json:"tag,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
