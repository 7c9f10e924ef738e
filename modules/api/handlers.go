package api

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	domain "github.com/example/task-manager-api/domain/user"
	"github.com/example/task-manager-api/modules/auth"
	"github.com/example/task-manager-api/modules/tasks"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	authContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
	taskAdapter   tasks.TaskPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer mono.ServiceContainer, authAdapter auth.AuthPort, taskAdapter tasks.TaskPort) *Handlers {
	return &Handlers{
		authContainer: authContainer,
		authAdapter:   authAdapter,
		taskAdapter:   taskAdapter,
	}
}

// Register handles POST /api/v1/auth/register.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Email and password are required",
		})
	}

	authReq := auth.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
	}
	var resp auth.RegisterResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "register",
		json.Marshal, json.Unmarshal, &authReq, &resp,
	); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(UserResponse{
		ID:        resp.ID,
		Email:     resp.Email,
		Username:  resp.Username,
		CreatedAt: resp.CreatedAt,
	})
}

// Login handles POST /api/v1/auth/login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Email and password are required",
		})
	}

	authReq := auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	}
	var resp auth.LoginResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "login",
		json.Marshal, json.Unmarshal, &authReq, &resp,
	); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{
		Token:     resp.Token,
		ExpiresIn: resp.ExpiresIn,
		TokenType: resp.TokenType,
	})
}

// Profile handles GET /api/v1/auth/me. The id comes from the verified
// claims, so a user can only ever see their own account.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthenticated(c)
	}

	user, err := h.authAdapter.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		log.Printf("[api] Failed to load profile for %s: %v", claims.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to retrieve user profile",
		})
	}

	return c.Status(fiber.StatusOK).JSON(ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
}

// CreateTask handles POST /api/v1/tasks.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthenticated(c)
	}

	var body TaskBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	resp, err := h.taskAdapter.CreateTask(c.UserContext(), &tasks.CreateTaskRequest{
		OwnerEmail:    claims.Email,
		Title:         body.Title,
		Description:   body.Description,
		IsCompleted:   body.IsCompleted,
		UserEmail:     body.UserEmail,
		PriorityLevel: body.PriorityLevel,
		Tag:           body.Tag,
		DueDate:       body.DueDate,
	})
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toTaskJSON(resp))
}

// ListTasks handles GET /api/v1/tasks.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthenticated(c)
	}

	resp, err := h.taskAdapter.ListTasks(c.UserContext(), claims.Email)
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toTaskList(resp))
}

// FilterTasks handles GET /api/v1/tasks/filter.
func (h *Handlers) FilterTasks(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthenticated(c)
	}

	resp, err := h.taskAdapter.QueryTasks(c.UserContext(), &tasks.QueryTasksRequest{
		OwnerEmail: claims.Email,
		Priority:   c.Query("priority"),
		Status:     c.Query("status"),
		Due:        c.Query("due"),
	})
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toTaskList(resp))
}

// GetTask handles GET /api/v1/tasks/:id.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthenticated(c)
	}

	resp, err := h.taskAdapter.GetTask(c.UserContext(), c.Params("id"), claims.Email)
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toTaskJSON(resp))
}

// UpdateTask handles PUT /api/v1/tasks/:id.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthenticated(c)
	}

	var body UpdateTaskBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	resp, err := h.taskAdapter.UpdateTask(c.UserContext(), &tasks.UpdateTaskRequest{
		TaskID:     c.Params("id"),
		OwnerEmail: claims.Email,
		Patch: tasks.TaskPatch{
			Title:         body.Title,
			Description:   body.Description,
			IsCompleted:   body.IsCompleted,
			PriorityLevel: body.PriorityLevel,
			Tag:           body.Tag,
			DueDate:       body.DueDate,
		},
	})
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(toTaskJSON(resp))
}

// DeleteTask handles DELETE /api/v1/tasks/:id. The acknowledgement is plain
// text referencing the deleted task's title.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return unauthenticated(c)
	}

	resp, err := h.taskAdapter.DeleteTask(c.UserContext(), c.Params("id"), claims.Email)
	if err != nil {
		return h.handleTaskError(c, err)
	}

	return c.Status(fiber.StatusOK).SendString(fmt.Sprintf("Task '%s' deleted.", resp.Title))
}

// handleAuthError maps auth service errors to HTTP responses. Errors cross
// the service container as strings, so matching is by message.
func (h *Handlers) handleAuthError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "invalid email or password"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid email or password",
		})
	case strings.Contains(errStr, "user with this email already exists"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "User with this email already exists",
		})
	case strings.Contains(errStr, "invalid email format"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid email format",
		})
	case strings.Contains(errStr, "password must be at least"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Password must be at least 8 characters",
		})
	case strings.Contains(errStr, "password must be at most"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Password must be at most 72 characters",
		})
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

// handleTaskError maps task service errors to the HTTP status table.
func (h *Handlers) handleTaskError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "task not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Task not found",
		})
	case strings.Contains(errStr, "not allowed to delete"):
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
			Error:   "forbidden",
			Message: "You are not allowed to delete this task",
		})
	case strings.Contains(errStr, "must have a title"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: "Task must have a title",
		})
	case strings.Contains(errStr, "priority level must be"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: "Priority level must be one of: low, medium, high",
		})
	case strings.Contains(errStr, "tag must be"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: "Tag must be either 'personal' or 'work'",
		})
	case strings.Contains(errStr, "owner does not match"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: "Task owner does not match the authenticated user",
		})
	case strings.Contains(errStr, "no valid fields"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: "No valid fields provided for update",
		})
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: "User not authenticated",
	})
}

// toTaskJSON converts a task service response to the wire shape.
func toTaskJSON(t *tasks.TaskResponse) TaskJSON {
	return TaskJSON{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		IsCompleted:   t.IsCompleted,
		UserEmail:     t.UserEmail,
		PriorityLevel: t.PriorityLevel,
		Tag:           t.Tag,
		CreatedAt:     t.CreatedAt,
		DueDate:       t.DueDate,
	}
}

// toTaskList converts a list response to a wire-shape array. List order is
// whatever the store returned.
func toTaskList(resp *tasks.ListTasksResponse) []TaskJSON {
	out := make([]TaskJSON, 0, len(resp.Tasks))
	for i := range resp.Tasks {
		out = append(out, toTaskJSON(&resp.Tasks[i]))
	}
	return out
}
