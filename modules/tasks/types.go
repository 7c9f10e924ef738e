package tasks

import (
	"context"
	"time"
)

// CreateTaskRequest is the request for creating a task. OwnerEmail is the
// verified identity set by the caller (never client input); UserEmail is
// whatever owner the client claimed in its payload, kept separate so the
// service can reject mismatches instead of silently trusting either side.
type CreateTaskRequest struct {
	OwnerEmail    string     `json:"owner_email"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	IsCompleted   bool       `json:"is_completed,omitempty"`
	UserEmail     string     `json:"user_email,omitempty"`
	PriorityLevel string     `json:"priority_level,omitempty"`
	Tag           string     `json:"tag,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
}

// ListTasksRequest is the request for listing a user's tasks.
type ListTasksRequest struct {
	OwnerEmail string `json:"owner_email"`
}

// QueryTasksRequest is the request for a filtered query. Each filter is
// optional; an empty string omits that clause entirely.
type QueryTasksRequest struct {
	OwnerEmail string `json:"owner_email"`
	Priority   string `json:"priority,omitempty"`
	Status     string `json:"status,omitempty"`
	Due        string `json:"due,omitempty"`
}

// GetTaskRequest is the request for a point lookup scoped to the owner.
type GetTaskRequest struct {
	TaskID     string `json:"task_id"`
	OwnerEmail string `json:"owner_email"`
}

// TaskPatch is a sparse set of patchable fields. A nil field was not present
// in the request and leaves the stored value untouched.
type TaskPatch struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	IsCompleted   *bool      `json:"is_completed,omitempty"`
	PriorityLevel *string    `json:"priority_level,omitempty"`
	Tag           *string    `json:"tag,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskRequest is the request for a partial update.
type UpdateTaskRequest struct {
	TaskID     string    `json:"task_id"`
	OwnerEmail string    `json:"owner_email"`
	Patch      TaskPatch `json:"patch"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	TaskID     string `json:"task_id"`
	OwnerEmail string `json:"owner_email"`
}

// DeleteTaskResponse acknowledges a deletion with the deleted task's title.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	Title   string `json:"title"`
}

// TaskResponse is the response for a single task.
type TaskResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	IsCompleted   bool       `json:"is_completed"`
	UserEmail     string     `json:"user_email"`
	PriorityLevel string     `json:"priority_level"`
	Tag           string     `json:"tag,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	DueDate       *time.Time `json:"due_date,omitempty"`
}

// ListTasksResponse is the response for list and query operations.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// TaskPort defines the interface driving adapters use to reach the task
// services.
type TaskPort interface {
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error)
	ListTasks(ctx context.Context, ownerEmail string) (*ListTasksResponse, error)
	QueryTasks(ctx context.Context, req *QueryTasksRequest) (*ListTasksResponse, error)
	GetTask(ctx context.Context, taskID, ownerEmail string) (*TaskResponse, error)
	UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*TaskResponse, error)
	DeleteTask(ctx context.Context, taskID, ownerEmail string) (*DeleteTaskResponse, error)
}
