package tasks

import "errors"

var (
	// ErrNotFound is returned when a task does not exist. Update returns it
	// for foreign-owned tasks as well, so their existence stays hidden.
	ErrNotFound = errors.New("task not found")
	// ErrForbidden is returned by Delete when the task belongs to someone else.
	ErrForbidden = errors.New("you are not allowed to delete this task")
	// ErrMissingTitle is returned when a create payload has no title.
	ErrMissingTitle = errors.New("task must have a title")
	// ErrOwnerMismatch is returned when a create payload claims an owner other
	// than the authenticated user.
	ErrOwnerMismatch = errors.New("task owner does not match the authenticated user")
	// ErrNoFields is returned when an update carries no recognized fields.
	ErrNoFields = errors.New("no valid fields provided for update")
)
