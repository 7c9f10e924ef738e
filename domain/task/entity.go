package task

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrInvalidPriority is returned when a priority level is outside the allowed set.
	ErrInvalidPriority = errors.New("priority level must be one of: low, medium, high")
	// ErrInvalidTag is returned when a tag is outside the allowed set.
	ErrInvalidTag = errors.New("tag must be either 'personal' or 'work'")
)

// Priority is the enumerated urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority normalizes and validates a priority value.
// Matching is case-insensitive; the stored form is always lowercase.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(s)) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(strings.ToLower(s)), nil
	default:
		return "", ErrInvalidPriority
	}
}

// Tag is the enumerated category of a task.
type Tag string

const (
	TagPersonal Tag = "personal"
	TagWork     Tag = "work"
)

// ParseTag normalizes and validates a tag value.
func ParseTag(s string) (Tag, error) {
	switch Tag(strings.ToLower(s)) {
	case TagPersonal, TagWork:
		return Tag(strings.ToLower(s)), nil
	default:
		return "", ErrInvalidTag
	}
}

// Task is the core domain entity. Rows are partitioned by UserEmail: every
// read and write is scoped to the owner, so tasks of different users cannot
// interfere with each other.
type Task struct {
	ID            string     `json:"id" gorm:"primaryKey;type:text"`
	Title         string     `json:"title" gorm:"not null;type:text"`
	Description   string     `json:"description" gorm:"type:text"`
	IsCompleted   bool       `json:"isCompleted"`
	UserEmail     string     `json:"userEmail" gorm:"index;not null;type:text"`
	PriorityLevel string     `json:"priorityLevel" gorm:"type:text"`
	Tag           string     `json:"tag" gorm:"type:text"`
	CreatedAt     time.Time  `json:"createdAt"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}
