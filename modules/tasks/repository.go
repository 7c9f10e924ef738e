package tasks

import (
	"errors"
	"fmt"
	"time"

	domain "github.com/example/task-manager-api/domain/task"
	"gorm.io/gorm"
)

// Filter is the set of optional predicates for a task query. Nil fields omit
// their clause; present fields are combined conjunctively with the owner
// scope.
type Filter struct {
	Priority  *string
	Completed *bool
	DueOn     *time.Time // start of the UTC day to match due dates against
}

// TaskRepository provides access to task storage. All reads and writes are
// scoped to the owning user's email (the partition key), except FindByID
// which is the deliberate cross-partition lookup used by Update and Delete.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create saves a new task.
func (r *TaskRepository) Create(task *domain.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByOwner retrieves all tasks owned by the given email. Order is
// store-defined and not guaranteed stable across calls.
func (r *TaskRepository) FindByOwner(owner string) ([]*domain.Task, error) {
	var result []*domain.Task
	if err := r.db.Where("user_email = ?", owner).Find(&result).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return result, nil
}

// Search retrieves the owner's tasks matching the filter. The query is built
// dynamically: owner scope first, then one clause per present predicate.
func (r *TaskRepository) Search(owner string, f Filter) ([]*domain.Task, error) {
	query := r.db.Where("user_email = ?", owner)

	if f.Priority != nil {
		query = query.Where("priority_level = ?", *f.Priority)
	}
	if f.Completed != nil {
		query = query.Where("is_completed = ?", *f.Completed)
	}
	if f.DueOn != nil {
		// Match any time of day on the target date.
		start := *f.DueOn
		query = query.Where("due_date >= ? AND due_date < ?", start, start.Add(24*time.Hour))
	}

	var result []*domain.Task
	if err := query.Find(&result).Error; err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	return result, nil
}

// FindByIDAndOwner performs a point lookup scoped to the owner partition.
// A lookup under the wrong owner is a miss, not a leak.
func (r *TaskRepository) FindByIDAndOwner(id, owner string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.First(&task, "id = ? AND user_email = ?", id, owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// FindByID retrieves a task by id across all owners. Callers are responsible
// for checking the returned task's owner before acting on it.
func (r *TaskRepository) FindByID(id string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// UpdateFields applies a column-subset update to the task, scoped to the
// owner partition, and returns the updated row. Columns absent from fields
// are left untouched.
func (r *TaskRepository) UpdateFields(id, owner string, fields map[string]any) (*domain.Task, error) {
	result := r.db.Model(&domain.Task{}).
		Where("id = ? AND user_email = ?", id, owner).
		Updates(fields)
	if err := result.Error; err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByIDAndOwner(id, owner)
}

// Delete removes a task, scoped to the owner partition.
func (r *TaskRepository) Delete(id, owner string) error {
	result := r.db.Delete(&domain.Task{}, "id = ? AND user_email = ?", id, owner)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
