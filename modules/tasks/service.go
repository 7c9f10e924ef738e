package tasks

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	domain "github.com/example/task-manager-api/domain/task"
	"github.com/example/task-manager-api/events"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// createTask handles the create-task service request.
func (m *TaskModule) createTask(_ context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return TaskResponse{}, ErrMissingTitle
	}

	// The owner is always the verified identity. A client-claimed owner is
	// checked, never trusted.
	if req.UserEmail != "" && req.UserEmail != req.OwnerEmail {
		return TaskResponse{}, ErrOwnerMismatch
	}

	priority := domain.PriorityLow
	if req.PriorityLevel != "" {
		p, err := domain.ParsePriority(req.PriorityLevel)
		if err != nil {
			return TaskResponse{}, err
		}
		priority = p
	}

	var tag string
	if req.Tag != "" {
		t, err := domain.ParseTag(req.Tag)
		if err != nil {
			return TaskResponse{}, err
		}
		tag = string(t)
	}

	newTask := &domain.Task{
		ID:            uuid.New().String(),
		Title:         req.Title,
		Description:   req.Description,
		IsCompleted:   req.IsCompleted,
		UserEmail:     req.OwnerEmail,
		PriorityLevel: string(priority),
		Tag:           tag,
		CreatedAt:     time.Now().UTC(),
		DueDate:       req.DueDate,
	}

	if err := m.repo.Create(newTask); err != nil {
		return TaskResponse{}, fmt.Errorf("failed to save task: %w", err)
	}

	m.publishCreated(newTask)

	return toTaskResponse(newTask), nil
}

// listTasks handles the list-tasks service request.
func (m *TaskModule) listTasks(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	found, err := m.repo.FindByOwner(req.OwnerEmail)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return toListResponse(found), nil
}

// queryTasks handles the query-tasks service request. Filters are optional
// and conjunctive; an absent parameter omits its clause entirely.
func (m *TaskModule) queryTasks(_ context.Context, req QueryTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	var filter Filter

	if req.Priority != "" {
		p, err := domain.ParsePriority(req.Priority)
		if err != nil {
			return ListTasksResponse{}, err
		}
		priority := string(p)
		filter.Priority = &priority
	}

	if req.Status != "" {
		// "completed" selects finished tasks; any other value selects the rest.
		completed := strings.EqualFold(req.Status, "completed")
		filter.Completed = &completed
	}

	if req.Due != "" {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		target := today
		if strings.EqualFold(req.Due, "tomorrow") {
			target = today.Add(24 * time.Hour)
		}
		filter.DueOn = &target
	}

	found, err := m.repo.Search(req.OwnerEmail, filter)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return toListResponse(found), nil
}

// getTask handles the get-task service request: a point lookup scoped to the
// owner partition.
func (m *TaskModule) getTask(_ context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.repo.FindByIDAndOwner(req.TaskID, req.OwnerEmail)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// updateTask handles the update-task service request. The task is resolved
// by id alone; a foreign-owned task is reported as not-found so its
// existence is not revealed.
func (m *TaskModule) updateTask(_ context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	existing, err := m.repo.FindByID(req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}
	if existing.UserEmail != req.OwnerEmail {
		return TaskResponse{}, ErrNotFound
	}

	fields, names, err := buildPatch(req.Patch)
	if err != nil {
		return TaskResponse{}, err
	}
	if len(fields) == 0 {
		return TaskResponse{}, ErrNoFields
	}

	updated, err := m.repo.UpdateFields(req.TaskID, req.OwnerEmail, fields)
	if err != nil {
		return TaskResponse{}, err
	}

	m.publishUpdated(updated, names)

	return toTaskResponse(updated), nil
}

// deleteTask handles the delete-task service request. Unlike Update, a
// foreign-owned task is reported as forbidden, revealing its existence.
func (m *TaskModule) deleteTask(_ context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	existing, err := m.repo.FindByID(req.TaskID)
	if err != nil {
		return DeleteTaskResponse{}, err
	}
	if existing.UserEmail != req.OwnerEmail {
		return DeleteTaskResponse{}, ErrForbidden
	}

	if err := m.repo.Delete(req.TaskID, req.OwnerEmail); err != nil {
		return DeleteTaskResponse{}, err
	}

	m.publishDeleted(existing)

	return DeleteTaskResponse{
		Deleted: true,
		Title:   existing.Title,
	}, nil
}

// buildPatch maps the present patch fields to store columns. Only the fixed
// whitelist is recognized; enum values are validated and normalized.
func buildPatch(patch TaskPatch) (map[string]any, []string, error) {
	fields := make(map[string]any)
	var names []string

	if patch.Title != nil {
		fields["title"] = *patch.Title
		names = append(names, "title")
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
		names = append(names, "description")
	}
	if patch.IsCompleted != nil {
		fields["is_completed"] = *patch.IsCompleted
		names = append(names, "isCompleted")
	}
	if patch.PriorityLevel != nil {
		p, err := domain.ParsePriority(*patch.PriorityLevel)
		if err != nil {
			return nil, nil, err
		}
		fields["priority_level"] = string(p)
		names = append(names, "priorityLevel")
	}
	if patch.Tag != nil {
		t, err := domain.ParseTag(*patch.Tag)
		if err != nil {
			return nil, nil, err
		}
		fields["tag"] = string(t)
		names = append(names, "tag")
	}
	if patch.DueDate != nil {
		fields["due_date"] = *patch.DueDate
		names = append(names, "dueDate")
	}

	return fields, names, nil
}

// publishCreated emits a TaskCreated event. Publishing is best-effort.
func (m *TaskModule) publishCreated(task *domain.Task) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskCreatedEvent{
		TaskID:    task.ID,
		Title:     task.Title,
		UserEmail: task.UserEmail,
		CreatedAt: task.CreatedAt,
	}
	if err := events.TaskCreatedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[tasks] Warning: failed to publish TaskCreated event for task %s: %v", task.ID, err)
	}
}

// publishUpdated emits a TaskUpdated event listing the patched fields.
func (m *TaskModule) publishUpdated(task *domain.Task, fields []string) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskUpdatedEvent{
		TaskID:    task.ID,
		UserEmail: task.UserEmail,
		Fields:    fields,
		UpdatedAt: time.Now().UTC(),
	}
	if err := events.TaskUpdatedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[tasks] Warning: failed to publish TaskUpdated event for task %s: %v", task.ID, err)
	}
}

// publishDeleted emits a TaskDeleted event.
func (m *TaskModule) publishDeleted(task *domain.Task) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskDeletedEvent{
		TaskID:    task.ID,
		Title:     task.Title,
		UserEmail: task.UserEmail,
		DeletedAt: time.Now().UTC(),
	}
	if err := events.TaskDeletedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[tasks] Warning: failed to publish TaskDeleted event for task %s: %v", task.ID, err)
	}
}

// toTaskResponse converts a domain Task to a TaskResponse.
func toTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		IsCompleted:   task.IsCompleted,
		UserEmail:     task.UserEmail,
		PriorityLevel: task.PriorityLevel,
		Tag:           task.Tag,
		CreatedAt:     task.CreatedAt,
		DueDate:       task.DueDate,
	}
}

// toListResponse converts a slice of domain Tasks to a ListTasksResponse.
func toListResponse(found []*domain.Task) ListTasksResponse {
	response := ListTasksResponse{
		Tasks: make([]TaskResponse, 0, len(found)),
		Total: len(found),
	}
	for _, t := range found {
		response.Tasks = append(response.Tasks, toTaskResponse(t))
	}
	return response
}
