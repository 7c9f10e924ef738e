package notification

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/example/task-manager-api/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuditEntry is one recorded task lifecycle event.
type AuditEntry struct {
	TaskID    string    `json:"task_id"`
	UserEmail string    `json:"user_email"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationModule records an audit trail of task lifecycle events. It is
// a pure event consumer with no services of its own.
type NotificationModule struct {
	entries []AuditEntry
	mu      sync.RWMutex
}

var _ mono.Module = (*NotificationModule)(nil)
var _ mono.EventConsumerModule = (*NotificationModule)(nil)

// NewModule creates a new NotificationModule.
func NewModule() *NotificationModule {
	return &NotificationModule{
		entries: make([]AuditEntry, 0),
	}
}

// Name returns the module name.
func (m *NotificationModule) Name() string {
	return "notification"
}

// RegisterEventConsumers subscribes to the task lifecycle events.
func (m *NotificationModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskUpdatedV1, m.handleTaskUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	log.Printf("[notification] Registered event consumers: TaskCreated, TaskUpdated, TaskDeleted")
	return nil
}

func (m *NotificationModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task created: %s - %q (%s)", event.TaskID, event.Title, event.UserEmail)
	m.record(AuditEntry{
		TaskID:    event.TaskID,
		UserEmail: event.UserEmail,
		Action:    "created",
		Detail:    event.Title,
		Timestamp: event.CreatedAt,
	})
	return nil
}

func (m *NotificationModule) handleTaskUpdated(_ context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task updated: %s fields=%s (%s)", event.TaskID, strings.Join(event.Fields, ","), event.UserEmail)
	m.record(AuditEntry{
		TaskID:    event.TaskID,
		UserEmail: event.UserEmail,
		Action:    "updated",
		Detail:    strings.Join(event.Fields, ","),
		Timestamp: event.UpdatedAt,
	})
	return nil
}

func (m *NotificationModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task deleted: %s - %q (%s)", event.TaskID, event.Title, event.UserEmail)
	m.record(AuditEntry{
		TaskID:    event.TaskID,
		UserEmail: event.UserEmail,
		Action:    "deleted",
		Detail:    event.Title,
		Timestamp: event.DeletedAt,
	})
	return nil
}

func (m *NotificationModule) record(entry AuditEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
}

// Entries returns a copy of the recorded audit trail.
func (m *NotificationModule) Entries() []AuditEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]AuditEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Start initializes the module.
func (m *NotificationModule) Start(_ context.Context) error {
	log.Println("[notification] Module started")
	return nil
}

// Stop shuts down the module.
func (m *NotificationModule) Stop(_ context.Context) error {
	log.Println("[notification] Module stopped")
	return nil
}
