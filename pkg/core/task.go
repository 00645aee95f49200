package core

import "time"

// TaskStatus is the lifecycle state of an agent task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskProcessing TaskStatus = "processing"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

// Task tracks one asynchronous agent run. Result holds whatever the agent
// produced (note id, flashcard count, summary excerpt); Error is set only
// on failure.
type Task struct {
	ID        string            `json:"id"`
	AgentType string            `json:"agentType"`
	Status    TaskStatus        `json:"status"`
	Input     map[string]string `json:"input,omitempty"`
	Result    map[string]any    `json:"result,omitempty"`
	Error     string            `json:"error,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
