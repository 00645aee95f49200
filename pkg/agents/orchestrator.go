package agents

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zettelhaus/zettel/pkg/core"
)

// runTimeout bounds a single agent run once it is detached from the
// request that started it.
const runTimeout = 5 * time.Minute

// Orchestrator dispatches tasks to agents and tracks their lifecycle.
// Start returns as soon as the task is recorded; the run itself happens
// on a goroutine and updates the task record as it goes.
type Orchestrator struct {
	tasks  core.TaskRepository
	agents map[string]Agent
	logger *slog.Logger
	now    func() time.Time
	wg     sync.WaitGroup
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithOrchestratorLogger sets the logger.
func WithOrchestratorLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) { o.logger = logger }
}

// WithOrchestratorClock overrides the wall clock for tests.
func WithOrchestratorClock(now func() time.Time) OrchestratorOption {
	return func(o *Orchestrator) { o.now = now }
}

// NewOrchestrator registers the given agents.
func NewOrchestrator(tasks core.TaskRepository, agentList []Agent, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		tasks:  tasks,
		agents: make(map[string]Agent, len(agentList)),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, a := range agentList {
		o.agents[a.Type()] = a
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Start records a pending task for the agent and launches its run. The
// returned task is the pending record; poll Task for progress.
func (o *Orchestrator) Start(ctx context.Context, agentType string, input map[string]string) (core.Task, error) {
	agent, ok := o.agents[agentType]
	if !ok {
		return core.Task{}, fmt.Errorf("unknown agent type %q", agentType)
	}

	now := o.now()
	task := core.Task{
		ID:        uuid.NewString(),
		AgentType: agentType,
		Status:    core.TaskPending,
		Input:     input,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := o.tasks.Save(ctx, task); err != nil {
		return core.Task{}, fmt.Errorf("failed to record task: %w", err)
	}

	o.wg.Add(1)
	go o.run(agent, task)

	o.logger.Info("task started", "id", task.ID, "agent", agentType)
	return task, nil
}

// run executes the agent on a detached context so the task outlives the
// request that started it.
func (o *Orchestrator) run(agent Agent, task core.Task) {
	defer o.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	task.Status = core.TaskProcessing
	task.UpdatedAt = o.now()
	if err := o.tasks.Save(ctx, task); err != nil {
		o.logger.Error("failed to mark task processing", "id", task.ID, "error", err)
	}

	result, err := agent.Run(ctx, task.Input)
	task.UpdatedAt = o.now()
	if err != nil {
		task.Status = core.TaskFailed
		task.Error = err.Error()
		o.logger.Warn("task failed", "id", task.ID, "agent", task.AgentType, "error", err)
	} else {
		task.Status = core.TaskCompleted
		task.Result = result
		o.logger.Info("task completed", "id", task.ID, "agent", task.AgentType)
	}

	if err := o.tasks.Save(ctx, task); err != nil {
		o.logger.Error("failed to record task outcome", "id", task.ID, "error", err)
	}
}

// Task returns the current record of one task.
func (o *Orchestrator) Task(ctx context.Context, id string) (core.Task, error) {
	return o.tasks.Get(ctx, id)
}

// Tasks lists every recorded task.
func (o *Orchestrator) Tasks(ctx context.Context) ([]core.Task, error) {
	return o.tasks.List(ctx)
}

// AgentTypes lists the registered agent types.
func (o *Orchestrator) AgentTypes() []string {
	types := make([]string, 0, len(o.agents))
	for t := range o.agents {
		types = append(types, t)
	}
	return types
}

// Wait blocks until every in-flight run has finished. Used on shutdown
// and in tests.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}
