package server

import (
	"github.com/gofiber/fiber/v3"

	"github.com/zettelhaus/zettel/pkg/core"
)

// agentsEnabled guards the agent routes; without a configured completer
// the orchestrator is absent.
func (s *Server) agentsEnabled(ctx fiber.Ctx) (bool, error) {
	if s.graph.Orchestrator == nil {
		return false, ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "agents are disabled: no model API key configured",
		})
	}
	return true, nil
}

func (s *Server) listAgents(ctx fiber.Ctx) error {
	if ok, err := s.agentsEnabled(ctx); !ok {
		return err
	}
	return ctx.JSON(fiber.Map{"agents": s.graph.Orchestrator.AgentTypes()})
}

type startTaskRequest struct {
	Input map[string]string `json:"input"`
}

func (s *Server) startTask(ctx fiber.Ctx) error {
	if ok, err := s.agentsEnabled(ctx); !ok {
		return err
	}

	var req startTaskRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	task, err := s.graph.Orchestrator.Start(ctx.Context(), ctx.Params("type"), req.Input)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	return ctx.Status(fiber.StatusAccepted).JSON(task)
}

func (s *Server) listTasks(ctx fiber.Ctx) error {
	if ok, err := s.agentsEnabled(ctx); !ok {
		return err
	}
	tasks, err := s.graph.Orchestrator.Tasks(ctx.Context())
	if err != nil {
		return s.fail(ctx, err)
	}
	if tasks == nil {
		tasks = []core.Task{}
	}
	return ctx.JSON(tasks)
}

func (s *Server) getTask(ctx fiber.Ctx) error {
	if ok, err := s.agentsEnabled(ctx); !ok {
		return err
	}
	task, err := s.graph.Orchestrator.Task(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(task)
}
