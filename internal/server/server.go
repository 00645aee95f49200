package server

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/zettelhaus/zettel/internal/platform"
	"github.com/zettelhaus/zettel/pkg/core"
	"github.com/zettelhaus/zettel/pkg/markdown"
	"github.com/zettelhaus/zettel/pkg/porter"
)

// Server wires the application graph into a fiber app.
type Server struct {
	app    *fiber.App
	graph  *platform.App
	logger *slog.Logger
}

// New builds the HTTP server around an assembled application.
func New(graph *platform.App, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	app := fiber.New(fiber.Config{
		AppName: "zettel",
	})

	s := &Server{app: app, graph: graph, logger: logger}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Use(newRecoveryMiddleware(s.logger))
	s.app.Use(newLoggerMiddleware(s.logger))

	api := s.app.Group("/api/v1")

	notes := api.Group("/notes")
	notes.Post("/", s.createNote)
	notes.Get("/", s.listNotes)
	notes.Get("/:id", s.getNote)
	notes.Put("/:id", s.updateNote)
	notes.Delete("/:id", s.deleteNote)
	notes.Get("/:id/flashcards", s.noteFlashcards)
	notes.Get("/:id/export", s.exportNote)

	cards := api.Group("/flashcards")
	cards.Post("/", s.createFlashcard)
	cards.Get("/", s.listFlashcards)
	cards.Get("/due", s.dueFlashcards)
	cards.Get("/:id", s.getFlashcard)
	cards.Put("/:id", s.updateFlashcard)
	cards.Delete("/:id", s.deleteFlashcard)
	cards.Post("/:id/review", s.reviewFlashcard)

	api.Get("/export", s.exportAll)
	api.Get("/export/zip", s.exportZip)
	api.Post("/import", s.importDocuments)
	api.Post("/validate", s.validateDocument)

	api.Get("/agents", s.listAgents)
	api.Post("/agents/:type/tasks", s.startTask)
	api.Get("/tasks", s.listTasks)
	api.Get("/tasks/:id", s.getTask)

	s.app.Use(func(ctx fiber.Ctx) error {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "route not found",
		})
	})
}

// Listen serves until the listener fails or Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// fail maps domain errors onto HTTP statuses.
func (s *Server) fail(ctx fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, core.ErrDuplicateTitle):
		status = fiber.StatusConflict
	case errors.Is(err, core.ErrEmptyTitle),
		errors.Is(err, core.ErrEmptyContent),
		errors.Is(err, core.ErrEmptyQuestion),
		errors.Is(err, core.ErrEmptyAnswer),
		errors.Is(err, porter.ErrInvalidDocument),
		errors.Is(err, markdown.ErrNoNotes):
		status = fiber.StatusBadRequest
	}
	return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(ctx fiber.Ctx, msg string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
