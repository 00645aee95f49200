package server

import (
	"github.com/gofiber/fiber/v3"

	"github.com/zettelhaus/zettel/pkg/core"
)

type createNoteRequest struct {
	Title   string            `json:"title"`
	Content string            `json:"content"`
	Tags    []string          `json:"tags"`
	Extra   map[string]string `json:"extra"`
}

func (s *Server) createNote(ctx fiber.Ctx) error {
	var req createNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	note, err := s.graph.Service.CreateNote(ctx.Context(), req.Title, req.Content, req.Tags, req.Extra)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(note)
}

// listNotes returns all notes, optionally narrowed by ?q= (full-text)
// or ?tag= (exact tag).
func (s *Server) listNotes(ctx fiber.Ctx) error {
	var (
		notes []core.Note
		err   error
	)
	switch {
	case ctx.Query("q") != "":
		notes, err = s.graph.Service.SearchNotes(ctx.Context(), ctx.Query("q"))
	case ctx.Query("tag") != "":
		notes, err = s.graph.Service.NotesByTag(ctx.Context(), ctx.Query("tag"))
	default:
		notes, err = s.graph.Service.ListNotes(ctx.Context())
	}
	if err != nil {
		return s.fail(ctx, err)
	}
	if notes == nil {
		notes = []core.Note{}
	}
	return ctx.JSON(notes)
}

func (s *Server) getNote(ctx fiber.Ctx) error {
	note, err := s.graph.Service.GetNote(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(note)
}

type updateNoteRequest struct {
	Title   *string           `json:"title"`
	Content *string           `json:"content"`
	Tags    []string          `json:"tags"`
	Extra   map[string]string `json:"extra"`
}

func (s *Server) updateNote(ctx fiber.Ctx) error {
	var req updateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	note, err := s.graph.Service.UpdateNote(ctx.Context(), ctx.Params("id"), core.NotePatch{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
		Extra:   req.Extra,
	})
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(note)
}

func (s *Server) deleteNote(ctx fiber.Ctx) error {
	deleted, err := s.graph.Service.DeleteNote(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(fiber.Map{"deletedFlashcards": deleted})
}

func (s *Server) noteFlashcards(ctx fiber.Ctx) error {
	if _, err := s.graph.Service.GetNote(ctx.Context(), ctx.Params("id")); err != nil {
		return s.fail(ctx, err)
	}
	cards, err := s.graph.Service.FlashcardsByNote(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return s.fail(ctx, err)
	}
	if cards == nil {
		cards = []core.Flashcard{}
	}
	return ctx.JSON(cards)
}
