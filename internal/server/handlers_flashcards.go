package server

import (
	"github.com/gofiber/fiber/v3"

	"github.com/zettelhaus/zettel/pkg/core"
)

type createFlashcardRequest struct {
	NoteID   string   `json:"noteId"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Tags     []string `json:"tags"`
}

func (s *Server) createFlashcard(ctx fiber.Ctx) error {
	var req createFlashcardRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if req.NoteID == "" {
		return badRequest(ctx, "noteId is required")
	}

	card, err := s.graph.Service.CreateFlashcard(ctx.Context(), req.NoteID, req.Question, req.Answer, req.Tags)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(card)
}

func (s *Server) listFlashcards(ctx fiber.Ctx) error {
	cards, err := s.graph.Service.ListFlashcards(ctx.Context())
	if err != nil {
		return s.fail(ctx, err)
	}
	if cards == nil {
		cards = []core.Flashcard{}
	}
	return ctx.JSON(cards)
}

// dueFlashcards returns the review queue: never-reviewed cards plus
// cards whose next review date has arrived.
func (s *Server) dueFlashcards(ctx fiber.Ctx) error {
	cards, err := s.graph.Service.DueFlashcards(ctx.Context())
	if err != nil {
		return s.fail(ctx, err)
	}
	if cards == nil {
		cards = []core.Flashcard{}
	}
	return ctx.JSON(cards)
}

func (s *Server) getFlashcard(ctx fiber.Ctx) error {
	card, err := s.graph.Service.GetFlashcard(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(card)
}

type updateFlashcardRequest struct {
	Question *string  `json:"question"`
	Answer   *string  `json:"answer"`
	Tags     []string `json:"tags"`
}

func (s *Server) updateFlashcard(ctx fiber.Ctx) error {
	var req updateFlashcardRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	card, err := s.graph.Service.UpdateFlashcard(ctx.Context(), ctx.Params("id"), core.FlashcardPatch{
		Question: req.Question,
		Answer:   req.Answer,
		Tags:     req.Tags,
	})
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(card)
}

func (s *Server) deleteFlashcard(ctx fiber.Ctx) error {
	if err := s.graph.Service.DeleteFlashcard(ctx.Context(), ctx.Params("id")); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

type reviewRequest struct {
	Remembered bool `json:"remembered"`
}

func (s *Server) reviewFlashcard(ctx fiber.Ctx) error {
	var req reviewRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	card, err := s.graph.Service.ReviewFlashcard(ctx.Context(), ctx.Params("id"), req.Remembered)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(card)
}
