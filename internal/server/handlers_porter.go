package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/zettelhaus/zettel/pkg/markdown"
	"github.com/zettelhaus/zettel/pkg/porter"
)

const (
	markdownMIME = "text/markdown; charset=utf-8"

	// maxUploadBytes caps one imported document.
	maxUploadBytes = 8 << 20
)

func (s *Server) exportNote(ctx fiber.Ctx) error {
	doc, err := s.graph.Exporter.ExportNote(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return s.fail(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, markdownMIME)
	return ctx.SendString(doc)
}

func (s *Server) exportAll(ctx fiber.Ctx) error {
	doc, err := s.graph.Exporter.ExportAll(ctx.Context())
	if err != nil {
		return s.fail(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, markdownMIME)
	return ctx.SendString(doc)
}

func (s *Server) exportZip(ctx fiber.Ctx) error {
	var buf bytes.Buffer
	if err := s.graph.Exporter.ExportZip(ctx.Context(), &buf); err != nil {
		return s.fail(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, "application/zip")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="zettel-export.zip"`)
	return ctx.Send(buf.Bytes())
}

type importRequest struct {
	Documents []porter.Document `json:"documents"`
	Options   struct {
		Overwrite      bool `json:"overwrite"`
		SkipDuplicates bool `json:"skipDuplicates"`
	} `json:"options"`
}

type importFileResponse struct {
	Name       string           `json:"name"`
	NoteID     string           `json:"noteId,omitempty"`
	Title      string           `json:"title,omitempty"`
	Flashcards int              `json:"flashcards"`
	Skipped    bool             `json:"skipped"`
	Error      string           `json:"error,omitempty"`
	Issues     []markdown.Issue `json:"issues,omitempty"`
}

type importResponse struct {
	Imported int                  `json:"imported"`
	Skipped  int                  `json:"skipped"`
	Failed   int                  `json:"failed"`
	Files    []importFileResponse `json:"files"`
}

// importDocuments accepts either a JSON body with inline documents or a
// multipart upload of .md files with an optional "options" JSON field.
func (s *Server) importDocuments(ctx fiber.Ctx) error {
	var req importRequest
	if strings.HasPrefix(ctx.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		var err error
		req, err = readMultipartImport(ctx)
		if err != nil {
			return badRequest(ctx, err.Error())
		}
	} else if err := ctx.Bind().Body(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if len(req.Documents) == 0 {
		return badRequest(ctx, "no documents to import")
	}

	sum := s.graph.Importer.ImportBatch(ctx.Context(), req.Documents, porter.ImportOptions{
		Overwrite:      req.Options.Overwrite,
		SkipDuplicates: req.Options.SkipDuplicates,
	})

	resp := importResponse{
		Imported: sum.Imported,
		Skipped:  sum.Skipped,
		Failed:   sum.Failed,
		Files:    make([]importFileResponse, 0, len(sum.Files)),
	}
	for _, f := range sum.Files {
		file := importFileResponse{
			Name:       f.Name,
			NoteID:     f.NoteID,
			Title:      f.Title,
			Flashcards: f.Flashcards,
			Skipped:    f.Skipped,
			Issues:     f.Issues,
		}
		if f.Err != nil {
			file.Error = f.Err.Error()
		}
		resp.Files = append(resp.Files, file)
	}
	return ctx.JSON(resp)
}

func readMultipartImport(ctx fiber.Ctx) (importRequest, error) {
	var req importRequest

	form, err := ctx.MultipartForm()
	if err != nil {
		return req, fmt.Errorf("invalid multipart form")
	}
	if raw := ctx.FormValue("options"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Options); err != nil {
			return req, fmt.Errorf("invalid options field")
		}
	}

	for _, fh := range form.File["files"] {
		f, err := fh.Open()
		if err != nil {
			return req, fmt.Errorf("failed to open upload %s", fh.Filename)
		}
		content, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
		f.Close()
		if err != nil {
			return req, fmt.Errorf("failed to read upload %s", fh.Filename)
		}
		req.Documents = append(req.Documents, porter.Document{
			Name:    fh.Filename,
			Content: string(content),
		})
	}
	return req, nil
}

type validateRequest struct {
	Content string `json:"content"`
}

func (s *Server) validateDocument(ctx fiber.Ctx) error {
	var req validateRequest
	if err := ctx.Bind().Body(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	issues := markdown.Validate(req.Content)
	if issues == nil {
		issues = []markdown.Issue{}
	}
	valid := true
	for _, issue := range issues {
		if issue.Severity == markdown.SeverityError {
			valid = false
			break
		}
	}
	return ctx.JSON(fiber.Map{"valid": valid, "issues": issues})
}
