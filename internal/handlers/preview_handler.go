package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sdgeval/proposal-evaluator/internal/models"
	"sdgeval/proposal-evaluator/internal/repositories"
	"sdgeval/proposal-evaluator/internal/services"
)

// previewLength is the number of characters of extracted text shown before
// evaluation.
const previewLength = 500

type PreviewHandler struct {
	docRepo   repositories.DocumentRepository
	extractor services.TextExtractor
}

func NewPreviewHandler(
	docRepo repositories.DocumentRepository,
	extractor services.TextExtractor,
) *PreviewHandler {
	return &PreviewHandler{
		docRepo:   docRepo,
		extractor: extractor,
	}
}

// HandlePreview handles GET /documents/:id/preview.
func (h *PreviewHandler) HandlePreview(c *fiber.Ctx) error {
	idParam := c.Params("id")
	docID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document ID format",
		})
	}

	doc, err := h.docRepo.FindByID(docID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}

	text, err := h.extractor.ExtractText(c.UserContext(), doc)
	if err != nil {
		status := fiber.StatusUnprocessableEntity
		if err == services.ErrUnsupportedFormat {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	preview, truncated := previewText(text, previewLength)

	return c.JSON(models.PreviewResponse{
		ID:        doc.ID.String(),
		Preview:   preview,
		Truncated: truncated,
	})
}

// previewText truncates by runes, not bytes, so multibyte scripts survive
// the cut. Truncated previews carry an ellipsis suffix.
func previewText(text string, limit int) (string, bool) {
	runes := []rune(text)
	if len(runes) <= limit {
		return text, false
	}
	return string(runes[:limit]) + "...", true
}
