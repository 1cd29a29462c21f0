package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sdgeval/proposal-evaluator/internal/models"
	"sdgeval/proposal-evaluator/internal/repositories"
	"sdgeval/proposal-evaluator/internal/services"
)

type EvaluationHandler struct {
	evalRepo        repositories.EvaluationRepository
	docRepo         repositories.DocumentRepository
	worker          services.Worker
	defaultLanguage string
}

func NewEvaluationHandler(
	evalRepo repositories.EvaluationRepository,
	docRepo repositories.DocumentRepository,
	worker services.Worker,
	defaultLanguage string,
) *EvaluationHandler {
	return &EvaluationHandler{
		evalRepo:        evalRepo,
		docRepo:         docRepo,
		worker:          worker,
		defaultLanguage: defaultLanguage,
	}
}

// HandleEvaluate handles POST /evaluate
func (h *EvaluationHandler) HandleEvaluate(c *fiber.Ctx) error {
	var req models.EvaluateRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.DocumentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "document_id is required",
		})
	}

	docID, err := uuid.Parse(req.DocumentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document_id format",
		})
	}

	doc, err := h.docRepo.FindByID(docID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Proposal document not found",
		})
	}

	// Reject before queueing: an unsupported document must never reach
	// the model.
	if doc.MediaType != models.MediaTypePDF && doc.MediaType != models.MediaTypeDOCX {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": services.ErrUnsupportedFormat.Error(),
		})
	}

	language := req.Language
	if language == "" {
		language = h.defaultLanguage
	}

	evaluation := &models.Evaluation{
		ID:         uuid.New(),
		DocumentID: docID,
		Language:   language,
		Status:     models.StatusQueued,
		Stage:      models.StagePreparing,
		Progress:   models.ProgressPreparing,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := h.evalRepo.Create(evaluation); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create evaluation job",
		})
	}

	// Enqueue job to worker
	h.worker.EnqueueJob(evaluation.ID)

	// Return job ID immediately
	return c.Status(fiber.StatusAccepted).JSON(models.EvaluateResponse{
		ID:     evaluation.ID.String(),
		Status: string(models.StatusQueued),
	})
}
