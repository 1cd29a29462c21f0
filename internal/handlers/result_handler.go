package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sdgeval/proposal-evaluator/internal/models"
	"sdgeval/proposal-evaluator/internal/repositories"
	"sdgeval/proposal-evaluator/internal/services"
)

type ResultHandler struct {
	evalRepo repositories.EvaluationRepository
}

func NewResultHandler(evalRepo repositories.EvaluationRepository) *ResultHandler {
	return &ResultHandler{
		evalRepo: evalRepo,
	}
}

// HandleGetResult handles GET /result/:id. While a job runs, the response
// carries the stage checkpoints; on completion it carries the parsed score
// lines plus the chart rows, sorted by SDG number.
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	idParam := c.Params("id")
	evalID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid evaluation ID format",
		})
	}

	evaluation, err := h.evalRepo.FindByID(evalID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Evaluation not found",
		})
	}

	response := models.ResultResponse{
		ID:       evaluation.ID.String(),
		Status:   string(evaluation.Status),
		Stage:    evaluation.Stage,
		Progress: evaluation.Progress,
	}

	if evaluation.Status == models.StatusCompleted {
		scores, err := h.evalRepo.FindScores(evalID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to load evaluation scores",
			})
		}

		data := &models.EvaluationData{
			Scores: make([]models.SdgScoreData, 0, len(scores)),
			Chart:  services.ChartRows(scores),
		}
		for _, s := range scores {
			data.Scores = append(data.Scores, models.SdgScoreData{
				SdgNumber:   s.SdgNumber,
				Score:       s.Score,
				Explanation: s.Explanation,
			})
		}
		response.Result = data
	}

	if evaluation.Status == models.StatusFailed && evaluation.ErrorMessage != "" {
		response.ErrorMessage = &evaluation.ErrorMessage
	}

	return c.JSON(response)
}
