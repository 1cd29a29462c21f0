package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sdgeval/proposal-evaluator/internal/models"
)

type EvaluationRepository interface {
	Create(eval *models.Evaluation) error
	FindByID(id uuid.UUID) (*models.Evaluation, error)
	UpdateProgress(id uuid.UUID, status models.EvaluationStatus, stage string, progress int) error
	UpdateError(id uuid.UUID, errorMsg string) error
	SaveScores(id uuid.UUID, scores []models.SdgScore) error
	FindScores(id uuid.UUID) ([]models.SdgScore, error)
	FindPendingJobs(limit int) ([]models.Evaluation, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) Create(eval *models.Evaluation) error {
	if err := r.db.Create(eval).Error; err != nil {
		return fmt.Errorf("failed to create evaluation: %w", err)
	}
	return nil
}

func (r *evaluationRepository) FindByID(id uuid.UUID) (*models.Evaluation, error) {
	var eval models.Evaluation
	if err := r.db.Where("id = ?", id).First(&eval).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("evaluation not found")
		}
		return nil, fmt.Errorf("failed to find evaluation: %w", err)
	}
	return &eval, nil
}

func (r *evaluationRepository) UpdateProgress(id uuid.UUID, status models.EvaluationStatus, stage string, progress int) error {
	result := r.db.Model(&models.Evaluation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"stage":      stage,
			"progress":   progress,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update progress: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("evaluation not found")
	}

	return nil
}

func (r *evaluationRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.Evaluation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"stage":         "Evaluation failed",
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update error: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("evaluation not found")
	}

	return nil
}

// SaveScores replaces the parsed score rows for an evaluation and marks it
// completed in one transaction.
func (r *evaluationRepository) SaveScores(id uuid.UUID, scores []models.SdgScore) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("evaluation_id = ?", id).Delete(&models.SdgScore{}).Error; err != nil {
			return err
		}

		for i := range scores {
			scores[i].EvaluationID = id
			if scores[i].ID == uuid.Nil {
				scores[i].ID = uuid.New()
			}
		}

		if len(scores) > 0 {
			if err := tx.Create(&scores).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Evaluation{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":     models.StatusCompleted,
				"stage":      models.StageComplete,
				"progress":   models.ProgressComplete,
				"updated_at": time.Now(),
			}).Error
	})

	if err != nil {
		return fmt.Errorf("failed to save scores: %w", err)
	}

	return nil
}

func (r *evaluationRepository) FindScores(id uuid.UUID) ([]models.SdgScore, error) {
	var scores []models.SdgScore
	err := r.db.
		Where("evaluation_id = ?", id).
		Order("sdg_number ASC").
		Find(&scores).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find scores: %w", err)
	}

	return scores, nil
}

func (r *evaluationRepository) FindPendingJobs(limit int) ([]models.Evaluation, error) {
	var evals []models.Evaluation
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&evals).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return evals, nil
}
