package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"sdgeval/proposal-evaluator/internal/models"
	"sdgeval/proposal-evaluator/internal/repositories"
)

// EvaluatorService runs the full pipeline for one evaluation job:
// extract -> retrieve reference context -> score with the model -> parse ->
// store. Progress advances through fixed checkpoints before and after the
// blocking model call.
type EvaluatorService interface {
	EvaluateProposal(ctx context.Context, evalID uuid.UUID) error
}

type evaluatorService struct {
	evalRepo        repositories.EvaluationRepository
	docRepo         repositories.DocumentRepository
	extractor       TextExtractor
	completionModel CompletionClient
	embedder        GeminiService
	qdrantService   QdrantService
	promptBuilder   *PromptBuilder
	defaultLanguage string
}

// NewEvaluatorService wires the pipeline. embedder and qdrantService may be
// nil; reference retrieval is skipped without them.
func NewEvaluatorService(
	evalRepo repositories.EvaluationRepository,
	docRepo repositories.DocumentRepository,
	extractor TextExtractor,
	completionModel CompletionClient,
	embedder GeminiService,
	qdrantService QdrantService,
	defaultLanguage string,
) EvaluatorService {
	return &evaluatorService{
		evalRepo:        evalRepo,
		docRepo:         docRepo,
		extractor:       extractor,
		completionModel: completionModel,
		embedder:        embedder,
		qdrantService:   qdrantService,
		promptBuilder:   NewPromptBuilder(),
		defaultLanguage: defaultLanguage,
	}
}

func (e *evaluatorService) EvaluateProposal(ctx context.Context, evalID uuid.UUID) error {
	if err := e.evalRepo.UpdateProgress(evalID, models.StatusProcessing, models.StagePreparing, models.ProgressPreparing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting evaluation for job ID: %s\n", evalID)

	evaluation, err := e.evalRepo.FindByID(evalID)
	if err != nil {
		e.evalRepo.UpdateError(evalID, err.Error())
		return fmt.Errorf("failed to get evaluation: %w", err)
	}

	doc, err := e.docRepo.FindByID(evaluation.DocumentID)
	if err != nil {
		e.evalRepo.UpdateError(evalID, fmt.Sprintf("Proposal document not found: %v", err))
		return fmt.Errorf("failed to get document: %w", err)
	}

	// Step 1: Extract the proposal text. Extraction failure halts the
	// pipeline before any model call.
	log.Println("📄 Extracting proposal text...")
	proposalText, err := e.extractor.ExtractText(ctx, doc)
	if err != nil {
		e.evalRepo.UpdateError(evalID, fmt.Sprintf("Failed to extract proposal text: %v", err))
		return fmt.Errorf("failed to extract proposal text: %w", err)
	}

	// Step 2: Retrieve SDG reference context. Best effort only.
	referenceContext := e.retrieveContext(ctx, proposalText)

	language := evaluation.Language
	if language == "" {
		language = e.defaultLanguage
	}

	prompt := e.promptBuilder.BuildSDGEvaluationPrompt(proposalText, language, referenceContext)
	log.Printf("📝 Evaluation prompt length: %d characters", len(prompt))

	// Step 3: One blocking call to the model. No retry.
	if err := e.evalRepo.UpdateProgress(evalID, models.StatusProcessing, models.StageSending, models.ProgressSending); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Println("🤖 Scoring proposal with LLM...")
	response, err := e.completionModel.Complete(ctx, prompt)
	if err != nil {
		e.evalRepo.UpdateError(evalID, fmt.Sprintf("Failed to evaluate proposal: %v", err))
		return fmt.Errorf("failed to evaluate proposal: %w", err)
	}

	// Step 4: Parse the reply into per-SDG scores.
	if err := e.evalRepo.UpdateProgress(evalID, models.StatusProcessing, models.StageProcessing, models.ProgressProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	parsed := ParseEvaluationText(response)
	if len(parsed) == 0 {
		e.evalRepo.UpdateError(evalID, ErrNoScores.Error())
		return ErrNoScores
	}

	if len(parsed) < SdgCount {
		log.Printf("⚠️  Parsed only %d of %d SDG lines for job %s\n", len(parsed), SdgCount, evalID)
	}

	scores := make([]models.SdgScore, 0, len(parsed))
	for sdgNumber, entry := range parsed {
		scores = append(scores, models.SdgScore{
			SdgNumber:   sdgNumber,
			Score:       entry.Score,
			Explanation: entry.Explanation,
		})
	}

	// Step 5: Save results.
	log.Println("💾 Saving evaluation results...")
	if err := e.evalRepo.SaveScores(evalID, scores); err != nil {
		e.evalRepo.UpdateError(evalID, fmt.Sprintf("Failed to save results: %v", err))
		return fmt.Errorf("failed to save results: %w", err)
	}

	log.Printf("✅ Evaluation completed successfully for job ID: %s\n", evalID)
	return nil
}

// retrieveContext embeds the proposal text and pulls the closest SDG
// reference snippets. Any failure here degrades to an uncontexted prompt.
func (e *evaluatorService) retrieveContext(ctx context.Context, proposalText string) string {
	if e.embedder == nil || e.qdrantService == nil {
		return ""
	}

	log.Println("🔍 Retrieving SDG reference context...")
	embedding, err := e.embedder.GenerateEmbedding(ctx, proposalText)
	if err != nil {
		log.Printf("⚠️  Warning: Failed to embed proposal text: %v\n", err)
		return ""
	}

	results, err := e.qdrantService.SearchSimilar(ctx, embedding, 5)
	if err != nil {
		log.Printf("⚠️  Warning: Failed to retrieve reference context: %v\n", err)
		return ""
	}

	return FormatReferenceContext(results)
}
