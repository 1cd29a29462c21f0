package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sdgeval/proposal-evaluator/internal/models"
)

type fakeEvalRepo struct {
	evaluation *models.Evaluation
	scores     []models.SdgScore
	createErr  error
}

func (f *fakeEvalRepo) Create(eval *models.Evaluation) error {
	return f.createErr
}

func (f *fakeEvalRepo) FindByID(id uuid.UUID) (*models.Evaluation, error) {
	if f.evaluation == nil || f.evaluation.ID != id {
		return nil, errors.New("evaluation not found")
	}
	return f.evaluation, nil
}

func (f *fakeEvalRepo) UpdateProgress(id uuid.UUID, status models.EvaluationStatus, stage string, progress int) error {
	return nil
}

func (f *fakeEvalRepo) UpdateError(id uuid.UUID, errorMsg string) error { return nil }

func (f *fakeEvalRepo) SaveScores(id uuid.UUID, scores []models.SdgScore) error { return nil }

func (f *fakeEvalRepo) FindScores(id uuid.UUID) ([]models.SdgScore, error) {
	return f.scores, nil
}

func (f *fakeEvalRepo) FindPendingJobs(limit int) ([]models.Evaluation, error) {
	return nil, nil
}

func newResultTestApp(repo *fakeEvalRepo) *fiber.App {
	app := fiber.New()
	h := NewResultHandler(repo)
	app.Get("/result/:id", h.HandleGetResult)
	return app
}

func TestHandleGetResult_InvalidID(t *testing.T) {
	app := newResultTestApp(&fakeEvalRepo{})

	req := httptest.NewRequest("GET", "/result/not-a-uuid", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", resp.StatusCode)
	}
}

func TestHandleGetResult_NotFound(t *testing.T) {
	app := newResultTestApp(&fakeEvalRepo{})

	req := httptest.NewRequest("GET", "/result/"+uuid.NewString(), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("got status %d, want 404", resp.StatusCode)
	}
}

func TestHandleGetResult_Processing(t *testing.T) {
	evalID := uuid.New()
	repo := &fakeEvalRepo{
		evaluation: &models.Evaluation{
			ID:       evalID,
			Status:   models.StatusProcessing,
			Stage:    models.StageSending,
			Progress: models.ProgressSending,
		},
	}
	app := newResultTestApp(repo)

	req := httptest.NewRequest("GET", "/result/"+evalID.String(), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}

	var res models.ResultResponse
	json.NewDecoder(resp.Body).Decode(&res)

	if res.Status != string(models.StatusProcessing) {
		t.Errorf("status: got %q", res.Status)
	}
	if res.Progress != models.ProgressSending || res.Stage != models.StageSending {
		t.Errorf("progress checkpoint not surfaced: %+v", res)
	}
	if res.Result != nil {
		t.Error("no result payload expected while processing")
	}
}

func TestHandleGetResult_CompletedWithChart(t *testing.T) {
	evalID := uuid.New()
	repo := &fakeEvalRepo{
		evaluation: &models.Evaluation{
			ID:       evalID,
			Status:   models.StatusCompleted,
			Stage:    models.StageComplete,
			Progress: models.ProgressComplete,
		},
		scores: []models.SdgScore{
			{SdgNumber: 1, Score: "4", Explanation: "Some poverty relevance"},
			{SdgNumber: 2, Score: "unknown", Explanation: "Model waffled"},
			{SdgNumber: 7, Score: "9", Explanation: "Strong energy focus"},
		},
	}
	app := newResultTestApp(repo)

	req := httptest.NewRequest("GET", "/result/"+evalID.String(), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}

	var res models.ResultResponse
	json.NewDecoder(resp.Body).Decode(&res)

	if res.Result == nil {
		t.Fatal("expected result payload")
	}
	if len(res.Result.Scores) != 3 {
		t.Errorf("expected all 3 score lines, got %d", len(res.Result.Scores))
	}
	// Non-numeric scores stay in the lines but drop out of the chart.
	if len(res.Result.Chart) != 2 {
		t.Fatalf("expected 2 chart rows, got %d", len(res.Result.Chart))
	}
	if res.Result.Chart[0].SdgNumber != 1 || res.Result.Chart[1].SdgNumber != 7 {
		t.Errorf("chart rows out of order: %+v", res.Result.Chart)
	}
}

func TestHandleGetResult_Failed(t *testing.T) {
	evalID := uuid.New()
	repo := &fakeEvalRepo{
		evaluation: &models.Evaluation{
			ID:           evalID,
			Status:       models.StatusFailed,
			ErrorMessage: "API error (status 500): internal",
		},
	}
	app := newResultTestApp(repo)

	req := httptest.NewRequest("GET", "/result/"+evalID.String(), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var res models.ResultResponse
	json.NewDecoder(resp.Body).Decode(&res)

	if res.ErrorMessage == nil || *res.ErrorMessage == "" {
		t.Error("failed evaluation should surface its error message")
	}
	if res.Result != nil {
		t.Error("failed evaluation must not carry a result payload")
	}
}
