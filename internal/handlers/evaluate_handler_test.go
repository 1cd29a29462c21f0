package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sdgeval/proposal-evaluator/internal/models"
)

type fakeDocRepo struct {
	doc *models.Document
}

func (f *fakeDocRepo) Create(document *models.Document) error { return nil }

func (f *fakeDocRepo) FindByID(id uuid.UUID) (*models.Document, error) {
	if f.doc == nil || f.doc.ID != id {
		return nil, errors.New("document not found")
	}
	return f.doc, nil
}

type fakeWorker struct {
	enqueued []uuid.UUID
}

func (f *fakeWorker) Start(ctx context.Context)   {}
func (f *fakeWorker) Stop()                       {}
func (f *fakeWorker) EnqueueJob(evalID uuid.UUID) { f.enqueued = append(f.enqueued, evalID) }

func newEvaluateTestApp(evalRepo *fakeEvalRepo, docRepo *fakeDocRepo, worker *fakeWorker) *fiber.App {
	app := fiber.New()
	h := NewEvaluationHandler(evalRepo, docRepo, worker, "Thai")
	app.Post("/evaluate", h.HandleEvaluate)
	return app
}

func postEvaluate(t *testing.T, app *fiber.App, body any) *http.Response {
	t.Helper()
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", "/evaluate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestHandleEvaluate_MissingDocumentID(t *testing.T) {
	app := newEvaluateTestApp(&fakeEvalRepo{}, &fakeDocRepo{}, &fakeWorker{})

	resp := postEvaluate(t, app, models.EvaluateRequest{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", resp.StatusCode)
	}
}

func TestHandleEvaluate_DocumentNotFound(t *testing.T) {
	app := newEvaluateTestApp(&fakeEvalRepo{}, &fakeDocRepo{}, &fakeWorker{})

	resp := postEvaluate(t, app, models.EvaluateRequest{DocumentID: uuid.NewString()})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("got status %d, want 404", resp.StatusCode)
	}
}

func TestHandleEvaluate_UnsupportedMediaType(t *testing.T) {
	docID := uuid.New()
	docRepo := &fakeDocRepo{doc: &models.Document{ID: docID, MediaType: "text/plain"}}
	worker := &fakeWorker{}
	app := newEvaluateTestApp(&fakeEvalRepo{}, docRepo, worker)

	resp := postEvaluate(t, app, models.EvaluateRequest{DocumentID: docID.String()})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", resp.StatusCode)
	}
	if len(worker.enqueued) != 0 {
		t.Error("unsupported document must not be queued for evaluation")
	}
}

func TestHandleEvaluate_QueuesJob(t *testing.T) {
	docID := uuid.New()
	docRepo := &fakeDocRepo{doc: &models.Document{ID: docID, MediaType: models.MediaTypePDF}}
	worker := &fakeWorker{}
	app := newEvaluateTestApp(&fakeEvalRepo{}, docRepo, worker)

	resp := postEvaluate(t, app, models.EvaluateRequest{DocumentID: docID.String()})
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("got status %d, want 202", resp.StatusCode)
	}

	var res models.EvaluateResponse
	json.NewDecoder(resp.Body).Decode(&res)

	if res.Status != string(models.StatusQueued) {
		t.Errorf("status: got %q", res.Status)
	}
	if len(worker.enqueued) != 1 {
		t.Fatalf("expected 1 enqueued job, got %d", len(worker.enqueued))
	}
	if worker.enqueued[0].String() != res.ID {
		t.Error("enqueued job ID does not match the response")
	}
}

func TestHandleEvaluate_CreateFailure(t *testing.T) {
	docID := uuid.New()
	docRepo := &fakeDocRepo{doc: &models.Document{ID: docID, MediaType: models.MediaTypeDOCX}}
	evalRepo := &fakeEvalRepo{createErr: errors.New("db down")}
	worker := &fakeWorker{}
	app := newEvaluateTestApp(evalRepo, docRepo, worker)

	resp := postEvaluate(t, app, models.EvaluateRequest{DocumentID: docID.String()})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("got status %d, want 500", resp.StatusCode)
	}
	if len(worker.enqueued) != 0 {
		t.Error("job must not be queued when the record is not created")
	}
}
