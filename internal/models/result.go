package models

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	MediaType    string `json:"media_type"`
}

type PreviewResponse struct {
	ID        string `json:"id"`
	Preview   string `json:"preview"`
	Truncated bool   `json:"truncated"`
}

type EvaluateRequest struct {
	DocumentID string `json:"document_id" validate:"required,uuid"`
	Language   string `json:"language"`
}

type EvaluateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ResultResponse struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	Stage        string          `json:"stage,omitempty"`
	Progress     int             `json:"progress"`
	Result       *EvaluationData `json:"result,omitempty"`
	ErrorMessage *string         `json:"error_message,omitempty"`
}

type EvaluationData struct {
	Scores []SdgScoreData `json:"scores"`
	Chart  []ChartRow     `json:"chart"`
}

type SdgScoreData struct {
	SdgNumber   int    `json:"sdg_number"`
	Score       string `json:"score"`
	Explanation string `json:"explanation"`
}

// ChartRow is one bar of the score chart: x = SDG number, y = score.
type ChartRow struct {
	SdgNumber int `json:"sdg_number"`
	Score     int `json:"score"`
}
