package services

import "errors"

var (
	// ErrUnsupportedFormat means the declared media type is neither PDF nor
	// DOCX. Extraction must fail before any evaluation is attempted.
	ErrUnsupportedFormat = errors.New("unsupported document format: only PDF and DOCX are accepted")

	// ErrEmptyResponse means the model call succeeded but the content field
	// came back empty.
	ErrEmptyResponse = errors.New("model returned an empty response")

	// ErrNoScores means not a single line of the reply parsed as an SDG
	// score, so there is nothing to chart.
	ErrNoScores = errors.New("evaluation response contained no SDG score lines")
)
