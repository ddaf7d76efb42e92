package usecase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/foodlens/backend/internal/domain"
)

var (
	// ErrNoJSONBlock is returned when the completion has no ```json fenced block
	ErrNoJSONBlock = errors.New("no fenced json block in completion")

	// ErrMalformedJSON is returned when the fenced block is not valid JSON
	ErrMalformedJSON = errors.New("fenced json block is malformed")
)

// fencedJSONRegex matches the first block opened by "```json\n" and closed by "\n```".
// The body is matched lazily so a second block is never swallowed.
var fencedJSONRegex = regexp.MustCompile("(?s)```json\\n(.*?)\\n```")

// ExtractJSON pulls the first fenced json block out of a model completion.
// It has no side effects and always returns the same result for the same text.
func ExtractJSON(text string) (json.RawMessage, error) {
	match := fencedJSONRegex.FindStringSubmatch(text)
	if match == nil {
		return nil, ErrNoJSONBlock
	}

	body := []byte(match[1])
	if !json.Valid(body) {
		var probe any
		err := json.Unmarshal(body, &probe)
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	var compacted bytes.Buffer
	if err := json.Compact(&compacted, body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	return json.RawMessage(compacted.Bytes()), nil
}

// Classify turns a completion into the response payload.
// Any extraction failure degrades to the raw text; it is never an error.
func Classify(text string, validator *RecordValidator) (*domain.Analysis, error) {
	doc, err := ExtractJSON(text)
	if err != nil {
		return domain.TextAnalysis(text), err
	}

	if validator == nil {
		return &domain.Analysis{Type: domain.AnalysisTypeJSON, Data: doc}, nil
	}

	record, err := validator.Validate(doc)
	if err != nil {
		return domain.TextAnalysis(text), err
	}
	return &domain.Analysis{Type: domain.AnalysisTypeJSON, Data: record}, nil
}
