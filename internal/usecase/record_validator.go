package usecase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/foodlens/backend/internal/domain"
	"github.com/go-playground/validator/v10"
)

// ErrSchemaMismatch is returned when a parsed document does not fit NutritionRecord
var ErrSchemaMismatch = errors.New("document does not match nutrition schema")

// RecordValidator checks an extracted document against the NutritionRecord shape
type RecordValidator struct {
	validate *validator.Validate
}

// NewRecordValidator creates a validator for nutrition records
func NewRecordValidator() *RecordValidator {
	return &RecordValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate decodes doc into a NutritionRecord and checks required fields.
// Numbers sent as strings fail decoding. Unknown status values are kept
// but normalized to "unknown".
func (v *RecordValidator) Validate(doc json.RawMessage) (*domain.NutritionRecord, error) {
	var record domain.NutritionRecord

	decoder := json.NewDecoder(bytes.NewReader(doc))
	if err := decoder.Decode(&record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}

	if err := v.validate.Struct(&record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}

	record.NormalizeStatuses()
	return &record, nil
}
