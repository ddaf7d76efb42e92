package usecase

import (
	"encoding/json"
	"testing"

	"github.com/foodlens/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordValidator_Validate(t *testing.T) {
	v := NewRecordValidator()

	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{
			name: "empty record",
			doc:  emptyRecordJSON,
		},
		{
			name: "full food item",
			doc: `{
				"fooditems": [{
					"name": "grilled salmon",
					"portionsize": "150 g",
					"calories": 280,
					"macros": {"protein": {"value": 34, "unit": "g", "status": "ok"}},
					"recipes": [{"title": "Salmon bowl", "ingredients": ["salmon"], "steps": ["grill"], "cookingtime": "20 min", "servings": 2, "difficulty": "easy"}],
					"cookingtime": {"preptime": "5 min", "cooktime": "15 min"}
				}],
				"generalhealthtips": ["Eat fish twice a week"],
				"dietaryrestrictions": ["pescatarian"]
			}`,
		},
		{
			name:    "missing fooditems",
			doc:     `{"generalhealthtips":[],"dietaryrestrictions":[]}`,
			wantErr: true,
		},
		{
			name:    "missing dietaryrestrictions",
			doc:     `{"fooditems":[],"generalhealthtips":[]}`,
			wantErr: true,
		},
		{
			name:    "food item without name",
			doc:     `{"fooditems":[{"calories":100}],"generalhealthtips":[],"dietaryrestrictions":[]}`,
			wantErr: true,
		},
		{
			name:    "numeric string",
			doc:     `{"fooditems":[{"name":"bread","calories":"250"}],"generalhealthtips":[],"dietaryrestrictions":[]}`,
			wantErr: true,
		},
		{
			name:    "measured value as string",
			doc:     `{"fooditems":[{"name":"bread","macros":{"fat":{"value":"3","unit":"g","status":"ok"}}}],"generalhealthtips":[],"dietaryrestrictions":[]}`,
			wantErr: true,
		},
		{
			name:    "top level array",
			doc:     `[]`,
			wantErr: true,
		},
		{
			name:    "null document",
			doc:     `null`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := v.Validate(json.RawMessage(tt.doc))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSchemaMismatch)
				assert.Nil(t, record)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, record)
		})
	}
}

func TestRecordValidator_UnknownStatusDoesNotFail(t *testing.T) {
	v := NewRecordValidator()
	doc := `{"fooditems":[{"name":"fries","macros":{"fat":{"value":17,"unit":"g","status":"very high"}}}],"generalhealthtips":[],"dietaryrestrictions":[]}`

	record, err := v.Validate(json.RawMessage(doc))

	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnknown, record.FoodItems[0].Macros.Fat.Status)
	assert.Equal(t, 17.0, record.FoodItems[0].Macros.Fat.Value)
}
