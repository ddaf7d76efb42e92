package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Normalize(t *testing.T) {
	tests := []struct {
		in   Status
		want Status
	}{
		{StatusOK, StatusOK},
		{StatusRisk, StatusRisk},
		{StatusCritical, StatusCritical},
		{"high", StatusUnknown},
		{"OK", StatusUnknown},
		{"", StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
			assert.Equal(t, tt.want != StatusUnknown, tt.in.Known())
		})
	}
}

func TestNutritionRecord_NormalizeStatuses(t *testing.T) {
	raw := `{
		"fooditems": [{
			"name": "rice",
			"macros": {"protein": {"value": 4.2, "unit": "g", "status": "ok"}},
			"vitaminsandminerals": {"sodium": {"value": 900, "unit": "mg", "status": "very high"}},
			"glycemicindex": {"value": 73, "status": "risk"},
			"carbonfootprint": {"value": 2.7, "unit": "kgCO2e", "status": "bad"}
		}],
		"generalhealthtips": [],
		"dietaryrestrictions": []
	}`

	var record NutritionRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &record))

	record.NormalizeStatuses()

	item := record.FoodItems[0]
	assert.Equal(t, StatusOK, item.Macros.Protein.Status)
	assert.Equal(t, StatusUnknown, item.VitaminsAndMinerals.Sodium.Status)
	assert.Equal(t, StatusRisk, item.GlycemicIndex.Status)
	assert.Equal(t, StatusUnknown, item.CarbonFootprint.Status)
	assert.Equal(t, 900.0, item.VitaminsAndMinerals.Sodium.Value)
	// absent attributes decode with an empty status and collapse too
	assert.Equal(t, StatusUnknown, item.Antioxidants.Status)
}

func TestNutritionRecord_NumericStringRejected(t *testing.T) {
	raw := `{"fooditems":[{"name":"egg","calories":"78"}],"generalhealthtips":[],"dietaryrestrictions":[]}`

	var record NutritionRecord
	err := json.Unmarshal([]byte(raw), &record)

	var typeErr *json.UnmarshalTypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestImageUpload_Empty(t *testing.T) {
	var nilUpload *ImageUpload
	assert.True(t, nilUpload.Empty())
	assert.True(t, (&ImageUpload{}).Empty())
	assert.False(t, (&ImageUpload{Data: []byte{0xFF}}).Empty())
}
