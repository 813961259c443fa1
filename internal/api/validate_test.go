package api

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutriflow/backend/internal/types"
)

func violationFor(details []FieldViolation, field string) *FieldViolation {
	for i := range details {
		if details[i].Field == field {
			return &details[i]
		}
	}
	return nil
}

func TestCheckStruct_UsesWireNames(t *testing.T) {
	long := strings.Repeat("a", 201)
	req := types.GeneratePlanRequest{Ingredients: &long}

	details := checkStruct(&req)

	require.Len(t, details, 1)
	assert.Equal(t, "ingredients", details[0].Field)
	assert.Equal(t, "non può superare i 200 caratteri", details[0].Message)
}

func TestCheckStruct_MultipleViolations(t *testing.T) {
	bad := "amaro"
	long := strings.Repeat("b", 101)
	req := types.GeneratePlanRequest{BreakfastPreference: &bad, RecipeHint: &long}

	details := checkStruct(&req)

	require.Len(t, details, 2)
	pref := violationFor(details, "breakfast_preference")
	require.NotNil(t, pref)
	assert.Equal(t, "deve essere uno tra: dolce salato", pref.Message)

	hint := violationFor(details, "recipe_hint")
	require.NotNil(t, hint)
	assert.Equal(t, "non può superare i 100 caratteri", hint.Message)
}

func TestCheckStruct_RequiredAndOneof(t *testing.T) {
	req := types.RegenerateMealRequest{MealToRegenerate: "Merenda"}

	details := checkStruct(&req)

	meal := violationFor(details, "mealToRegenerate")
	require.NotNil(t, meal)
	assert.Contains(t, meal.Message, "deve essere uno tra")

	meals := violationFor(details, "existingMeals")
	require.NotNil(t, meals)
	assert.Equal(t, "campo obbligatorio", meals.Message)
}

func TestCheckStruct_ValidRequest(t *testing.T) {
	pref := "dolce"
	req := types.GeneratePlanRequest{BreakfastPreference: &pref}

	assert.Nil(t, checkStruct(&req))
}

func TestDecodeViolations(t *testing.T) {
	t.Run("type mismatch names the field", func(t *testing.T) {
		var req types.GeneratePlanRequest
		err := json.Unmarshal([]byte(`{"ingredients":42}`), &req)
		require.Error(t, err)

		details := decodeViolations(err)
		require.Len(t, details, 1)
		assert.Equal(t, "ingredients", details[0].Field)
		assert.Contains(t, details[0].Message, "tipo non valido")
	})

	t.Run("syntax error maps to body", func(t *testing.T) {
		var req types.GeneratePlanRequest
		err := json.Unmarshal([]byte(`{`), &req)
		require.Error(t, err)

		details := decodeViolations(err)
		require.Len(t, details, 1)
		assert.Equal(t, "body", details[0].Field)
	})
}
