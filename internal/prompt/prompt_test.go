package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nutriflow/backend/internal/types"
)

func strPtr(s string) *string { return &s }

func TestFullPlan_ProfileConstraints(t *testing.T) {
	profile := Profile{
		DietType:  "vegan",
		Allergies: []string{"noci"},
	}

	out := FullPlan(profile, types.GeneratePlanRequest{})

	assert.Contains(t, out, "vegan")
	assert.Contains(t, out, "noci")
	assert.Contains(t, out, "Cibi non graditi: nessuno")
	assert.Contains(t, out, "Obiettivi: mangiare sano")
	assert.Contains(t, out, `"recipes"`)
}

func TestFullPlan_OmitsEmptyClauses(t *testing.T) {
	out := FullPlan(Profile{}, types.GeneratePlanRequest{})

	// Absent optional fields must not leave degenerate fragments behind.
	assert.NotContains(t, out, "Ingredienti da usare")
	assert.NotContains(t, out, "Preferenza colazione")
	assert.NotContains(t, out, "Suggerimento piatto")
	assert.NotContains(t, out, ": .")
}

func TestFullPlan_Defaults(t *testing.T) {
	out := FullPlan(Profile{}, types.GeneratePlanRequest{})

	assert.Contains(t, out, "Dieta: onnivoro")
	assert.Contains(t, out, "Allergie: nessuna")
}

func TestFullPlan_OptionalClauses(t *testing.T) {
	req := types.GeneratePlanRequest{
		Ingredients:         strPtr("pomodori, basilico"),
		BreakfastPreference: strPtr("dolce"),
		RecipeHint:          strPtr("qualcosa di leggero"),
	}

	out := FullPlan(Profile{}, req)

	assert.Contains(t, out, "Ingredienti da usare: pomodori, basilico.")
	assert.Contains(t, out, "Preferenza colazione: dolce.")
	assert.Contains(t, out, "qualcosa di leggero")
}

func TestRegenerateMeal_Template(t *testing.T) {
	req := types.RegenerateMealRequest{
		MealToRegenerate: types.MealDinner,
		ExistingMeals: []types.Recipe{
			{Meal: types.MealBreakfast, Title: "Cappuccino e cornetto"},
			{Meal: types.MealLunch, Title: "Pasta al pomodoro"},
		},
		MealToDiscard:  &types.DiscardedMeal{Title: strPtr("Minestrone")},
		DiscardedMeals: []string{"Ribollita", "Pasta e fagioli"},
	}

	out := RegenerateMeal(Profile{DietType: "vegetariano"}, req)

	assert.Contains(t, out, "rigenerare SOLO la ricetta per: Cena")
	assert.Contains(t, out, "Minestrone")
	assert.Contains(t, out, "Ribollita, Pasta e fagioli")
	assert.Contains(t, out, "Cappuccino e cornetto")
	assert.Contains(t, out, "Pasta al pomodoro")
	assert.Contains(t, out, "vegetariano")
	assert.Contains(t, out, `"recipe"`)
	assert.NotContains(t, out, `"recipes"`)
}

func TestRegenerateMeal_NoDiscardHistory(t *testing.T) {
	req := types.RegenerateMealRequest{
		MealToRegenerate: types.MealLunch,
		ExistingMeals: []types.Recipe{
			{Meal: types.MealBreakfast, Title: "Pane e marmellata"},
		},
	}

	out := RegenerateMeal(Profile{}, req)

	assert.NotContains(t, out, "ha scartato")
	assert.NotContains(t, out, "già scartate")
	assert.Contains(t, out, "Pranzo")
}

func TestComposition_IsDeterministic(t *testing.T) {
	profile := Profile{DietType: "vegan", Allergies: []string{"noci"}, Goals: "dimagrire"}
	req := types.GeneratePlanRequest{Ingredients: strPtr("zucchine")}

	first := FullPlan(profile, req)
	second := FullPlan(profile, req)

	assert.Equal(t, first, second)
	assert.False(t, strings.Contains(first, "  "), "no double spaces from omitted clauses")
}
