package types

// Meal names used across the plan. The client sends and receives the
// Italian labels; they are part of the wire contract.
const (
	MealBreakfast = "Colazione"
	MealLunch     = "Pranzo"
	MealDinner    = "Cena"
)

// RequestKind discriminates the two generation request variants.
type RequestKind int

const (
	KindFullPlan RequestKind = iota
	KindRegenerateMeal
)

// GeneratePlanRequest asks for a full three-meal plan. Every field is
// optional; nil means the corresponding prompt clause is omitted.
type GeneratePlanRequest struct {
	Ingredients         *string `json:"ingredients" validate:"omitempty,max=200"`
	BreakfastPreference *string `json:"breakfast_preference" validate:"omitempty,oneof=dolce salato"`
	RecipeHint          *string `json:"recipe_hint" validate:"omitempty,max=100"`
}

// DiscardedMeal carries only the title of the recipe the user rejected.
type DiscardedMeal struct {
	Title *string `json:"title"`
}

// RegenerateMealRequest asks to replace exactly one meal of an existing
// plan while keeping the other two.
type RegenerateMealRequest struct {
	MealToRegenerate string         `json:"mealToRegenerate" validate:"required,oneof=Colazione Pranzo Cena"`
	ExistingMeals    []Recipe       `json:"existingMeals" validate:"required,max=2"`
	MealToDiscard    *DiscardedMeal `json:"mealToDiscard"`
	DiscardedMeals   []string       `json:"discardedMeals"`

	Ingredients         *string `json:"ingredients" validate:"omitempty,max=200"`
	BreakfastPreference *string `json:"breakfast_preference" validate:"omitempty,oneof=dolce salato"`
	RecipeHint          *string `json:"recipe_hint" validate:"omitempty,max=100"`
}

// PlanResponse is the 200 body for a full-plan generation.
type PlanResponse struct {
	Recipes []Recipe `json:"recipes"`
}

// MealResponse is the 200 body for a single-meal regeneration.
type MealResponse struct {
	Recipe Recipe `json:"recipe"`
}
