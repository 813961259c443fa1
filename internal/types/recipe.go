package types

// Recipe is the generated-recipe contract shared with the model and the
// client. Every field is logically optional: the model occasionally drops
// fields, so consumers must tolerate absence rather than fail on it.
type Recipe struct {
	Meal         string   `json:"meal,omitempty"`
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions []string `json:"instructions,omitempty"`
	PrepTime     string   `json:"prep_time,omitempty"`
	CookTime     string   `json:"cook_time,omitempty"`
	Calories     *float64 `json:"calories,omitempty"`
	Protein      *float64 `json:"protein,omitempty"`
	Carbs        *float64 `json:"carbs,omitempty"`
	Fats         *float64 `json:"fats,omitempty"`
}
