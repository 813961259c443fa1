// Package prompt builds the instruction strings sent to the generative
// model. Composition is deterministic and side-effect free: one template
// per request variant, optional clauses omitted entirely when their field
// is absent so the model never sees a dangling "Ingredienti da usare: ."
// style fragment.
package prompt

import (
	"fmt"
	"strings"

	"github.com/nutriflow/backend/internal/types"
)

// Profile is the slice of the user profile the composer needs. Zero
// values are replaced by the app-wide defaults at composition time.
type Profile struct {
	DietType      string
	Allergies     []string
	DislikedFoods []string
	Goals         string
}

const (
	// persona conditions the model's output style: strictly traditional
	// Italian cooking, no fusion substitutions. Changing this text changes
	// the quality of every generated plan, so treat it as part of the
	// output contract.
	persona = `Sei un nutrizionista e chef esperto della cucina ITALIANA. Conosci le ricette italiane da almeno 100 anni e non accetti variazioni (es. niente panna nella carbonara, solo guanciale). Affidati alla tradizione.`

	// nutritionalInfo forces the model to emit every recipe field,
	// estimated macros included, with numeric macro values.
	nutritionalInfo = `Per OGNI ricetta, DEVI fornire TUTTI i seguenti campi, inclusi i valori nutrizionali STIMATI: "meal", "title", "description", "ingredients" (array di stringhe), "instructions" (array di stringhe), "prep_time", "cook_time", "calories" (numero), "protein" (numero), "carbs" (numero), "fats" (numero).`

	defaultDiet    = "onnivoro"
	defaultAllergy = "nessuna"
	defaultDislike = "nessuno"
	defaultGoals   = "mangiare sano"
)

// FullPlan composes the instruction for a complete three-meal plan.
func FullPlan(p Profile, req types.GeneratePlanRequest) string {
	clauses := []string{
		persona,
		fmt.Sprintf("Crea un piano alimentare di 3 pasti (colazione, pranzo, cena) per un utente con le seguenti caratteristiche: Dieta: %s, Allergie: %s, Cibi non graditi: %s, Obiettivi: %s.",
			orDefault(p.DietType, defaultDiet),
			joinOrDefault(p.Allergies, defaultAllergy),
			joinOrDefault(p.DislikedFoods, defaultDislike),
			orDefault(p.Goals, defaultGoals)),
	}

	if v := deref(req.Ingredients); v != "" {
		clauses = append(clauses, fmt.Sprintf("- Ingredienti da usare: %s.", v))
	}
	if v := deref(req.BreakfastPreference); v != "" {
		clauses = append(clauses, fmt.Sprintf("- Preferenza colazione: %s.", v))
	}
	if v := deref(req.RecipeHint); v != "" {
		clauses = append(clauses, fmt.Sprintf("- Suggerimento piatto: %q.", v))
	}

	clauses = append(clauses,
		nutritionalInfo,
		`Rispondi ESATTAMENTE in formato JSON, con la struttura: { "recipes": [ { ...colazione... }, { ...pranzo... }, { ...cena... } ] }. Non aggiungere commenti prima o dopo il JSON.`,
	)

	return strings.Join(clauses, " ")
}

// RegenerateMeal composes the instruction for replacing a single meal.
// The discarded title and any accumulated discard history are excluded
// explicitly so the model does not repropose them.
func RegenerateMeal(p Profile, req types.RegenerateMealRequest) string {
	clauses := []string{
		persona,
		fmt.Sprintf("L'utente vuole rigenerare SOLO la ricetta per: %s.", req.MealToRegenerate),
	}

	if req.MealToDiscard != nil {
		if title := deref(req.MealToDiscard.Title); title != "" {
			clauses = append(clauses, fmt.Sprintf("L'utente ha scartato la ricetta %q.", title))
		}
	}
	if len(req.DiscardedMeals) > 0 {
		clauses = append(clauses, fmt.Sprintf("Inoltre, evita di riproporre queste ricette già scartate: %s.", strings.Join(req.DiscardedMeals, ", ")))
	}

	others := make([]string, 0, len(req.ExistingMeals))
	for _, meal := range req.ExistingMeals {
		others = append(others, fmt.Sprintf("- %s: %s", meal.Meal, meal.Title))
	}
	clauses = append(clauses,
		fmt.Sprintf("Gli altri pasti sono:\n%s.", strings.Join(others, "\n")),
		"La nuova ricetta deve essere DIVERSA, complementare e bilanciata.",
		fmt.Sprintf("Considera le preferenze dell'utente: Dieta: %s, Allergie: %s, Cibi non graditi: %s.",
			orDefault(p.DietType, defaultDiet),
			joinOrDefault(p.Allergies, defaultAllergy),
			joinOrDefault(p.DislikedFoods, defaultDislike)),
		`Fornisci UNA SOLA ricetta. Rispondi in formato JSON con la struttura: { "recipe": { ...dati ricetta... } }.`,
		nutritionalInfo,
	)

	return strings.Join(clauses, " ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func joinOrDefault(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
