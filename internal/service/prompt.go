package service

import (
	"fmt"
	"strings"
)

// Section headers the recipe completion is asked to use, in the order they must appear.
// Extraction depends on this order.
const (
	HeaderTitle            = "Title"
	HeaderIngredients      = "Ingredients"
	HeaderInstructions     = "Instructions"
	HeaderExtraIngredients = "Extra Ingredients"
	HeaderDescription      = "Description"
)

// ReasonMarker precedes the explanation in a negative feasibility answer
const ReasonMarker = "Reason:"

const feasibilityQuestion = `
Is it possible to create a recipe with these ingredients? Please respond only with yes or no.
If the answer is no, add the reason on a new line in the format "Reason: <reason>".`

const recipeInstruction = `
Please suggest a recipe with these ingredients. Format the answer in the following sections:

"Title:" a title for the recipe
"Ingredients:" which lists the ingredients (enumerated)
"Instructions:" which describes how to make the recipe (enumerated)
"Extra Ingredients:" which lists extra ingredients that were not included above (enumerated)
"Description:" a description of the recipe written in an enticing manner
`

// ingredientBlock renders the shared "<n>. <ingredient>" listing, numbered from 1
func ingredientBlock(ingredients []string) string {
	var b strings.Builder
	b.WriteString("I have the following ingredients:\n\n")
	for i, ingredient := range ingredients {
		fmt.Fprintf(&b, "%d. %s\n", i+1, ingredient)
	}
	return b.String()
}

// BuildFeasibilityPrompt asks whether a recipe can be made from the ingredients
func BuildFeasibilityPrompt(ingredients []string) string {
	return ingredientBlock(ingredients) + feasibilityQuestion
}

// BuildRecipePrompt asks for the full recipe under the five section headers
func BuildRecipePrompt(ingredients []string) string {
	return ingredientBlock(ingredients) + recipeInstruction
}
