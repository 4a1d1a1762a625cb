package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const soupCompletion = "Title: Soup\nIngredients:\n1. Water\n2. Salt\nInstructions:\n1. Boil\nExtra Ingredients:\n1. Pepper\nDescription: Tasty."

func TestExtractRecipe_WellFormed(t *testing.T) {
	doc, err := ExtractRecipe(&CompletionResult{Text: soupCompletion, TotalTokens: 120})
	require.NoError(t, err)

	assert.Equal(t, "Soup", doc.Title)
	assert.Equal(t, "Tasty.", doc.Description)
	assert.Equal(t, map[int]string{1: "Water", 2: "Salt"}, doc.Ingredients.Map())
	assert.Equal(t, map[int]string{1: "Boil"}, doc.Instructions.Map())
	assert.Equal(t, map[int]string{1: "Pepper"}, doc.ExtraIngredients.Map())
	assert.Equal(t, 120, doc.CompletionTokens)
}

func TestExtractRecipe_ProviderStyleOutput(t *testing.T) {
	text := `

Title: Tomato Basil Bruschetta

Ingredients:
1. 4 ripe tomatoes, diced
2. 1/4 cup fresh basil
3. 2 cloves garlic

Instructions:
1. Preheat the oven to 200C.
2. Toast the bread until golden.
3. Mix tomatoes, basil and garlic, then spoon over the toast.

Extra Ingredients:
1. Baguette
2. 1.5 tbsp olive oil

Description: Bright, garlicky and ready in minutes,
this bruschetta tastes like summer.
`
	doc, err := ExtractRecipe(&CompletionResult{Text: text, TotalTokens: 300})
	require.NoError(t, err)

	assert.Equal(t, "Tomato Basil Bruschetta", doc.Title)
	assert.Equal(t, "Bright, garlicky and ready in minutes,\nthis bruschetta tastes like summer.", doc.Description)
	assert.Equal(t, map[int]string{1: "4 ripe tomatoes, diced", 2: "1/4 cup fresh basil", 3: "2 cloves garlic"}, doc.Ingredients.Map())
	assert.Equal(t, 3, doc.Instructions.Len())
	assert.Equal(t, map[int]string{1: "Baguette", 2: "1.5 tbsp olive oil"}, doc.ExtraIngredients.Map())
}

func TestExtractRecipe_MissingSection(t *testing.T) {
	tests := map[string]string{
		"title":        "Ingredients:\n1. A\nInstructions:\n1. B\nExtra Ingredients:\n1. C\nDescription: D",
		"ingredients":  "Title: T\nInstructions:\n1. B\nExtra Ingredients:\n1. C\nDescription: D",
		"instructions": "Title: T\nIngredients:\n1. A\nExtra Ingredients:\n1. C\nDescription: D",
		"extra":        "Title: T\nIngredients:\n1. A\nInstructions:\n1. B\nDescription: D",
		"description":  "Title: T\nIngredients:\n1. A\nInstructions:\n1. B\nExtra Ingredients:\n1. C",
		"out of order": "Title: T\nDescription: D\nIngredients:\n1. A\nInstructions:\n1. B\nExtra Ingredients:\n1. C",
		"empty":        "",
	}

	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			doc, err := ExtractRecipe(&CompletionResult{Text: text})
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, ErrResponseParse)
		})
	}
}

func TestExtractRecipe_EmptyListSections(t *testing.T) {
	text := "Title: Toast\nIngredients:\nInstructions: just toast it\nExtra Ingredients: none\nDescription: Crunchy."

	doc, err := ExtractRecipe(&CompletionResult{Text: text})
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Ingredients.Len())
	assert.Equal(t, 0, doc.Instructions.Len())
	assert.Equal(t, 0, doc.ExtraIngredients.Len())
	assert.Equal(t, "Crunchy.", doc.Description)
}

func TestParseEnumeratedItems(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want map[int]string
	}{
		{name: "contiguous", in: "1. A\n2. B\n3. C", want: map[int]string{1: "A", 2: "B", 3: "C"}},
		{name: "gap kept", in: "1. A\n3. B", want: map[int]string{1: "A", 3: "B"}},
		{name: "does not start at one", in: "4. A\n5. B", want: map[int]string{4: "A", 5: "B"}},
		{name: "single line", in: "1. Water 2. Salt", want: map[int]string{1: "Water", 2: "Salt"}},
		{name: "no space after dot", in: "1.Water\n2.Salt", want: map[int]string{1: "Water", 2: "Salt"}},
		{name: "surrounding whitespace trimmed", in: "\n\n  1.   Water  \n\n2. Salt\n\n", want: map[int]string{1: "Water", 2: "Salt"}},
		{name: "decimal is not a marker", in: "1. 1.5 cups flour\n2. 2.25 oz butter", want: map[int]string{1: "1.5 cups flour", 2: "2.25 oz butter"}},
		{name: "item wraps lines", in: "1. Stir\nslowly\n2. Serve", want: map[int]string{1: "Stir\nslowly", 2: "Serve"}},
		{name: "digits inside word ignored", in: "1. Use a size10. pan", want: map[int]string{1: "Use a size10. pan"}},
		{name: "empty item skipped", in: "1.\n2. B", want: map[int]string{2: "B"}},
		{name: "oversized number ends previous item", in: "1. Water\n99999999999999999999. Salt\n3. Pepper", want: map[int]string{1: "Water", 3: "Pepper"}},
		{name: "no markers", in: "none", want: map[int]string{}},
		{name: "empty", in: "", want: map[int]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseEnumeratedItems(tt.in).Map())
		})
	}
}

func TestParseEnumeratedItems_RepeatedNumber(t *testing.T) {
	items := ParseEnumeratedItems("1. A\n2. B\n1. C")

	require.Equal(t, 2, items.Len())
	first := items.Items()[0]
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, "C", first.Text)
}

func TestExtractRecipe_MarkdownHeaders(t *testing.T) {
	text := "**Title:** Soup\n\n**Ingredients:**\n1. Water\n2. Salt\n\n## Instructions:\n1. Boil\n\n" +
		"**Extra Ingredients**:\n1. Pepper\n\n__Description:__ Tasty."

	doc, err := ExtractRecipe(&CompletionResult{Text: text, TotalTokens: 90})
	require.NoError(t, err)

	assert.Equal(t, "Soup", doc.Title)
	assert.Equal(t, "Tasty.", doc.Description)
	assert.Equal(t, map[int]string{1: "Water", 2: "Salt"}, doc.Ingredients.Map())
	assert.Equal(t, map[int]string{1: "Boil"}, doc.Instructions.Map())
	assert.Equal(t, map[int]string{1: "Pepper"}, doc.ExtraIngredients.Map())
}
