package service

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pageza/pantry-chef/backend/internal/types"
)

// sectionOrder is the order the recipe prompt asks for. Each region runs from just
// after its header to the next header in this list; the last runs to end of text.
var sectionOrder = []string{
	HeaderTitle,
	HeaderIngredients,
	HeaderInstructions,
	HeaderExtraIngredients,
	HeaderDescription,
}

var sectionPatterns = buildSectionPatterns(sectionOrder)

var enumerationMarker = regexp.MustCompile(`(\d+)\.`)

// headerToken matches a header with optional markdown decoration, such as "Title:",
// "**Title:**", "**Title**:" or "## Title:". The decoration is never captured.
func headerToken(header string) string {
	return `(?:#+[ \t]*)?[*_]*` + regexp.QuoteMeta(header) + `[*_]*:[*_]*`
}

func buildSectionPatterns(order []string) map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(order))
	for i, header := range order {
		expr := `(?s)` + headerToken(header) + `\s*(.*)`
		if i+1 < len(order) {
			expr = `(?s)` + headerToken(header) + `\s*(.*?)` + headerToken(order[i+1])
		}
		patterns[header] = regexp.MustCompile(expr)
	}
	return patterns
}

// RecipeDocument is the structured form of a recipe completion
type RecipeDocument struct {
	Title            string
	Description      string
	Ingredients      types.NumberedItems
	Instructions     types.NumberedItems
	ExtraIngredients types.NumberedItems
	CompletionTokens int
}

// ExtractRecipe splits the recipe completion into its five sections. Every section
// must be present; a missing one fails the whole extraction.
func ExtractRecipe(result *CompletionResult) (*RecipeDocument, error) {
	sections := make(map[string]string, len(sectionOrder))
	for _, header := range sectionOrder {
		m := sectionPatterns[header].FindStringSubmatch(result.Text)
		if m == nil {
			return nil, &ParseError{Stage: "recipe", Missing: header}
		}
		sections[header] = m[1]
	}

	return &RecipeDocument{
		Title:            strings.TrimSpace(sections[HeaderTitle]),
		Description:      strings.TrimSpace(sections[HeaderDescription]),
		Ingredients:      ParseEnumeratedItems(sections[HeaderIngredients]),
		Instructions:     ParseEnumeratedItems(sections[HeaderInstructions]),
		ExtraIngredients: ParseEnumeratedItems(sections[HeaderExtraIngredients]),
		CompletionTokens: result.TotalTokens,
	}, nil
}

// ParseEnumeratedItems turns "1. A\n2. B" into {1: "A", 2: "B"}. A marker is a run of
// digits followed by "." at the start of the text or after whitespace, and not followed
// by another digit. Item text runs to the next marker or end of text and is trimmed.
// Numbers are kept as written. A marker whose number does not fit in an int still ends
// the previous item, but its own item is dropped.
func ParseEnumeratedItems(region string) types.NumberedItems {
	type marker struct {
		number     int
		valid      bool
		start, end int
	}

	var markers []marker
	for _, loc := range enumerationMarker.FindAllStringSubmatchIndex(region, -1) {
		start, end := loc[0], loc[1]
		if start > 0 {
			if prev, _ := utf8.DecodeLastRuneInString(region[:start]); !unicode.IsSpace(prev) {
				continue
			}
		}
		if end < len(region) && region[end] >= '0' && region[end] <= '9' {
			continue
		}
		number, err := strconv.Atoi(region[loc[2]:loc[3]])
		markers = append(markers, marker{number: number, valid: err == nil, start: start, end: end})
	}

	var items types.NumberedItems
	for i, m := range markers {
		if !m.valid {
			continue
		}
		stop := len(region)
		if i+1 < len(markers) {
			stop = markers[i+1].start
		}
		text := strings.TrimSpace(region[m.end:stop])
		if text == "" {
			continue
		}
		items.Set(m.number, text)
	}
	return items
}
