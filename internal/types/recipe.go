package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// AuthKey carries the caller's shared secret
type AuthKey struct {
	Key string `json:"key"`
}

// Ingredients is the caller's ordered ingredient list
type Ingredients struct {
	IngredientList []string `json:"ingredient_list" binding:"dive,required"`
}

// RecipeRequest represents the request body for POST /recipe/
type RecipeRequest struct {
	Key         AuthKey     `json:"key"`
	Ingredients Ingredients `json:"ingredients"`
}

// RecipeResponse is the payload returned for both feasible and infeasible requests
type RecipeResponse struct {
	Possible         bool          `json:"possible"`
	Reason           string        `json:"reason"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	Ingredients      NumberedItems `json:"ingredients"`
	Instructions     NumberedItems `json:"instructions"`
	ExtraIngredients NumberedItems `json:"extra_ingredients"`
	CompletionTokens int           `json:"completion_tokens"`
}

// NumberedItem is one enumerated entry as written by the completion provider
type NumberedItem struct {
	Number int
	Text   string
}

// NumberedItems is an ordered mapping of enumeration number to text. Numbers are kept
// exactly as the provider wrote them; a repeated number replaces the earlier text but
// keeps its original position.
type NumberedItems struct {
	items []NumberedItem
}

// Set inserts or replaces the text for number
func (n *NumberedItems) Set(number int, text string) {
	for i := range n.items {
		if n.items[i].Number == number {
			n.items[i].Text = text
			return
		}
	}
	n.items = append(n.items, NumberedItem{Number: number, Text: text})
}

// Get returns the text stored under number
func (n NumberedItems) Get(number int) (string, bool) {
	for _, it := range n.items {
		if it.Number == number {
			return it.Text, true
		}
	}
	return "", false
}

// Len returns the number of entries
func (n NumberedItems) Len() int {
	return len(n.items)
}

// Items returns the entries in encounter order
func (n NumberedItems) Items() []NumberedItem {
	out := make([]NumberedItem, len(n.items))
	copy(out, n.items)
	return out
}

// Map returns the entries as a plain map, losing order
func (n NumberedItems) Map() map[int]string {
	m := make(map[int]string, len(n.items))
	for _, it := range n.items {
		m[it.Number] = it.Text
	}
	return m
}

// MarshalJSON encodes the entries as a JSON object keyed by number, in encounter order.
func (n NumberedItems) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, it := range n.items {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(it.Number)))
		buf.WriteByte(':')
		text, err := json.Marshal(it.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(text)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keyed by number. Go maps do not keep order, so the
// decoded entries are sorted by number.
func (n *NumberedItems) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	items := make([]NumberedItem, 0, len(raw))
	for k, v := range raw {
		num, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("invalid item number %q: %w", k, err)
		}
		items = append(items, NumberedItem{Number: num, Text: v})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Number < items[j].Number })
	n.items = items
	return nil
}
