package categorizer

import (
	"strings"

	"spendscribe/internal/models"
)

// keywordSet binds one category label to the substrings that select it.
type keywordSet struct {
	category string
	keywords []string
}

// Default keyword sets, tested in this fixed priority order. The first set
// with a matching keyword wins; no match means other.
var defaultKeywordSets = []keywordSet{
	{models.CategoryGrocery, []string{
		"grocery", "supermarket", "store", "market", "food shopping",
		"walmart", "target", "costco",
	}},
	{models.CategoryFoodDrink, []string{
		"coffee", "lunch", "dinner", "breakfast", "restaurant", "cafe",
		"food", "drink", "beer", "wine", "snack", "meal",
	}},
	{models.CategoryEntertainment, []string{
		"movie", "cinema", "theater", "game", "entertainment", "concert",
		"show", "netflix", "spotify",
	}},
	{models.CategoryTransportation, []string{
		"bus", "taxi", "uber", "lyft", "gas", "fuel", "parking", "train",
		"subway", "transport",
	}},
	{models.CategoryShopping, []string{
		"shopping", "clothes", "clothing", "shoes", "electronics", "amazon",
		"purchase",
	}},
	{models.CategoryUtilities, []string{
		"electric", "water", "internet", "phone", "utility", "bill", "rent",
	}},
	{models.CategoryHealthcare, []string{
		"doctor", "medicine", "pharmacy", "hospital", "health", "medical",
	}},
	{models.CategoryEducation, []string{
		"school", "book", "course", "education", "tuition", "class",
	}},
}

// KeywordCategorizer maps an item description to one category via keyword
// sets. It is a pure function over its configured sets: no I/O, cannot fail.
type KeywordCategorizer struct {
	sets []keywordSet
}

// NewKeywordCategorizer returns a categorizer using the built-in keyword sets.
func NewKeywordCategorizer() *KeywordCategorizer {
	return &KeywordCategorizer{sets: defaultKeywordSets}
}

// Categorize returns the label of the first keyword set matching the item,
// or other when nothing matches.
func (k *KeywordCategorizer) Categorize(item string) string {
	itemLower := strings.ToLower(item)
	for _, set := range k.sets {
		for _, keyword := range set.keywords {
			if strings.Contains(itemLower, keyword) {
				return set.category
			}
		}
	}
	return models.CategoryOther
}

// Flags categorizes the item and returns the corresponding flag set with
// exactly one flag true.
func (k *KeywordCategorizer) Flags(item string) models.CategoryFlags {
	return models.FlagsFor(k.Categorize(item))
}
