// Package expenseparse extracts a structured expense (amount, item, date)
// from a free-text utterance without calling any hosted model. It is the
// deterministic fallback used whenever the hosted parser is unreachable or
// returns garbage.
package expenseparse

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"spendscribe/internal/dateparse"
	"spendscribe/internal/errs"
	"spendscribe/internal/models"
	"spendscribe/internal/textutils"
)

// Amount patterns are tried in order on the lowercased text; the first match
// wins. The bare-number pattern is last so "$12.50" is not read as "12".
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$(\d+(?:\.\d{2})?)`),
	regexp.MustCompile(`(\d+(?:\.\d{2})?) dollars?`),
	regexp.MustCompile(`(\d+(?:\.\d{2})?) bucks?`),
	regexp.MustCompile(`spent (\d+(?:\.\d{2})?)`),
	regexp.MustCompile(`paid (\d+(?:\.\d{2})?)`),
	regexp.MustCompile(`cost (\d+(?:\.\d{2})?)`),
	regexp.MustCompile(`(\d+(?:\.\d{2})?)`),
}

// Expense-related filler words stripped from the item description.
var fillerWords = textutils.CompileWordPatterns([]string{
	"i spent", "spent", "paid", "cost", "costs", "costed",
	"bought", "purchase", "purchased", "for", "on", "at",
	"dollars", "dollar", "bucks", "buck", "$", "money",
	"today", "yesterday", "this morning", "this afternoon",
	"tonight", "earlier", "just", "about", "around",
})

// Secondary item extraction for when stripping filler words leaves nothing.
var itemPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:for|on)\s+(.+?)(?:\s|$)`),
	regexp.MustCompile(`(?i)(.+?)\s+(?:cost|costs)`),
	regexp.MustCompile(`(?i)bought\s+(.+?)(?:\s|$)`),
}

const unknownItem = "Unknown Item"

// Parse extracts an expense from text, resolving relative dates against the
// current time.
func Parse(text string) (*models.ParsedExpense, error) {
	return ParseAt(text, time.Now())
}

// ParseAt is Parse with an explicit reference instant for date resolution.
// It returns an ExtractionError when no positive amount can be located.
func ParseAt(text string, ref time.Time) (*models.ParsedExpense, error) {
	normalized := strings.ToLower(strings.TrimSpace(text))

	var amount decimal.Decimal
	var matched string
	for _, re := range amountPatterns {
		if m := re.FindStringSubmatch(normalized); m != nil {
			amount, _ = decimal.NewFromString(m[1])
			matched = m[0]
			break
		}
	}
	if !amount.IsPositive() {
		return nil, &errs.ExtractionError{Text: text, Reason: "no positive amount found"}
	}

	item := strings.TrimSpace(strings.Replace(text, matched, "", 1))

	clean := strings.ToLower(item)
	clean = textutils.RemoveWords(clean, fillerWords)
	clean = textutils.CollapseWhitespace(clean)
	clean = textutils.TitleCase(clean)

	if len(clean) < 2 {
		clean = extractItemFromPhrases(text)
	}
	if len(clean) < 2 {
		clean = unknownItem
	}

	return &models.ParsedExpense{
		Amount: amount,
		Item:   clean,
		Date:   dateparse.Resolve(text, ref),
	}, nil
}

func extractItemFromPhrases(text string) string {
	for _, re := range itemPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		if len(candidate) > 1 {
			return textutils.TitleCase(candidate)
		}
	}
	return ""
}
