// Package categorizer assigns one of the nine category flags to an expense
// item. Categorization is attempted with the hosted model first when one is
// configured and falls back silently to deterministic keyword matching on any
// failure, so the caller always gets a usable flag set.
package categorizer

import (
	"context"
	"fmt"

	"spendscribe/internal/errs"
	"spendscribe/internal/logging"
	"spendscribe/internal/models"
)

// AIClient is the slice of the hosted-AI accessor this package needs.
type AIClient interface {
	CategorizeItem(ctx context.Context, item string) (string, error)
}

// Categorizer is the categorization front door: hosted model first, keyword
// sets as the deterministic fallback.
type Categorizer struct {
	ai       AIClient
	keywords *KeywordCategorizer
	logger   logging.Logger
}

// New creates a Categorizer. ai may be nil, in which case only the keyword
// path runs.
func New(ai AIClient, keywords *KeywordCategorizer, logger logging.Logger) *Categorizer {
	if keywords == nil {
		keywords = NewKeywordCategorizer()
	}
	return &Categorizer{
		ai:       ai,
		keywords: keywords,
		logger:   logger,
	}
}

// Categorize maps an item description to a flag set with exactly one flag
// set. A hosted-model failure or an unrecognized label is never surfaced: the
// keyword path answers instead.
func (c *Categorizer) Categorize(ctx context.Context, item string) models.CategoryFlags {
	if c.ai != nil {
		label, err := c.categorizeHosted(ctx, item)
		if err == nil {
			c.logger.WithFields(
				logging.Field{Key: logging.FieldItem, Value: item},
				logging.Field{Key: logging.FieldCategory, Value: label},
			).Debug("Item categorized by hosted model")
			return models.FlagsFor(label)
		}
		c.logger.WithError(err).WithField(logging.FieldItem, item).Warn("Hosted categorization failed, falling back to keywords")
	}

	flags := c.keywords.Flags(item)
	c.logger.WithFields(
		logging.Field{Key: logging.FieldItem, Value: item},
		logging.Field{Key: logging.FieldCategory, Value: flags.Category()},
	).Debug("Item categorized by keywords")
	return flags
}

// categorizeHosted asks the hosted model for a label. Failures and labels
// outside the nine known categories come back as a CategorizationError.
func (c *Categorizer) categorizeHosted(ctx context.Context, item string) (string, error) {
	label, err := c.ai.CategorizeItem(ctx, item)
	if err != nil {
		return "", &errs.CategorizationError{Item: item, Strategy: "hosted model", Err: err}
	}
	if !models.IsValidCategory(label) {
		return "", &errs.CategorizationError{Item: item, Strategy: "hosted model", Err: fmt.Errorf("unknown category %q", label)}
	}
	return label, nil
}
