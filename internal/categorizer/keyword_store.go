package categorizer

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"spendscribe/internal/logging"
	"spendscribe/internal/models"
)

// CategoryConfig is one category entry in the keywords YAML file.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig is the structure of the keywords YAML file.
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// LoadKeywordSets reads keyword sets from a YAML file. Entries keep their file
// order as the matching priority. Category names must be among the nine known
// labels; other is implicit and may not carry keywords.
func LoadKeywordSets(path string) ([]keywordSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading category keywords: %w", err)
	}

	var cfg CategoriesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing category keywords: %w", err)
	}
	if len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("category keywords file %s defines no categories", path)
	}

	sets := make([]keywordSet, 0, len(cfg.Categories))
	for _, c := range cfg.Categories {
		if !models.IsValidCategory(c.Name) {
			return nil, fmt.Errorf("unknown category %q in %s", c.Name, path)
		}
		if c.Name == models.CategoryOther {
			return nil, fmt.Errorf("category %q is the implicit fallback and may not carry keywords", c.Name)
		}
		sets = append(sets, keywordSet{category: c.Name, keywords: lowercaseAll(c.Keywords)})
	}
	return sets, nil
}

// NewKeywordCategorizerFromFile builds a keyword categorizer from a YAML
// file. An empty path or a load failure falls back to the built-in sets; the
// failure is logged, not fatal, so a broken override never disables offline
// categorization.
func NewKeywordCategorizerFromFile(path string, logger logging.Logger) *KeywordCategorizer {
	if path == "" {
		return NewKeywordCategorizer()
	}
	sets, err := LoadKeywordSets(path)
	if err != nil {
		logger.WithError(err).WithField("file", path).Warn("Failed to load category keywords, using built-in sets")
		return NewKeywordCategorizer()
	}
	logger.WithField("file", path).WithField(logging.FieldCount, len(sets)).Debug("Loaded category keywords")
	return &KeywordCategorizer{sets: sets}
}

func lowercaseAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, strings.ToLower(w))
	}
	return out
}
