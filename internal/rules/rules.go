// Package rules holds the ordered tables that drive text repair, section
// labelling, outcome and category classification and monetary keyword
// lookup. Defaults live in code; a YAML, JSON or TOML file can replace any
// table wholesale.
package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Substitution is one entry of the OCR repair table. Pattern is a Go
// regular expression and may carry its own flags, e.g. "(?i)".
type Substitution struct {
	Pattern     string `mapstructure:"pattern"`
	Replacement string `mapstructure:"replacement"`
}

// Label marks the start of a labelled section such as "DAVACI :".
// An empty Field makes it a stop label that only ends the previous section.
type Label struct {
	Phrase       string `mapstructure:"phrase"`
	Field        string `mapstructure:"field"`
	RequireColon bool   `mapstructure:"require_colon"`
}

// OutcomeRule maps any of its phrases to an outcome name.
type OutcomeRule struct {
	Name    string   `mapstructure:"name"`
	Phrases []string `mapstructure:"phrases"`
	Outcome string   `mapstructure:"outcome"`
}

// CategoryRule maps any of its phrases to a case category name.
type CategoryRule struct {
	Phrases  []string `mapstructure:"phrases"`
	Category string   `mapstructure:"category"`
}

// AmountKeywords lists keyword phrases per monetary category in priority order.
// A "*" in a phrase marks where the amount sits inside it, as in
// "bakiye * harç" for "bakiye 750,00 TL harcın".
type AmountKeywords struct {
	AttorneyFee []string `mapstructure:"attorney_fee"`
	CourtCost   []string `mapstructure:"court_cost"`
	StampDuty   []string `mapstructure:"stamp_duty"`
}

// Tables is the complete rule set consumed by the extractor.
type Tables struct {
	Substitutions []Substitution `mapstructure:"substitutions"`
	Labels        []Label        `mapstructure:"labels"`
	Outcomes      []OutcomeRule  `mapstructure:"outcomes"`
	Categories    []CategoryRule `mapstructure:"categories"`
	RulingStart   []string       `mapstructure:"ruling_start"`
	RulingEnd     []string       `mapstructure:"ruling_end"`
	BodyStart     []string       `mapstructure:"body_start"`
	Amounts       AmountKeywords `mapstructure:"amounts"`
}

// Load returns the default tables, overlaid with every table present in
// the file at path. An empty path returns the defaults.
func Load(path string) (Tables, error) {
	t := Default()
	if path == "" {
		return t, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Tables{}, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}

	err := overlay(v, "substitutions", &t.Substitutions)
	if err == nil {
		err = overlay(v, "labels", &t.Labels)
	}
	if err == nil {
		err = overlay(v, "outcomes", &t.Outcomes)
	}
	if err == nil {
		err = overlay(v, "categories", &t.Categories)
	}
	if err == nil {
		err = overlay(v, "ruling_start", &t.RulingStart)
	}
	if err == nil {
		err = overlay(v, "ruling_end", &t.RulingEnd)
	}
	if err == nil {
		err = overlay(v, "body_start", &t.BodyStart)
	}
	if err == nil {
		err = overlay(v, "amounts", &t.Amounts)
	}
	if err != nil {
		return Tables{}, err
	}

	if err := t.Validate(); err != nil {
		return Tables{}, err
	}
	return t, nil
}

// overlay replaces target with the table stored under key, if any. The
// table is decoded into a zero value so entries are never merged with the
// defaults.
func overlay[T any](v *viper.Viper, key string, target *T) error {
	if !v.IsSet(key) {
		return nil
	}
	var fresh T
	if err := v.UnmarshalKey(key, &fresh); err != nil {
		return fmt.Errorf("invalid %s table: %w", key, err)
	}
	*target = fresh
	return nil
}

// Validate compiles every substitution pattern, checks that the table is a
// fixed point of itself and that every phrase list is non-empty.
func (t Tables) Validate() error {
	compiled := make([]*regexp.Regexp, 0, len(t.Substitutions))
	for i, s := range t.Substitutions {
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return fmt.Errorf("substitution %d: %w", i, err)
		}
		compiled = append(compiled, re)
	}

	// Normalization must be idempotent, so no replacement may be matched
	// again by any entry of the table.
	for i, s := range t.Substitutions {
		for j, re := range compiled {
			if re.MatchString(s.Replacement) {
				return fmt.Errorf("substitution %d output %q is matched again by substitution %d", i, s.Replacement, j)
			}
		}
	}

	for i, l := range t.Labels {
		if strings.TrimSpace(l.Phrase) == "" {
			return fmt.Errorf("label %d has an empty phrase", i)
		}
	}
	for i, o := range t.Outcomes {
		if len(o.Phrases) == 0 || o.Outcome == "" {
			return fmt.Errorf("outcome rule %d needs phrases and an outcome", i)
		}
	}
	for i, c := range t.Categories {
		if len(c.Phrases) == 0 || c.Category == "" {
			return fmt.Errorf("category rule %d needs phrases and a category", i)
		}
	}
	if len(t.RulingStart) == 0 {
		return errors.New("ruling_start cannot be empty")
	}
	if len(t.Amounts.AttorneyFee) == 0 || len(t.Amounts.CourtCost) == 0 || len(t.Amounts.StampDuty) == 0 {
		return errors.New("every amount category needs at least one keyword")
	}
	for _, list := range [][]string{t.Amounts.AttorneyFee, t.Amounts.CourtCost, t.Amounts.StampDuty} {
		for _, k := range list {
			if !validAmountKeyword(k) {
				return fmt.Errorf("amount keyword %q: \"*\" must appear once, between two phrases", k)
			}
		}
	}
	return nil
}

func validAmountKeyword(k string) bool {
	switch strings.Count(k, "*") {
	case 0:
		return true
	case 1:
		left, right, _ := strings.Cut(k, "*")
		return strings.TrimSpace(left) != "" && strings.TrimSpace(right) != ""
	}
	return false
}
