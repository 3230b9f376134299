package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/JustJay7/hukuk-okuyucu/internal/rules"
)

// FieldRule is one entry of the regex battery. Patterns are tried in
// order and the first match wins; group 1 holds the value.
type FieldRule struct {
	Field    Field
	Patterns []*regexp.Regexp
	Clean    func(string) string
}

var (
	caseNoTail = `\s*[:;]?\s*(\d{4}\s*/\s*\d+)`
	dateTail   = `\s*[:;]?\s*(\d{1,2}[./-]\d{1,2}[./-]\d{4})`
	spaceRe    = regexp.MustCompile(`\s+`)

	courtMarkers = regexp.MustCompile(
		`(?:` + Phrase("ESAS NO") + `|` + Phrase("KARAR NO") + `|` + Phrase("DOSYA NO") + `)\s*[:;]?\s*(?:\d{4}\s*/\s*\d+)?` +
			`|` + Phrase("GEREKÇELİ KARAR") +
			`|` + Phrase("TÜRKİYE CUMHURİYETİ") +
			`|\bT\s*\.\s*C\s*\.`)
)

// DefaultFieldRules returns the regex battery for the fixed-shape fields
func DefaultFieldRules() []FieldRule {
	numberLabel := func(word string) string {
		return Phrase(word) + `(?:\s*(?:` + Phrase("NUMARASI") + `|` + Phrase("SAYISI") + `|` + Phrase("NO") + `))?\.?`
	}
	courtEnd := `(?:` + Phrase("MAHKEMESİ") + `|` + Phrase("DAİRESİ") + `)`

	return []FieldRule{
		{
			Field: FieldCourtName,
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`T\s*\.\s*C\s*\.\s*(.{3,150}?` + courtEnd + `)`),
				regexp.MustCompile(`((?:[0-9A-ZÇĞİÖŞÜÂ.]+\s+){1,6}(?:MAHKEMESİ|DAİRESİ))`),
			},
			Clean: cleanCourtName,
		},
		{
			Field:    FieldCaseNumber,
			Patterns: []*regexp.Regexp{regexp.MustCompile(numberLabel("ESAS") + caseNoTail)},
			Clean:    cleanNumber,
		},
		{
			Field:    FieldDecisionNumber,
			Patterns: []*regexp.Regexp{regexp.MustCompile(numberLabel("KARAR") + caseNoTail)},
			Clean:    cleanNumber,
		},
		{
			Field:    FieldFilingDate,
			Patterns: []*regexp.Regexp{regexp.MustCompile(Phrase("DAVA TARİHİ") + dateTail)},
			Clean:    cleanDate,
		},
		{
			Field:    FieldDecisionDate,
			Patterns: []*regexp.Regexp{regexp.MustCompile(Phrase("KARAR TARİHİ") + dateTail)},
			Clean:    cleanDate,
		},
		{
			Field:    FieldWrittenDate,
			Patterns: []*regexp.Regexp{regexp.MustCompile(Phrase("YAZIM TARİHİ") + dateTail)},
			Clean:    cleanDate,
		},
	}
}

type sectionLabel struct {
	re    *regexp.Regexp
	field string
}

type labelHit struct {
	start, end int
	field      string
}

type categoryRule struct {
	re       *regexp.Regexp
	category Category
}

// FieldExtractor pulls the identifying fields of a decision out of
// normalized text
type FieldExtractor struct {
	battery    []FieldRule
	labels     []sectionLabel
	bodyStart  *regexp.Regexp
	categories []categoryRule
}

// NewFieldExtractor compiles section labels and category rules from the tables
func NewFieldExtractor(t rules.Tables) (*FieldExtractor, error) {
	fe := &FieldExtractor{battery: DefaultFieldRules(), bodyStart: anyPhrase(t.BodyStart)}

	for i, l := range t.Labels {
		if strings.TrimSpace(l.Phrase) == "" {
			return nil, fmt.Errorf("label %d has an empty phrase", i)
		}
		if l.Field != "" && l.Field != rules.FieldCounsel && !isSectionField(Field(l.Field)) {
			return nil, fmt.Errorf("label %q targets unknown field %q", l.Phrase, l.Field)
		}
		pattern := Phrase(l.Phrase)
		if l.RequireColon {
			pattern += `\s*[:;]`
		} else {
			pattern += `(?:\s*[:;])?`
		}
		fe.labels = append(fe.labels, sectionLabel{re: regexp.MustCompile(pattern), field: l.Field})
	}

	for i, c := range t.Categories {
		cat := Category(c.Category)
		if !cat.Valid() {
			return nil, fmt.Errorf("category rule %d: unknown category %q", i, c.Category)
		}
		re := anyPhrase(c.Phrases)
		if re == nil {
			return nil, fmt.Errorf("category rule %d has no phrases", i)
		}
		fe.categories = append(fe.categories, categoryRule{re: re, category: cat})
	}

	return fe, nil
}

func isSectionField(f Field) bool {
	switch f {
	case FieldPlaintiff, FieldPlaintiffCounsel, FieldDefendant, FieldDefendantCounsel, FieldCaseSubject:
		return true
	}
	return false
}

// Extract fills the identifying fields of rec from normalized text. Any
// field without a match keeps its placeholder.
func (fe *FieldExtractor) Extract(text string, rec *Record) {
	for _, rule := range fe.battery {
		for _, re := range rule.Patterns {
			m := re.FindStringSubmatch(text)
			if len(m) < 2 {
				continue
			}
			value := cleanValue(m[1])
			if rule.Clean != nil {
				value = rule.Clean(value)
			}
			if value != "" {
				rec.Set(rule.Field, value)
				break
			}
		}
	}

	for field, value := range fe.Sections(text) {
		rec.Set(field, value)
	}

	rec.Set(FieldCaseCategory, string(fe.Category(rec.CourtName, text)))
}

// Sections runs the labelled-section parser. Every label occurrence is
// located first; a section runs from the end of its label to the start of
// the next label of any kind, a body opener such as "Davacı vekili dava
// dilekçesinde" or the field bound, whichever comes first. The first
// non-empty section of each field wins.
func (fe *FieldExtractor) Sections(text string) map[Field]string {
	hits := fe.findLabels(text)
	found := make(map[Field]string)
	lastParty := Field("")

	for i, h := range hits {
		field := Field(h.field)
		switch field {
		case "":
			continue
		case FieldPlaintiff, FieldDefendant:
			lastParty = field
		case Field(rules.FieldCounsel):
			switch lastParty {
			case FieldPlaintiff:
				field = FieldPlaintiffCounsel
			case FieldDefendant:
				field = FieldDefendantCounsel
			default:
				continue
			}
		}
		if _, ok := found[field]; ok {
			continue
		}

		end := len(text)
		if i+1 < len(hits) {
			end = hits[i+1].start
		}
		if fe.bodyStart != nil {
			if loc := fe.bodyStart.FindStringIndex(text[h.end:end]); loc != nil {
				end = h.end + loc[0]
			}
		}
		value := truncate(cleanValue(text[h.end:end]), MaxLen(field))
		value = cleanValue(value)
		if value != "" {
			found[field] = value
		}
	}
	return found
}

// findLabels returns non-overlapping label hits ordered by position. At the
// same start the longest label wins, so "DAVACI VEKİLİ :" is never read as
// "DAVACI".
func (fe *FieldExtractor) findLabels(text string) []labelHit {
	var all []labelHit
	for _, l := range fe.labels {
		for _, loc := range l.re.FindAllStringIndex(text, -1) {
			all = append(all, labelHit{start: loc[0], end: loc[1], field: l.field})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].start != all[j].start {
			return all[i].start < all[j].start
		}
		return all[i].end > all[j].end
	})

	hits := make([]labelHit, 0, len(all))
	lastEnd := -1
	for _, h := range all {
		if h.start < lastEnd {
			continue
		}
		hits = append(hits, h)
		lastEnd = h.end
	}
	return hits
}

// Category infers the case category, trying the court name before the
// full text. Rules are evaluated in order and the first match wins.
func (fe *FieldExtractor) Category(courtName, text string) Category {
	if courtName != "" && courtName != Placeholder {
		for _, rule := range fe.categories {
			if rule.re.MatchString(courtName) {
				return rule.category
			}
		}
	}
	for _, rule := range fe.categories {
		if rule.re.MatchString(text) {
			return rule.category
		}
	}
	return CategoryUnknown
}

// cleanValue trims whitespace and stray punctuation left by the label
func cleanValue(s string) string {
	return strings.Trim(strings.TrimSpace(s), " :;,\"'“”‘’")
}

// cleanCourtName removes header words that the court pattern may swallow
// between the "T.C." prefix and the court keyword
func cleanCourtName(s string) string {
	s = courtMarkers.ReplaceAllString(s, " ")
	s = spaceRe.ReplaceAllString(s, " ")
	return cleanValue(s)
}

func cleanNumber(s string) string {
	return spaceRe.ReplaceAllString(s, "")
}

// cleanDate rewrites d/m/yyyy variants as dd.mm.yyyy and keeps anything
// it cannot parse unchanged
func cleanDate(s string) string {
	formats := []string{"2.1.2006", "2/1/2006", "2-1-2006"}
	for _, format := range formats {
		if date, err := time.Parse(format, s); err == nil {
			return date.Format("02.01.2006")
		}
	}
	return s
}
