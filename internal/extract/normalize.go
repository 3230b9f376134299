package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/JustJay7/hukuk-okuyucu/internal/rules"
)

type substitution struct {
	re          *regexp.Regexp
	replacement string
}

// Normalizer turns raw PDF text into a single whitespace-collapsed line
// with known OCR corruptions repaired
type Normalizer struct {
	table []substitution
}

// NewNormalizer compiles the ordered substitution table
func NewNormalizer(table []rules.Substitution) (*Normalizer, error) {
	n := &Normalizer{table: make([]substitution, 0, len(table))}
	for i, s := range table {
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return nil, fmt.Errorf("substitution %d: %w", i, err)
		}
		n.table = append(n.table, substitution{re: re, replacement: s.Replacement})
	}
	return n, nil
}

// Normalize applies, in order: Unicode NFC, whitespace collapse, the
// substitution table, the digit question-mark repair and a final collapse.
// It never fails and Normalize(Normalize(s)) == Normalize(s).
func (n *Normalizer) Normalize(text string) string {
	text = norm.NFC.String(text)
	text = collapseSpace(text)
	for _, s := range n.table {
		text = s.re.ReplaceAllLiteralString(text, s.replacement)
	}
	text = repairDigitQuestionMarks(text)
	return collapseSpace(text)
}

// collapseSpace joins the text on single spaces. strings.Fields splits on
// every Unicode space, so line breaks, tabs and NBSP all collapse.
func collapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// repairDigitQuestionMarks handles '?' glyphs that OCR produces in place of
// an unreadable digit. A run of '?' directly after a digit becomes zeros
// when a digit follows, either immediately or after a single '.' or ','
// separator; any other such run is dropped. "2.04?,30" -> "2.040,30",
// "1?5" -> "105", "150? TL" -> "150 TL". This assumes every such glyph was
// a zero and can damage a genuine question mark written after a number.
func repairDigitQuestionMarks(text string) string {
	if !strings.Contains(text, "?") {
		return text
	}

	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '?' || i == 0 || !unicode.IsDigit(runes[i-1]) {
			b.WriteRune(r)
			continue
		}

		j := i
		for j < len(runes) && runes[j] == '?' {
			j++
		}
		if digitFollows(runes, j) {
			b.WriteString(strings.Repeat("0", j-i))
		}
		i = j - 1
	}
	return b.String()
}

func digitFollows(runes []rune, at int) bool {
	if at < len(runes) && unicode.IsDigit(runes[at]) {
		return true
	}
	if at+1 < len(runes) && (runes[at] == '.' || runes[at] == ',') && unicode.IsDigit(runes[at+1]) {
		return true
	}
	return false
}
