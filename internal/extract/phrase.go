package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// Letters that OCR and font maps confuse in Turkish documents. Every
// member of a group matches every other member, in either case.
var letterGroups = []string{
	"IİıiÎî",
	"CÇcç",
	"SŞsş",
	"GĞgğ",
	"UÜuüÛû",
	"OÖoö",
	"AÂaâ",
}

var letterClass = func() map[rune]string {
	m := make(map[rune]string)
	for _, g := range letterGroups {
		class := "[" + g + "]"
		for _, r := range g {
			m[r] = class
		}
	}
	return m
}()

// Phrase turns a plain phrase into a case- and diacritic-tolerant pattern.
// Spaces match any run of whitespace including none, and a colon may be
// preceded by whitespace. The regexp (?i) flag is never used because Go
// case folding does not pair the Turkish dotted and dotless i.
func Phrase(phrase string) string {
	var b strings.Builder
	for _, r := range phrase {
		switch {
		case r == ' ':
			b.WriteString(`\s*`)
		case r == ':':
			b.WriteString(`\s*:`)
		case letterClass[r] != "":
			b.WriteString(letterClass[r])
		case unicode.IsLetter(r):
			upper, lower := unicode.ToUpper(r), unicode.ToLower(r)
			if upper == lower {
				b.WriteString(regexp.QuoteMeta(string(r)))
				continue
			}
			b.WriteString("[" + string(upper) + string(lower) + "]")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String()
}

// anyPhrase compiles a non-capturing alternation of phrases.
func anyPhrase(phrases []string) *regexp.Regexp {
	parts := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if strings.TrimSpace(p) == "" {
			continue
		}
		parts = append(parts, Phrase(p))
	}
	if len(parts) == 0 {
		return nil
	}
	return regexp.MustCompile("(?:" + strings.Join(parts, "|") + ")")
}
