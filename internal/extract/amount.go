package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/JustJay7/hukuk-okuyucu/internal/rules"
)

// AmountCategory is a monetary field of the record
type AmountCategory int

const (
	AttorneyFee AmountCategory = iota
	CourtCost
	StampDuty
)

// Field returns the record field the category is stored in
func (c AmountCategory) Field() Field {
	switch c {
	case AttorneyFee:
		return FieldAttorneyFee
	case CourtCost:
		return FieldCourtCost
	default:
		return FieldStampDuty
	}
}

var amountCategories = []AmountCategory{AttorneyFee, CourtCost, StampDuty}

// Amount token: "1.500,00", "1500,00" or "1.500" followed by a currency marker
var amountPattern = `(\d{1,3}(?:\.\d{3})+(?:,\d{2})?|\d+(?:,\d{2})?)\s*(?:` +
	Phrase("TL") + `|₺|` + Phrase("TÜRK LİRASI") + `)`

var amountRe = regexp.MustCompile(amountPattern)

// keyword is a compiled amount keyword. A framed keyword carries the
// amount inside its own match, in group 1.
type keyword struct {
	re     *regexp.Regexp
	framed bool
}

// AmountExtractor finds currency amounts next to category keywords
type AmountExtractor struct {
	keywords map[AmountCategory][]keyword
	window   int
}

// NewAmountExtractor compiles the keyword lists. window is the maximum gap
// in runes between a keyword and its amount.
func NewAmountExtractor(k rules.AmountKeywords, window int) (*AmountExtractor, error) {
	lists := map[AmountCategory][]string{
		AttorneyFee: k.AttorneyFee,
		CourtCost:   k.CourtCost,
		StampDuty:   k.StampDuty,
	}

	ae := &AmountExtractor{keywords: make(map[AmountCategory][]keyword), window: window}
	for cat, phrases := range lists {
		for _, p := range phrases {
			if left, right, ok := strings.Cut(p, "*"); ok {
				left, right = strings.TrimSpace(left), strings.TrimSpace(right)
				if left == "" || right == "" || strings.Contains(right, "*") {
					return nil, fmt.Errorf("amount keyword %q: \"*\" must appear once, between two phrases", p)
				}
				re := regexp.MustCompile(Phrase(left) + `\s*` + amountPattern + `\s*` + Phrase(right))
				ae.keywords[cat] = append(ae.keywords[cat], keyword{re: re, framed: true})
				continue
			}
			if re := anyPhrase([]string{p}); re != nil {
				ae.keywords[cat] = append(ae.keywords[cat], keyword{re: re})
			}
		}
		if len(ae.keywords[cat]) == 0 {
			return nil, errors.New("every amount category needs at least one keyword")
		}
	}
	return ae, nil
}

type span struct {
	start, end int
	value      string
}

// Extract fills the three monetary fields of rec from the focus window
func (ae *AmountExtractor) Extract(window string, rec *Record) {
	for _, cat := range amountCategories {
		rec.Set(cat.Field(), ae.Find(window, cat))
	}
}

// Find returns the amount for one category or AmountNotFound. Keywords are
// tried in priority order and, for each occurrence, the nearest amount
// ending within the window before the keyword is preferred over the
// nearest one starting within the window after it. A preceding amount is
// skipped when a clause break or another category keyword lies between
// them. A following amount is skipped when a keyword of another category
// comes right behind it in the same clause, as in "X TL vekalet ücreti".
func (ae *AmountExtractor) Find(window string, cat AmountCategory) string {
	amounts := findAmounts(window)
	if len(amounts) == 0 {
		return AmountNotFound
	}

	for _, kw := range ae.keywords[cat] {
		if kw.framed {
			if m := kw.re.FindStringSubmatch(window); m != nil {
				return FormatAmount(m[1])
			}
			continue
		}
		for _, loc := range kw.re.FindAllStringIndex(window, -1) {
			if a, ok := ae.before(window, amounts, loc[0]); ok && !ae.separated(window[a.end:loc[0]], cat) {
				return a.value
			}
			if a, ok := ae.after(window, amounts, loc[1]); ok && !ae.claimedByOther(window, a, cat) {
				return a.value
			}
		}
	}
	return AmountNotFound
}

func (ae *AmountExtractor) before(text string, amounts []span, pos int) (span, bool) {
	for i := len(amounts) - 1; i >= 0; i-- {
		a := amounts[i]
		if a.end > pos {
			continue
		}
		if utf8.RuneCountInString(text[a.end:pos]) <= ae.window {
			return a, true
		}
		return span{}, false
	}
	return span{}, false
}

func (ae *AmountExtractor) after(text string, amounts []span, pos int) (span, bool) {
	for _, a := range amounts {
		if a.start < pos {
			continue
		}
		if utf8.RuneCountInString(text[pos:a.start]) <= ae.window {
			return a, true
		}
		return span{}, false
	}
	return span{}, false
}

// claimedByOther reports whether a keyword of a different category follows
// the amount within the window, before any clause break
func (ae *AmountExtractor) claimedByOther(text string, a span, cat AmountCategory) bool {
	limit := a.end
	for n := 0; limit < len(text) && n < ae.window; n++ {
		_, size := utf8.DecodeRuneInString(text[limit:])
		limit += size
	}
	following := text[a.end:limit]
	if i := strings.IndexAny(following, ",;"); i >= 0 {
		following = following[:i]
	}
	return ae.hasOther(following, cat)
}

// separated reports whether the gap between a preceding amount and its
// keyword crosses a clause break or names another category
func (ae *AmountExtractor) separated(gap string, cat AmountCategory) bool {
	return strings.ContainsAny(gap, ",;") || ae.hasOther(gap, cat)
}

// hasOther reports whether s contains a keyword of a category other than cat
func (ae *AmountExtractor) hasOther(s string, cat AmountCategory) bool {
	for other, kws := range ae.keywords {
		if other == cat {
			continue
		}
		for _, kw := range kws {
			if kw.re.MatchString(s) {
				return true
			}
		}
	}
	return false
}

func findAmounts(text string) []span {
	locs := amountRe.FindAllStringSubmatchIndex(text, -1)
	spans := make([]span, 0, len(locs))
	for _, loc := range locs {
		// the tail of a number in another notation, e.g. "00 TL" of "1500.00 TL"
		if loc[0] > 0 && strings.ContainsRune("0123456789.,", rune(text[loc[0]-1])) {
			continue
		}
		spans = append(spans, span{start: loc[0], end: loc[1], value: FormatAmount(text[loc[2]:loc[3]])})
	}
	return spans
}

// FormatAmount rewrites a Turkish-formatted number as "N.NNN,NN TL"
func FormatAmount(raw string) string {
	intPart, frac := raw, "00"
	if i := strings.LastIndex(raw, ","); i >= 0 {
		intPart, frac = raw[:i], raw[i+1:]
	}
	intPart = strings.ReplaceAll(intPart, ".", "")
	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return b.String() + "," + frac + " TL"
}
