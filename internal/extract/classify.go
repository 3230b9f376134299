package extract

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/JustJay7/hukuk-okuyucu/internal/rules"
)

// Category is the inferred branch of law of a decision
type Category string

const (
	CategoryPrivateLaw     Category = "private-law"
	CategoryCriminal       Category = "criminal"
	CategoryAdministrative Category = "administrative"
	CategoryEnforcement    Category = "enforcement"
	CategoryUnknown        Category = "unknown"
)

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryPrivateLaw, CategoryCriminal, CategoryAdministrative, CategoryEnforcement, CategoryUnknown:
		return true
	}
	return false
}

// Label returns the Turkish display name
func (c Category) Label() string {
	switch c {
	case CategoryPrivateLaw:
		return "Özel Hukuk"
	case CategoryCriminal:
		return "Ceza"
	case CategoryAdministrative:
		return "İdari"
	case CategoryEnforcement:
		return "İcra"
	}
	return "Bilinmiyor"
}

// Outcome is the operative result of a decision
type Outcome string

const (
	OutcomeAccepted          Outcome = "accepted"
	OutcomeRejected          Outcome = "rejected"
	OutcomePartiallyAccepted Outcome = "partially-accepted"
	OutcomeUndetermined      Outcome = "undetermined"
)

// Valid reports whether o is one of the known outcomes
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeAccepted, OutcomeRejected, OutcomePartiallyAccepted, OutcomeUndetermined:
		return true
	}
	return false
}

// Label returns the Turkish display name
func (o Outcome) Label() string {
	switch o {
	case OutcomeAccepted:
		return "Kabul"
	case OutcomeRejected:
		return "Red"
	case OutcomePartiallyAccepted:
		return "Kısmen Kabul"
	}
	return "Belirsiz"
}

// Party labels used for winner and loser
const (
	PartyClaimant   = "Davacı"
	PartyRespondent = "Davalı"
	PartyShared     = "Taraflar (kısmi)"
)

// Verdict is the classification result with its derived labels
type Verdict struct {
	Rule             string
	Outcome          Outcome
	Winner           string
	Loser            string
	PaymentDirection string
}

// VerdictFor derives winner, loser and payment direction from an outcome
func VerdictFor(o Outcome) Verdict {
	switch o {
	case OutcomeAccepted:
		return Verdict{Outcome: o, Winner: PartyClaimant, Loser: PartyRespondent, PaymentDirection: "Davalı, davacıya öder"}
	case OutcomeRejected:
		return Verdict{Outcome: o, Winner: PartyRespondent, Loser: PartyClaimant, PaymentDirection: "Davacı kendi giderini karşılar"}
	case OutcomePartiallyAccepted:
		return Verdict{Outcome: o, Winner: PartyShared, Loser: PartyShared, PaymentDirection: "Kabul/red oranında paylaştırılır"}
	}
	return Verdict{Outcome: OutcomeUndetermined, Winner: Placeholder, Loser: Placeholder, PaymentDirection: Placeholder}
}

// OutcomeRule is one compiled entry of the ordered classification chain
type OutcomeRule struct {
	Name    string
	Pattern *regexp.Regexp
	Outcome Outcome
}

// Classifier buckets the ruling of a decision using an ordered rule chain
type Classifier struct {
	rules       []OutcomeRule
	rulingStart []*regexp.Regexp
	rulingEnd   *regexp.Regexp
	window      int
}

// NewClassifier compiles the outcome rules and ruling-block keywords.
// window is the trailing fallback focus window in runes.
func NewClassifier(t rules.Tables, window int) (*Classifier, error) {
	c := &Classifier{window: window, rulingEnd: anyPhrase(t.RulingEnd)}

	for i, r := range t.Outcomes {
		o := Outcome(r.Outcome)
		if !o.Valid() || o == OutcomeUndetermined {
			return nil, fmt.Errorf("outcome rule %d: unusable outcome %q", i, r.Outcome)
		}
		re := anyPhrase(r.Phrases)
		if re == nil {
			return nil, fmt.Errorf("outcome rule %d has no phrases", i)
		}
		name := r.Name
		if name == "" {
			name = r.Outcome
		}
		c.rules = append(c.rules, OutcomeRule{Name: name, Pattern: re, Outcome: o})
	}

	for _, p := range t.RulingStart {
		if re := anyPhrase([]string{p}); re != nil {
			c.rulingStart = append(c.rulingStart, re)
		}
	}

	return c, nil
}

// Rules returns the ordered rule chain
func (c *Classifier) Rules() []OutcomeRule {
	return c.rules
}

// FocusWindow returns the ruling block when one can be located, otherwise
// the trailing window of the text. Start keywords are tried in order and
// the last occurrence of the first keyword found is used, since the same
// words appear earlier in the parties' requests. The block ends at the
// last closing-clause keyword after the start; numbered items may repeat
// phrases such as "kesin olmak üzere" before the appeal notice.
func (c *Classifier) FocusWindow(text string) string {
	if block, ok := c.rulingBlock(text); ok {
		return block
	}
	return tail(text, c.window)
}

func (c *Classifier) rulingBlock(text string) (string, bool) {
	for _, re := range c.rulingStart {
		locs := re.FindAllStringIndex(text, -1)
		if len(locs) == 0 {
			continue
		}
		start := locs[len(locs)-1][0]
		end := len(text)
		if c.rulingEnd != nil {
			after := locs[len(locs)-1][1]
			if ends := c.rulingEnd.FindAllStringIndex(text[after:], -1); len(ends) > 0 {
				end = after + ends[len(ends)-1][0]
			}
		}
		return text[start:end], true
	}
	return "", false
}

// Classify evaluates the rule chain over a focus window; the first rule
// that matches decides. No match yields an undetermined verdict.
func (c *Classifier) Classify(window string) Verdict {
	for _, rule := range c.rules {
		if rule.Pattern.MatchString(window) {
			v := VerdictFor(rule.Outcome)
			v.Rule = rule.Name
			return v
		}
	}
	return VerdictFor(OutcomeUndetermined)
}

func tail(text string, n int) string {
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[len(runes)-n:])
}
