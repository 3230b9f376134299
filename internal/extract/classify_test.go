package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustJay7/hukuk-okuyucu/internal/rules"
)

func newTestClassifier(t *testing.T, window int) *Classifier {
	t.Helper()
	c, err := NewClassifier(rules.Default(), window)
	require.NoError(t, err)
	return c
}

func TestClassify(t *testing.T) {
	c := newTestClassifier(t, 1500)

	tests := []struct {
		name    string
		window  string
		outcome Outcome
		winner  string
	}{
		{"accepted", "DAVANIN KABULÜNE", OutcomeAccepted, PartyClaimant},
		{"accepted lowercase", "davanın kabulüne karar verildi", OutcomeAccepted, PartyClaimant},
		{"objection annulled", "İTİRAZIN İPTALİNE, takibin devamına", OutcomeAccepted, PartyClaimant},
		{"rejected", "Davanın REDDİNE", OutcomeRejected, PartyRespondent},
		{"acquittal", "sanığın BERAATİNE", OutcomeRejected, PartyRespondent},
		{"partial beats rejected", "Davanın KISMEN KABULÜ ile fazlaya ilişkin DAVANIN REDDİNE", OutcomePartiallyAccepted, PartyShared},
		{"nothing", "duruşma ertelendi", OutcomeUndetermined, Placeholder},
		{"empty", "", OutcomeUndetermined, Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := c.Classify(tt.window)
			assert.Equal(t, tt.outcome, v.Outcome)
			assert.Equal(t, tt.winner, v.Winner)
		})
	}
}

func TestVerdictFor(t *testing.T) {
	v := VerdictFor(OutcomeAccepted)
	assert.Equal(t, PartyClaimant, v.Winner)
	assert.Equal(t, PartyRespondent, v.Loser)
	assert.Equal(t, "Davalı, davacıya öder", v.PaymentDirection)

	v = VerdictFor(OutcomeRejected)
	assert.Equal(t, PartyRespondent, v.Winner)
	assert.Equal(t, PartyClaimant, v.Loser)

	v = VerdictFor(Outcome("bogus"))
	assert.Equal(t, OutcomeUndetermined, v.Outcome)
	assert.Equal(t, Placeholder, v.PaymentDirection)
}

func TestFocusWindowRulingBlock(t *testing.T) {
	c := newTestClassifier(t, 1500)

	text := "Davacı vekili davanın kabulüne karar verilmesini talep etmiştir. " +
		"GEREĞİ DÜŞÜNÜLDÜ: Davanın REDDİNE, kesin olmak üzere karar verildi."

	window := c.FocusWindow(text)
	assert.True(t, strings.HasPrefix(window, "GEREĞİ DÜŞÜNÜLDÜ"))
	assert.NotContains(t, window, "kesin olmak")
	assert.Equal(t, OutcomeRejected, c.Classify(window).Outcome)
}

func TestFocusWindowEndsAtLastClosingClause(t *testing.T) {
	c := newTestClassifier(t, 1500)

	text := "GEREĞİ DÜŞÜNÜLDÜ: 1-Davanın KABULÜNE, 500,00 TL kesin olmak üzere para cezası, " +
		"2-1.500,00 TL vekalet ücretinin davalıdan alınmasına, " +
		"istinaf yolu açık olmak üzere karar verildi."

	window := c.FocusWindow(text)
	assert.Contains(t, window, "vekalet ücretinin")
	assert.NotContains(t, window, "istinaf yolu")
}

func TestFocusWindowUsesLastStart(t *testing.T) {
	c := newTestClassifier(t, 1500)

	text := "gereği düşünüldü denilerek DAVANIN KABULÜ istendi. GEREĞİ DÜŞÜNÜLDÜ: DAVANIN REDDİNE"
	window := c.FocusWindow(text)
	assert.Equal(t, "GEREĞİ DÜŞÜNÜLDÜ: DAVANIN REDDİNE", window)
}

func TestFocusWindowTail(t *testing.T) {
	c := newTestClassifier(t, 40)

	filler := strings.Repeat("gerekçe metni ", 20)

	assert.Equal(t, OutcomeAccepted, c.Classify(c.FocusWindow(filler+"DAVANIN KABULÜNE")).Outcome)
	assert.Equal(t, OutcomeUndetermined, c.Classify(c.FocusWindow("DAVANIN KABULÜNE "+filler)).Outcome)
	assert.Len(t, []rune(c.FocusWindow(filler)), 40)
}

func TestNewClassifierRejectsBadOutcome(t *testing.T) {
	tables := rules.Default()
	tables.Outcomes = []rules.OutcomeRule{{Phrases: []string{"X"}, Outcome: "won"}}

	_, err := NewClassifier(tables, 100)
	assert.Error(t, err)
}

func TestRuleOrder(t *testing.T) {
	c := newTestClassifier(t, 100)

	names := make([]string, 0, len(c.Rules()))
	for _, r := range c.Rules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"partial", "accepted", "rejected"}, names)
}
