package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustJay7/hukuk-okuyucu/internal/rules"
)

const sampleDecision = `T.C.
İSTANBUL 5. ASLİYE TİCARET MAHKEMESİ
GEREKÇELİ KARAR
ESAS NO   : 2023/145
KARAR NO  : 2024/67
HAKİM     : Ayşe Yılmaz
KATİP     : Mehmet Demir
DAVACI    : ABC İnşaat Ltd. Şti.
VEKİLİ    : Av. Ali Kaya
DAVALI    : XYZ Yapı A.Ş.
VEKİLİ    : Av. Zeynep Ak
DAVA      : Alacak (İtirazın İptali)
DAVA TARİHİ  : 12/01/2023
KARAR TARİHİ : 05/03/2024
YAZIM TARİHİ : 20/03/2024

Davacı vekili dava dilekçesinde, davanın kabulüne karar verilmesini talep etmiştir.

GEREĞİ DÜŞÜNÜLDÜ:
1-Davanın KABULÜNE,
2-1.500,00 TL vekalet ücretinin davalıdan alınarak davacıya verilmesine,
3-350,50 TL yargılama giderinin davalıdan alınmasına,
4-2.04?,30 TL eksik harcın davalıdan alınarak Hazineye gelir kaydına,
Dair, tarafların yüzüne karşı, istinaf yolu açık olmak üzere karar verildi.`

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := New(rules.Default(), DefaultOptions())
	require.NoError(t, err)
	return a
}

func TestAnalyzeDecision(t *testing.T) {
	a := newTestAnalyzer(t)
	rec := a.Analyze("karar.pdf", sampleDecision)

	assert.Equal(t, "karar.pdf", rec.SourceName)
	assert.Equal(t, "İSTANBUL 5. ASLİYE TİCARET MAHKEMESİ", rec.CourtName)
	assert.Equal(t, "2023/145", rec.CaseNumber)
	assert.Equal(t, "2024/67", rec.DecisionNumber)
	assert.Equal(t, "ABC İnşaat Ltd. Şti.", rec.Plaintiff)
	assert.Equal(t, "Av. Ali Kaya", rec.PlaintiffCounsel)
	assert.Equal(t, "XYZ Yapı A.Ş.", rec.Defendant)
	assert.Equal(t, "Av. Zeynep Ak", rec.DefendantCounsel)
	assert.Equal(t, "Alacak (İtirazın İptali)", rec.CaseSubject)
	assert.Equal(t, "12.01.2023", rec.FilingDate)
	assert.Equal(t, "05.03.2024", rec.DecisionDate)
	assert.Equal(t, "20.03.2024", rec.WrittenDate)
	assert.Equal(t, string(CategoryPrivateLaw), rec.CaseCategory)
	assert.Equal(t, string(OutcomeAccepted), rec.Outcome)
	assert.Equal(t, PartyClaimant, rec.Winner)
	assert.Equal(t, PartyRespondent, rec.Loser)
	assert.Equal(t, "Davalı, davacıya öder", rec.PaymentDirection)
	assert.Equal(t, "1.500,00 TL", rec.AttorneyFee)
	assert.Equal(t, "350,50 TL", rec.CourtCost)
	assert.Equal(t, "2.040,30 TL", rec.StampDuty)
}

func TestAnalyzeScenarios(t *testing.T) {
	a := newTestAnalyzer(t)

	rec := a.Analyze("a", "ESAS NO: 2023/145")
	assert.Equal(t, "2023/145", rec.CaseNumber)

	rec = a.Analyze("b", "bu belgede esas numarası bulunmuyor")
	assert.Equal(t, Placeholder, rec.CaseNumber)

	rec = a.Analyze("c", "DAVANIN KABULÜNE")
	assert.Equal(t, string(OutcomeAccepted), rec.Outcome)
	assert.Equal(t, PartyClaimant, rec.Winner)

	rec = a.Analyze("d", "1.500,00 TL vekalet ücreti")
	assert.Equal(t, "1.500,00 TL", rec.AttorneyFee)

	rec = a.Analyze("e", "DAVANIN KISMEN KABULÜNE, fazlaya ilişkin DAVANIN REDDİNE")
	assert.Equal(t, string(OutcomePartiallyAccepted), rec.Outcome)
}

func TestAnalyzeInterestClauseBeforeFees(t *testing.T) {
	a := newTestAnalyzer(t)

	text := "GEREĞİ DÜŞÜNÜLDÜ: 1-Davanın KABULÜ ile itirazın iptaline, takibin ödeme emrinin " +
		"tebliğinden itibaren işleyecek yasal faizi ile devamına, " +
		"2-1.500,00 TL vekalet ücretinin davalıdan alınarak davacıya verilmesine, " +
		"3-350,50 TL yargılama giderinin davalıdan alınmasına, " +
		"istinaf yolu açık olmak üzere karar verildi."
	rec := a.Analyze("faiz.pdf", text)

	assert.Equal(t, string(OutcomeAccepted), rec.Outcome)
	assert.Equal(t, "1.500,00 TL", rec.AttorneyFee)
	assert.Equal(t, "350,50 TL", rec.CourtCost)
}

func TestAnalyzeEmpty(t *testing.T) {
	a := newTestAnalyzer(t)
	rec := a.Analyze("bos.pdf", "")

	expected := NewRecord("bos.pdf")
	assert.Equal(t, expected, rec)
	assert.Equal(t, string(OutcomeUndetermined), rec.Outcome)
	assert.Equal(t, string(CategoryUnknown), rec.CaseCategory)
	assert.Equal(t, AmountNotFound, rec.AttorneyFee)
	assert.Equal(t, Placeholder, rec.Winner)
	for _, v := range rec.Values() {
		assert.NotEmpty(t, v)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := newTestAnalyzer(t)
	first := a.Analyze("karar.pdf", sampleDecision)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, a.Analyze("karar.pdf", sampleDecision))
	}
}

func TestAnalyzeBounded(t *testing.T) {
	a := newTestAnalyzer(t)

	noise := strings.Repeat("ÇOK UZUN BİR METİN ", 200)
	text := "T.C. " + noise + "MAHKEMESİ DAVACI : " + noise + " DAVA : " + noise
	rec := a.Analyze(strings.Repeat("x", 400), text)

	for _, f := range Fields {
		assert.LessOrEqual(t, len([]rune(rec.Get(f))), MaxLen(f), f)
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(rules.Default(), Options{FocusWindow: 0, AmountWindow: 60})
	assert.Error(t, err)
}

func TestRecordValuesRoundTrip(t *testing.T) {
	a := newTestAnalyzer(t)
	rec := a.Analyze("karar.pdf", sampleDecision)

	assert.Equal(t, rec, FromValues(rec.Values()))
	assert.Len(t, Header(), len(Fields))
	assert.Equal(t, NewRecord(""), FromValues(nil))
}
