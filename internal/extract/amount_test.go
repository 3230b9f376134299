package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustJay7/hukuk-okuyucu/internal/rules"
)

func newTestAmountExtractor(t *testing.T) *AmountExtractor {
	t.Helper()
	ae, err := NewAmountExtractor(rules.Default().Amounts, 60)
	require.NoError(t, err)
	return ae
}

func TestFindAmount(t *testing.T) {
	ae := newTestAmountExtractor(t)

	tests := []struct {
		name   string
		window string
		cat    AmountCategory
		want   string
	}{
		{"amount before keyword", "1.500,00 TL vekalet ücreti", AttorneyFee, "1.500,00 TL"},
		{"amount after keyword", "vekalet ücreti: 2.750,00 TL", AttorneyFee, "2.750,00 TL"},
		{"no decimals", "3500 TL yargılama giderinin", CourtCost, "3.500,00 TL"},
		{"lira spelled out", "427,60 Türk Lirası karar ve ilam harcının", StampDuty, "427,60 TL"},
		{"lira sign", "80,70 ₺ bakiye harcın", StampDuty, "80,70 TL"},
		{"no amount", "vekalet ücretine yer olmadığına", AttorneyFee, AmountNotFound},
		{"no keyword", "toplam 1.000,00 TL ödenmesine", AttorneyFee, AmountNotFound},
		{"too far", "1.000,00 TL " + longGap() + " vekalet ücreti", AttorneyFee, AmountNotFound},
		{"empty", "", CourtCost, AmountNotFound},
		{"dot decimals", "21500.00 TL vekalet ücretinin", AttorneyFee, AmountNotFound},
		{"dot decimals after keyword", "vekalet ücreti 1500.00 TL", AttorneyFee, AmountNotFound},
		{"amount inside phrase", "bakiye 750,00 TL harcın tahsiline", StampDuty, "750,00 TL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ae.Find(tt.window, tt.cat))
		})
	}
}

func longGap() string {
	gap := ""
	for i := 0; i < 10; i++ {
		gap += "uzak metin "
	}
	return gap
}

func TestAmountsAreNotShared(t *testing.T) {
	ae := newTestAmountExtractor(t)

	// amount-first layout
	window := "1.500,00 TL vekalet ücretinin davalıdan alınarak davacıya verilmesine, " +
		"350,50 TL yargılama giderinin davalıdan alınmasına, " +
		"2.040,30 TL eksik harcın davalıdan tahsiline"

	rec := NewRecord("test")
	ae.Extract(window, &rec)
	assert.Equal(t, "1.500,00 TL", rec.AttorneyFee)
	assert.Equal(t, "350,50 TL", rec.CourtCost)
	assert.Equal(t, "2.040,30 TL", rec.StampDuty)

	// keyword-first layout
	window = "vekalet ücreti olarak 1.500,00 TL, yargılama gideri olarak 300,00 TL"
	assert.Equal(t, "1.500,00 TL", ae.Find(window, AttorneyFee))
	assert.Equal(t, "300,00 TL", ae.Find(window, CourtCost))

	// the only amount belongs to the fee that follows it
	window = "yargılama gideri bulunmadığından 1.500,00 TL vekalet ücretinin"
	assert.Equal(t, AmountNotFound, ae.Find(window, CourtCost))
	assert.Equal(t, "1.500,00 TL", ae.Find(window, AttorneyFee))
}

func TestKeywordPriority(t *testing.T) {
	ae := newTestAmountExtractor(t)

	window := "peşin alınan 59,30 TL harcın mahsubu ile 120,00 TL eksik harcın tahsiline"
	assert.Equal(t, "120,00 TL", ae.Find(window, StampDuty))
}

func TestRemainingFeeWording(t *testing.T) {
	ae := newTestAmountExtractor(t)

	window := "Alınması gereken 1.000,00 TL karar ve ilam harcından peşin alınan 250,00 TL " +
		"harcın mahsubu ile bakiye 750,00 TL harcın davalıdan alınmasına"
	assert.Equal(t, "750,00 TL", ae.Find(window, StampDuty))
}

func TestNewAmountExtractorRejectsBadFrame(t *testing.T) {
	k := rules.Default().Amounts
	k.StampDuty = []string{"* harç"}
	_, err := NewAmountExtractor(k, 60)
	assert.Error(t, err)
}

func TestFormatAmount(t *testing.T) {
	tests := map[string]string{
		"1.500,00":   "1.500,00 TL",
		"1500,00":    "1.500,00 TL",
		"1500":       "1.500,00 TL",
		"007,50":     "7,50 TL",
		"0,99":       "0,99 TL",
		"1234567,89": "1.234.567,89 TL",
		"999":        "999,00 TL",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatAmount(in), in)
	}
}
