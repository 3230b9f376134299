package rules

// Field names used by the default labels. They match the record column names.
const (
	FieldPlaintiff        = "plaintiff"
	FieldPlaintiffCounsel = "plaintiff_counsel"
	FieldDefendant        = "defendant"
	FieldDefendantCounsel = "defendant_counsel"
	FieldCaseSubject      = "case_subject"

	// FieldCounsel resolves to the counsel field of the closest preceding
	// party label ("DAVACI : X VEKİLİ : Y").
	FieldCounsel = "counsel"
)

// Default returns the built-in tables.
func Default() Tables {
	return Tables{
		Substitutions: defaultSubstitutions(),
		Labels:        defaultLabels(),
		Outcomes: []OutcomeRule{
			{Name: "partial", Phrases: []string{"KISMEN KABUL"}, Outcome: "partially-accepted"},
			{Name: "accepted", Phrases: []string{"DAVANIN KABULÜ", "İTİRAZIN İPTALİ", "TALEBİN KABULÜ", "İSTEMİN KABULÜ"}, Outcome: "accepted"},
			{Name: "rejected", Phrases: []string{"DAVANIN REDDİ", "TALEBİN REDDİ", "İSTEMİN REDDİ", "BERAATİ"}, Outcome: "rejected"},
		},
		Categories: []CategoryRule{
			{Phrases: []string{"CEZA MAHKEMESİ", "SANIK", "CUMHURİYET SAVCISI", "İDDİANAME", "BERAATİ"}, Category: "criminal"},
			{Phrases: []string{"İDARE MAHKEMESİ", "VERGİ MAHKEMESİ", "DANIŞTAY", "YÜRÜTMENİN DURDURULMASI", "İDARİ İŞLEM"}, Category: "administrative"},
			{Phrases: []string{"İCRA HUKUK MAHKEMESİ", "İCRA MÜDÜRLÜĞÜ", "İCRA DAİRESİ", "İCRA TAKİBİ"}, Category: "enforcement"},
			{Phrases: []string{"HUKUK MAHKEMESİ", "TİCARET MAHKEMESİ", "İŞ MAHKEMESİ", "AİLE MAHKEMESİ", "TÜKETİCİ MAHKEMESİ", "HUKUK DAİRESİ", "DAVACI"}, Category: "private-law"},
		},
		RulingStart: []string{"GEREĞİ DÜŞÜNÜLDÜ", "HÜKÜM FIKRASI", "HÜKÜM:"},
		RulingEnd:   []string{"kesin olmak üzere", "istinaf yolu açık", "temyiz yolu açık", "açıkça okunup", "usulen anlatıldı"},
		// Phrases that open the narrative body; a header section never runs past them.
		BodyStart: []string{"davacı vekili dava", "davacı vekilinin", "davacı vekili tarafından", "dava dilekçesi",
			"davalı vekili cevap", "davalı vekilinin", "cevap dilekçesi",
			"İDDİA:", "İDDİA VE SAVUNMA", "SAVUNMA:", "DELİLLER:", "GEREKÇE:", "DELİLLERİN DEĞERLENDİRİLMESİ"},
		Amounts: AmountKeywords{
			AttorneyFee: []string{"vekalet ücreti", "avukatlık ücreti"},
			CourtCost:   []string{"yargılama gideri", "mahkeme masrafı", "masraf"},
			StampDuty:   []string{"eksik harç", "bakiye harç", "bakiye * harç", "karar ve ilam harcı", "harç"},
		},
	}
}

func defaultSubstitutions() []Substitution {
	return []Substitution{
		// Single-byte Turkish code page glyphs read through a Latin-1 font map
		{Pattern: `Ġ`, Replacement: "İ"},
		{Pattern: `Ģ`, Replacement: "Ş"},
		{Pattern: `ģ`, Replacement: "ş"},
		{Pattern: `Ð`, Replacement: "Ğ"},
		{Pattern: `ð`, Replacement: "ğ"},
		{Pattern: `Ý`, Replacement: "İ"},
		{Pattern: `ý`, Replacement: "ı"},
		{Pattern: `Þ`, Replacement: "Ş"},
		{Pattern: `þ`, Replacement: "ş"},
		{Pattern: `ı\x{0307}`, Replacement: "i"},

		// Legal vocabulary with the diacritics stripped
		{Pattern: `\bVEKILI\b`, Replacement: "VEKİLİ"},
		{Pattern: `\bVEKILLERI\b`, Replacement: "VEKİLLERİ"},
		{Pattern: `\bHAKIM\b`, Replacement: "HAKİM"},
		{Pattern: `\bKATIP\b`, Replacement: "KATİP"},
		{Pattern: `\bMAHKEMESI\b`, Replacement: "MAHKEMESİ"},
		{Pattern: `\bDAIRESI\b`, Replacement: "DAİRESİ"},
		{Pattern: `\bTARIHI\b`, Replacement: "TARİHİ"},
		{Pattern: `\bHUKUM\b`, Replacement: "HÜKÜM"},
		{Pattern: `\bGEREGI DUSUNULDU\b`, Replacement: "GEREĞİ DÜŞÜNÜLDÜ"},
		{Pattern: `\bITIRAZIN IPTALINE\b`, Replacement: "İTİRAZIN İPTALİNE"},
		{Pattern: `\bKABULUNE\b`, Replacement: "KABULÜNE"},
		{Pattern: `\bREDDINE\b`, Replacement: "REDDİNE"},
		{Pattern: `(?i)\bsayin\b`, Replacement: "Sayın"},
		{Pattern: `(?i)\bvekalet\s+ucreti`, Replacement: "vekalet ücreti"},
		{Pattern: `(?i)\byargilama\s+gider`, Replacement: "yargılama gider"},
	}
}

func defaultLabels() []Label {
	party := func(phrase, field string) Label {
		return Label{Phrase: phrase, Field: field, RequireColon: true}
	}
	stop := func(phrase string, colon bool) Label {
		return Label{Phrase: phrase, RequireColon: colon}
	}

	return []Label{
		party("DAVACI", FieldPlaintiff),
		party("DAVACILAR", FieldPlaintiff),
		party("DAVACI VEKİLİ", FieldPlaintiffCounsel),
		party("DAVACI VEKİLLERİ", FieldPlaintiffCounsel),
		party("DAVALI", FieldDefendant),
		party("DAVALILAR", FieldDefendant),
		party("DAVALI VEKİLİ", FieldDefendantCounsel),
		party("DAVALI VEKİLLERİ", FieldDefendantCounsel),
		party("VEKİLİ", FieldCounsel),
		party("VEKİLLERİ", FieldCounsel),
		party("DAVA", FieldCaseSubject),
		party("KONU", FieldCaseSubject),

		stop("ESAS NO", false),
		stop("KARAR NO", false),
		stop("DAVA TARİHİ", false),
		stop("KARAR TARİHİ", false),
		stop("YAZIM TARİHİ", false),
		stop("HAKİM", true),
		stop("KATİP", true),
		stop("BAŞKAN", true),
		stop("ÜYE", true),
		stop("HÜKÜM", true),
		stop("GEREĞİ DÜŞÜNÜLDÜ", false),
		stop("TÜRK MİLLETİ ADINA", false),
	}
}
