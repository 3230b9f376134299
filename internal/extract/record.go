package extract

import "unicode/utf8"

// Field names a column of an extracted record
type Field string

const (
	FieldSourceName       Field = "source_name"
	FieldCourtName        Field = "court_name"
	FieldCaseNumber       Field = "case_number"
	FieldDecisionNumber   Field = "decision_number"
	FieldCaseSubject      Field = "case_subject"
	FieldPlaintiff        Field = "plaintiff"
	FieldPlaintiffCounsel Field = "plaintiff_counsel"
	FieldDefendant        Field = "defendant"
	FieldDefendantCounsel Field = "defendant_counsel"
	FieldFilingDate       Field = "filing_date"
	FieldDecisionDate     Field = "decision_date"
	FieldWrittenDate      Field = "written_date"
	FieldCaseCategory     Field = "case_category"
	FieldOutcome          Field = "outcome"
	FieldWinner           Field = "winner"
	FieldLoser            Field = "loser"
	FieldPaymentDirection Field = "payment_direction"
	FieldAttorneyFee      Field = "attorney_fee"
	FieldCourtCost        Field = "court_cost"
	FieldStampDuty        Field = "stamp_duty"
)

// Fields lists every record column in storage order
var Fields = []Field{
	FieldSourceName,
	FieldCourtName,
	FieldCaseNumber,
	FieldDecisionNumber,
	FieldCaseSubject,
	FieldPlaintiff,
	FieldPlaintiffCounsel,
	FieldDefendant,
	FieldDefendantCounsel,
	FieldFilingDate,
	FieldDecisionDate,
	FieldWrittenDate,
	FieldCaseCategory,
	FieldOutcome,
	FieldWinner,
	FieldLoser,
	FieldPaymentDirection,
	FieldAttorneyFee,
	FieldCourtCost,
	FieldStampDuty,
}

// Placeholder values stored when nothing matched
const (
	Placeholder    = "-"
	AmountNotFound = "Bulunamadı"
)

// maxLen bounds every field value, in runes
var maxLen = map[Field]int{
	FieldSourceName:       255,
	FieldCourtName:        150,
	FieldCaseNumber:       20,
	FieldDecisionNumber:   20,
	FieldCaseSubject:      300,
	FieldPlaintiff:        250,
	FieldPlaintiffCounsel: 250,
	FieldDefendant:        250,
	FieldDefendantCounsel: 250,
	FieldFilingDate:       10,
	FieldDecisionDate:     10,
	FieldWrittenDate:      10,
	FieldCaseCategory:     20,
	FieldOutcome:          20,
	FieldWinner:           50,
	FieldLoser:            50,
	FieldPaymentDirection: 100,
	FieldAttorneyFee:      30,
	FieldCourtCost:        30,
	FieldStampDuty:        30,
}

// MaxLen returns the length bound of a field in runes
func MaxLen(f Field) int {
	return maxLen[f]
}

// Record is one analyzed court decision. Every field is always populated,
// either with a match or with its placeholder.
type Record struct {
	SourceName       string `json:"source_name"`
	CourtName        string `json:"court_name"`
	CaseNumber       string `json:"case_number"`
	DecisionNumber   string `json:"decision_number"`
	CaseSubject      string `json:"case_subject"`
	Plaintiff        string `json:"plaintiff"`
	PlaintiffCounsel string `json:"plaintiff_counsel"`
	Defendant        string `json:"defendant"`
	DefendantCounsel string `json:"defendant_counsel"`
	FilingDate       string `json:"filing_date"`
	DecisionDate     string `json:"decision_date"`
	WrittenDate      string `json:"written_date"`
	CaseCategory     string `json:"case_category"`
	Outcome          string `json:"outcome"`
	Winner           string `json:"winner"`
	Loser            string `json:"loser"`
	PaymentDirection string `json:"payment_direction"`
	AttorneyFee      string `json:"attorney_fee"`
	CourtCost        string `json:"court_cost"`
	StampDuty        string `json:"stamp_duty"`
}

// NewRecord returns a record with every field set to its placeholder
func NewRecord(sourceName string) Record {
	r := Record{}
	for _, f := range Fields {
		r.Set(f, "")
	}
	r.Set(FieldSourceName, sourceName)
	return r
}

// Get returns the value of a field
func (r *Record) Get(f Field) string {
	if p := r.ptr(f); p != nil {
		return *p
	}
	return ""
}

// Set stores a value, truncated to the field bound. An empty value stores
// the field placeholder. Unknown fields are ignored.
func (r *Record) Set(f Field, value string) {
	p := r.ptr(f)
	if p == nil {
		return
	}
	if value == "" {
		value = placeholderFor(f)
	}
	*p = truncate(value, maxLen[f])
}

// Values returns field values in Fields order
func (r *Record) Values() []string {
	values := make([]string, len(Fields))
	for i, f := range Fields {
		values[i] = r.Get(f)
	}
	return values
}

// Header returns the column names in Fields order
func Header() []string {
	header := make([]string, len(Fields))
	for i, f := range Fields {
		header[i] = string(f)
	}
	return header
}

// FromValues builds a record from a row in Fields order. Missing trailing
// columns are filled with placeholders.
func FromValues(values []string) Record {
	r := Record{}
	for i, f := range Fields {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		r.Set(f, v)
	}
	return r
}

func placeholderFor(f Field) string {
	switch f {
	case FieldAttorneyFee, FieldCourtCost, FieldStampDuty:
		return AmountNotFound
	case FieldCaseCategory:
		return string(CategoryUnknown)
	case FieldOutcome:
		return string(OutcomeUndetermined)
	default:
		return Placeholder
	}
}

func (r *Record) ptr(f Field) *string {
	switch f {
	case FieldSourceName:
		return &r.SourceName
	case FieldCourtName:
		return &r.CourtName
	case FieldCaseNumber:
		return &r.CaseNumber
	case FieldDecisionNumber:
		return &r.DecisionNumber
	case FieldCaseSubject:
		return &r.CaseSubject
	case FieldPlaintiff:
		return &r.Plaintiff
	case FieldPlaintiffCounsel:
		return &r.PlaintiffCounsel
	case FieldDefendant:
		return &r.Defendant
	case FieldDefendantCounsel:
		return &r.DefendantCounsel
	case FieldFilingDate:
		return &r.FilingDate
	case FieldDecisionDate:
		return &r.DecisionDate
	case FieldWrittenDate:
		return &r.WrittenDate
	case FieldCaseCategory:
		return &r.CaseCategory
	case FieldOutcome:
		return &r.Outcome
	case FieldWinner:
		return &r.Winner
	case FieldLoser:
		return &r.Loser
	case FieldPaymentDirection:
		return &r.PaymentDirection
	case FieldAttorneyFee:
		return &r.AttorneyFee
	case FieldCourtCost:
		return &r.CourtCost
	case FieldStampDuty:
		return &r.StampDuty
	}
	return nil
}

func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
