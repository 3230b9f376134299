package api

import (
	"html/template"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/JustJay7/hukuk-okuyucu/internal/export"
	"github.com/JustJay7/hukuk-okuyucu/internal/extract"
	"github.com/JustJay7/hukuk-okuyucu/web"
)

type option struct {
	Value    string
	Label    string
	Selected bool
}

// formField is one input of the review form
type formField struct {
	Name    string
	Title   string
	Value   string
	MaxLen  int
	Options []option
}

var categories = []extract.Category{
	extract.CategoryPrivateLaw,
	extract.CategoryCriminal,
	extract.CategoryAdministrative,
	extract.CategoryEnforcement,
	extract.CategoryUnknown,
}

var outcomes = []extract.Outcome{
	extract.OutcomeAccepted,
	extract.OutcomeRejected,
	extract.OutcomePartiallyAccepted,
	extract.OutcomeUndetermined,
}

func loadTemplates() *template.Template {
	funcs := template.FuncMap{
		"categoryLabel": func(s string) string { return extract.Category(s).Label() },
		"outcomeLabel":  func(s string) string { return extract.Outcome(s).Label() },
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(web.Templates, "templates/*.html"))
}

func formFields(rec extract.Record) []formField {
	fields := make([]formField, 0, len(extract.Fields))
	for _, f := range extract.Fields {
		ff := formField{
			Name:   string(f),
			Title:  export.Title(f),
			Value:  rec.Get(f),
			MaxLen: extract.MaxLen(f),
		}

		switch f {
		case extract.FieldCaseCategory:
			for _, cat := range categories {
				ff.Options = append(ff.Options, option{string(cat), cat.Label(), string(cat) == ff.Value})
			}
		case extract.FieldOutcome:
			for _, o := range outcomes {
				ff.Options = append(ff.Options, option{string(o), o.Label(), string(o) == ff.Value})
			}
		}
		fields = append(fields, ff)
	}
	return fields
}

// queryInt parses an integer query parameter, clamped to [lo, hi]
func queryInt(c *gin.Context, key string, def, lo, hi int) int {
	n, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
