package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JustJay7/hukuk-okuyucu/internal/cache"
	"github.com/JustJay7/hukuk-okuyucu/internal/export"
	"github.com/JustJay7/hukuk-okuyucu/internal/extract"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ViewReview shows a draft for correction
func (h *Handlers) ViewReview(c *gin.Context) {
	draft, found := h.cache.Get(c.Param("id"))
	if !found {
		h.renderError(c, http.StatusNotFound, "Taslak bulunamadı ya da süresi doldu.")
		return
	}
	h.renderReview(c, draft, false)
}

func (h *Handlers) renderReview(c *gin.Context, draft *cache.Draft, fromCache bool) {
	c.HTML(http.StatusOK, "review.html", gin.H{
		"title":     "Kontrol Et",
		"draft":     draft,
		"fields":    formFields(draft.Record),
		"fromCache": fromCache,
	})
}

// ConfirmRecord applies the reviewed form values to a draft and appends
// the result to the store
func (h *Handlers) ConfirmRecord(c *gin.Context) {
	draft, found := h.cache.Get(c.PostForm("draft_id"))
	if !found {
		h.renderError(c, http.StatusNotFound, "Taslak bulunamadı ya da süresi doldu.")
		return
	}

	rec, err := applyForm(c, draft.Record)
	if err != nil {
		h.renderError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.Append(c.Request.Context(), rec); err != nil {
		h.logger.Error("Failed to save record", "draft", draft.ID, "error", err)
		h.renderError(c, http.StatusInternalServerError, "Kayıt eklenemedi.")
		return
	}

	h.cache.Delete(draft.ID)
	h.logger.Info("Record saved", "draft", draft.ID, "source", rec.SourceName)
	c.Redirect(http.StatusSeeOther, "/records?saved=1")
}

// ListRecords renders every stored record
func (h *Handlers) ListRecords(c *gin.Context) {
	records, err := h.store.All(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to read records", "error", err)
		h.renderError(c, http.StatusInternalServerError, "Kayıtlar okunamadı.")
		return
	}

	c.HTML(http.StatusOK, "records.html", gin.H{
		"title":   "Kayıtlar",
		"records": records,
		"saved":   c.Query("saved") != "",
	})
}

// ListRecordsAPI returns stored records, optionally paginated
func (h *Handlers) ListRecordsAPI(c *gin.Context) {
	records, err := h.store.All(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to read records", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	page := queryInt(c, "page", 1, 1, 1<<20)
	limit := queryInt(c, "limit", 50, 1, 500)
	total := len(records)

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    records[start:end],
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// CreateRecordAPI appends a record sent as JSON, e.g. one reviewed in
// another client
func (h *Handlers) CreateRecordAPI(c *gin.Context) {
	var req struct {
		DraftID string          `json:"draft_id"`
		Record  *extract.Record `json:"record" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	rec := *req.Record
	if err := validateRecord(rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	if err := h.store.Append(c.Request.Context(), rec); err != nil {
		h.logger.Error("Failed to save record", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	if req.DraftID != "" {
		h.cache.Delete(req.DraftID)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    extract.FromValues(rec.Values()),
	})
}

// ExportRecordsCSV downloads the whole store as CSV
func (h *Handlers) ExportRecordsCSV(c *gin.Context) {
	records, err := h.store.All(c.Request.Context())
	if err != nil {
		h.exportFailed(c, err)
		return
	}

	data, err := export.CSV(records)
	if err != nil {
		h.exportFailed(c, err)
		return
	}
	download(c, "kararlar.csv", csvContentType, data)
}

// ExportRecordsXLSX downloads the whole store as an Excel workbook
func (h *Handlers) ExportRecordsXLSX(c *gin.Context) {
	records, err := h.store.All(c.Request.Context())
	if err != nil {
		h.exportFailed(c, err)
		return
	}

	data, err := export.XLSX(records)
	if err != nil {
		h.exportFailed(c, err)
		return
	}
	download(c, "kararlar.xlsx", xlsxContentType, data)
}

// ExportDraftCSV downloads a single unconfirmed draft
func (h *Handlers) ExportDraftCSV(c *gin.Context) {
	draft, found := h.cache.Get(c.Param("id"))
	if !found {
		h.renderError(c, http.StatusNotFound, "Taslak bulunamadı ya da süresi doldu.")
		return
	}

	data, err := export.CSV([]extract.Record{draft.Record})
	if err != nil {
		h.exportFailed(c, err)
		return
	}
	download(c, "taslak-"+draft.ID+".csv", csvContentType, data)
}

func (h *Handlers) exportFailed(c *gin.Context, err error) {
	h.logger.Error("Export failed", "path", c.Request.URL.Path, "error", err)
	c.String(http.StatusInternalServerError, "export failed")
}

func download(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, data)
}

// applyForm overrides draft values with submitted form fields. Fields
// missing from the form keep their analyzed value.
func applyForm(c *gin.Context, rec extract.Record) (extract.Record, error) {
	for _, f := range extract.Fields {
		if v, ok := c.GetPostForm(string(f)); ok {
			rec.Set(f, strings.TrimSpace(v))
		}
	}
	return rec, validateRecord(rec)
}

func validateRecord(rec extract.Record) error {
	if strings.TrimSpace(rec.SourceName) == "" {
		return fmt.Errorf("source_name is required")
	}
	if rec.CaseCategory != "" && !extract.Category(rec.CaseCategory).Valid() {
		return fmt.Errorf("invalid case_category: %q", rec.CaseCategory)
	}
	if rec.Outcome != "" && !extract.Outcome(rec.Outcome).Valid() {
		return fmt.Errorf("invalid outcome: %q", rec.Outcome)
	}
	return nil
}
