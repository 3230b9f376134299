package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JustJay7/hukuk-okuyucu/internal/batch"
	"github.com/JustJay7/hukuk-okuyucu/internal/cache"
	"github.com/JustJay7/hukuk-okuyucu/internal/database"
	"github.com/JustJay7/hukuk-okuyucu/internal/pdftext"
)

const analyzeTimeout = 60 * time.Second

var errNoFile = errors.New("no file uploaded")

// textDocument is a decision whose text was extracted by the client
type textDocument struct {
	SourceName string `json:"source_name" binding:"required"`
	Text       string `json:"text" binding:"required"`
}

// analysis is the outcome of one upload or text submission
type analysis struct {
	Draft     *cache.Draft
	FromCache bool
}

// AnalyzeUpload handles the upload form and renders the review page
func (h *Handlers) AnalyzeUpload(c *gin.Context) {
	name, data, err := h.readUpload(c)
	if err != nil {
		h.renderError(c, uploadStatus(err), uploadMessage(err))
		return
	}

	res, err := h.analyzePDF(c.Request.Context(), c.ClientIP(), name, data)
	if err != nil {
		h.renderError(c, uploadStatus(err), uploadMessage(err))
		return
	}

	h.renderReview(c, res.Draft, res.FromCache)
}

// AnalyzeAPI accepts either a multipart "file" field or a JSON body with
// already extracted text
func (h *Handlers) AnalyzeAPI(c *gin.Context) {
	var (
		res analysis
		err error
	)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		var name string
		var data []byte
		name, data, err = h.readUpload(c)
		if err == nil {
			res, err = h.analyzePDF(c.Request.Context(), c.ClientIP(), name, data)
		}
	} else {
		var req textDocument
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   bindErr.Error(),
			})
			return
		}
		res, err = h.analyzeText(c.Request.Context(), c.ClientIP(), req.SourceName, req.Text)
	}

	if err != nil {
		c.JSON(uploadStatus(err), gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      res.Draft,
		"fromCache": res.FromCache,
	})
}

// BulkAnalyzeAPI analyzes several already extracted texts concurrently
func (h *Handlers) BulkAnalyzeAPI(c *gin.Context) {
	var req struct {
		Documents []textDocument `json:"documents" binding:"required,min=1,max=10,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	clientIP := c.ClientIP()
	results := batch.Run(c.Request.Context(), req.Documents, h.cfg.MaxConcurrent,
		func(ctx context.Context, d textDocument) (analysis, error) {
			return h.analyzeText(ctx, clientIP, d.SourceName, d.Text)
		})

	responseData := make([]gin.H, 0, len(results))
	for i, result := range results {
		data := gin.H{
			"source_name": req.Documents[i].SourceName,
		}
		if result.Err != nil {
			data["success"] = false
			data["error"] = result.Err.Error()
		} else {
			data["success"] = true
			data["data"] = result.Value.Draft
			data["fromCache"] = result.Value.FromCache
		}
		responseData = append(responseData, data)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"results": responseData,
	})
}

func (h *Handlers) readUpload(c *gin.Context) (string, []byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadSize+1<<20)

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", nil, pdftext.ErrTooLarge
		}
		return "", nil, errNoFile
	}
	if header.Size > h.cfg.MaxUploadSize {
		return "", nil, pdftext.ErrTooLarge
	}

	data, err := readFileHeader(header)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return header.Filename, data, nil
}

func readFileHeader(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// analyzePDF reads the text of data and analyzes it. A document seen
// before returns its existing draft.
func (h *Handlers) analyzePDF(ctx context.Context, clientIP, name string, data []byte) (analysis, error) {
	hash := cache.DocumentHash(data)
	if draft, found := h.cachedDraft(hash, name); found {
		h.logger.Info("Cache hit", "hash", hash, "draft", draft.ID)
		return analysis{Draft: draft, FromCache: true}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, analyzeTimeout)
	defer cancel()

	entry := &database.AnalysisLog{
		SourceName: name,
		DocHash:    hash,
		IPAddress:  clientIP,
		AnalyzedAt: time.Now(),
	}

	doc, err := h.pdf.ExtractBytes(ctx, data)
	if err != nil {
		h.logFailure(entry, err)
		return analysis{}, err
	}
	entry.Pages = doc.Pages
	if doc.FailedPages > 0 {
		h.logger.Warn("Some pages could not be read", "source", name, "failed", doc.FailedPages, "pages", doc.Pages)
	}

	entry.ArchivePath = h.archiveUpload(ctx, name, data)

	draft, err := h.analyzeDocument(ctx, entry, doc.Text, doc.Pages)
	if err != nil {
		return analysis{}, err
	}
	return analysis{Draft: draft}, nil
}

// analyzeText runs the analyzer over text submitted directly
func (h *Handlers) analyzeText(ctx context.Context, clientIP, name, text string) (analysis, error) {
	hash := cache.DocumentHash([]byte(text))
	if draft, found := h.cachedDraft(hash, name); found {
		return analysis{Draft: draft, FromCache: true}, nil
	}

	entry := &database.AnalysisLog{
		SourceName: name,
		DocHash:    hash,
		IPAddress:  clientIP,
		AnalyzedAt: time.Now(),
	}

	draft, err := h.analyzeDocument(ctx, entry, text, 0)
	if err != nil {
		return analysis{}, err
	}
	return analysis{Draft: draft}, nil
}

// cachedDraft returns the draft of a document seen before, carrying the
// name it was submitted under this time
func (h *Handlers) cachedDraft(hash, name string) (*cache.Draft, bool) {
	draft, found := h.cache.Lookup(hash)
	if !found {
		return nil, false
	}
	if draft.Record.SourceName == name {
		return draft, true
	}
	if renamed, ok := h.cache.Rename(draft.ID, name); ok {
		return renamed, true
	}
	return draft, true
}

func (h *Handlers) analyzeDocument(ctx context.Context, entry *database.AnalysisLog, text string, pages int) (*cache.Draft, error) {
	normalized := h.analyzer.Normalize(text)
	entry.TextLength = len([]rune(normalized))

	if err := pdftext.CheckReadable(normalized, h.cfg.MinTextLength); err != nil {
		h.discardArchive(ctx, entry)
		h.logFailure(entry, err)
		return nil, err
	}

	rec := h.analyzer.Analyze(entry.SourceName, text)
	draft := h.cache.Put(entry.DocHash, rec, pages)

	entry.Success = true
	if err := database.LogAnalysis(h.db, entry); err != nil {
		h.logger.Error("Failed to save analysis log", "error", err)
	}

	h.logger.Info("Document analyzed",
		"source", entry.SourceName,
		"draft", draft.ID,
		"outcome", rec.Outcome,
		"category", rec.CaseCategory,
	)
	return draft, nil
}

func (h *Handlers) logFailure(entry *database.AnalysisLog, cause error) {
	entry.Success = false
	entry.ErrorMessage = cause.Error()
	if err := database.LogAnalysis(h.db, entry); err != nil {
		h.logger.Error("Failed to save analysis log", "error", err)
	}
	h.logger.Warn("Analysis failed", "source", entry.SourceName, "error", cause)
}

func uploadStatus(err error) int {
	switch {
	case errors.Is(err, errNoFile):
		return http.StatusBadRequest
	case errors.Is(err, pdftext.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, pdftext.ErrNotPDF):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, pdftext.ErrUnreadable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func uploadMessage(err error) string {
	switch {
	case errors.Is(err, errNoFile):
		return "Lütfen bir PDF dosyası seçin."
	case errors.Is(err, pdftext.ErrTooLarge):
		return "Dosya boyutu sınırı aşıldı."
	case errors.Is(err, pdftext.ErrNotPDF):
		return "Yüklenen dosya bir PDF değil."
	case errors.Is(err, pdftext.ErrUnreadable):
		return "Belgede okunabilir metin bulunamadı. Taranmış bir belge olabilir."
	default:
		return "Belge okunamadı: " + err.Error()
	}
}
