package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JustJay7/hukuk-okuyucu/internal/cache"
	"github.com/JustJay7/hukuk-okuyucu/internal/config"
	"github.com/JustJay7/hukuk-okuyucu/internal/database"
	"github.com/JustJay7/hukuk-okuyucu/internal/extract"
	"github.com/JustJay7/hukuk-okuyucu/internal/pdftext"
	"github.com/JustJay7/hukuk-okuyucu/internal/storage"
	"github.com/JustJay7/hukuk-okuyucu/internal/store"
	"github.com/JustJay7/hukuk-okuyucu/pkg/logger"
)

// Deps groups everything the handlers need. Archive may be nil.
type Deps struct {
	DB       *gorm.DB
	Cache    cache.Cache
	Analyzer *extract.Analyzer
	PDF      *pdftext.Extractor
	Store    store.RecordStore
	Archive  storage.Storage
	Logger   *logger.Logger
	Config   *config.Config
}

// Handlers holds all HTTP handlers
type Handlers struct {
	db       *gorm.DB
	cache    cache.Cache
	analyzer *extract.Analyzer
	pdf      *pdftext.Extractor
	store    store.RecordStore
	archive  storage.Storage
	logger   *logger.Logger
	cfg      *config.Config
}

// NewHandlers creates a new handlers instance
func NewHandlers(d Deps) *Handlers {
	return &Handlers{
		db:       d.DB,
		cache:    d.Cache,
		analyzer: d.Analyzer,
		pdf:      d.PDF,
		store:    d.Store,
		archive:  d.Archive,
		logger:   d.Logger,
		cfg:      d.Config,
	}
}

// HomePage renders the upload form
func (h *Handlers) HomePage(c *gin.Context) {
	count := 0
	if records, err := h.store.All(c.Request.Context()); err == nil {
		count = len(records)
	} else {
		h.logger.Warn("Failed to count records", "error", err)
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":       "Karar Oku",
		"maxUploadMB": h.cfg.MaxUploadSize >> 20,
		"recordCount": count,
	})
}

// HealthCheck returns the health status
func (h *Handlers) HealthCheck(c *gin.Context) {
	var count int64
	dbHealthy := h.db.Model(&database.AnalysisLog{}).Count(&count).Error == nil

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": dbHealthy,
		"store":    h.cfg.StoreBackend,
		"archive":  h.archive != nil,
		"cache":    h.cache.Stats(),
		"time":     time.Now().Unix(),
	})
}

// CacheStats returns cache statistics
func (h *Handlers) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   h.cache.Stats(),
	})
}

// ListAnalysesAPI returns the latest analysis attempts
func (h *Handlers) ListAnalysesAPI(c *gin.Context) {
	limit := queryInt(c, "limit", 20, 1, 200)

	logs, err := database.RecentAnalyses(h.db, limit)
	if err != nil {
		h.logger.Error("Failed to list analyses", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    logs,
	})
}

func (h *Handlers) renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{
		"title": "Hata",
		"error": message,
	})
}
