package api

import (
	"bytes"
	"context"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JustJay7/hukuk-okuyucu/internal/database"
	"github.com/JustJay7/hukuk-okuyucu/internal/storage"
)

const pdfContentType = "application/pdf"

// ArchivedFileAPI streams the original upload of an analysis attempt
func (h *Handlers) ArchivedFileAPI(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid analysis id",
		})
		return
	}

	if h.archive == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "archive is not configured",
		})
		return
	}

	entry, err := database.GetAnalysis(h.db, uint(id))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	if entry.ArchivePath == "" {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "analysis has no archived file",
		})
		return
	}

	file, err := h.archive.Download(c.Request.Context(), entry.ArchivePath)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, storage.ErrNotFound) {
			status = http.StatusNotFound
		} else {
			h.logger.Error("Failed to read archived file", "key", entry.ArchivePath, "error", err)
		}
		c.JSON(status, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	defer file.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": entry.SourceName})
	c.DataFromReader(http.StatusOK, -1, pdfContentType, file, map[string]string{
		"Content-Disposition": disposition,
	})
}

// archiveUpload keeps the original file when an archive is configured.
// Failures are logged and do not stop the analysis.
func (h *Handlers) archiveUpload(ctx context.Context, name string, data []byte) string {
	if h.archive == nil {
		return ""
	}

	key, err := h.archive.Upload(ctx, uuid.New(), name, bytes.NewReader(data))
	if err != nil {
		h.logger.Error("Failed to archive upload", "source", name, "error", err)
		return ""
	}
	return key
}

// discardArchive removes the archived copy of a document that could not
// be analyzed and clears its key from the log entry
func (h *Handlers) discardArchive(ctx context.Context, entry *database.AnalysisLog) {
	if h.archive == nil || entry.ArchivePath == "" {
		return
	}

	if err := h.archive.Delete(ctx, entry.ArchivePath); err != nil {
		h.logger.Error("Failed to remove archived upload", "key", entry.ArchivePath, "error", err)
		return
	}
	entry.ArchivePath = ""
}
