package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, d Deps) {
	h := NewHandlers(d)

	router.SetHTMLTemplate(loadTemplates())

	// HTML routes
	router.GET("/", h.HomePage)
	router.POST("/analyze", h.AnalyzeUpload)
	router.GET("/review/:id", h.ViewReview)
	router.GET("/review/:id/export.csv", h.ExportDraftCSV)
	router.POST("/records", h.ConfirmRecord)
	router.GET("/records", h.ListRecords)

	// Downloads
	router.GET("/export/records.csv", h.ExportRecordsCSV)
	router.GET("/export/records.xlsx", h.ExportRecordsXLSX)

	// API routes
	api := router.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
		api.GET("/cache/stats", h.CacheStats)

		api.POST("/analyze", h.AnalyzeAPI)
		api.POST("/analyze/bulk", h.BulkAnalyzeAPI)
		api.GET("/analyses", h.ListAnalysesAPI)
		api.GET("/analyses/:id/file", h.ArchivedFileAPI)

		api.GET("/records", h.ListRecordsAPI)
		api.POST("/records", h.CreateRecordAPI)
	}
}
