package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/boticaplus/backend/internal/auth"
	"github.com/boticaplus/backend/internal/export"
	"github.com/boticaplus/backend/internal/report"
	"github.com/boticaplus/backend/internal/service"
	"github.com/boticaplus/backend/internal/storage"
)

type ExportHandler struct {
	reportService   *service.ReportService
	activityService *service.ActivityService
	store           storage.ObjectStorage
	exportDir       string
}

func NewExportHandler(reportService *service.ReportService, activityService *service.ActivityService, store storage.ObjectStorage, exportDir string) *ExportHandler {
	return &ExportHandler{
		reportService:   reportService,
		activityService: activityService,
		store:           store,
		exportDir:       exportDir,
	}
}

// ExportReport renders a report as csv/txt/pdf and streams it back. With
// store=true the artifact is also archived to object storage and the local
// export directory.
func (h *ExportHandler) ExportReport(c *gin.Context) {
	reportType := c.Param("type")
	format, err := export.ParseFormat(c.DefaultQuery("format", "csv"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	artifact, err := h.renderReport(c, reportType, format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if artifact == nil {
		return // renderReport already wrote the error response
	}

	if c.Query("store") == "true" {
		h.archive(c, artifact)
	}

	if actor, ok := auth.ActorFrom(c); ok {
		h.activityService.Record(c.Request.Context(), actor.Username, "export_report", reportType, artifact.Filename)
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}

func (h *ExportHandler) renderReport(c *gin.Context, reportType string, format export.Format) (*export.Artifact, error) {
	ctx := c.Request.Context()
	spec := parsePeriodSpec(c)

	switch reportType {
	case "sales":
		rep, err := h.reportService.SalesReport(ctx, spec, parsePositiveIntWithDefault(c.Query("limit"), report.DefaultTopProducts))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build sales report"})
			return nil, nil
		}
		return export.SalesReport(*rep, format)
	case "inventory":
		rep, err := h.reportService.InventoryReport(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build inventory report"})
			return nil, nil
		}
		return export.InventoryReport(*rep, format)
	case "financial":
		rep, err := h.reportService.FinancialReport(ctx, spec)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build financial report"})
			return nil, nil
		}
		return export.FinancialReport(*rep, format)
	}
	return nil, fmt.Errorf("unknown report type %q", reportType)
}

// ListExports returns the export artifacts archived under the exports/
// prefix in object storage.
func (h *ExportHandler) ListExports(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "object storage is not configured"})
		return
	}

	objects, err := h.store.ListObjects(c.Request.Context(), "exports/")
	if err != nil {
		log.Error().Err(err).Msg("failed to list export archive")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list exports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exports": objects,
		"count":   len(objects),
	})
}

// archive best-effort persists the artifact; failures never fail the download.
func (h *ExportHandler) archive(c *gin.Context, artifact *export.Artifact) {
	if h.exportDir != "" {
		path := filepath.Join(h.exportDir, artifact.Filename)
		if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
			log.Error().Err(err).Str("path", path).Msg("failed to write export file")
		}
	}

	if h.store != nil {
		key := "exports/" + artifact.Filename
		if err := h.store.UploadObject(c.Request.Context(), key, artifact.ContentType, artifact.Data); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to upload export")
		}
	}
}
