package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cropsense/leafscan/internal/domain/detection"
	"github.com/cropsense/leafscan/internal/domain/diseasedb"
	"github.com/cropsense/leafscan/internal/infra/config"
	apperrors "github.com/cropsense/leafscan/pkg/errors"
)

const apiVersion = "2.0.0"

// Handler wires the HTTP transport to the detection domain.
type Handler struct {
	detectionSvc detection.Service
	cfg          *config.Config
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(detectionSvc detection.Service, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		detectionSvc: detectionSvc,
		cfg:          cfg,
		logger:       logger.With("component", "http.handler"),
	}
}

// Health reports service status and which external integrations are configured.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"environment": gin.H{
			"groq_configured":     h.cfg.Groq.Configured(),
			"supabase_configured": h.cfg.Persistence.Configured(),
		},
		"version": apiVersion,
		"endpoints": []string{
			"/api/health",
			"/api/detect",
			"/api/diseases",
			"/api/history",
		},
	})
}

// Detect runs the disease detection pipeline on a submitted leaf image.
func (h *Handler) Detect(c *gin.Context) {
	var req detection.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid request body: "+err.Error(), err))
		return
	}

	envelope, err := h.detectionSvc.Detect(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "detect_failed"
		if apperrors.IsCode(err, "invalid_input") || apperrors.IsCode(err, "invalid_image") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, envelope)
}

// diseaseDetail flattens a single disease record next to its name.
type diseaseDetail struct {
	Success bool   `json:"success"`
	Disease string `json:"disease"`
	diseasedb.Info
}

// Diseases serves the static disease reference table. With ?name= it returns
// one record, with ?search= it filters, and with no parameters it lists all.
func (h *Handler) Diseases(c *gin.Context) {
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		c.JSON(http.StatusOK, diseaseDetail{
			Success: true,
			Disease: name,
			Info:    diseasedb.Lookup(name),
		})
		return
	}

	if query := strings.TrimSpace(c.Query("search")); query != "" {
		results := diseasedb.Search(query)
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"count":    len(results),
			"diseases": results,
		})
		return
	}

	all := diseasedb.All()
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(all),
		"diseases": all,
	})
}

// History lists a user's prior scans, newest first.
func (h *Handler) History(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	scans, err := h.detectionSvc.History(c.Request.Context(), userID, limit)
	if err != nil {
		status := http.StatusInternalServerError
		code := "history_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(scans),
		"scans":   scans,
	})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
