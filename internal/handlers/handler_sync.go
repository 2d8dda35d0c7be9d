package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voyagebooks/voyage_backoffice/internal/apperrors"
	portssvc "github.com/voyagebooks/voyage_backoffice/internal/core/ports/services"
	"github.com/voyagebooks/voyage_backoffice/internal/core/services"
	"github.com/voyagebooks/voyage_backoffice/internal/dto"
	"github.com/voyagebooks/voyage_backoffice/internal/middleware"
)

// syncHandler handles HTTP requests for the sales-to-accounting bridge:
// account mappings, sync settings and manual sync runs.
type syncHandler struct {
	syncService       portssvc.SyncSvcFacade
	syncConfigService portssvc.SyncConfigSvcFacade
}

func newSyncHandler(syncService portssvc.SyncSvcFacade, syncConfigService portssvc.SyncConfigSvcFacade) *syncHandler {
	return &syncHandler{syncService: syncService, syncConfigService: syncConfigService}
}

// registerSyncRoutes registers routes related to the sync bridge.
func registerSyncRoutes(rg *gin.RouterGroup, syncService portssvc.SyncSvcFacade, syncConfigService portssvc.SyncConfigSvcFacade) {
	h := newSyncHandler(syncService, syncConfigService)

	sync := rg.Group("/sync")
	{
		sync.GET("/mappings", h.getAccountMappings)
		sync.PUT("/mappings", h.updateAccountMapping)
		sync.GET("/settings", h.getSyncSettings)
		sync.PUT("/settings", h.updateSyncSettings)
		sync.POST("/run", h.runSync)
	}
}

// getAccountMappings godoc
// @Summary List the sales-type-to-ledger-account mappings
// @Tags sync
// @Produce json
// @Success 200 {object} dto.ListAccountMappingsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list mappings"
// @Security BearerAuth
// @Router /sync/mappings [get]
func (h *syncHandler) getAccountMappings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	mappings, err := h.syncConfigService.GetAccountMappings(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list account mappings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list account mappings"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAccountMappingsResponse(mappings))
}

// updateAccountMapping godoc
// @Summary Replace the ledger mapping for one sales type
// @Description Both referenced accounts must exist and be active detail accounts
// @Tags sync
// @Accept json
// @Produce json
// @Param mapping body dto.UpdateAccountMappingRequest true "Mapping details"
// @Success 204 "Mapping saved"
// @Failure 400 {object} map[string]string "Invalid input or unpostable account"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to save mapping"
// @Security BearerAuth
// @Router /sync/mappings [put]
func (h *syncHandler) updateAccountMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateAccountMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccountMapping", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.syncConfigService.UpdateAccountMapping(c.Request.Context(), req, userID); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Account mapping rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update account mapping", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account mapping"})
		return
	}

	c.Status(http.StatusNoContent)
}

// getSyncSettings godoc
// @Summary Get the sync settings
// @Tags sync
// @Produce json
// @Success 200 {object} dto.SyncSettingsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to read settings"
// @Security BearerAuth
// @Router /sync/settings [get]
func (h *syncHandler) getSyncSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	settings, err := h.syncConfigService.GetSyncSettings(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get sync settings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read sync settings"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSyncSettingsResponse(settings))
}

// updateSyncSettings godoc
// @Summary Change the sync cadence
// @Description Persists the new cadence and reschedules the sync timer
// @Tags sync
// @Accept json
// @Produce json
// @Param settings body dto.UpdateSyncSettingsRequest true "New settings"
// @Success 200 {object} dto.SyncSettingsResponse
// @Failure 400 {object} map[string]string "Unknown sync frequency"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to save settings"
// @Security BearerAuth
// @Router /sync/settings [put]
func (h *syncHandler) updateSyncSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateSyncSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateSyncSettings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	settings, err := h.syncConfigService.UpdateSyncSettings(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, services.ErrUnknownSyncFrequency) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update sync settings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sync settings"})
		return
	}

	logger.Info("Sync settings updated", slog.String("frequency", string(settings.SyncFrequency)))
	c.JSON(http.StatusOK, dto.ToSyncSettingsResponse(settings))
}

// runSync godoc
// @Summary Run a sync pass now
// @Description Drains the pending sales queue and posts one journal per transaction. Per-item failures are reported in the result; the pass itself still succeeds.
// @Tags sync
// @Produce json
// @Success 200 {object} dto.SyncResultResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "A sync pass is already running"
// @Failure 500 {object} map[string]string "Sync could not read its queue or configuration"
// @Security BearerAuth
// @Router /sync/run [post]
func (h *syncHandler) runSync(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := h.syncService.Sync(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrSyncInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": "A sync pass is already running"})
			return
		}
		logger.Error("Sync run failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sync failed"})
		return
	}

	logger.Info("Manual sync completed",
		slog.Int("synced", result.SyncedCount),
		slog.Int("failed", result.FailedCount),
	)
	c.JSON(http.StatusOK, dto.ToSyncResultResponse(result))
}
