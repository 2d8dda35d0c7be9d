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

// salesHandler handles HTTP requests related to sales transactions.
type salesHandler struct {
	salesService portssvc.SalesSvcFacade
}

func newSalesHandler(salesService portssvc.SalesSvcFacade) *salesHandler {
	return &salesHandler{salesService: salesService}
}

// registerSalesRoutes registers routes related to sales transactions.
func registerSalesRoutes(rg *gin.RouterGroup, salesService portssvc.SalesSvcFacade) {
	h := newSalesHandler(salesService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.recordSale)
		sales.GET("", h.listSales)
		sales.GET("/pending", h.listPendingSales)
		sales.GET("/:salesID", h.getSale)
	}
}

// recordSale godoc
// @Summary Record a sales transaction
// @Description Places a sale on the accounting sync queue; re-sending the same ID replaces the earlier entry
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body dto.RecordSaleRequest true "Sale details"
// @Success 201 {object} dto.SalesTransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to record sale"
// @Security BearerAuth
// @Router /sales [post]
func (h *salesHandler) recordSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.salesService.RecordSale(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, services.ErrUnknownSalesType) || errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Sale rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to record sale", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record sale"})
		return
	}

	logger.Info("Sale recorded", slog.String("sales_id", txn.ID), slog.String("type", string(txn.Type)))
	c.JSON(http.StatusCreated, dto.ToSalesTransactionResponse(txn))
}

// getSale godoc
// @Summary Get a sales transaction by ID
// @Tags sales
// @Produce json
// @Param salesID path string true "Sales transaction ID"
// @Success 200 {object} dto.SalesTransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Sales transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve sale"
// @Security BearerAuth
// @Router /sales/{salesID} [get]
func (h *salesHandler) getSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	salesID := c.Param("salesID")

	txn, err := h.salesService.GetSalesTransactionByID(c.Request.Context(), salesID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sales transaction not found"})
			return
		}
		logger.Error("Failed to get sale", slog.String("error", err.Error()), slog.String("sales_id", salesID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sale"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSalesTransactionResponse(txn))
}

// listSales godoc
// @Summary List sales transactions
// @Tags sales
// @Produce json
// @Param limit query int false "Max results" default(20)
// @Param offset query int false "Results offset" default(0)
// @Success 200 {object} dto.ListSalesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list sales"
// @Security BearerAuth
// @Router /sales [get]
func (h *salesHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txns, err := h.salesService.ListSalesTransactions(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list sales", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sales"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSalesResponse(txns))
}

// listPendingSales godoc
// @Summary List sales awaiting accounting sync
// @Description Returns the pending queue in the order the sync engine will process it
// @Tags sales
// @Produce json
// @Success 200 {object} dto.ListSalesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list pending sales"
// @Security BearerAuth
// @Router /sales/pending [get]
func (h *salesHandler) listPendingSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	txns, err := h.salesService.ListPendingSalesTransactions(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list pending sales", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pending sales"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSalesResponse(txns))
}
