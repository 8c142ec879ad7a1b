package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/bookkeeping_engine/internal/core/accounting"
	"github.com/SscSPs/bookkeeping_engine/internal/dto"
	"github.com/SscSPs/bookkeeping_engine/internal/middleware"
)

// normalizeTaxRate godoc
// @Summary Normalize a tax rate
// @Description Parses "7.25%", "7.25" or "0.0725" and returns the decimal rate and display form
// @Tags tax
// @Produce  json
// @Param   rate query string true "Percentage (\"7.25%\"), or a fraction when at most 1"
// @Success 200 {object} dto.TaxRateResponse
// @Failure 400 {object} map[string]string "Rate outside 0-100%"
// @Router /tax-rates/normalize [get]
func normalizeTaxRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rate, err := accounting.ParseTaxRate(c.Query("rate"))
	if err != nil {
		logger.Warn("Invalid tax rate", slog.String("rate", c.Query("rate")), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.TaxRateResponse{
		Rate:    rate.StringFixed(4),
		Display: accounting.FormatTaxRate(rate),
	})
}

// registerTaxRoutes registers tax helper routes
func registerTaxRoutes(rg *gin.RouterGroup) {
	rg.GET("/tax-rates/normalize", normalizeTaxRate)
}
