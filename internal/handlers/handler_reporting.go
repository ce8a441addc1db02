package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// reportingHandler handles HTTP requests for the read-side reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

func parseAsOf(c *gin.Context) (time.Time, bool) {
	raw := c.Query("asOf")
	if raw == "" {
		return time.Now().UTC(), true
	}
	asOf, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return asOf, true
}

func optionalParty(c *gin.Context) *string {
	if p := c.Query("partyID"); p != "" {
		return &p
	}
	return nil
}

// openAR godoc
// @Summary Open receivables as of a date
// @Tags reporting
// @Produce  json
// @Param   asOf query string false "Reporting date (YYYY-MM-DD, defaults to today)"
// @Param   partyID query string false "Restrict to one customer"
// @Success 200 {object} dto.OpenBalanceReport
// @Router /reports/open-ar [get]
func (h *reportingHandler) openAR(c *gin.Context) {
	ctx, tenantID, _, logger, ok := identity(c)
	if !ok {
		return
	}
	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}

	report, err := h.reportingService.GetOpenAR(ctx, tenantID, optionalParty(c), asOf)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// openAP godoc
// @Summary Open payables as of a date
// @Tags reporting
// @Produce  json
// @Param   asOf query string false "Reporting date (YYYY-MM-DD, defaults to today)"
// @Param   partyID query string false "Restrict to one vendor"
// @Success 200 {object} dto.OpenBalanceReport
// @Router /reports/open-ap [get]
func (h *reportingHandler) openAP(c *gin.Context) {
	ctx, tenantID, _, logger, ok := identity(c)
	if !ok {
		return
	}
	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}

	report, err := h.reportingService.GetOpenAP(ctx, tenantID, optionalParty(c), asOf)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// arStatement godoc
// @Summary Receivables statement for one party
// @Tags reporting
// @Produce  json
// @Param   partyID path string true "Party ID"
// @Param   asOf query string false "Reporting date (YYYY-MM-DD, defaults to today)"
// @Success 200 {object} dto.ARStatement
// @Router /reports/ar-statement/{partyID} [get]
func (h *reportingHandler) arStatement(c *gin.Context) {
	ctx, tenantID, _, logger, ok := identity(c)
	if !ok {
		return
	}
	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}

	statement, err := h.reportingService.GetARStatement(ctx, tenantID, c.Param("partyID"), asOf)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, statement)
}

// trialBalance godoc
// @Summary Trial balance over a date range
// @Tags reporting
// @Produce  json
// @Param   from query string false "From posting date (YYYY-MM-DD)"
// @Param   to query string false "To posting date (YYYY-MM-DD)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Router /reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	ctx, tenantID, _, logger, ok := identity(c)
	if !ok {
		return
	}

	var rng dto.DateRange
	if err := c.ShouldBindQuery(&rng); err != nil {
		logger.Error("Failed to bind query for trialBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range"})
		return
	}

	report, err := h.reportingService.GetTrialBalance(ctx, tenantID, rng)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// registerReportingRoutes registers reporting specific routes
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := group.Group("/reports")
	{
		reports.GET("/open-ar", h.openAR)
		reports.GET("/open-ap", h.openAP)
		reports.GET("/ar-statement/:partyID", h.arStatement)
		reports.GET("/trial-balance", h.trialBalance)
	}
}
