package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// periodHandler handles HTTP requests for accounting periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(periodService portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{periodService: periodService}
}

// createPeriod godoc
// @Summary Create an accounting period
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   period body dto.CreatePeriodRequest true "Period"
// @Success 201 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Range overlaps an existing period"
// @Router /periods [post]
func (h *periodHandler) createPeriod(c *gin.Context) {
	ctx, tenantID, actorID, logger, ok := identity(c)
	if !ok {
		return
	}

	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	period, err := h.periodService.CreatePeriod(ctx, tenantID, actorID, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// getPeriod godoc
// @Summary Get a period
// @Tags periods
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Router /periods/{periodID} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	ctx, tenantID, _, logger, ok := identity(c)
	if !ok {
		return
	}

	period, err := h.periodService.GetPeriod(ctx, tenantID, c.Param("periodID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List periods
// @Tags periods
// @Produce  json
// @Success 200 {array} dto.PeriodResponse
// @Router /periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	ctx, tenantID, _, logger, ok := identity(c)
	if !ok {
		return
	}

	periods, err := h.periodService.ListPeriods(ctx, tenantID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	out := make([]dto.PeriodResponse, len(periods))
	for i := range periods {
		out[i] = dto.ToPeriodResponse(&periods[i])
	}
	c.JSON(http.StatusOK, out)
}

// softClose godoc
// @Summary Soft-close a period
// @Description Advisory close; posting stays allowed. Snapshots the close checklist.
// @Tags periods
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 409 {object} map[string]string "Period is not open"
// @Router /periods/{periodID}/soft-close [post]
func (h *periodHandler) softClose(c *gin.Context) {
	ctx, tenantID, actorID, logger, ok := identity(c)
	if !ok {
		return
	}

	period, err := h.periodService.SoftClose(ctx, tenantID, actorID, c.Param("periodID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// hardClose godoc
// @Summary Hard-close a period
// @Description Locks the period against all postings dated inside it and freezes its totals
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Param   body body dto.HardCloseRequest false "Force flag"
// @Success 200 {object} dto.PeriodResponse
// @Failure 409 {object} map[string]string "Outstanding checklist items or wrong state"
// @Router /periods/{periodID}/hard-close [post]
func (h *periodHandler) hardClose(c *gin.Context) {
	ctx, tenantID, actorID, logger, ok := identity(c)
	if !ok {
		return
	}

	var req dto.HardCloseRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		logger.Error("Failed to bind JSON for hardClose", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	period, err := h.periodService.HardClose(ctx, tenantID, actorID, c.Param("periodID"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// reopen godoc
// @Summary Reopen a closed period
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Param   body body dto.ReopenRequest true "Reason (min 10 chars)"
// @Success 200 {object} dto.PeriodResponse
// @Failure 409 {object} map[string]string "Period is already open"
// @Router /periods/{periodID}/reopen [post]
func (h *periodHandler) reopen(c *gin.Context) {
	ctx, tenantID, actorID, logger, ok := identity(c)
	if !ok {
		return
	}

	var req dto.ReopenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for reopen", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	period, err := h.periodService.Reopen(ctx, tenantID, actorID, c.Param("periodID"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// registerPeriodRoutes registers period specific routes
func registerPeriodRoutes(group *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodService)

	periods := group.Group("/periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/:periodID", h.getPeriod)
		periods.POST("/:periodID/soft-close", h.softClose)
		periods.POST("/:periodID/hard-close", h.hardClose)
		periods.POST("/:periodID/reopen", h.reopen)
	}
}
