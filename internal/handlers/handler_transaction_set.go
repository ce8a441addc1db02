package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// transactionSetHandler handles HTTP requests for the transaction set lifecycle.
type transactionSetHandler struct {
	setService     portssvc.TransactionSetSvcFacade
	postingService portssvc.PostingSvcFacade
}

func newTransactionSetHandler(setService portssvc.TransactionSetSvcFacade, postingService portssvc.PostingSvcFacade) *transactionSetHandler {
	return &transactionSetHandler{setService: setService, postingService: postingService}
}

// createSet godoc
// @Summary Create a draft transaction set
// @Tags transaction-sets
// @Accept  json
// @Produce  json
// @Param   set body dto.CreateTransactionSetRequest true "Transaction set"
// @Success 201 {object} dto.TransactionSetResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /transaction-sets [post]
func (h *transactionSetHandler) createSet(c *gin.Context) {
	ctx, tenantID, actorID, logger, ok := identity(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createSet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	set, err := h.setService.CreateDraft(ctx, tenantID, actorID, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionSetResponse(set))
}

// getSet godoc
// @Summary Get a transaction set
// @Tags transaction-sets
// @Produce  json
// @Param   setID path string true "Transaction set ID"
// @Success 200 {object} dto.TransactionSetResponse
// @Failure 404 {object} map[string]string "Transaction set not found"
// @Router /transaction-sets/{setID} [get]
func (h *transactionSetHandler) getSet(c *gin.Context) {
	ctx, tenantID, _, logger, ok := identity(c)
	if !ok {
		return
	}

	set, err := h.setService.GetSet(ctx, tenantID, c.Param("setID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionSetResponse(set))
}

// stageLines godoc
// @Summary Stage explicit journal legs on a draft set
// @Tags transaction-sets
// @Accept  json
// @Produce  json
// @Param   setID path string true "Transaction set ID"
// @Param   lines body dto.StageLinesRequest true "Lines"
// @Success 201 {object} map[string]any "Staged line IDs"
// @Failure 409 {object} map[string]string "Set is not draft"
// @Router /transaction-sets/{setID}/lines [post]
func (h *transactionSetHandler) stageLines(c *gin.Context) {
	ctx, tenantID, actorID, logger, ok := identity(c)
	if !ok {
		return
	}

	var req dto.StageLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for stageLines", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	lines, err := h.setService.StageLines(ctx, tenantID, actorID, c.Param("setID"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	ids := make([]string, len(lines))
	for i, l := range lines {
		ids[i] = l.StagedLineID
	}
	c.JSON(http.StatusCreated, gin.H{"stagedLineIDs": ids})
}

// submitForReview godoc
// @Summary Submit a draft set for review
// @Tags transaction-sets
// @Produce  json
// @Param   setID path string true "Transaction set ID"
// @Success 200 {object} dto.TransactionSetResponse
// @Failure 400 {object} map[string]string "Set is not draft"
// @Router /transaction-sets/{setID}/submit [post]
func (h *transactionSetHandler) submitForReview(c *gin.Context) {
	ctx, tenantID, actorID, logger, ok := identity(c)
	if !ok {
		return
	}

	set, err := h.setService.SubmitForReview(ctx, tenantID, actorID, c.Param("setID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionSetResponse(set))
}

// postSet godoc
// @Summary Post a transaction set
// @Description Derives, validates and books the journal entry atomically; retrying a posted set returns the original result
// @Tags transaction-sets
// @Produce  json
// @Param   setID path string true "Transaction set ID"
// @Success 200 {object} dto.PostingResult
// @Failure 409 {object} map[string]string "Set is void or the period is closed"
// @Failure 422 {object} map[string]string "Lines do not balance"
// @Router /transaction-sets/{setID}/post [post]
func (h *transactionSetHandler) postSet(c *gin.Context) {
	ctx, tenantID, actorID, logger, ok := identity(c)
	if !ok {
		return
	}

	result, err := h.postingService.PostTransactionSet(ctx, tenantID, actorID, c.Param("setID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// voidSet godoc
// @Summary Void a draft or review set
// @Tags transaction-sets
// @Produce  json
// @Param   setID path string true "Transaction set ID"
// @Success 200 {object} dto.TransactionSetResponse
// @Failure 409 {object} map[string]string "Set is terminal"
// @Router /transaction-sets/{setID}/void [post]
func (h *transactionSetHandler) voidSet(c *gin.Context) {
	ctx, tenantID, actorID, logger, ok := identity(c)
	if !ok {
		return
	}

	set, err := h.setService.VoidSet(ctx, tenantID, actorID, c.Param("setID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionSetResponse(set))
}

// registerTransactionSetRoutes registers transaction set specific routes
func registerTransactionSetRoutes(group *gin.RouterGroup, setService portssvc.TransactionSetSvcFacade, postingService portssvc.PostingSvcFacade) {
	h := newTransactionSetHandler(setService, postingService)

	sets := group.Group("/transaction-sets")
	{
		sets.POST("", h.createSet)
		sets.GET("/:setID", h.getSet)
		sets.POST("/:setID/lines", h.stageLines)
		sets.POST("/:setID/submit", h.submitForReview)
		sets.POST("/:setID/post", h.postSet)
		sets.POST("/:setID/void", h.voidSet)
	}
}
