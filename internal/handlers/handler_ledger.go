package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// ledgerHandler handles HTTP requests for journal entries.
type ledgerHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newLedgerHandler(postingService portssvc.PostingSvcFacade) *ledgerHandler {
	return &ledgerHandler{postingService: postingService}
}

// createEntry godoc
// @Summary Create and post a simple ledger entry
// @Description Posts caller-supplied lines through the posting engine with full balance and period checks
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateSimpleEntryRequest true "Entry"
// @Success 201 {object} dto.PostingResult
// @Failure 409 {object} map[string]string "Period is closed"
// @Failure 422 {object} map[string]string "Lines do not balance"
// @Router /ledger/entries [post]
func (h *ledgerHandler) createEntry(c *gin.Context) {
	ctx, tenantID, actorID, logger, ok := identity(c)
	if !ok {
		return
	}

	var req dto.CreateSimpleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.postingService.CreateSimpleLedgerEntry(ctx, tenantID, actorID, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// getEntry godoc
// @Summary Get a journal entry with its lines
// @Tags ledger
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /ledger/entries/{entryID} [get]
func (h *ledgerHandler) getEntry(c *gin.Context) {
	ctx, tenantID, _, logger, ok := identity(c)
	if !ok {
		return
	}

	entry, err := h.postingService.GetEntry(ctx, tenantID, c.Param("entryID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted journal entry
// @Description Books a new entry with every line's debit and credit swapped; the original is never mutated
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   reversal body dto.ReverseEntryRequest true "Reversal"
// @Success 201 {object} dto.ReversalResult
// @Failure 409 {object} map[string]string "Entry is itself a reversal or the period is closed"
// @Router /ledger/entries/{entryID}/reverse [post]
func (h *ledgerHandler) reverseEntry(c *gin.Context) {
	ctx, tenantID, actorID, logger, ok := identity(c)
	if !ok {
		return
	}

	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for reverseEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.postingService.ReverseJournalEntry(ctx, tenantID, actorID, c.Param("entryID"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	status := http.StatusCreated
	if result.Idempotent {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// listEntriesByAccount godoc
// @Summary List journal entries touching an account
// @Tags ledger
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   from query string false "From posting date (YYYY-MM-DD)"
// @Param   to query string false "To posting date (YYYY-MM-DD)"
// @Success 200 {array} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /ledger/accounts/{accountID}/entries [get]
func (h *ledgerHandler) listEntriesByAccount(c *gin.Context) {
	ctx, tenantID, _, logger, ok := identity(c)
	if !ok {
		return
	}

	var rng dto.DateRange
	if err := c.ShouldBindQuery(&rng); err != nil {
		logger.Error("Failed to bind query for listEntriesByAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range"})
		return
	}

	entries, err := h.postingService.ListEntriesByAccount(ctx, tenantID, c.Param("accountID"), rng)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	out := make([]dto.JournalEntryResponse, len(entries))
	for i := range entries {
		out[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	c.JSON(http.StatusOK, out)
}

// registerLedgerRoutes registers ledger specific routes
func registerLedgerRoutes(group *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newLedgerHandler(postingService)

	ledger := group.Group("/ledger")
	{
		ledger.POST("/entries", h.createEntry)
		ledger.GET("/entries/:entryID", h.getEntry)
		ledger.POST("/entries/:entryID/reverse", h.reverseEntry)
		ledger.GET("/accounts/:accountID/entries", h.listEntriesByAccount)
	}
}
