package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// inventoryHandler handles HTTP requests for stock movements.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func newInventoryHandler(inventoryService portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: inventoryService}
}

// recordMovements godoc
// @Summary Stage stock movements against a new draft set
// @Tags inventory
// @Accept  json
// @Produce  json
// @Param   movements body dto.RecordMovementsRequest true "Movements"
// @Success 201 {object} dto.RecordMovementsResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /inventory/movements [post]
func (h *inventoryHandler) recordMovements(c *gin.Context) {
	ctx, tenantID, actorID, logger, ok := identity(c)
	if !ok {
		return
	}

	var req dto.RecordMovementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for recordMovements", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	resp, err := h.inventoryService.RecordMovements(ctx, tenantID, actorID, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// postMovements godoc
// @Summary Post the staged movements of a set
// @Tags inventory
// @Produce  json
// @Param   setID path string true "Transaction set ID"
// @Success 200 {object} dto.PostingResult
// @Failure 409 {object} map[string]string "Set is void or the period is closed"
// @Router /inventory/movements/{setID}/post [post]
func (h *inventoryHandler) postMovements(c *gin.Context) {
	ctx, tenantID, actorID, logger, ok := identity(c)
	if !ok {
		return
	}

	result, err := h.inventoryService.PostInventoryMovements(ctx, tenantID, actorID, c.Param("setID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// registerInventoryRoutes registers inventory specific routes
func registerInventoryRoutes(group *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	inventory := group.Group("/inventory")
	{
		inventory.POST("/movements", h.recordMovements)
		inventory.POST("/movements/:setID/post", h.postMovements)
	}
}
