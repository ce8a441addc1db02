package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// paymentHandler handles HTTP requests for payments and allocations.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(paymentService portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: paymentService}
}

// createPayment godoc
// @Summary Record a draft payment
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.CreatePaymentRequest true "Payment"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /payments [post]
func (h *paymentHandler) createPayment(c *gin.Context) {
	ctx, tenantID, actorID, logger, ok := identity(c)
	if !ok {
		return
	}

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	payment, err := h.paymentService.CreatePayment(ctx, tenantID, actorID, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment, nil))
}

// getPayment godoc
// @Summary Get a payment with its allocations
// @Tags payments
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Router /payments/{paymentID} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	ctx, tenantID, _, logger, ok := identity(c)
	if !ok {
		return
	}

	payment, allocs, err := h.paymentService.GetPayment(ctx, tenantID, c.Param("paymentID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment, allocs))
}

// createAllocations godoc
// @Summary Allocate a draft payment across open documents
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Param   allocations body dto.CreateAllocationsRequest true "Allocations"
// @Success 201 {object} map[string]any "Allocation IDs"
// @Failure 400 {object} map[string]string "Allocation exceeds payment amount or target open balance"
// @Failure 409 {object} map[string]string "Payment is not draft"
// @Router /payments/{paymentID}/allocations [post]
func (h *paymentHandler) createAllocations(c *gin.Context) {
	ctx, tenantID, actorID, logger, ok := identity(c)
	if !ok {
		return
	}

	var req dto.CreateAllocationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createAllocations", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	allocs, err := h.paymentService.CreateAllocations(ctx, tenantID, actorID, c.Param("paymentID"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	ids := make([]string, len(allocs))
	for i, a := range allocs {
		ids[i] = a.AllocationID
	}
	c.JSON(http.StatusCreated, gin.H{"allocationIDs": ids})
}

// deleteAllocation godoc
// @Summary Remove an allocation from a draft payment
// @Tags payments
// @Param   paymentID path string true "Payment ID"
// @Param   allocationID path string true "Allocation ID"
// @Success 204
// @Failure 409 {object} map[string]string "Payment is not draft"
// @Router /payments/{paymentID}/allocations/{allocationID} [delete]
func (h *paymentHandler) deleteAllocation(c *gin.Context) {
	ctx, tenantID, actorID, logger, ok := identity(c)
	if !ok {
		return
	}

	if err := h.paymentService.Unallocate(ctx, tenantID, actorID, c.Param("paymentID"), c.Param("allocationID")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// postPayment godoc
// @Summary Post a payment
// @Description Books the payment's ledger legs and flips it to posted atomically; retries replay idempotently
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Param   body body dto.PostPaymentRequest false "Optional memo"
// @Success 200 {object} dto.PostPaymentResult
// @Failure 409 {object} map[string]string "Payment is void or the period is closed"
// @Router /payments/{paymentID}/post [post]
func (h *paymentHandler) postPayment(c *gin.Context) {
	ctx, tenantID, actorID, logger, ok := identity(c)
	if !ok {
		return
	}

	var req dto.PostPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		logger.Error("Failed to bind JSON for postPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.paymentService.PostPayment(ctx, tenantID, actorID, c.Param("paymentID"), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// voidPayment godoc
// @Summary Void a draft payment
// @Tags payments
// @Param   paymentID path string true "Payment ID"
// @Success 204
// @Failure 409 {object} map[string]string "Payment is not draft"
// @Router /payments/{paymentID}/void [post]
func (h *paymentHandler) voidPayment(c *gin.Context) {
	ctx, tenantID, actorID, logger, ok := identity(c)
	if !ok {
		return
	}

	if err := h.paymentService.VoidPayment(ctx, tenantID, actorID, c.Param("paymentID")); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// registerPaymentRoutes registers payment specific routes
func registerPaymentRoutes(group *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := group.Group("/payments")
	{
		payments.POST("", h.createPayment)
		payments.GET("/:paymentID", h.getPayment)
		payments.POST("/:paymentID/allocations", h.createAllocations)
		payments.DELETE("/:paymentID/allocations/:allocationID", h.deleteAllocation)
		payments.POST("/:paymentID/post", h.postPayment)
		payments.POST("/:paymentID/void", h.voidPayment)
	}
}
