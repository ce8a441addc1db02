package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// documentHandler handles HTTP requests for AR/AP documents.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(documentService portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{documentService: documentService}
}

// createDocument godoc
// @Summary Register a receivable or payable document
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   document body dto.CreateDocumentRequest true "Document"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /documents [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	ctx, tenantID, actorID, logger, ok := identity(c)
	if !ok {
		return
	}

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	document, err := h.documentService.CreateDocument(ctx, tenantID, actorID, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(document))
}

// getDocument godoc
// @Summary Get a document
// @Tags documents
// @Produce  json
// @Param   documentID path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} map[string]string "Document not found"
// @Router /documents/{documentID} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	ctx, tenantID, _, logger, ok := identity(c)
	if !ok {
		return
	}

	document, err := h.documentService.GetDocument(ctx, tenantID, c.Param("documentID"))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(document))
}

// registerDocumentRoutes registers document specific routes
func registerDocumentRoutes(group *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	documents := group.Group("/documents")
	{
		documents.POST("", h.createDocument)
		documents.GET("/:documentID", h.getDocument)
	}
}
