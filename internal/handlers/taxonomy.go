package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/solo-platform/community-api/internal/dto"
	apierrors "github.com/solo-platform/community-api/internal/errors"
	"github.com/solo-platform/community-api/internal/services"
)

// TaxonomyHandler coordinates the event category and event type catalog
// handlers. Reads are public; write routes sit behind the staff gate.
type TaxonomyHandler struct {
	taxonomyService *services.TaxonomyService
}

// NewTaxonomyHandler creates a new TaxonomyHandler.
func NewTaxonomyHandler(taxonomyService *services.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{
		taxonomyService: taxonomyService,
	}
}

type taxonomyNameRequest struct {
	Name string `json:"name" binding:"required,max=64"`
}

// CreateCategory adds a category to the catalog. Staff only (route gate).
func (h *TaxonomyHandler) CreateCategory(c *gin.Context) {
	var req taxonomyNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.taxonomyService.CreateCategory(req.Name)
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventCategoryDTO(*category))
}

// ListCategories lists the category catalog. Public read.
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	categories, err := h.taxonomyService.ListCategories()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch categories")
		return
	}

	categoryDTOs := make([]dto.EventCategoryDTO, len(categories))
	for i, category := range categories {
		categoryDTOs[i] = dto.ToEventCategoryDTO(category)
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categoryDTOs,
	})
}

// GetCategory returns a single category. Public read.
func (h *TaxonomyHandler) GetCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.taxonomyService.GetCategory(categoryID)
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventCategoryDTO(*category))
}

// UpdateCategory renames a category. Staff only (route gate).
func (h *TaxonomyHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid category ID")
		return
	}

	var req taxonomyNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.taxonomyService.UpdateCategory(categoryID, req.Name)
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventCategoryDTO(*category))
}

// DeleteCategory removes a category. Staff only (route gate).
func (h *TaxonomyHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.taxonomyService.DeleteCategory(categoryID); err != nil {
		respondTaxonomyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted successfully",
	})
}

// CreateType adds a type to the catalog. Staff only (route gate).
func (h *TaxonomyHandler) CreateType(c *gin.Context) {
	var req taxonomyNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	eventType, err := h.taxonomyService.CreateType(req.Name)
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventTypeDTO(*eventType))
}

// ListTypes lists the type catalog. Public read.
func (h *TaxonomyHandler) ListTypes(c *gin.Context) {
	types, err := h.taxonomyService.ListTypes()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch types")
		return
	}

	typeDTOs := make([]dto.EventTypeDTO, len(types))
	for i, eventType := range types {
		typeDTOs[i] = dto.ToEventTypeDTO(eventType)
	}

	c.JSON(http.StatusOK, gin.H{
		"types": typeDTOs,
	})
}

// GetType returns a single type. Public read.
func (h *TaxonomyHandler) GetType(c *gin.Context) {
	typeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid type ID")
		return
	}

	eventType, err := h.taxonomyService.GetType(typeID)
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventTypeDTO(*eventType))
}

// UpdateType renames a type. Staff only (route gate).
func (h *TaxonomyHandler) UpdateType(c *gin.Context) {
	typeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid type ID")
		return
	}

	var req taxonomyNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	eventType, err := h.taxonomyService.UpdateType(typeID, req.Name)
	if err != nil {
		respondTaxonomyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventTypeDTO(*eventType))
}

// DeleteType removes a type. Staff only (route gate).
func (h *TaxonomyHandler) DeleteType(c *gin.Context) {
	typeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid type ID")
		return
	}

	if err := h.taxonomyService.DeleteType(typeID); err != nil {
		respondTaxonomyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Type deleted successfully",
	})
}

func respondTaxonomyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEventCategoryNotFound),
		errors.Is(err, services.ErrEventTypeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidTaxonomyName):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrDuplicateTaxonomyName):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
