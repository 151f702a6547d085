package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-hq/inkwell/internal/dto"
	"github.com/inkwell-hq/inkwell/internal/service"
	"github.com/inkwell-hq/inkwell/pkg/apperror"
	"github.com/inkwell-hq/inkwell/pkg/response"
	"github.com/inkwell-hq/inkwell/pkg/validator"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ValidationFailed(validator.FormatValidationError(err)))
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), user, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "category_id")
	if !ok {
		return
	}

	category, err := h.categoryService.Get(c.Request.Context(), categoryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) List(c *gin.Context) {
	var filter dto.CategoryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, apperror.ValidationFailed(validator.FormatValidationError(err)))
		return
	}

	sortBy, err := dto.ParseCategorySortBy(c.Query("sort_by"))
	if err != nil {
		response.Error(c, err)
		return
	}
	sortOrder, err := dto.ParseSortOrder(c.Query("sort_order"))
	if err != nil {
		response.Error(c, err)
		return
	}
	filter.SortBy = sortBy
	filter.SortOrder = sortOrder

	categories, total, err := h.categoryService.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, categories, listPagination(filter.ListParams, total), response.Sort{
		Order: string(sortOrder),
		Prop:  string(sortBy),
	})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "category_id")
	if !ok {
		return
	}
	user, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ValidationFailed(validator.FormatValidationError(err)))
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), categoryID, user, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "category_id")
	if !ok {
		return
	}
	user, ok := actingUser(c)
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), categoryID, user); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
