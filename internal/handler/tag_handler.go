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

type TagHandler struct {
	tagService service.TagService
}

func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

func (h *TagHandler) Create(c *gin.Context) {
	blogID, ok := parseIDParam(c, "blog_id")
	if !ok {
		return
	}
	user, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ValidationFailed(validator.FormatValidationError(err)))
		return
	}

	tag, err := h.tagService.Create(c.Request.Context(), blogID, user, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (h *TagHandler) Get(c *gin.Context) {
	tagID, ok := parseIDParam(c, "tag_id")
	if !ok {
		return
	}

	tag, err := h.tagService.Get(c.Request.Context(), tagID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) List(c *gin.Context) {
	var filter dto.TagListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, apperror.ValidationFailed(validator.FormatValidationError(err)))
		return
	}

	sortBy, err := dto.ParseTagSortBy(c.Query("sort_by"))
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

	tags, total, err := h.tagService.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, tags, listPagination(filter.ListParams, total), response.Sort{
		Order: string(sortOrder),
		Prop:  string(sortBy),
	})
}

func (h *TagHandler) Update(c *gin.Context) {
	tagID, ok := parseIDParam(c, "tag_id")
	if !ok {
		return
	}
	user, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ValidationFailed(validator.FormatValidationError(err)))
		return
	}

	tag, err := h.tagService.Update(c.Request.Context(), tagID, user, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) Delete(c *gin.Context) {
	tagID, ok := parseIDParam(c, "tag_id")
	if !ok {
		return
	}
	user, ok := actingUser(c)
	if !ok {
		return
	}

	if err := h.tagService.Delete(c.Request.Context(), tagID, user); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TagHandler) Subscribe(c *gin.Context) {
	tagID, ok := parseIDParam(c, "tag_id")
	if !ok {
		return
	}
	user, ok := actingUser(c)
	if !ok {
		return
	}

	tag, err := h.tagService.Subscribe(c.Request.Context(), tagID, user)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) Unsubscribe(c *gin.Context) {
	tagID, ok := parseIDParam(c, "tag_id")
	if !ok {
		return
	}
	user, ok := actingUser(c)
	if !ok {
		return
	}

	tag, err := h.tagService.Unsubscribe(c.Request.Context(), tagID, user)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}
