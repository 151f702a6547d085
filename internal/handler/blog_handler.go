package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inkwell-hq/inkwell/internal/dto"
	"github.com/inkwell-hq/inkwell/internal/service"
	"github.com/inkwell-hq/inkwell/pkg/apperror"
	"github.com/inkwell-hq/inkwell/pkg/response"
	"github.com/inkwell-hq/inkwell/pkg/validator"
)

type BlogHandler struct {
	blogService service.BlogService
}

func NewBlogHandler(blogService service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

func (h *BlogHandler) Create(c *gin.Context) {
	user, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ValidationFailed(validator.FormatValidationError(err)))
		return
	}

	blog, err := h.blogService.Create(c.Request.Context(), user, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, blog)
}

func (h *BlogHandler) Get(c *gin.Context) {
	blogID, ok := parseIDParam(c, "blog_id")
	if !ok {
		return
	}

	blog, err := h.blogService.Get(c.Request.Context(), blogID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

func (h *BlogHandler) List(c *gin.Context) {
	var filter dto.BlogListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, apperror.ValidationFailed(validator.FormatValidationError(err)))
		return
	}

	sortBy, err := dto.ParseBlogSortBy(c.Query("sort_by"))
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

	blogs, total, err := h.blogService.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, blogs, listPagination(filter.ListParams, total), response.Sort{
		Order: string(sortOrder),
		Prop:  string(sortBy),
	})
}

func (h *BlogHandler) Update(c *gin.Context) {
	blogID, ok := parseIDParam(c, "blog_id")
	if !ok {
		return
	}
	user, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ValidationFailed(validator.FormatValidationError(err)))
		return
	}

	blog, err := h.blogService.Update(c.Request.Context(), blogID, user, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	blogID, ok := parseIDParam(c, "blog_id")
	if !ok {
		return
	}
	user, ok := actingUser(c)
	if !ok {
		return
	}

	if err := h.blogService.Delete(c.Request.Context(), blogID, user); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BlogHandler) AddAuthors(c *gin.Context) {
	blogID, ok := parseIDParam(c, "blog_id")
	if !ok {
		return
	}
	user, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.AddAuthorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ValidationFailed(validator.FormatValidationError(err)))
		return
	}

	blog, err := h.blogService.AddAuthors(c.Request.Context(), blogID, user, req.AuthorIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

func (h *BlogHandler) RemoveAuthor(c *gin.Context) {
	blogID, ok := parseIDParam(c, "blog_id")
	if !ok {
		return
	}
	authorID, ok := parseIDParam(c, "author_id")
	if !ok {
		return
	}
	user, ok := actingUser(c)
	if !ok {
		return
	}

	blog, err := h.blogService.RemoveAuthor(c.Request.Context(), blogID, user, authorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}

func (h *BlogHandler) Subscribe(c *gin.Context) {
	h.engage(c, h.blogService.Subscribe)
}

func (h *BlogHandler) Unsubscribe(c *gin.Context) {
	h.engage(c, h.blogService.Unsubscribe)
}

func (h *BlogHandler) Like(c *gin.Context) {
	h.engage(c, h.blogService.Like)
}

func (h *BlogHandler) Unlike(c *gin.Context) {
	h.engage(c, h.blogService.Unlike)
}

func (h *BlogHandler) engage(c *gin.Context, op func(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser) (*dto.BlogResponse, error)) {
	blogID, ok := parseIDParam(c, "blog_id")
	if !ok {
		return
	}
	user, ok := actingUser(c)
	if !ok {
		return
	}

	blog, err := op(c.Request.Context(), blogID, user)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, blog)
}
