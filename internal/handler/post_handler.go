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

type PostHandler struct {
	postService service.PostService
}

func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Create(c *gin.Context) {
	blogID, ok := parseIDParam(c, "blog_id")
	if !ok {
		return
	}
	user, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ValidationFailed(validator.FormatValidationError(err)))
		return
	}

	post, err := h.postService.Create(c.Request.Context(), blogID, user, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	post, err := h.postService.Get(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) List(c *gin.Context) {
	var filter dto.PostListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, apperror.ValidationFailed(validator.FormatValidationError(err)))
		return
	}

	sortBy, err := dto.ParsePostSortBy(c.Query("sort_by"))
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

	posts, total, err := h.postService.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, posts, listPagination(filter.ListParams, total), response.Sort{
		Order: string(sortOrder),
		Prop:  string(sortBy),
	})
}

func (h *PostHandler) Update(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}
	user, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ValidationFailed(validator.FormatValidationError(err)))
		return
	}

	post, err := h.postService.Update(c.Request.Context(), postID, user, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}
	user, ok := actingUser(c)
	if !ok {
		return
	}

	if err := h.postService.Delete(c.Request.Context(), postID, user); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PostHandler) Like(c *gin.Context) {
	h.engage(c, h.postService.Like)
}

func (h *PostHandler) Unlike(c *gin.Context) {
	h.engage(c, h.postService.Unlike)
}

func (h *PostHandler) AddFavorite(c *gin.Context) {
	h.engage(c, h.postService.AddFavorite)
}

func (h *PostHandler) RemoveFavorite(c *gin.Context) {
	h.engage(c, h.postService.RemoveFavorite)
}

func (h *PostHandler) engage(c *gin.Context, op func(ctx context.Context, postID uuid.UUID, actingUser dto.AuthUser) (*dto.PostResponse, error)) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}
	user, ok := actingUser(c)
	if !ok {
		return
	}

	post, err := op(c.Request.Context(), postID, user)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}
