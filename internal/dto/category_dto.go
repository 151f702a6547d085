package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-hq/inkwell/internal/entity"
	"github.com/inkwell-hq/inkwell/pkg/apperror"
)

type CategorySortBy string

const (
	CategorySortByName         CategorySortBy = "name"
	CategorySortByCreated      CategorySortBy = "created"
	CategorySortByBlogCount    CategorySortBy = "blog_count"
	CategorySortByTopBlogLikes CategorySortBy = "top_blog_likes"
)

func ParseCategorySortBy(value string) (CategorySortBy, error) {
	switch value {
	case "":
		return CategorySortByCreated, nil
	case string(CategorySortByName), string(CategorySortByCreated),
		string(CategorySortByBlogCount), string(CategorySortByTopBlogLikes):
		return CategorySortBy(value), nil
	default:
		return "", apperror.InvalidSortKey(value)
	}
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

type UpdateCategoryRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=200"`
	Approved *bool   `json:"approved"`
}

type CategoryListFilter struct {
	ListParams
	Name      string         `form:"name"`
	Approved  *bool          `form:"approved"`
	SortBy    CategorySortBy `form:"-"`
	SortOrder SortOrder      `form:"-"`
}

type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Approved  bool      `json:"approved"`
	Blogs     []BlogRef `json:"blogs"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCategoryResponse(c entity.Category) CategoryResponse {
	blogs := make([]BlogRef, 0, len(c.Blogs))
	for _, b := range c.Blogs {
		blogs = append(blogs, BlogRef{ID: b.ID, Name: b.Name})
	}
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Approved:  c.Approved,
		Blogs:     blogs,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
