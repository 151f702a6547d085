package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-hq/inkwell/internal/entity"
	"github.com/inkwell-hq/inkwell/pkg/apperror"
)

type BlogSortBy string

const (
	BlogSortByName            BlogSortBy = "name"
	BlogSortByCreated         BlogSortBy = "created"
	BlogSortByLikerCount      BlogSortBy = "liker_count"
	BlogSortBySubscriberCount BlogSortBy = "subscriber_count"
)

func ParseBlogSortBy(value string) (BlogSortBy, error) {
	switch value {
	case "":
		return BlogSortByCreated, nil
	case string(BlogSortByName), string(BlogSortByCreated),
		string(BlogSortByLikerCount), string(BlogSortBySubscriberCount):
		return BlogSortBy(value), nil
	default:
		return "", apperror.InvalidSortKey(value)
	}
}

type CreateBlogRequest struct {
	Name        string      `json:"name" binding:"required,min=1,max=500"`
	CategoryIDs []uuid.UUID `json:"category_ids" binding:"omitempty,max=3"`
}

type UpdateBlogRequest struct {
	Name              *string     `json:"name" binding:"omitempty,min=1,max=500"`
	Archived          *bool       `json:"archived"`
	AddCategoryIDs    []uuid.UUID `json:"add_category_ids"`
	RemoveCategoryIDs []uuid.UUID `json:"remove_category_ids"`
}

type AddAuthorsRequest struct {
	AuthorIDs []uuid.UUID `json:"author_ids" binding:"required,min=1"`
}

type BlogListFilter struct {
	ListParams
	Name        string      `form:"name"`
	AuthorID    *uuid.UUID  `form:"author_id"`
	Archived    *bool       `form:"archived"`
	CategoryIDs []uuid.UUID `form:"category_id"`
	SortBy      BlogSortBy  `form:"-"`
	SortOrder   SortOrder   `form:"-"`
}

type BlogResponse struct {
	ID              uuid.UUID     `json:"id"`
	Name            string        `json:"name"`
	Archived        bool          `json:"archived"`
	Authors         []UserRef     `json:"authors"`
	Likers          []UserRef     `json:"likers"`
	Subscribers     []UserRef     `json:"subscribers"`
	Tags            []TagRef      `json:"tags"`
	Categories      []CategoryRef `json:"categories"`
	LikerCount      int64         `json:"liker_count"`
	SubscriberCount int64         `json:"subscriber_count"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func NewBlogResponse(b entity.Blog) BlogResponse {
	tags := make([]TagRef, 0, len(b.Tags))
	for _, t := range b.Tags {
		tags = append(tags, TagRef{ID: t.ID, Name: t.Name})
	}
	categories := make([]CategoryRef, 0, len(b.Categories))
	for _, c := range b.Categories {
		categories = append(categories, CategoryRef{ID: c.ID, Name: c.Name})
	}
	return BlogResponse{
		ID:              b.ID,
		Name:            b.Name,
		Archived:        b.Archived,
		Authors:         NewUserRefs(b.Authors),
		Likers:          NewUserRefs(b.Likers),
		Subscribers:     NewUserRefs(b.Subscribers),
		Tags:            tags,
		Categories:      categories,
		LikerCount:      int64(len(b.Likers)),
		SubscriberCount: int64(len(b.Subscribers)),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
