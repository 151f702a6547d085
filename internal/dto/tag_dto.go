package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-hq/inkwell/internal/entity"
	"github.com/inkwell-hq/inkwell/pkg/apperror"
)

type TagSortBy string

const (
	TagSortByCreated         TagSortBy = "created"
	TagSortByMostSubscribers TagSortBy = "most_subscribers"
)

func ParseTagSortBy(value string) (TagSortBy, error) {
	switch value {
	case "":
		return TagSortByCreated, nil
	case string(TagSortByCreated), string(TagSortByMostSubscribers):
		return TagSortBy(value), nil
	default:
		return "", apperror.InvalidSortKey(value)
	}
}

type CreateTagRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type UpdateTagRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// BlogID and SubscriberID are mutually exclusive filters.
type TagListFilter struct {
	ListParams
	BlogID       *uuid.UUID `form:"blog_id"`
	SubscriberID *uuid.UUID `form:"subscriber_id"`
	Name         string     `form:"name"`
	SortBy       TagSortBy  `form:"-"`
	SortOrder    SortOrder  `form:"-"`
}

type TagResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Blog            BlogRef   `json:"blog"`
	Subscribers     []UserRef `json:"subscribers"`
	SubscriberCount int64     `json:"subscriber_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewTagResponse(t entity.Tag) TagResponse {
	return TagResponse{
		ID:              t.ID,
		Name:            t.Name,
		Blog:            BlogRef{ID: t.BlogID, Name: t.Blog.Name},
		Subscribers:     NewUserRefs(t.Subscribers),
		SubscriberCount: int64(len(t.Subscribers)),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
