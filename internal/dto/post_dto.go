package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-hq/inkwell/internal/entity"
	"github.com/inkwell-hq/inkwell/pkg/apperror"
)

type PostSortBy string

const (
	PostSortByCreated    PostSortBy = "created"
	PostSortByTitle      PostSortBy = "title"
	PostSortByLikerCount PostSortBy = "liker_count"
)

func ParsePostSortBy(value string) (PostSortBy, error) {
	switch value {
	case "":
		return PostSortByCreated, nil
	case string(PostSortByCreated), string(PostSortByTitle), string(PostSortByLikerCount):
		return PostSortBy(value), nil
	default:
		return "", apperror.InvalidSortKey(value)
	}
}

type CreatePostRequest struct {
	Title        string      `json:"title" binding:"required,min=1,max=300"`
	Body         string      `json:"body" binding:"required"`
	Published    bool        `json:"published"`
	AuthorIDs    []uuid.UUID `json:"author_ids" binding:"required,min=1"`
	TagIDs       []uuid.UUID `json:"tag_ids"`
	Notes        []string    `json:"notes" binding:"omitempty,max=10,dive,max=1000"`
	Bibliography []string    `json:"bibliography" binding:"omitempty,max=10,dive,max=1000"`
}

type UpdatePostRequest struct {
	Title        *string     `json:"title" binding:"omitempty,min=1,max=300"`
	Body         *string     `json:"body"`
	Published    *bool       `json:"published"`
	AuthorIDs    []uuid.UUID `json:"author_ids"`
	TagIDs       []uuid.UUID `json:"tag_ids"`
	Notes        []string    `json:"notes" binding:"omitempty,max=10,dive,max=1000"`
	Bibliography []string    `json:"bibliography" binding:"omitempty,max=10,dive,max=1000"`
}

type PostListFilter struct {
	ListParams
	Published *bool       `form:"published"`
	BlogID    *uuid.UUID  `form:"blog_id"`
	AuthorIDs []uuid.UUID `form:"author_id"`
	TagIDs    []uuid.UUID `form:"tag_id"`
	Title     string      `form:"title"`
	Body      string      `form:"body"`
	SortBy    PostSortBy  `form:"-"`
	SortOrder SortOrder   `form:"-"`
}

type PostResponse struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Body         string     `json:"body"`
	Published    bool       `json:"published"`
	Notes        []string   `json:"notes,omitempty"`
	Bibliography []string   `json:"bibliography,omitempty"`
	Blog         BlogRef    `json:"blog"`
	Authors      []UserRef  `json:"authors"`
	Tags         []TagRef   `json:"tags"`
	Likers       []UserRef  `json:"likers"`
	Favoriters   []UserRef  `json:"favoriters"`
	LikerCount   int64      `json:"liker_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func NewPostResponse(p entity.Post) PostResponse {
	tags := make([]TagRef, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, TagRef{ID: t.ID, Name: t.Name})
	}
	return PostResponse{
		ID:           p.ID,
		Title:        p.Title,
		Body:         p.Body,
		Published:    p.Published,
		Notes:        p.Notes,
		Bibliography: p.Bibliography,
		Blog:         BlogRef{ID: p.BlogID, Name: p.Blog.Name},
		Authors:      NewUserRefs(p.Authors),
		Tags:         tags,
		Likers:       NewUserRefs(p.Likers),
		Favoriters:   NewUserRefs(p.Favoriters),
		LikerCount:   int64(len(p.Likers)),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
