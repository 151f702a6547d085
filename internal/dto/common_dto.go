package dto

import (
	"github.com/google/uuid"

	"github.com/inkwell-hq/inkwell/internal/entity"
	"github.com/inkwell-hq/inkwell/pkg/apperror"
)

// AuthUser is the authenticated identity every service method receives.
// Immutable value type, built once from the verified token.
type AuthUser struct {
	UserID uuid.UUID
	Role   entity.UserRole
}

func (u AuthUser) IsAdmin() bool {
	return u.Role == entity.RoleAdmin
}

// MaxPageLimit is the hard cap on list page sizes.
const MaxPageLimit = 20

// DefaultPageLimit applies when the client sends no limit.
const DefaultPageLimit = 10

// ListParams are the shared pagination query parameters.
type ListParams struct {
	Limit  int `form:"limit,default=10"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

func ParseSortOrder(value string) (SortOrder, error) {
	switch value {
	case "", "asc":
		return SortAscending, nil
	case "desc":
		return SortDescending, nil
	default:
		return "", apperror.InvalidSortKey(value)
	}
}

// UserRef is the compact user shape embedded in aggregate read views.
type UserRef struct {
	ID       uuid.UUID `json:"id"`
	Nickname string    `json:"nickname"`
}

func NewUserRef(u entity.User) UserRef {
	return UserRef{ID: u.ID, Nickname: u.Nickname}
}

func NewUserRefs(users []entity.User) []UserRef {
	refs := make([]UserRef, 0, len(users))
	for _, u := range users {
		refs = append(refs, NewUserRef(u))
	}
	return refs
}

type TagRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type BlogRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
