package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrBadRequest    = errors.New("bad request")
	ErrUnprocessable = errors.New("unprocessable entity")
	ErrInternal      = errors.New("internal server error")
	ErrInvalidInput  = errors.New("invalid input")
)

// AppError is a custom error type that can hold an HTTP status code
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ListError rejects a bulk operation as a whole and reports every
// per-item failure. Nothing is committed when it is raised.
type ListError struct {
	Errors []*AppError
}

func (e *ListError) Error() string {
	return fmt.Sprintf("multiple errors occurred (%d)", len(e.Errors))
}

// MapErrorToStatus maps errors to HTTP status codes
func MapErrorToStatus(err error) int {
	var listErr *ListError
	if errors.As(err, &listErr) {
		return http.StatusUnprocessableEntity
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUnprocessable) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// Not-found family. Always safe to surface with the id.

func BlogNotFound(blogID uuid.UUID) *AppError {
	return New(http.StatusNotFound, fmt.Sprintf("blog with id %s not found", blogID), ErrNotFound)
}

func TagNotFound(tagID uuid.UUID) *AppError {
	return New(http.StatusNotFound, fmt.Sprintf("tag with id %s not found", tagID), ErrNotFound)
}

func PostNotFound(postID uuid.UUID) *AppError {
	return New(http.StatusNotFound, fmt.Sprintf("post with id %s not found", postID), ErrNotFound)
}

func CategoryNotFound(categoryID uuid.UUID) *AppError {
	return New(http.StatusNotFound, fmt.Sprintf("category with id %s not found", categoryID), ErrNotFound)
}

func UserNotFound(message string) *AppError {
	return New(http.StatusNotFound, message, ErrNotFound)
}

// Permission family. Surfaced with the operation name, never internal detail.

func AdminOrAuthorRequired(operation, entity string) *AppError {
	return New(http.StatusForbidden,
		fmt.Sprintf("only an author or admin can perform %s on this %s", operation, entity), ErrForbidden)
}

func AdminRequired(operation string) *AppError {
	return New(http.StatusForbidden, fmt.Sprintf("admin role required for %s", operation), ErrForbidden)
}

func SelfOrAdminRequired(operation string) *AppError {
	return New(http.StatusForbidden, fmt.Sprintf("only the user or an admin can perform %s", operation), ErrForbidden)
}

func SelfLikeForbidden(postID uuid.UUID) *AppError {
	return New(http.StatusForbidden, fmt.Sprintf("authors cannot like their own post %s", postID), ErrForbidden)
}

// Capacity family. Surfaced with current count and limit.

func AuthorLimitReached(userID uuid.UUID) *AppError {
	return New(http.StatusForbidden, fmt.Sprintf("user %s already authors 3 blogs", userID), ErrForbidden)
}

func AuthorCapacityExceeded(blogID uuid.UUID, current int) *AppError {
	return New(http.StatusBadRequest,
		fmt.Sprintf("blog %s has %d of 5 author slots used", blogID, current), ErrBadRequest)
}

func CategoryLimitReached(blogID uuid.UUID, current int) *AppError {
	return New(http.StatusBadRequest,
		fmt.Sprintf("blog %s has %d of 3 category slots used", blogID, current), ErrBadRequest)
}

// Idempotency family. Expected steady-state conditions, not bugs.

func AlreadySubscribed(id uuid.UUID) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf("already subscribed to %s", id), ErrBadRequest)
}

func NotSubscribed(id uuid.UUID) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf("not subscribed to %s", id), ErrBadRequest)
}

func AlreadyLiked(id uuid.UUID) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf("already liked %s", id), ErrBadRequest)
}

func NotLiked(id uuid.UUID) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf("not liked %s", id), ErrBadRequest)
}

func AlreadyFavorited(postID uuid.UUID) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf("post %s is already a favorite", postID), ErrBadRequest)
}

func NotFavorited(postID uuid.UUID) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf("post %s is not a favorite", postID), ErrBadRequest)
}

// Consistency family. Surfaced with enough ids to act on.

func BlogArchived(blogID uuid.UUID) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf("blog %s is archived", blogID), ErrBadRequest)
}

func AlreadyAuthor(authorID uuid.UUID) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf("user %s is already an author of this blog", authorID), ErrBadRequest)
}

func NotAnAuthor(blogID, authorID uuid.UUID) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf("user %s is not an author of blog %s", authorID, blogID), ErrBadRequest)
}

func LastAuthor(blogID uuid.UUID) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf("cannot remove the last author of blog %s", blogID), ErrBadRequest)
}

func AlreadyInCategory(blogID, categoryID uuid.UUID) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf("blog %s is already in category %s", blogID, categoryID), ErrBadRequest)
}

func NotInCategory(blogID, categoryID uuid.UUID) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf("blog %s is not in category %s", blogID, categoryID), ErrBadRequest)
}

func CannotRemoveAllCategories(blogID uuid.UUID) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf("cannot remove the last category of blog %s", blogID), ErrBadRequest)
}

func CategoryHasBlogs(categoryID uuid.UUID, blogCount int) *AppError {
	return New(http.StatusBadRequest,
		fmt.Sprintf("category %s is still referenced by %d blog(s)", categoryID, blogCount), ErrBadRequest)
}

func AuthorshipRequired(userID, blogID uuid.UUID) *AppError {
	return New(http.StatusBadRequest,
		fmt.Sprintf("user %s is not an author of blog %s", userID, blogID), ErrBadRequest)
}

func TagNotOfBlog(tagID, blogID uuid.UUID) *AppError {
	return New(http.StatusBadRequest,
		fmt.Sprintf("tag %s does not belong to blog %s", tagID, blogID), ErrBadRequest)
}

func DuplicateTitle(title string, blogID uuid.UUID) *AppError {
	return New(http.StatusBadRequest,
		fmt.Sprintf("post titled %q already exists in blog %s", title, blogID), ErrBadRequest)
}

// Validation and request-shape errors.

func PaginationLimitExceeded() *AppError {
	return New(http.StatusBadRequest, "pagination limit cannot exceed 20", ErrBadRequest)
}

func BothFiltersProvided(first, second string) *AppError {
	return New(http.StatusBadRequest,
		fmt.Sprintf("filters %s and %s are mutually exclusive", first, second), ErrBadRequest)
}

func FieldsDoNotMatch(field string) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf("%s confirmation does not match", field), ErrBadRequest)
}

func InvalidSortKey(value string) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf("invalid sort key %q", value), ErrBadRequest)
}

func ValidationFailed(message string) *AppError {
	return New(http.StatusUnprocessableEntity, message, ErrUnprocessable)
}

func InvalidCredentials() *AppError {
	return New(http.StatusUnauthorized, "invalid email or password", ErrUnauthorized)
}

// Persistence family. Generic on purpose, driver detail never leaks.

func EntityCreateFailed(entity string) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf("failed to create %s", entity), ErrBadRequest)
}

func EntityUpdateFailed(entity string) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf("failed to update %s", entity), ErrBadRequest)
}

func EntityDeleteFailed(entity string) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf("failed to delete %s", entity), ErrBadRequest)
}
