package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-hq/inkwell/internal/dto"
	"github.com/inkwell-hq/inkwell/internal/entity"
	"github.com/inkwell-hq/inkwell/internal/repository"
	"github.com/inkwell-hq/inkwell/pkg/apperror"
)

type BlogService interface {
	Create(ctx context.Context, actingUser dto.AuthUser, req dto.CreateBlogRequest) (*dto.BlogResponse, error)
	Get(ctx context.Context, blogID uuid.UUID) (*dto.BlogResponse, error)
	List(ctx context.Context, filter dto.BlogListFilter) ([]dto.BlogResponse, int64, error)
	Update(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser, req dto.UpdateBlogRequest) (*dto.BlogResponse, error)
	Delete(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser) error

	AddAuthors(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser, authorIDs []uuid.UUID) (*dto.BlogResponse, error)
	RemoveAuthor(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser, authorID uuid.UUID) (*dto.BlogResponse, error)

	Subscribe(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser) (*dto.BlogResponse, error)
	Unsubscribe(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser) (*dto.BlogResponse, error)
	Like(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser) (*dto.BlogResponse, error)
	Unlike(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser) (*dto.BlogResponse, error)

	// CheckPermission is the guard the tag and post services delegate to
	// before mutating anything owned by a blog.
	CheckPermission(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser, operation string) error
}

type blogService struct {
	repo         repository.BlogRepository
	categoryRepo repository.CategoryRepository
	userService  UserService
	engagement   EngagementService
}

func NewBlogService(repo repository.BlogRepository, categoryRepo repository.CategoryRepository, userService UserService, engagement EngagementService) BlogService {
	return &blogService{
		repo:         repo,
		categoryRepo: categoryRepo,
		userService:  userService,
		engagement:   engagement,
	}
}

// checkAuthorQuota fails when the user already authors the maximum number
// of blogs.
func (s *blogService) checkAuthorQuota(ctx context.Context, userID uuid.UUID) error {
	count, err := s.repo.CountBlogsByAuthor(ctx, userID)
	if err != nil {
		return err
	}
	if count >= entity.MaxBlogsPerUser {
		return apperror.AuthorLimitReached(userID)
	}
	return nil
}

func (s *blogService) findBlog(ctx context.Context, blogID uuid.UUID) (*entity.Blog, error) {
	blog, err := s.repo.FindByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.BlogNotFound(blogID)
		}
		return nil, err
	}
	return blog, nil
}

func (s *blogService) buildResponse(ctx context.Context, blog entity.Blog) *dto.BlogResponse {
	resp := dto.NewBlogResponse(blog)
	if likers, subscribers, err := s.engagement.BlogCounts(ctx, blog.ID); err == nil {
		resp.LikerCount = likers
		resp.SubscriberCount = subscribers
	}
	return &resp
}

func (s *blogService) Create(ctx context.Context, actingUser dto.AuthUser, req dto.CreateBlogRequest) (*dto.BlogResponse, error) {
	user, err := s.userService.GetEntity(ctx, actingUser.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAuthorQuota(ctx, user.ID); err != nil {
		return nil, err
	}

	categories, err := s.resolveCategories(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	blog := &entity.Blog{
		Name:       req.Name,
		Authors:    []entity.User{*user},
		Categories: categories,
	}
	if err := s.repo.Create(ctx, blog); err != nil {
		return nil, apperror.EntityCreateFailed("blog")
	}

	return s.Get(ctx, blog.ID)
}

// resolveCategories loads every requested category and fails on the first
// missing id.
func (s *blogService) resolveCategories(ctx context.Context, ids []uuid.UUID) ([]entity.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	categories, err := s.categoryRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[uuid.UUID]bool, len(categories))
	for _, c := range categories {
		found[c.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, apperror.CategoryNotFound(id)
		}
	}
	return categories, nil
}

func (s *blogService) Get(ctx context.Context, blogID uuid.UUID) (*dto.BlogResponse, error) {
	blog, err := s.findBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, *blog), nil
}

func (s *blogService) List(ctx context.Context, filter dto.BlogListFilter) ([]dto.BlogResponse, int64, error) {
	if filter.Limit > dto.MaxPageLimit {
		return nil, 0, apperror.PaginationLimitExceeded()
	}

	blogs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]dto.BlogResponse, 0, len(blogs))
	for _, b := range blogs {
		responses = append(responses, dto.NewBlogResponse(b))
	}
	return responses, total, nil
}

func (s *blogService) CheckPermission(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser, operation string) error {
	if _, err := s.findBlog(ctx, blogID); err != nil {
		return err
	}
	if actingUser.IsAdmin() {
		return nil
	}
	isAuthor, err := s.repo.IsAuthor(ctx, blogID, actingUser.UserID)
	if err != nil {
		return err
	}
	if !isAuthor {
		return apperror.AdminOrAuthorRequired(operation, "blog")
	}
	return nil
}

func (s *blogService) AddAuthors(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser, authorIDs []uuid.UUID) (*dto.BlogResponse, error) {
	if err := s.CheckPermission(ctx, blogID, actingUser, "author addition"); err != nil {
		return nil, err
	}

	current, err := s.repo.CountAuthors(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if current+int64(len(authorIDs)) > entity.MaxAuthorsPerBlog {
		return nil, apperror.AuthorCapacityExceeded(blogID, int(current))
	}

	// Per-candidate failures accumulate; the whole call is rejected if any
	// candidate is invalid so no author pair is inserted partially.
	var candidateErrors []*apperror.AppError
	pairs := make([]entity.BlogAuthor, 0, len(authorIDs))
	for _, authorID := range authorIDs {
		already, err := s.repo.IsAuthor(ctx, blogID, authorID)
		if err != nil {
			return nil, err
		}
		if already {
			candidateErrors = append(candidateErrors, apperror.AlreadyAuthor(authorID))
			continue
		}
		if _, err := s.userService.GetEntity(ctx, authorID); err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				candidateErrors = append(candidateErrors, appErr)
				continue
			}
			return nil, err
		}
		if err := s.checkAuthorQuota(ctx, authorID); err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				candidateErrors = append(candidateErrors, appErr)
				continue
			}
			return nil, err
		}
		pairs = append(pairs, entity.BlogAuthor{BlogID: blogID, AuthorID: authorID})
	}

	if len(candidateErrors) > 0 {
		return nil, &apperror.ListError{Errors: candidateErrors}
	}

	if err := s.repo.AddAuthors(ctx, pairs); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(http.StatusBadRequest,
				fmt.Sprintf("a user is already an author of blog %s", blogID), apperror.ErrBadRequest)
		}
		return nil, apperror.EntityCreateFailed("blog author")
	}

	return s.Get(ctx, blogID)
}

func (s *blogService) RemoveAuthor(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser, authorID uuid.UUID) (*dto.BlogResponse, error) {
	if err := s.CheckPermission(ctx, blogID, actingUser, "author removal"); err != nil {
		return nil, err
	}

	isAuthor, err := s.repo.IsAuthor(ctx, blogID, authorID)
	if err != nil {
		return nil, err
	}
	if !isAuthor {
		return nil, apperror.NotAnAuthor(blogID, authorID)
	}

	count, err := s.repo.CountAuthors(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if count <= 1 {
		return nil, apperror.LastAuthor(blogID)
	}

	if err := s.repo.RemoveAuthor(ctx, blogID, authorID); err != nil {
		return nil, apperror.EntityDeleteFailed("blog author")
	}

	return s.Get(ctx, blogID)
}

func (s *blogService) Subscribe(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser) (*dto.BlogResponse, error) {
	blog, err := s.findBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog.Archived {
		return nil, apperror.BlogArchived(blogID)
	}

	subscribed, err := s.repo.HasSubscription(ctx, blogID, actingUser.UserID)
	if err != nil {
		return nil, err
	}
	if subscribed {
		return nil, apperror.AlreadySubscribed(blogID)
	}

	if err := s.repo.AddSubscription(ctx, blogID, actingUser.UserID); err != nil {
		// The composite key closes the race two concurrent subscribes open.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.AlreadySubscribed(blogID)
		}
		return nil, apperror.EntityCreateFailed("blog subscription")
	}
	s.engagement.BumpBlogSubscribers(ctx, blogID, 1)

	return s.Get(ctx, blogID)
}

func (s *blogService) Unsubscribe(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser) (*dto.BlogResponse, error) {
	if _, err := s.findBlog(ctx, blogID); err != nil {
		return nil, err
	}

	subscribed, err := s.repo.HasSubscription(ctx, blogID, actingUser.UserID)
	if err != nil {
		return nil, err
	}
	if !subscribed {
		return nil, apperror.NotSubscribed(blogID)
	}

	if err := s.repo.RemoveSubscription(ctx, blogID, actingUser.UserID); err != nil {
		return nil, apperror.EntityDeleteFailed("blog subscription")
	}
	s.engagement.BumpBlogSubscribers(ctx, blogID, -1)

	return s.Get(ctx, blogID)
}

func (s *blogService) Like(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser) (*dto.BlogResponse, error) {
	blog, err := s.findBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}
	if blog.Archived {
		return nil, apperror.BlogArchived(blogID)
	}

	liked, err := s.repo.HasLike(ctx, blogID, actingUser.UserID)
	if err != nil {
		return nil, err
	}
	if liked {
		return nil, apperror.AlreadyLiked(blogID)
	}

	if err := s.repo.AddLike(ctx, blogID, actingUser.UserID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.AlreadyLiked(blogID)
		}
		return nil, apperror.EntityCreateFailed("blog like")
	}
	s.engagement.BumpBlogLikers(ctx, blogID, 1)

	return s.Get(ctx, blogID)
}

func (s *blogService) Unlike(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser) (*dto.BlogResponse, error) {
	if _, err := s.findBlog(ctx, blogID); err != nil {
		return nil, err
	}

	liked, err := s.repo.HasLike(ctx, blogID, actingUser.UserID)
	if err != nil {
		return nil, err
	}
	if !liked {
		return nil, apperror.NotLiked(blogID)
	}

	if err := s.repo.RemoveLike(ctx, blogID, actingUser.UserID); err != nil {
		return nil, apperror.EntityDeleteFailed("blog like")
	}
	s.engagement.BumpBlogLikers(ctx, blogID, -1)

	return s.Get(ctx, blogID)
}

func (s *blogService) Update(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser, req dto.UpdateBlogRequest) (*dto.BlogResponse, error) {
	if err := s.CheckPermission(ctx, blogID, actingUser, "blog update"); err != nil {
		return nil, err
	}
	blog, err := s.findBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}

	addPairs, err := s.validateCategoryChanges(ctx, blog, req.AddCategoryIDs, req.RemoveCategoryIDs)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		blog.Name = *req.Name
	}
	if req.Archived != nil {
		blog.Archived = *req.Archived
	}
	if err := s.repo.Update(ctx, blog, addPairs, req.RemoveCategoryIDs); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.AlreadyInCategory(blogID, req.AddCategoryIDs[0])
		}
		return nil, apperror.EntityUpdateFailed("blog")
	}

	return s.Get(ctx, blogID)
}

// validateCategoryChanges checks every requested membership change and
// returns the join rows to insert. Nothing is written here; the repository
// applies the whole change set with the field update in one transaction.
func (s *blogService) validateCategoryChanges(ctx context.Context, blog *entity.Blog, addIDs, removeIDs []uuid.UUID) ([]entity.BlogCategory, error) {
	if len(addIDs) == 0 && len(removeIDs) == 0 {
		return nil, nil
	}

	current, err := s.repo.CountCategories(ctx, blog.ID)
	if err != nil {
		return nil, err
	}

	for _, id := range addIDs {
		has, err := s.repo.HasCategory(ctx, blog.ID, id)
		if err != nil {
			return nil, err
		}
		if has {
			return nil, apperror.AlreadyInCategory(blog.ID, id)
		}
	}
	if _, err := s.resolveCategories(ctx, addIDs); err != nil {
		return nil, err
	}
	if current+int64(len(addIDs))-int64(len(removeIDs)) > entity.MaxCategoriesPerBlog {
		return nil, apperror.CategoryLimitReached(blog.ID, int(current))
	}

	for _, id := range removeIDs {
		has, err := s.repo.HasCategory(ctx, blog.ID, id)
		if err != nil {
			return nil, err
		}
		if !has {
			return nil, apperror.NotInCategory(blog.ID, id)
		}
	}
	if len(removeIDs) > 0 && current-int64(len(removeIDs))+int64(len(addIDs)) < 1 {
		return nil, apperror.CannotRemoveAllCategories(blog.ID)
	}

	pairs := make([]entity.BlogCategory, 0, len(addIDs))
	for _, id := range addIDs {
		pairs = append(pairs, entity.BlogCategory{BlogID: blog.ID, CategoryID: id})
	}
	return pairs, nil
}

func (s *blogService) Delete(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser) error {
	if err := s.CheckPermission(ctx, blogID, actingUser, "blog deletion"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, blogID); err != nil {
		return apperror.EntityDeleteFailed("blog")
	}
	return nil
}
