package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-hq/inkwell/internal/dto"
	"github.com/inkwell-hq/inkwell/internal/entity"
	"github.com/inkwell-hq/inkwell/internal/repository"
	"github.com/inkwell-hq/inkwell/pkg/apperror"
)

type PostService interface {
	Create(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser, req dto.CreatePostRequest) (*dto.PostResponse, error)
	Get(ctx context.Context, postID uuid.UUID) (*dto.PostResponse, error)
	List(ctx context.Context, filter dto.PostListFilter) ([]dto.PostResponse, int64, error)
	Update(ctx context.Context, postID uuid.UUID, actingUser dto.AuthUser, req dto.UpdatePostRequest) (*dto.PostResponse, error)
	Delete(ctx context.Context, postID uuid.UUID, actingUser dto.AuthUser) error

	Like(ctx context.Context, postID uuid.UUID, actingUser dto.AuthUser) (*dto.PostResponse, error)
	Unlike(ctx context.Context, postID uuid.UUID, actingUser dto.AuthUser) (*dto.PostResponse, error)
	AddFavorite(ctx context.Context, postID uuid.UUID, actingUser dto.AuthUser) (*dto.PostResponse, error)
	RemoveFavorite(ctx context.Context, postID uuid.UUID, actingUser dto.AuthUser) (*dto.PostResponse, error)
}

type postService struct {
	repo        repository.PostRepository
	blogRepo    repository.BlogRepository
	tagRepo     repository.TagRepository
	userRepo    repository.UserRepository
	blogService BlogService
	engagement  EngagementService
}

func NewPostService(repo repository.PostRepository, blogRepo repository.BlogRepository, tagRepo repository.TagRepository, userRepo repository.UserRepository, blogService BlogService, engagement EngagementService) PostService {
	return &postService{
		repo:        repo,
		blogRepo:    blogRepo,
		tagRepo:     tagRepo,
		userRepo:    userRepo,
		blogService: blogService,
		engagement:  engagement,
	}
}

func (s *postService) findPost(ctx context.Context, postID uuid.UUID) (*entity.Post, error) {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.PostNotFound(postID)
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) buildResponse(ctx context.Context, post entity.Post) *dto.PostResponse {
	resp := dto.NewPostResponse(post)
	if count, err := s.engagement.PostLikerCount(ctx, post.ID); err == nil {
		resp.LikerCount = count
	}
	return &resp
}

// validateMembership checks that every author is a current blog author and
// every tag belongs to the blog. Posts may never reference outsiders.
func (s *postService) validateMembership(ctx context.Context, blog *entity.Blog, authorIDs, tagIDs []uuid.UUID) error {
	blogAuthors := make(map[uuid.UUID]bool, len(blog.Authors))
	for _, a := range blog.Authors {
		blogAuthors[a.ID] = true
	}
	for _, id := range authorIDs {
		if !blogAuthors[id] {
			return apperror.AuthorshipRequired(id, blog.ID)
		}
	}

	blogTags := make(map[uuid.UUID]bool, len(blog.Tags))
	for _, t := range blog.Tags {
		blogTags[t.ID] = true
	}
	for _, id := range tagIDs {
		if !blogTags[id] {
			return apperror.TagNotOfBlog(id, blog.ID)
		}
	}
	return nil
}

func (s *postService) Create(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser, req dto.CreatePostRequest) (*dto.PostResponse, error) {
	if err := s.blogService.CheckPermission(ctx, blogID, actingUser, "post addition"); err != nil {
		return nil, err
	}

	blog, err := s.blogRepo.FindByID(ctx, blogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.BlogNotFound(blogID)
		}
		return nil, err
	}
	if err := s.validateMembership(ctx, blog, req.AuthorIDs, req.TagIDs); err != nil {
		return nil, err
	}

	authors, err := s.userRepo.FindByIDs(ctx, req.AuthorIDs)
	if err != nil {
		return nil, err
	}
	var tags []entity.Tag
	if len(req.TagIDs) > 0 {
		if tags, err = s.tagRepo.FindByIDs(ctx, req.TagIDs); err != nil {
			return nil, err
		}
	}

	post := &entity.Post{
		Title:        req.Title,
		Body:         req.Body,
		Published:    req.Published,
		Notes:        req.Notes,
		Bibliography: req.Bibliography,
		BlogID:       blogID,
		Authors:      authors,
		Tags:         tags,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.DuplicateTitle(req.Title, blogID)
		}
		return nil, apperror.EntityCreateFailed("post")
	}

	return s.Get(ctx, post.ID)
}

func (s *postService) Get(ctx context.Context, postID uuid.UUID) (*dto.PostResponse, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, *post), nil
}

func (s *postService) List(ctx context.Context, filter dto.PostListFilter) ([]dto.PostResponse, int64, error) {
	if filter.Limit > dto.MaxPageLimit {
		return nil, 0, apperror.PaginationLimitExceeded()
	}

	posts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]dto.PostResponse, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, dto.NewPostResponse(p))
	}
	return responses, total, nil
}

func (s *postService) Update(ctx context.Context, postID uuid.UUID, actingUser dto.AuthUser, req dto.UpdatePostRequest) (*dto.PostResponse, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.blogService.CheckPermission(ctx, post.BlogID, actingUser, "post update"); err != nil {
		return nil, err
	}

	blog, err := s.blogRepo.FindByID(ctx, post.BlogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.BlogNotFound(post.BlogID)
		}
		return nil, err
	}
	if err := s.validateMembership(ctx, blog, req.AuthorIDs, req.TagIDs); err != nil {
		return nil, err
	}

	var authors []entity.User
	if len(req.AuthorIDs) > 0 {
		if authors, err = s.userRepo.FindByIDs(ctx, req.AuthorIDs); err != nil {
			return nil, err
		}
	}
	var tags []entity.Tag
	if len(req.TagIDs) > 0 {
		if tags, err = s.tagRepo.FindByIDs(ctx, req.TagIDs); err != nil {
			return nil, err
		}
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Body != nil {
		post.Body = *req.Body
	}
	if req.Published != nil {
		post.Published = *req.Published
	}
	if req.Notes != nil {
		post.Notes = req.Notes
	}
	if req.Bibliography != nil {
		post.Bibliography = req.Bibliography
	}

	if err := s.repo.Update(ctx, post, authors, tags); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.DuplicateTitle(post.Title, post.BlogID)
		}
		return nil, apperror.EntityUpdateFailed("post")
	}

	return s.Get(ctx, postID)
}

func (s *postService) Delete(ctx context.Context, postID uuid.UUID, actingUser dto.AuthUser) error {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.blogService.CheckPermission(ctx, post.BlogID, actingUser, "post deletion"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, postID); err != nil {
		return apperror.EntityDeleteFailed("post")
	}
	return nil
}

func (s *postService) Like(ctx context.Context, postID uuid.UUID, actingUser dto.AuthUser) (*dto.PostResponse, error) {
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	// Authors cannot like their own posts.
	for _, author := range post.Authors {
		if author.ID == actingUser.UserID {
			return nil, apperror.SelfLikeForbidden(postID)
		}
	}

	liked, err := s.repo.HasLike(ctx, postID, actingUser.UserID)
	if err != nil {
		return nil, err
	}
	if liked {
		return nil, apperror.AlreadyLiked(postID)
	}

	if err := s.repo.AddLike(ctx, postID, actingUser.UserID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.AlreadyLiked(postID)
		}
		return nil, apperror.EntityCreateFailed("post like")
	}
	s.engagement.BumpPostLikers(ctx, postID, 1)

	return s.Get(ctx, postID)
}

func (s *postService) Unlike(ctx context.Context, postID uuid.UUID, actingUser dto.AuthUser) (*dto.PostResponse, error) {
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}

	liked, err := s.repo.HasLike(ctx, postID, actingUser.UserID)
	if err != nil {
		return nil, err
	}
	if !liked {
		return nil, apperror.NotLiked(postID)
	}

	if err := s.repo.RemoveLike(ctx, postID, actingUser.UserID); err != nil {
		return nil, apperror.EntityDeleteFailed("post like")
	}
	s.engagement.BumpPostLikers(ctx, postID, -1)

	return s.Get(ctx, postID)
}

func (s *postService) AddFavorite(ctx context.Context, postID uuid.UUID, actingUser dto.AuthUser) (*dto.PostResponse, error) {
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}

	favorited, err := s.repo.HasFavorite(ctx, postID, actingUser.UserID)
	if err != nil {
		return nil, err
	}
	if favorited {
		return nil, apperror.AlreadyFavorited(postID)
	}

	if err := s.repo.AddFavorite(ctx, postID, actingUser.UserID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.AlreadyFavorited(postID)
		}
		return nil, apperror.EntityCreateFailed("post favorite")
	}

	return s.Get(ctx, postID)
}

func (s *postService) RemoveFavorite(ctx context.Context, postID uuid.UUID, actingUser dto.AuthUser) (*dto.PostResponse, error) {
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}

	favorited, err := s.repo.HasFavorite(ctx, postID, actingUser.UserID)
	if err != nil {
		return nil, err
	}
	if !favorited {
		return nil, apperror.NotFavorited(postID)
	}

	if err := s.repo.RemoveFavorite(ctx, postID, actingUser.UserID); err != nil {
		return nil, apperror.EntityDeleteFailed("post favorite")
	}

	return s.Get(ctx, postID)
}
