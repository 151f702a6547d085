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

type TagService interface {
	Create(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser, req dto.CreateTagRequest) (*dto.TagResponse, error)
	Get(ctx context.Context, tagID uuid.UUID) (*dto.TagResponse, error)
	List(ctx context.Context, filter dto.TagListFilter) ([]dto.TagResponse, int64, error)
	Update(ctx context.Context, tagID uuid.UUID, actingUser dto.AuthUser, req dto.UpdateTagRequest) (*dto.TagResponse, error)
	Delete(ctx context.Context, tagID uuid.UUID, actingUser dto.AuthUser) error

	Subscribe(ctx context.Context, tagID uuid.UUID, actingUser dto.AuthUser) (*dto.TagResponse, error)
	Unsubscribe(ctx context.Context, tagID uuid.UUID, actingUser dto.AuthUser) (*dto.TagResponse, error)
}

type tagService struct {
	repo        repository.TagRepository
	blogService BlogService
}

func NewTagService(repo repository.TagRepository, blogService BlogService) TagService {
	return &tagService{
		repo:        repo,
		blogService: blogService,
	}
}

func (s *tagService) findTag(ctx context.Context, tagID uuid.UUID) (*entity.Tag, error) {
	tag, err := s.repo.FindByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.TagNotFound(tagID)
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Create(ctx context.Context, blogID uuid.UUID, actingUser dto.AuthUser, req dto.CreateTagRequest) (*dto.TagResponse, error) {
	if err := s.blogService.CheckPermission(ctx, blogID, actingUser, "tag addition"); err != nil {
		return nil, err
	}

	tag := &entity.Tag{Name: req.Name, BlogID: blogID}
	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, apperror.EntityCreateFailed("tag")
	}

	return s.Get(ctx, tag.ID)
}

func (s *tagService) Get(ctx context.Context, tagID uuid.UUID) (*dto.TagResponse, error) {
	tag, err := s.findTag(ctx, tagID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewTagResponse(*tag)
	return &resp, nil
}

func (s *tagService) List(ctx context.Context, filter dto.TagListFilter) ([]dto.TagResponse, int64, error) {
	if filter.Limit > dto.MaxPageLimit {
		return nil, 0, apperror.PaginationLimitExceeded()
	}
	// Deliberate API constraint: the two filters cannot be combined.
	if filter.BlogID != nil && filter.SubscriberID != nil {
		return nil, 0, apperror.BothFiltersProvided("blog_id", "subscriber_id")
	}

	tags, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]dto.TagResponse, 0, len(tags))
	for _, t := range tags {
		responses = append(responses, dto.NewTagResponse(t))
	}
	return responses, total, nil
}

func (s *tagService) Update(ctx context.Context, tagID uuid.UUID, actingUser dto.AuthUser, req dto.UpdateTagRequest) (*dto.TagResponse, error) {
	tag, err := s.findTag(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if err := s.blogService.CheckPermission(ctx, tag.BlogID, actingUser, "tag update"); err != nil {
		return nil, err
	}

	tag.Name = req.Name
	if err := s.repo.Update(ctx, tag); err != nil {
		return nil, apperror.EntityUpdateFailed("tag")
	}

	return s.Get(ctx, tagID)
}

func (s *tagService) Delete(ctx context.Context, tagID uuid.UUID, actingUser dto.AuthUser) error {
	tag, err := s.findTag(ctx, tagID)
	if err != nil {
		return err
	}
	if err := s.blogService.CheckPermission(ctx, tag.BlogID, actingUser, "tag deletion"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tagID); err != nil {
		return apperror.EntityDeleteFailed("tag")
	}
	return nil
}

func (s *tagService) Subscribe(ctx context.Context, tagID uuid.UUID, actingUser dto.AuthUser) (*dto.TagResponse, error) {
	if _, err := s.findTag(ctx, tagID); err != nil {
		return nil, err
	}

	subscribed, err := s.repo.HasSubscription(ctx, tagID, actingUser.UserID)
	if err != nil {
		return nil, err
	}
	if subscribed {
		return nil, apperror.AlreadySubscribed(tagID)
	}

	if err := s.repo.AddSubscription(ctx, tagID, actingUser.UserID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.AlreadySubscribed(tagID)
		}
		return nil, apperror.EntityCreateFailed("tag subscription")
	}

	return s.Get(ctx, tagID)
}

func (s *tagService) Unsubscribe(ctx context.Context, tagID uuid.UUID, actingUser dto.AuthUser) (*dto.TagResponse, error) {
	if _, err := s.findTag(ctx, tagID); err != nil {
		return nil, err
	}

	subscribed, err := s.repo.HasSubscription(ctx, tagID, actingUser.UserID)
	if err != nil {
		return nil, err
	}
	if !subscribed {
		return nil, apperror.NotSubscribed(tagID)
	}

	if err := s.repo.RemoveSubscription(ctx, tagID, actingUser.UserID); err != nil {
		return nil, apperror.EntityDeleteFailed("tag subscription")
	}

	return s.Get(ctx, tagID)
}
