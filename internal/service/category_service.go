package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-hq/inkwell/internal/dto"
	"github.com/inkwell-hq/inkwell/internal/entity"
	"github.com/inkwell-hq/inkwell/internal/repository"
	"github.com/inkwell-hq/inkwell/pkg/apperror"
)

type CategoryService interface {
	Create(ctx context.Context, actingUser dto.AuthUser, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Get(ctx context.Context, categoryID uuid.UUID) (*dto.CategoryResponse, error)
	List(ctx context.Context, filter dto.CategoryListFilter) ([]dto.CategoryResponse, int64, error)
	Update(ctx context.Context, categoryID uuid.UUID, actingUser dto.AuthUser, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, categoryID uuid.UUID, actingUser dto.AuthUser) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) findCategory(ctx context.Context, categoryID uuid.UUID) (*entity.Category, error) {
	category, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.CategoryNotFound(categoryID)
		}
		return nil, err
	}
	return category, nil
}

// Create stores a category. Categories from regular users start unapproved
// and stay invisible to blogs until an admin approves them.
func (s *categoryService) Create(ctx context.Context, actingUser dto.AuthUser, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	category := &entity.Category{
		Name:     req.Name,
		Approved: actingUser.IsAdmin(),
	}
	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(http.StatusBadRequest, "category name already in use", apperror.ErrBadRequest)
		}
		return nil, apperror.EntityCreateFailed("category")
	}

	resp := dto.NewCategoryResponse(*category)
	return &resp, nil
}

func (s *categoryService) Get(ctx context.Context, categoryID uuid.UUID) (*dto.CategoryResponse, error) {
	category, err := s.findCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewCategoryResponse(*category)
	return &resp, nil
}

func (s *categoryService) List(ctx context.Context, filter dto.CategoryListFilter) ([]dto.CategoryResponse, int64, error) {
	if filter.Limit > dto.MaxPageLimit {
		return nil, 0, apperror.PaginationLimitExceeded()
	}

	categories, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, dto.NewCategoryResponse(c))
	}
	return responses, total, nil
}

func (s *categoryService) Update(ctx context.Context, categoryID uuid.UUID, actingUser dto.AuthUser, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if !actingUser.IsAdmin() {
		return nil, apperror.AdminRequired("category update")
	}

	category, err := s.findCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Approved != nil {
		category.Approved = *req.Approved
	}

	if err := s.repo.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(http.StatusBadRequest, "category name already in use", apperror.ErrBadRequest)
		}
		return nil, apperror.EntityUpdateFailed("category")
	}

	resp := dto.NewCategoryResponse(*category)
	return &resp, nil
}

func (s *categoryService) Delete(ctx context.Context, categoryID uuid.UUID, actingUser dto.AuthUser) error {
	if !actingUser.IsAdmin() {
		return apperror.AdminRequired("category deletion")
	}

	if _, err := s.findCategory(ctx, categoryID); err != nil {
		return err
	}

	count, err := s.repo.CountBlogs(ctx, categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.CategoryHasBlogs(categoryID, int(count))
	}

	if err := s.repo.Delete(ctx, categoryID); err != nil {
		return apperror.EntityDeleteFailed("category")
	}
	return nil
}
