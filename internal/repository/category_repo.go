package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-hq/inkwell/internal/dto"
	"github.com/inkwell-hq/inkwell/internal/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Category, error)
	List(ctx context.Context, filter dto.CategoryListFilter) ([]entity.Category, int64, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountBlogs(ctx context.Context, id uuid.UUID) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).
		Preload("Blogs").
		First(&category, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Category, error) {
	var categories []entity.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) applyFilters(ctx context.Context, filter dto.CategoryListFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Category{})
	if filter.Name != "" {
		query = query.Where("lower(name) LIKE lower(?)", "%"+filter.Name+"%")
	}
	if filter.Approved != nil {
		query = query.Where("approved = ?", *filter.Approved)
	}
	return query
}

func (r *categoryRepository) List(ctx context.Context, filter dto.CategoryListFilter) ([]entity.Category, int64, error) {
	var total int64
	if err := r.applyFilters(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dir := orderDirection(filter.SortOrder)
	var order string
	switch filter.SortBy {
	case dto.CategorySortByName:
		order = "categories.name " + dir
	case dto.CategorySortByBlogCount:
		order = fmt.Sprintf(
			"(SELECT count(*) FROM blog_categories bc WHERE bc.category_id = categories.id) %s", dir)
	case dto.CategorySortByTopBlogLikes:
		// Rank by the like count of the category's single most-liked blog.
		order = fmt.Sprintf(
			`(SELECT coalesce(max(cnt), 0) FROM (
				SELECT count(*) AS cnt FROM blog_likers bl
				WHERE bl.blog_id IN (SELECT bc.blog_id FROM blog_categories bc WHERE bc.category_id = categories.id)
				GROUP BY bl.blog_id
			) top_blogs) %s`, dir)
	default:
		order = "categories.created_at " + dir
	}

	var categories []entity.Category
	err := r.applyFilters(ctx, filter).
		Preload("Blogs").
		Order(order).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) CountBlogs(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.BlogCategory{}).
		Where("category_id = ?", id).
		Count(&count).Error
	return count, err
}
