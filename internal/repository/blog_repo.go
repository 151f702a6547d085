package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-hq/inkwell/internal/dto"
	"github.com/inkwell-hq/inkwell/internal/entity"
)

type BlogRepository interface {
	Create(ctx context.Context, blog *entity.Blog) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Blog, error)
	List(ctx context.Context, filter dto.BlogListFilter) ([]entity.Blog, int64, error)
	Update(ctx context.Context, blog *entity.Blog, addCategories []entity.BlogCategory, removeCategoryIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error

	CountBlogsByAuthor(ctx context.Context, userID uuid.UUID) (int64, error)
	CountAuthors(ctx context.Context, blogID uuid.UUID) (int64, error)
	IsAuthor(ctx context.Context, blogID, userID uuid.UUID) (bool, error)
	AddAuthors(ctx context.Context, pairs []entity.BlogAuthor) error
	RemoveAuthor(ctx context.Context, blogID, userID uuid.UUID) error

	HasLike(ctx context.Context, blogID, userID uuid.UUID) (bool, error)
	AddLike(ctx context.Context, blogID, userID uuid.UUID) error
	RemoveLike(ctx context.Context, blogID, userID uuid.UUID) error
	CountLikers(ctx context.Context, blogID uuid.UUID) (int64, error)

	HasSubscription(ctx context.Context, blogID, userID uuid.UUID) (bool, error)
	AddSubscription(ctx context.Context, blogID, userID uuid.UUID) error
	RemoveSubscription(ctx context.Context, blogID, userID uuid.UUID) error
	CountSubscribers(ctx context.Context, blogID uuid.UUID) (int64, error)

	CountCategories(ctx context.Context, blogID uuid.UUID) (int64, error)
	HasCategory(ctx context.Context, blogID, categoryID uuid.UUID) (bool, error)
}

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

// Create inserts the blog together with its initial author and category
// associations in a single transaction.
func (r *blogRepository) Create(ctx context.Context, blog *entity.Blog) error {
	return r.db.WithContext(ctx).Create(blog).Error
}

func (r *blogRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Blog, error) {
	var blog entity.Blog
	err := r.db.WithContext(ctx).
		Preload("Authors").
		Preload("Likers").
		Preload("Subscribers").
		Preload("Categories").
		Preload("Tags").
		First(&blog, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) applyFilters(ctx context.Context, filter dto.BlogListFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Blog{})

	if filter.Name != "" {
		query = query.Where("lower(blogs.name) LIKE lower(?)", "%"+filter.Name+"%")
	}
	if filter.AuthorID != nil {
		query = query.Where(
			"blogs.id IN (SELECT ba.blog_id FROM blog_authors ba WHERE ba.author_id = ?)", *filter.AuthorID)
	}
	if filter.Archived != nil {
		query = query.Where("blogs.archived = ?", *filter.Archived)
	}
	if len(filter.CategoryIDs) > 0 {
		// OR semantics: a blog matches if it belongs to any listed category.
		query = query.Where(
			"blogs.id IN (SELECT bc.blog_id FROM blog_categories bc WHERE bc.category_id IN ?)", filter.CategoryIDs)
	}
	return query
}

func (r *blogRepository) List(ctx context.Context, filter dto.BlogListFilter) ([]entity.Blog, int64, error) {
	var total int64
	if err := r.applyFilters(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dir := orderDirection(filter.SortOrder)
	var order string
	switch filter.SortBy {
	case dto.BlogSortByName:
		order = "blogs.name " + dir
	case dto.BlogSortByLikerCount:
		order = fmt.Sprintf(
			"(SELECT count(*) FROM blog_likers bl WHERE bl.blog_id = blogs.id) %s", dir)
	case dto.BlogSortBySubscriberCount:
		order = fmt.Sprintf(
			"(SELECT count(*) FROM blog_subscribers bs WHERE bs.blog_id = blogs.id) %s", dir)
	default:
		order = "blogs.created_at " + dir
	}

	var blogs []entity.Blog
	err := r.applyFilters(ctx, filter).
		Preload("Authors").
		Preload("Likers").
		Preload("Subscribers").
		Preload("Categories").
		Preload("Tags").
		Order(order).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&blogs).Error
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// Update writes the blog fields and its category membership changes in one
// transaction, so a failure on any step leaves nothing committed.
func (r *blogRepository) Update(ctx context.Context, blog *entity.Blog, addCategories []entity.BlogCategory, removeCategoryIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(addCategories) > 0 {
			if err := tx.Create(&addCategories).Error; err != nil {
				return err
			}
		}
		for _, categoryID := range removeCategoryIDs {
			if err := tx.Where("blog_id = ? AND category_id = ?", blog.ID, categoryID).
				Delete(&entity.BlogCategory{}).Error; err != nil {
				return err
			}
		}
		return tx.
			Omit("Authors", "Likers", "Subscribers", "Categories", "Tags", "Posts").
			Save(blog).Error
	})
}

// Delete removes the blog and every row referencing it. Explicit cleanup
// keeps the schema portable across drivers without relying on FK cascades.
func (r *blogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs []uuid.UUID
		if err := tx.Model(&entity.Post{}).Where("blog_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			for _, join := range []interface{}{
				&entity.PostAuthor{}, &entity.PostTag{}, &entity.PostLiker{}, &entity.PostFavorite{},
			} {
				if err := tx.Where("post_id IN ?", postIDs).Delete(join).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&entity.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("blog_id = ?", id).Delete(&entity.Post{}).Error; err != nil {
				return err
			}
		}

		var tagIDs []uuid.UUID
		if err := tx.Model(&entity.Tag{}).Where("blog_id = ?", id).Pluck("id", &tagIDs).Error; err != nil {
			return err
		}
		if len(tagIDs) > 0 {
			if err := tx.Where("tag_id IN ?", tagIDs).Delete(&entity.TagSubscriber{}).Error; err != nil {
				return err
			}
			if err := tx.Where("blog_id = ?", id).Delete(&entity.Tag{}).Error; err != nil {
				return err
			}
		}

		for _, join := range []interface{}{
			&entity.BlogAuthor{}, &entity.BlogLiker{}, &entity.BlogSubscriber{}, &entity.BlogCategory{},
		} {
			if err := tx.Where("blog_id = ?", id).Delete(join).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&entity.Blog{}, "id = ?", id).Error
	})
}

func (r *blogRepository) CountBlogsByAuthor(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.BlogAuthor{}).
		Where("author_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *blogRepository) CountAuthors(ctx context.Context, blogID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.BlogAuthor{}).
		Where("blog_id = ?", blogID).
		Count(&count).Error
	return count, err
}

func (r *blogRepository) IsAuthor(ctx context.Context, blogID, userID uuid.UUID) (bool, error) {
	return r.pairExists(ctx, &entity.BlogAuthor{}, "blog_id = ? AND author_id = ?", blogID, userID)
}

// AddAuthors inserts all pairs in one batched create so a partial failure
// rolls back the whole set.
func (r *blogRepository) AddAuthors(ctx context.Context, pairs []entity.BlogAuthor) error {
	return r.db.WithContext(ctx).Create(&pairs).Error
}

func (r *blogRepository) RemoveAuthor(ctx context.Context, blogID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("blog_id = ? AND author_id = ?", blogID, userID).
		Delete(&entity.BlogAuthor{}).Error
}

func (r *blogRepository) HasLike(ctx context.Context, blogID, userID uuid.UUID) (bool, error) {
	return r.pairExists(ctx, &entity.BlogLiker{}, "blog_id = ? AND liker_id = ?", blogID, userID)
}

func (r *blogRepository) AddLike(ctx context.Context, blogID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&entity.BlogLiker{BlogID: blogID, LikerID: userID}).Error
}

func (r *blogRepository) RemoveLike(ctx context.Context, blogID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("blog_id = ? AND liker_id = ?", blogID, userID).
		Delete(&entity.BlogLiker{}).Error
}

func (r *blogRepository) CountLikers(ctx context.Context, blogID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.BlogLiker{}).
		Where("blog_id = ?", blogID).
		Count(&count).Error
	return count, err
}

func (r *blogRepository) HasSubscription(ctx context.Context, blogID, userID uuid.UUID) (bool, error) {
	return r.pairExists(ctx, &entity.BlogSubscriber{}, "blog_id = ? AND subscriber_id = ?", blogID, userID)
}

func (r *blogRepository) AddSubscription(ctx context.Context, blogID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&entity.BlogSubscriber{BlogID: blogID, SubscriberID: userID}).Error
}

func (r *blogRepository) RemoveSubscription(ctx context.Context, blogID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("blog_id = ? AND subscriber_id = ?", blogID, userID).
		Delete(&entity.BlogSubscriber{}).Error
}

func (r *blogRepository) CountSubscribers(ctx context.Context, blogID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.BlogSubscriber{}).
		Where("blog_id = ?", blogID).
		Count(&count).Error
	return count, err
}

func (r *blogRepository) CountCategories(ctx context.Context, blogID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.BlogCategory{}).
		Where("blog_id = ?", blogID).
		Count(&count).Error
	return count, err
}

func (r *blogRepository) HasCategory(ctx context.Context, blogID, categoryID uuid.UUID) (bool, error) {
	return r.pairExists(ctx, &entity.BlogCategory{}, "blog_id = ? AND category_id = ?", blogID, categoryID)
}

// pairExists avoids First() so a missing row is not logged as an error.
func (r *blogRepository) pairExists(ctx context.Context, model interface{}, cond string, args ...interface{}) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(model).Where(cond, args...).Count(&count).Error
	return count > 0, err
}
