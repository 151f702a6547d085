package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-hq/inkwell/internal/dto"
	"github.com/inkwell-hq/inkwell/internal/entity"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	List(ctx context.Context, filter dto.PostListFilter) ([]entity.Post, int64, error)
	Update(ctx context.Context, post *entity.Post, authors []entity.User, tags []entity.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error

	HasLike(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	AddLike(ctx context.Context, postID, userID uuid.UUID) error
	RemoveLike(ctx context.Context, postID, userID uuid.UUID) error
	CountLikers(ctx context.Context, postID uuid.UUID) (int64, error)

	HasFavorite(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	AddFavorite(ctx context.Context, postID, userID uuid.UUID) error
	RemoveFavorite(ctx context.Context, postID, userID uuid.UUID) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var post entity.Post
	err := r.db.WithContext(ctx).
		Preload("Blog").
		Preload("Authors").
		Preload("Tags").
		Preload("Likers").
		Preload("Favoriters").
		First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) applyFilters(ctx context.Context, filter dto.PostListFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Post{})

	if filter.Published != nil {
		query = query.Where("posts.published = ?", *filter.Published)
	}
	if filter.BlogID != nil {
		query = query.Where("posts.blog_id = ?", *filter.BlogID)
	}
	if len(filter.AuthorIDs) > 0 {
		// OR semantics: a post matches if any listed author wrote it.
		query = query.Where(
			"posts.id IN (SELECT pa.post_id FROM post_authors pa WHERE pa.author_id IN ?)", filter.AuthorIDs)
	}
	if len(filter.TagIDs) > 0 {
		query = query.Where(
			"posts.id IN (SELECT pt.post_id FROM post_tags pt WHERE pt.tag_id IN ?)", filter.TagIDs)
	}
	if filter.Title != "" {
		query = query.Where("lower(posts.title) LIKE lower(?)", "%"+filter.Title+"%")
	}
	if filter.Body != "" {
		query = query.Where("lower(posts.body) LIKE lower(?)", "%"+filter.Body+"%")
	}
	return query
}

func (r *postRepository) List(ctx context.Context, filter dto.PostListFilter) ([]entity.Post, int64, error) {
	var total int64
	if err := r.applyFilters(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dir := orderDirection(filter.SortOrder)
	var order string
	switch filter.SortBy {
	case dto.PostSortByTitle:
		order = "posts.title " + dir
	case dto.PostSortByLikerCount:
		order = fmt.Sprintf(
			"(SELECT count(*) FROM post_likers pl WHERE pl.post_id = posts.id) %s", dir)
	default:
		order = "posts.created_at " + dir
	}

	var posts []entity.Post
	err := r.applyFilters(ctx, filter).
		Preload("Blog").
		Preload("Authors").
		Preload("Tags").
		Preload("Likers").
		Preload("Favoriters").
		Order(order).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Update writes the post fields and any author/tag replacement in one
// transaction. A nil slice leaves that association untouched; a failing
// field write rolls the replacements back with it.
func (r *postRepository) Update(ctx context.Context, post *entity.Post, authors []entity.User, tags []entity.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if authors != nil {
			if err := tx.Model(post).Association("Authors").Replace(authors); err != nil {
				return err
			}
		}
		if tags != nil {
			if err := tx.Model(post).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return tx.
			Omit("Blog", "Authors", "Tags", "Likers", "Favoriters", "Comments").
			Save(post).Error
	})
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, join := range []interface{}{
			&entity.PostAuthor{}, &entity.PostTag{}, &entity.PostLiker{}, &entity.PostFavorite{},
		} {
			if err := tx.Where("post_id = ?", id).Delete(join).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("post_id = ?", id).Delete(&entity.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Post{}, "id = ?", id).Error
	})
}

func (r *postRepository) HasLike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.PostLiker{}).
		Where("post_id = ? AND liker_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) AddLike(ctx context.Context, postID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&entity.PostLiker{PostID: postID, LikerID: userID}).Error
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND liker_id = ?", postID, userID).
		Delete(&entity.PostLiker{}).Error
}

func (r *postRepository) CountLikers(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.PostLiker{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *postRepository) HasFavorite(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.PostFavorite{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) AddFavorite(ctx context.Context, postID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&entity.PostFavorite{PostID: postID, UserID: userID}).Error
}

func (r *postRepository) RemoveFavorite(ctx context.Context, postID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&entity.PostFavorite{}).Error
}
