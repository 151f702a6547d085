package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-hq/inkwell/internal/dto"
	"github.com/inkwell-hq/inkwell/internal/entity"
)

type TagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Tag, error)
	List(ctx context.Context, filter dto.TagListFilter) ([]entity.Tag, int64, error)
	Update(ctx context.Context, tag *entity.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error

	HasSubscription(ctx context.Context, tagID, userID uuid.UUID) (bool, error)
	AddSubscription(ctx context.Context, tagID, userID uuid.UUID) error
	RemoveSubscription(ctx context.Context, tagID, userID uuid.UUID) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error) {
	var tag entity.Tag
	err := r.db.WithContext(ctx).
		Preload("Blog").
		Preload("Subscribers").
		First(&tag, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Tag, error) {
	var tags []entity.Tag
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) applyFilters(ctx context.Context, filter dto.TagListFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Tag{})

	if filter.BlogID != nil {
		query = query.Where("tags.blog_id = ?", *filter.BlogID)
	}
	if filter.SubscriberID != nil {
		query = query.Where(
			"tags.id IN (SELECT ts.tag_id FROM tag_subscribers ts WHERE ts.subscriber_id = ?)", *filter.SubscriberID)
	}
	if filter.Name != "" {
		query = query.Where("lower(tags.name) LIKE lower(?)", "%"+filter.Name+"%")
	}
	return query
}

func (r *tagRepository) List(ctx context.Context, filter dto.TagListFilter) ([]entity.Tag, int64, error) {
	var total int64
	if err := r.applyFilters(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dir := orderDirection(filter.SortOrder)
	var order string
	switch filter.SortBy {
	case dto.TagSortByMostSubscribers:
		order = fmt.Sprintf(
			"(SELECT count(*) FROM tag_subscribers ts WHERE ts.tag_id = tags.id) %s", dir)
	default:
		order = "tags.created_at " + dir
	}

	var tags []entity.Tag
	err := r.applyFilters(ctx, filter).
		Preload("Blog").
		Preload("Subscribers").
		Order(order).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&tags).Error
	if err != nil {
		return nil, 0, err
	}
	return tags, total, nil
}

func (r *tagRepository) Update(ctx context.Context, tag *entity.Tag) error {
	return r.db.WithContext(ctx).Omit("Blog", "Subscribers").Save(tag).Error
}

func (r *tagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&entity.TagSubscriber{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tag_id = ?", id).Delete(&entity.PostTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Tag{}, "id = ?", id).Error
	})
}

func (r *tagRepository) HasSubscription(ctx context.Context, tagID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.TagSubscriber{}).
		Where("tag_id = ? AND subscriber_id = ?", tagID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *tagRepository) AddSubscription(ctx context.Context, tagID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&entity.TagSubscriber{TagID: tagID, SubscriberID: userID}).Error
}

func (r *tagRepository) RemoveSubscription(ctx context.Context, tagID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tag_id = ? AND subscriber_id = ?", tagID, userID).
		Delete(&entity.TagSubscriber{}).Error
}
