package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/inkwell-hq/inkwell/internal/repository"
)

const (
	engagementTTL = 7 * 24 * time.Hour

	fieldLikers      = "likers"
	fieldSubscribers = "subscribers"
)

// EngagementService caches liker/subscriber counts in Redis hashes with the
// database as the source of truth. A nil client disables the cache entirely
// and every read goes straight to the DB.
type EngagementService interface {
	BlogCounts(ctx context.Context, blogID uuid.UUID) (likers, subscribers int64, err error)
	PostLikerCount(ctx context.Context, postID uuid.UUID) (int64, error)
	BumpBlogLikers(ctx context.Context, blogID uuid.UUID, delta int64)
	BumpBlogSubscribers(ctx context.Context, blogID uuid.UUID, delta int64)
	BumpPostLikers(ctx context.Context, postID uuid.UUID, delta int64)
}

type engagementService struct {
	client   *redis.Client
	blogRepo repository.BlogRepository
	postRepo repository.PostRepository
}

func NewEngagementService(client *redis.Client, blogRepo repository.BlogRepository, postRepo repository.PostRepository) EngagementService {
	return &engagementService{
		client:   client,
		blogRepo: blogRepo,
		postRepo: postRepo,
	}
}

func blogCountsKey(blogID uuid.UUID) string {
	return fmt.Sprintf("counts:blog:%s", blogID)
}

func postCountsKey(postID uuid.UUID) string {
	return fmt.Sprintf("counts:post:%s", postID)
}

func (s *engagementService) BlogCounts(ctx context.Context, blogID uuid.UUID) (int64, int64, error) {
	if s.client != nil {
		val, err := s.client.HGetAll(ctx, blogCountsKey(blogID)).Result()
		if err == nil && len(val) > 0 {
			likers, _ := strconv.ParseInt(val[fieldLikers], 10, 64)
			subscribers, _ := strconv.ParseInt(val[fieldSubscribers], 10, 64)
			if likers >= 0 && subscribers >= 0 {
				return likers, subscribers, nil
			}
		}
	}

	// Cache miss: rebuild from DB and repopulate.
	likers, err := s.blogRepo.CountLikers(ctx, blogID)
	if err != nil {
		return 0, 0, err
	}
	subscribers, err := s.blogRepo.CountSubscribers(ctx, blogID)
	if err != nil {
		return 0, 0, err
	}

	if s.client != nil {
		key := blogCountsKey(blogID)
		pipe := s.client.Pipeline()
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fieldLikers, likers, fieldSubscribers, subscribers)
		pipe.Expire(ctx, key, engagementTTL)
		if _, err := pipe.Exec(ctx); err != nil {
			zap.L().Warn("engagement cache repopulate failed", zap.Error(err))
		}
	}
	return likers, subscribers, nil
}

func (s *engagementService) PostLikerCount(ctx context.Context, postID uuid.UUID) (int64, error) {
	if s.client != nil {
		val, err := s.client.HGet(ctx, postCountsKey(postID), fieldLikers).Result()
		if err == nil {
			if count, perr := strconv.ParseInt(val, 10, 64); perr == nil && count >= 0 {
				return count, nil
			}
		}
	}

	count, err := s.postRepo.CountLikers(ctx, postID)
	if err != nil {
		return 0, err
	}

	if s.client != nil {
		key := postCountsKey(postID)
		pipe := s.client.Pipeline()
		pipe.HSet(ctx, key, fieldLikers, count)
		pipe.Expire(ctx, key, engagementTTL)
		if _, err := pipe.Exec(ctx); err != nil {
			zap.L().Warn("engagement cache repopulate failed", zap.Error(err))
		}
	}
	return count, nil
}

func (s *engagementService) BumpBlogLikers(ctx context.Context, blogID uuid.UUID, delta int64) {
	s.bump(ctx, blogCountsKey(blogID), fieldLikers, delta)
}

func (s *engagementService) BumpBlogSubscribers(ctx context.Context, blogID uuid.UUID, delta int64) {
	s.bump(ctx, blogCountsKey(blogID), fieldSubscribers, delta)
}

func (s *engagementService) BumpPostLikers(ctx context.Context, postID uuid.UUID, delta int64) {
	s.bump(ctx, postCountsKey(postID), fieldLikers, delta)
}

// bump adjusts a cached counter after the DB write succeeded. Failures are
// logged and ignored: the DB stays the source of truth and the key expires.
func (s *engagementService) bump(ctx context.Context, key, field string, delta int64) {
	if s.client == nil {
		return
	}
	pipe := s.client.Pipeline()
	pipe.HIncrBy(ctx, key, field, delta)
	pipe.Expire(ctx, key, engagementTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		zap.L().Warn("engagement cache update failed", zap.String("key", key), zap.Error(err))
	}
}
