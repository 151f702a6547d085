package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-hq/inkwell/internal/dto"
	"github.com/inkwell-hq/inkwell/pkg/apperror"
)

func TestTagCreateRequiresAuthorship(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	owner := createUser(t, deps.db, "owner")
	stranger := createUser(t, deps.db, "stranger")
	admin := createAdmin(t, deps.db)
	blog := createBlog(t, deps, owner, "tagged")

	_, err := deps.tags.Create(ctx, blog.ID, asActor(stranger), dto.CreateTagRequest{Name: "nope"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	tag, err := deps.tags.Create(ctx, blog.ID, asActor(admin), dto.CreateTagRequest{Name: "moderation"})
	require.NoError(t, err)
	assert.Equal(t, blog.ID, tag.Blog.ID)
}

func TestTagListMutuallyExclusiveFilters(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	owner := createUser(t, deps.db, "owner")
	blog := createBlog(t, deps, owner, "tagged")

	filter := dto.TagListFilter{BlogID: &blog.ID, SubscriberID: &owner.ID}
	filter.Limit = dto.DefaultPageLimit

	_, _, err := deps.tags.List(ctx, filter)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestTagListByBlog(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	owner := createUser(t, deps.db, "owner")
	blog := createBlog(t, deps, owner, "tagged")
	other := createBlog(t, deps, owner, "untagged")

	for _, name := range []string{"go", "sql"} {
		_, err := deps.tags.Create(ctx, blog.ID, asActor(owner), dto.CreateTagRequest{Name: name})
		require.NoError(t, err)
	}
	_, err := deps.tags.Create(ctx, other.ID, asActor(owner), dto.CreateTagRequest{Name: "misc"})
	require.NoError(t, err)

	filter := dto.TagListFilter{BlogID: &blog.ID}
	filter.Limit = dto.DefaultPageLimit
	tags, total, err := deps.tags.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, tags, 2)
}

func TestTagSubscribeIdempotency(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	owner := createUser(t, deps.db, "owner")
	reader := createUser(t, deps.db, "reader")
	blog := createBlog(t, deps, owner, "tagged")

	tag, err := deps.tags.Create(ctx, blog.ID, asActor(owner), dto.CreateTagRequest{Name: "go"})
	require.NoError(t, err)

	subscribed, err := deps.tags.Subscribe(ctx, tag.ID, asActor(reader))
	require.NoError(t, err)
	assert.Equal(t, int64(1), subscribed.SubscriberCount)

	_, err = deps.tags.Subscribe(ctx, tag.ID, asActor(reader))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already subscribed")

	_, err = deps.tags.Unsubscribe(ctx, tag.ID, asActor(reader))
	require.NoError(t, err)

	_, err = deps.tags.Unsubscribe(ctx, tag.ID, asActor(reader))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not subscribed")
}

func TestTagListBySubscriber(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	owner := createUser(t, deps.db, "owner")
	reader := createUser(t, deps.db, "reader")
	blog := createBlog(t, deps, owner, "tagged")

	followed, err := deps.tags.Create(ctx, blog.ID, asActor(owner), dto.CreateTagRequest{Name: "followed"})
	require.NoError(t, err)
	_, err = deps.tags.Create(ctx, blog.ID, asActor(owner), dto.CreateTagRequest{Name: "ignored"})
	require.NoError(t, err)

	_, err = deps.tags.Subscribe(ctx, followed.ID, asActor(reader))
	require.NoError(t, err)

	filter := dto.TagListFilter{SubscriberID: &reader.ID}
	filter.Limit = dto.DefaultPageLimit
	tags, total, err := deps.tags.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, tags, 1)
	assert.Equal(t, "followed", tags[0].Name)
}

func TestTagSortByMostSubscribersRoundTrip(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	owner := createUser(t, deps.db, "owner")
	blog := createBlog(t, deps, owner, "tagged")

	popular, err := deps.tags.Create(ctx, blog.ID, asActor(owner), dto.CreateTagRequest{Name: "popular"})
	require.NoError(t, err)
	niche, err := deps.tags.Create(ctx, blog.ID, asActor(owner), dto.CreateTagRequest{Name: "niche"})
	require.NoError(t, err)
	_, err = deps.tags.Create(ctx, blog.ID, asActor(owner), dto.CreateTagRequest{Name: "dormant"})
	require.NoError(t, err)

	for _, nick := range []string{"fan-one", "fan-two"} {
		fan := createUser(t, deps.db, nick)
		_, err = deps.tags.Subscribe(ctx, popular.ID, asActor(fan))
		require.NoError(t, err)
	}
	lone := createUser(t, deps.db, "lone-fan")
	_, err = deps.tags.Subscribe(ctx, niche.ID, asActor(lone))
	require.NoError(t, err)

	list := func(order dto.SortOrder) []string {
		filter := dto.TagListFilter{SortBy: dto.TagSortByMostSubscribers, SortOrder: order}
		filter.Limit = dto.DefaultPageLimit
		tags, _, err := deps.tags.List(ctx, filter)
		require.NoError(t, err)
		names := make([]string, 0, len(tags))
		for _, tg := range tags {
			names = append(names, tg.Name)
		}
		return names
	}

	desc := list(dto.SortDescending)
	assert.Equal(t, []string{"popular", "niche", "dormant"}, desc)

	asc := list(dto.SortAscending)
	require.Len(t, asc, len(desc))
	for i := range desc {
		assert.Equal(t, desc[i], asc[len(asc)-1-i])
	}
}

func TestTagUpdateAndDeletePermissions(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	owner := createUser(t, deps.db, "owner")
	stranger := createUser(t, deps.db, "stranger")
	blog := createBlog(t, deps, owner, "tagged")

	tag, err := deps.tags.Create(ctx, blog.ID, asActor(owner), dto.CreateTagRequest{Name: "draft"})
	require.NoError(t, err)

	_, err = deps.tags.Update(ctx, tag.ID, asActor(stranger), dto.UpdateTagRequest{Name: "hijacked"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	updated, err := deps.tags.Update(ctx, tag.ID, asActor(owner), dto.UpdateTagRequest{Name: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)

	err = deps.tags.Delete(ctx, tag.ID, asActor(stranger))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	require.NoError(t, deps.tags.Delete(ctx, tag.ID, asActor(owner)))
	_, err = deps.tags.Get(ctx, tag.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
