package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-hq/inkwell/internal/dto"
	"github.com/inkwell-hq/inkwell/pkg/apperror"
)

func TestCategoryCreateApprovalFlag(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	regular := createUser(t, deps.db, "regular")
	admin := createAdmin(t, deps.db)

	proposed, err := deps.categories.Create(ctx, asActor(regular), dto.CreateCategoryRequest{Name: "proposed"})
	require.NoError(t, err)
	assert.False(t, proposed.Approved)

	approved, err := deps.categories.Create(ctx, asActor(admin), dto.CreateCategoryRequest{Name: "official"})
	require.NoError(t, err)
	assert.True(t, approved.Approved)
}

func TestCategoryDuplicateName(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	admin := createAdmin(t, deps.db)

	_, err := deps.categories.Create(ctx, asActor(admin), dto.CreateCategoryRequest{Name: "tech"})
	require.NoError(t, err)

	_, err = deps.categories.Create(ctx, asActor(admin), dto.CreateCategoryRequest{Name: "tech"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in use")
}

func TestCategoryUpdateAdminOnly(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	regular := createUser(t, deps.db, "regular")
	admin := createAdmin(t, deps.db)

	category, err := deps.categories.Create(ctx, asActor(regular), dto.CreateCategoryRequest{Name: "pending"})
	require.NoError(t, err)

	approve := true
	_, err = deps.categories.Update(ctx, category.ID, asActor(regular), dto.UpdateCategoryRequest{Approved: &approve})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	updated, err := deps.categories.Update(ctx, category.ID, asActor(admin), dto.UpdateCategoryRequest{Approved: &approve})
	require.NoError(t, err)
	assert.True(t, updated.Approved)
}

func TestCategoryDeleteGuards(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	owner := createUser(t, deps.db, "owner")
	admin := createAdmin(t, deps.db)

	category, err := deps.categories.Create(ctx, asActor(admin), dto.CreateCategoryRequest{Name: "in use"})
	require.NoError(t, err)

	_, err = deps.blogs.Create(ctx, asActor(owner), dto.CreateBlogRequest{
		Name:        "member blog",
		CategoryIDs: []uuid.UUID{category.ID},
	})
	require.NoError(t, err)

	err = deps.categories.Delete(ctx, category.ID, asActor(owner))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	err = deps.categories.Delete(ctx, category.ID, asActor(admin))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still referenced")

	empty, err := deps.categories.Create(ctx, asActor(admin), dto.CreateCategoryRequest{Name: "empty"})
	require.NoError(t, err)
	require.NoError(t, deps.categories.Delete(ctx, empty.ID, asActor(admin)))

	_, err = deps.categories.Get(ctx, empty.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCategorySortByTopBlogLikes(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	owner := createUser(t, deps.db, "owner")
	admin := createAdmin(t, deps.db)

	crowded, err := deps.categories.Create(ctx, asActor(admin), dto.CreateCategoryRequest{Name: "crowded"})
	require.NoError(t, err)
	modest, err := deps.categories.Create(ctx, asActor(admin), dto.CreateCategoryRequest{Name: "modest"})
	require.NoError(t, err)
	_, err = deps.categories.Create(ctx, asActor(admin), dto.CreateCategoryRequest{Name: "deserted"})
	require.NoError(t, err)

	hit, err := deps.blogs.Create(ctx, asActor(owner), dto.CreateBlogRequest{
		Name: "hit", CategoryIDs: []uuid.UUID{crowded.ID},
	})
	require.NoError(t, err)
	_, err = deps.blogs.Create(ctx, asActor(owner), dto.CreateBlogRequest{
		Name: "filler", CategoryIDs: []uuid.UUID{crowded.ID},
	})
	require.NoError(t, err)
	steady, err := deps.blogs.Create(ctx, asActor(owner), dto.CreateBlogRequest{
		Name: "steady", CategoryIDs: []uuid.UUID{modest.ID},
	})
	require.NoError(t, err)

	// A category ranks by its single most-liked blog, not the sum.
	readers := make([]dto.AuthUser, 3)
	for i, nick := range []string{"reader-a", "reader-b", "reader-c"} {
		readers[i] = asActor(createUser(t, deps.db, nick))
	}
	for _, reader := range readers {
		_, err = deps.blogs.Like(ctx, hit.ID, reader)
		require.NoError(t, err)
	}
	for _, reader := range readers[:2] {
		_, err = deps.blogs.Like(ctx, steady.ID, reader)
		require.NoError(t, err)
	}

	list := func(order dto.SortOrder) []string {
		filter := dto.CategoryListFilter{SortBy: dto.CategorySortByTopBlogLikes, SortOrder: order}
		filter.Limit = dto.DefaultPageLimit
		categories, _, err := deps.categories.List(ctx, filter)
		require.NoError(t, err)
		names := make([]string, 0, len(categories))
		for _, c := range categories {
			names = append(names, c.Name)
		}
		return names
	}

	desc := list(dto.SortDescending)
	assert.Equal(t, []string{"crowded", "modest", "deserted"}, desc)

	asc := list(dto.SortAscending)
	require.Len(t, asc, len(desc))
	for i := range desc {
		assert.Equal(t, desc[i], asc[len(asc)-1-i])
	}
}

func TestCategoryListApprovedFilter(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	regular := createUser(t, deps.db, "regular")
	admin := createAdmin(t, deps.db)

	_, err := deps.categories.Create(ctx, asActor(regular), dto.CreateCategoryRequest{Name: "pending"})
	require.NoError(t, err)
	_, err = deps.categories.Create(ctx, asActor(admin), dto.CreateCategoryRequest{Name: "live"})
	require.NoError(t, err)

	approved := true
	filter := dto.CategoryListFilter{Approved: &approved}
	filter.Limit = dto.DefaultPageLimit
	categories, total, err := deps.categories.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, categories, 1)
	assert.Equal(t, "live", categories[0].Name)
}
