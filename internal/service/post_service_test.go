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

func createPost(t *testing.T, deps testDeps, blogID uuid.UUID, author dto.AuthUser, title string) *dto.PostResponse {
	t.Helper()
	post, err := deps.posts.Create(context.Background(), blogID, author, dto.CreatePostRequest{
		Title:     title,
		Body:      "body of " + title,
		Published: true,
		AuthorIDs: []uuid.UUID{author.UserID},
	})
	require.NoError(t, err)
	return post
}

func TestPostCreateRejectsOutsideAuthor(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	owner := createUser(t, deps.db, "owner")
	outsider := createUser(t, deps.db, "outsider")
	blog := createBlog(t, deps, owner, "exclusive")

	_, err := deps.posts.Create(ctx, blog.ID, asActor(owner), dto.CreatePostRequest{
		Title:     "collab attempt",
		Body:      "text",
		AuthorIDs: []uuid.UUID{owner.ID, outsider.ID},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not an author of blog")
}

func TestPostCreateRejectsForeignTag(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	owner := createUser(t, deps.db, "owner")
	blog := createBlog(t, deps, owner, "mine")
	otherBlog := createBlog(t, deps, owner, "other")

	foreignTag, err := deps.tags.Create(ctx, otherBlog.ID, asActor(owner), dto.CreateTagRequest{Name: "elsewhere"})
	require.NoError(t, err)

	_, err = deps.posts.Create(ctx, blog.ID, asActor(owner), dto.CreatePostRequest{
		Title:     "mistagged",
		Body:      "text",
		AuthorIDs: []uuid.UUID{owner.ID},
		TagIDs:    []uuid.UUID{foreignTag.ID},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not belong to blog")
}

func TestPostDuplicateTitle(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	owner := createUser(t, deps.db, "owner")
	blog := createBlog(t, deps, owner, "journal")

	createPost(t, deps, blog.ID, asActor(owner), "unique title")

	_, err := deps.posts.Create(ctx, blog.ID, asActor(owner), dto.CreatePostRequest{
		Title:     "unique title",
		Body:      "different body",
		AuthorIDs: []uuid.UUID{owner.ID},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists in blog")

	// The same title in another blog is fine.
	otherBlog := createBlog(t, deps, owner, "second journal")
	createPost(t, deps, otherBlog.ID, asActor(owner), "unique title")
}

func TestPostSelfLikeForbidden(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	owner := createUser(t, deps.db, "owner")
	reader := createUser(t, deps.db, "reader")
	blog := createBlog(t, deps, owner, "journal")
	post := createPost(t, deps, blog.ID, asActor(owner), "opinion")

	_, err := deps.posts.Like(ctx, post.ID, asActor(owner))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Contains(t, err.Error(), "their own post")

	liked, err := deps.posts.Like(ctx, post.ID, asActor(reader))
	require.NoError(t, err)
	assert.Equal(t, int64(1), liked.LikerCount)

	_, err = deps.posts.Like(ctx, post.ID, asActor(reader))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already liked")

	unliked, err := deps.posts.Unlike(ctx, post.ID, asActor(reader))
	require.NoError(t, err)
	assert.Equal(t, int64(0), unliked.LikerCount)
}

func TestPostFavoriteToggle(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	owner := createUser(t, deps.db, "owner")
	blog := createBlog(t, deps, owner, "journal")
	post := createPost(t, deps, blog.ID, asActor(owner), "keeper")

	// Unlike likes, authors may favorite their own posts.
	favorited, err := deps.posts.AddFavorite(ctx, post.ID, asActor(owner))
	require.NoError(t, err)
	assert.Len(t, favorited.Favoriters, 1)

	_, err = deps.posts.AddFavorite(ctx, post.ID, asActor(owner))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already a favorite")

	_, err = deps.posts.RemoveFavorite(ctx, post.ID, asActor(owner))
	require.NoError(t, err)

	_, err = deps.posts.RemoveFavorite(ctx, post.ID, asActor(owner))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a favorite")
}

func TestPostUpdate(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	owner := createUser(t, deps.db, "owner")
	stranger := createUser(t, deps.db, "stranger")
	blog := createBlog(t, deps, owner, "journal")
	post := createPost(t, deps, blog.ID, asActor(owner), "draft")

	title := "final"
	published := false
	_, err := deps.posts.Update(ctx, post.ID, asActor(stranger), dto.UpdatePostRequest{Title: &title})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	updated, err := deps.posts.Update(ctx, post.ID, asActor(owner), dto.UpdatePostRequest{
		Title:     &title,
		Published: &published,
		Notes:     []string{"revised once"},
	})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Title)
	assert.False(t, updated.Published)
	assert.Equal(t, []string{"revised once"}, updated.Notes)
}

func TestPostUpdateRollsBackAuthorReplacement(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	owner := createUser(t, deps.db, "owner")
	coauthor := createUser(t, deps.db, "coauthor")
	blog := createBlog(t, deps, owner, "journal")

	_, err := deps.blogs.AddAuthors(ctx, blog.ID, asActor(owner), []uuid.UUID{coauthor.ID})
	require.NoError(t, err)

	createPost(t, deps, blog.ID, asActor(owner), "first")
	second := createPost(t, deps, blog.ID, asActor(owner), "second")

	// The title collision fails the write; the author replacement requested
	// in the same update must not survive it.
	title := "first"
	_, err = deps.posts.Update(ctx, second.ID, asActor(owner), dto.UpdatePostRequest{
		Title:     &title,
		AuthorIDs: []uuid.UUID{coauthor.ID},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists in blog")

	fresh, err := deps.posts.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", fresh.Title)
	require.Len(t, fresh.Authors, 1)
	assert.Equal(t, owner.ID, fresh.Authors[0].ID)
}

func TestPostListFilters(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	owner := createUser(t, deps.db, "owner")
	blog := createBlog(t, deps, owner, "journal")

	createPost(t, deps, blog.ID, asActor(owner), "go generics")
	createPost(t, deps, blog.ID, asActor(owner), "sql window functions")

	filter := dto.PostListFilter{Title: "generics"}
	filter.Limit = dto.DefaultPageLimit
	posts, total, err := deps.posts.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, "go generics", posts[0].Title)

	blogFilter := dto.PostListFilter{BlogID: &blog.ID}
	blogFilter.Limit = dto.DefaultPageLimit
	_, total, err = deps.posts.List(ctx, blogFilter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestPostSortOrderRoundTrip(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	owner := createUser(t, deps.db, "owner")
	blog := createBlog(t, deps, owner, "journal")

	for _, title := range []string{"middle", "apex", "zenith"} {
		createPost(t, deps, blog.ID, asActor(owner), title)
	}

	list := func(order dto.SortOrder) []string {
		filter := dto.PostListFilter{SortBy: dto.PostSortByTitle, SortOrder: order}
		filter.Limit = dto.DefaultPageLimit
		posts, _, err := deps.posts.List(ctx, filter)
		require.NoError(t, err)
		titles := make([]string, 0, len(posts))
		for _, p := range posts {
			titles = append(titles, p.Title)
		}
		return titles
	}

	asc := list(dto.SortAscending)
	desc := list(dto.SortDescending)
	assert.Equal(t, []string{"apex", "middle", "zenith"}, asc)
	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
}

func TestPostDelete(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	owner := createUser(t, deps.db, "owner")
	blog := createBlog(t, deps, owner, "journal")
	post := createPost(t, deps, blog.ID, asActor(owner), "temporary")

	require.NoError(t, deps.posts.Delete(ctx, post.ID, asActor(owner)))

	_, err := deps.posts.Get(ctx, post.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
