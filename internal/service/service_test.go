package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/inkwell-hq/inkwell/internal/dto"
	"github.com/inkwell-hq/inkwell/internal/entity"
	"github.com/inkwell-hq/inkwell/internal/repository"
)

type testDeps struct {
	db         *gorm.DB
	users      UserService
	blogs      BlogService
	tags       TagService
	posts      PostService
	categories CategoryService
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, entity.AutoMigrate(db))
	return db
}

func newDeps(t *testing.T) testDeps {
	t.Helper()
	db := setupDB(t)

	userRepo := repository.NewUserRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	tagRepo := repository.NewTagRepository(db)
	postRepo := repository.NewPostRepository(db)

	engagement := NewEngagementService(nil, blogRepo, postRepo)
	users := NewUserService(userRepo)
	blogs := NewBlogService(blogRepo, categoryRepo, users, engagement)
	tags := NewTagService(tagRepo, blogs)
	posts := NewPostService(postRepo, blogRepo, tagRepo, userRepo, blogs, engagement)
	categories := NewCategoryService(categoryRepo)

	return testDeps{
		db:         db,
		users:      users,
		blogs:      blogs,
		tags:       tags,
		posts:      posts,
		categories: categories,
	}
}

func createUser(t *testing.T, db *gorm.DB, nickname string) entity.User {
	t.Helper()
	user := entity.User{
		Nickname:     nickname,
		Email:        fmt.Sprintf("%s@example.com", nickname),
		PasswordHash: "not-a-real-hash",
		Role:         entity.RoleRegular,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createAdmin(t *testing.T, db *gorm.DB) entity.User {
	t.Helper()
	admin := entity.User{
		Nickname:     "site-admin",
		Email:        "site-admin@example.com",
		PasswordHash: "not-a-real-hash",
		Role:         entity.RoleAdmin,
	}
	require.NoError(t, db.Create(&admin).Error)
	return admin
}

func asActor(u entity.User) dto.AuthUser {
	return dto.AuthUser{UserID: u.ID, Role: u.Role}
}

func createBlog(t *testing.T, deps testDeps, owner entity.User, name string) *dto.BlogResponse {
	t.Helper()
	blog, err := deps.blogs.Create(context.Background(), asActor(owner), dto.CreateBlogRequest{Name: name})
	require.NoError(t, err)
	return blog
}
