package main

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/inkwell-hq/inkwell/internal/bootstrap"
	"github.com/inkwell-hq/inkwell/internal/config"
	"github.com/inkwell-hq/inkwell/internal/entity"
	"github.com/inkwell-hq/inkwell/internal/handler"
	"github.com/inkwell-hq/inkwell/internal/repository"
	"github.com/inkwell-hq/inkwell/internal/server"
	"github.com/inkwell-hq/inkwell/internal/service"
	"github.com/inkwell-hq/inkwell/pkg/database"
	"github.com/inkwell-hq/inkwell/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := entity.AutoMigrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	// Redis is optional; engagement counts fall back to the database.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal("invalid redis url", zap.Error(err))
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("redis unreachable, engagement counts fall back to the database", zap.Error(err))
			redisClient = nil
		}
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdmin(context.Background(), db); err != nil {
			log.Warn("admin seed failed", zap.Error(err))
		}
	}

	userRepo := repository.NewUserRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	tagRepo := repository.NewTagRepository(db)
	postRepo := repository.NewPostRepository(db)

	engagement := service.NewEngagementService(redisClient, blogRepo, postRepo)
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userRepo, cfg)
	blogService := service.NewBlogService(blogRepo, categoryRepo, userService, engagement)
	tagService := service.NewTagService(tagRepo, blogService)
	postService := service.NewPostService(postRepo, blogRepo, tagRepo, userRepo, blogService, engagement)
	categoryService := service.NewCategoryService(categoryRepo)

	router := server.NewRouter(cfg, server.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		User:     handler.NewUserHandler(userService),
		Blog:     handler.NewBlogHandler(blogService),
		Category: handler.NewCategoryHandler(categoryService),
		Tag:      handler.NewTagHandler(tagService),
		Post:     handler.NewPostHandler(postService),
	})

	log.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
