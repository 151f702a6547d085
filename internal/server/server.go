package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/inkwell-hq/inkwell/internal/config"
	"github.com/inkwell-hq/inkwell/internal/handler"
	"github.com/inkwell-hq/inkwell/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Blog     *handler.BlogHandler
	Category *handler.CategoryHandler
	Tag      *handler.TagHandler
	Post     *handler.PostHandler
}

func NewRouter(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	auth := middleware.RequireAuth(cfg.JWTSecret)

	api.POST("/auth/login", h.Auth.Login)

	users := api.Group("/users")
	{
		users.POST("", h.User.Register)
		users.GET("", h.User.List)
		users.GET("/:user_id", h.User.Get)
		users.PATCH("/:user_id", auth, h.User.Update)
		users.DELETE("/:user_id", auth, h.User.Delete)
	}

	blogs := api.Group("/blogs")
	{
		blogs.POST("", auth, h.Blog.Create)
		blogs.GET("", h.Blog.List)
		blogs.GET("/:blog_id", h.Blog.Get)
		blogs.PATCH("/:blog_id", auth, h.Blog.Update)
		blogs.DELETE("/:blog_id", auth, h.Blog.Delete)

		blogs.POST("/:blog_id/authors", auth, h.Blog.AddAuthors)
		blogs.DELETE("/:blog_id/authors/:author_id", auth, h.Blog.RemoveAuthor)

		blogs.POST("/:blog_id/subscribe", auth, h.Blog.Subscribe)
		blogs.DELETE("/:blog_id/subscribe", auth, h.Blog.Unsubscribe)
		blogs.POST("/:blog_id/like", auth, h.Blog.Like)
		blogs.DELETE("/:blog_id/like", auth, h.Blog.Unlike)

		blogs.POST("/:blog_id/tags", auth, h.Tag.Create)
		blogs.POST("/:blog_id/posts", auth, h.Post.Create)
	}

	tags := api.Group("/tags")
	{
		tags.GET("", h.Tag.List)
		tags.GET("/:tag_id", h.Tag.Get)
		tags.PATCH("/:tag_id", auth, h.Tag.Update)
		tags.DELETE("/:tag_id", auth, h.Tag.Delete)
		tags.POST("/:tag_id/subscribe", auth, h.Tag.Subscribe)
		tags.DELETE("/:tag_id/subscribe", auth, h.Tag.Unsubscribe)
	}

	posts := api.Group("/posts")
	{
		posts.GET("", h.Post.List)
		posts.GET("/:post_id", h.Post.Get)
		posts.PATCH("/:post_id", auth, h.Post.Update)
		posts.DELETE("/:post_id", auth, h.Post.Delete)
		posts.POST("/:post_id/like", auth, h.Post.Like)
		posts.DELETE("/:post_id/like", auth, h.Post.Unlike)
		posts.POST("/:post_id/favorite", auth, h.Post.AddFavorite)
		posts.DELETE("/:post_id/favorite", auth, h.Post.RemoveFavorite)
	}

	categories := api.Group("/categories")
	{
		categories.POST("", auth, h.Category.Create)
		categories.GET("", h.Category.List)
		categories.GET("/:category_id", h.Category.Get)
		categories.PATCH("/:category_id", auth, h.Category.Update)
		categories.DELETE("/:category_id", auth, h.Category.Delete)
	}

	return router
}
