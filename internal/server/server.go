package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/MITHU9/forum-hub-backend/internal/config"
	"github.com/MITHU9/forum-hub-backend/internal/database"
	"github.com/MITHU9/forum-hub-backend/internal/handlers"
	"github.com/MITHU9/forum-hub-backend/internal/middleware"
)

type Server struct {
	db      database.Service
	cfg     *config.Config
	handler *handlers.Handler
}

// New wires the handlers into an http.Server with sane timeouts.
func New(cfg *config.Config, db database.Service, handler *handlers.Handler) *http.Server {
	s := &Server{db: db, cfg: cfg, handler: handler}
	router := s.RegisterRoutes()

	return &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		IdleTimeout:  cfg.IdleTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	authRequired := middleware.AuthMiddleware([]byte(s.cfg.JWTSecret))

	// Legacy vote routes; voter identity comes from the request body.
	voting := r.Group("")
	voting.Use(authRequired)
	{
		voting.POST("/post-upvote/:postId", s.handler.Vote.UpvotePost)
		voting.POST("/post-downvote/:postId", s.handler.Vote.DownvotePost)
	}

	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Post routes (public reads)
		api.GET("/posts", s.handler.Post.GetPosts)
		api.GET("/posts/:id", s.handler.Post.GetPost)
		api.GET("/posts/:id/comments", s.handler.Comment.GetComments)

		// User routes (public reads)
		api.GET("/users/:id", s.handler.User.GetUserProfile)
		api.GET("/users/:id/posts", s.handler.Post.GetUserPosts)

		// Announcements and search (public reads)
		api.GET("/announcements", s.handler.Announcement.GetAnnouncements)
		api.GET("/search", s.handler.Search.SearchPosts)
		api.GET("/search/trending", s.handler.Search.TrendingTerms)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(authRequired)
		{
			protected.GET("/me", s.handler.Auth.GetMe)

			protected.POST("/posts", s.handler.Post.CreatePost)
			protected.PUT("/posts/:id", s.handler.Post.UpdatePost)
			protected.DELETE("/posts/:id", s.handler.Post.DeletePost)

			protected.POST("/posts/:id/comments", s.handler.Comment.CreateComment)
			protected.POST("/comments/:commentId/upvote", s.handler.Comment.UpvoteComment)
			protected.POST("/comments/:commentId/downvote", s.handler.Comment.DownvoteComment)
			protected.PUT("/comments/:commentId", s.handler.Comment.UpdateComment)
			protected.DELETE("/comments/:commentId", s.handler.Comment.DeleteComment)

			protected.PUT("/users/:id", s.handler.User.UpdateUserProfile)

			protected.POST("/payments/intent", s.handler.Payment.CreateIntent)

			// Admin routes
			admin := protected.Group("")
			admin.Use(middleware.AdminMiddleware())
			{
				admin.POST("/announcements", s.handler.Announcement.CreateAnnouncement)
				admin.PUT("/announcements/:id", s.handler.Announcement.UpdateAnnouncement)
				admin.DELETE("/announcements/:id", s.handler.Announcement.DeleteAnnouncement)
				admin.DELETE("/admin/posts/:id", s.handler.Post.ModerateDeletePost)
			}
		}
	}

	return r
}
