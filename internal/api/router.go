package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/galleryblog/blog-api/internal/api/handler"
	"github.com/galleryblog/blog-api/internal/api/middleware"
	"github.com/galleryblog/blog-api/internal/core/domain"
	"github.com/galleryblog/blog-api/internal/core/service"
	"github.com/galleryblog/blog-api/internal/infrastructure/config"
	mongodb "github.com/galleryblog/blog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/galleryblog/blog-api/internal/infrastructure/db/redis"
	"github.com/galleryblog/blog-api/internal/infrastructure/http/handlers"
	"github.com/galleryblog/blog-api/internal/infrastructure/storage"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, images *storage.LocalStore, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("blog"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)

	authService := service.NewAuthService(userRepo, throttle, cfg.JWTSecret, cfg.SessionTTL, log)
	userService := service.NewUserService(userRepo, log)
	postService := service.NewPostService(postRepo, images, log)
	commentService := service.NewCommentService(commentRepo, postRepo, log)

	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL, cfg.Production())
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)

	auth := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- User routes ---
	users := e.Group("/users")
	users.POST("/login", authHandler.Login)
	users.POST("/logout", authHandler.Logout, auth)
	users.GET("/get-session", authHandler.GetSession, auth)
	users.POST("/create-user", userHandler.Create)
	users.POST("/create-admin", userHandler.CreateAdmin, auth, adminOnly)
	users.POST("/create-semiadmin", userHandler.CreateSemiAdmin, auth, adminOnly)
	users.PUT("/update-user/:id", userHandler.Update, auth)
	users.DELETE("/delete-user/:id", userHandler.Delete, auth)
	users.GET("/get-user/:id", userHandler.Get)
	users.GET("/get-users", userHandler.List)

	// --- Post routes ---
	posts := e.Group("/posts")
	posts.POST("/create-post", postHandler.Create, auth, adminOnly)
	posts.PUT("/update-post/:id", postHandler.Update, auth, adminOnly)
	posts.DELETE("/delete-post/:id", postHandler.Delete, auth, adminOnly)
	posts.GET("/get-posts", postHandler.List)
	posts.GET("/get-post/:id", postHandler.Get)
	posts.POST("/add-comment/:postId", commentHandler.Add, auth)
	posts.GET("/get-comment/:postId", commentHandler.ListByPost)
	posts.POST("/toggle-like/:postId", postHandler.ToggleLike, auth)

	// --- Static uploads ---
	e.Static("/uploads", images.Dir())

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
