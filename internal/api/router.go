package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/nimbusworks/user-directory/docs"
	"github.com/nimbusworks/user-directory/internal/api/handler"
	"github.com/nimbusworks/user-directory/internal/api/middleware"
	"github.com/nimbusworks/user-directory/internal/core/domain"
	"github.com/nimbusworks/user-directory/internal/core/ports"
)

// Dependencies carries everything the router needs. All services are built
// once at startup and passed in explicitly; no package-level state.
type Dependencies struct {
	Users  ports.UserService
	Auth   ports.AuthService
	Items  ports.ItemService
	Tokens ports.TokenService

	Mongo *mongo.Database
	Redis *redis.Client

	// PublicRead opens list/read to anonymous callers; OpenCreate opens
	// registration. Both default to the strict configuration.
	PublicRead bool
	OpenCreate bool

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("userdirectory"))

	requireAuth := middleware.Auth(deps.Tokens)
	optionalAuth := middleware.OptionalAuth(deps.Tokens)

	// Read and create routes flip between required and optional auth
	// depending on the policy toggles; the policy itself still makes the
	// final call, the middleware only decides whether anonymous requests
	// get past the door.
	readAuth := requireAuth
	if deps.PublicRead {
		readAuth = optionalAuth
	}
	createAuth := requireAuth
	if deps.OpenCreate {
		createAuth = optionalAuth
	}

	// --- Auth ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/login", authHandler.Login)

	// --- Users ---
	userHandler := handler.NewUserHandler(deps.Users)
	users := e.Group("/users")
	users.GET("", userHandler.List, readAuth)
	users.GET("/:id", userHandler.Get, readAuth)
	users.POST("/create", userHandler.Create, createAuth)
	users.PUT("/me", userHandler.UpdateMe, requireAuth)
	users.PUT("/:id", userHandler.Update, requireAuth)
	users.DELETE("/:id", userHandler.Delete, requireAuth, middleware.RBAC(domain.RoleAdmin))

	// --- Items ---
	itemHandler := handler.NewItemHandler(deps.Items)
	items := e.Group("/items")
	items.GET("", itemHandler.List)
	items.POST("", itemHandler.Create)
	items.PATCH("/:id", itemHandler.Update)
	items.DELETE("/:id", itemHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
