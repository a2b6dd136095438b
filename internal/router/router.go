package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/uniak/teaching-backend/internal/config"
	"github.com/uniak/teaching-backend/internal/handler"
	"github.com/uniak/teaching-backend/internal/middleware"
	"github.com/uniak/teaching-backend/internal/model"
	"github.com/uniak/teaching-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth               *handler.AuthHandler
	Health             *handler.HealthHandler
	Courses            handler.CRUD
	CourseTypes        handler.CRUD
	StudyPrograms      handler.CRUD
	Teachers           handler.CRUD
	Departments        handler.CRUD
	Institutes         handler.CRUD
	Semesters          handler.CRUD
	Curricula          handler.CRUD
	CurriculumSubjects handler.CRUD
	StudySubjects      handler.CRUD
	Users              handler.CRUD
}

// collection binds a URL prefix to its handler and the tier its writes need.
type collection struct {
	prefix string
	h      handler.CRUD
	write  model.Tier
}

func (h *Handlers) collections() []collection {
	return []collection{
		{"courses", h.Courses, model.TierAdministrative},
		{"course-types", h.CourseTypes, model.TierAdministrative},
		{"study-programs", h.StudyPrograms, model.TierAdministrative},
		{"teachers", h.Teachers, model.TierAdministrative},
		{"departments", h.Departments, model.TierAdministrative},
		{"institutes", h.Institutes, model.TierAdministrative},
		{"semesters", h.Semesters, model.TierAdministrative},
		{"curricula", h.Curricula, model.TierAdministrative},
		{"curriculum-subjects", h.CurriculumSubjects, model.TierAdministrative},
		{"study-subjects", h.StudySubjects, model.TierAdministrative},
	}
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// authLimiter may be nil.
func SetupRouter(
	auth middleware.TokenValidator,
	authLimiter *middleware.RateLimiter,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the access log can carry it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))

	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Quality:   middleware.DefaultBrotliConfig.Quality,
		MinLength: middleware.DefaultBrotliConfig.MinLength,
		Skipper: func(c *gin.Context) bool {
			return c.Request.URL.Path == "/health"
		},
	}))

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	// Health check.
	router.GET("/health", middleware.NoStore(), handlers.Health.Health)

	api := router.Group("/api/v1")

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	authAPI := api.Group("/auth")
	authAPI.Use(middleware.NoStore())
	if authLimiter != nil {
		authAPI.Use(authLimiter.Middleware())
	}
	{
		authAPI.POST("/register/", handlers.Auth.Register)
		authAPI.POST("/admin-login/", handlers.Auth.AdminLogin)
		authAPI.POST("/token/refresh/", handlers.Auth.Refresh)
		authAPI.POST("/logout/", handlers.Auth.Logout)

		authAPI.GET("/profile/", middleware.Require(auth, model.TierAuthenticated), handlers.Auth.Profile)
		authAPI.GET("/check-admin/", middleware.Require(auth, model.TierAuthenticated), handlers.Auth.CheckAdmin)
	}

	// ─── 2. Admin Group (Staff Only) ───────────────────────────────────
	adminAPI := api.Group("/admin")
	adminAPI.Use(middleware.Require(auth, model.TierAdministrative), middleware.NoStore())
	{
		adminAPI.GET("/users/", handlers.Users.List)
		adminAPI.POST("/users/", handlers.Users.Create)
		adminAPI.GET("/users/:id/", handlers.Users.Get)
		adminAPI.PUT("/users/:id/", handlers.Users.Replace)
		adminAPI.PATCH("/users/:id/", handlers.Users.Patch)
		adminAPI.DELETE("/users/:id/", handlers.Users.Delete)
	}

	// ─── 3. Catalog Collections (Public Reads, Guarded Writes) ─────────
	for _, col := range handlers.collections() {
		registerCollection(api, auth, col)
	}

	return router
}

func registerCollection(api *gin.RouterGroup, auth middleware.TokenValidator, col collection) {
	g := api.Group("/" + col.prefix)
	read := middleware.Require(auth, model.TierPublic)
	write := middleware.Require(auth, col.write)

	g.GET("/", read, col.h.List)
	g.GET("/:id/", read, col.h.Get)
	g.POST("/add/", write, col.h.Create)

	g.PUT("/:id/update/", write, col.h.Replace)
	g.PATCH("/:id/update/", write, col.h.Patch)
	g.DELETE("/:id/delete/", write, col.h.Delete)

	// Short forms on the detail URL.
	g.PUT("/:id/", write, col.h.Replace)
	g.PATCH("/:id/", write, col.h.Patch)
	g.DELETE("/:id/", write, col.h.Delete)
}
