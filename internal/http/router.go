package api

import (
	"database/sql"
	"log"
	stdhttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"backend/internal/auth"
	"backend/internal/config"
	"backend/internal/domain"
	h "backend/internal/http/handlers"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
)

// NewRouter wires the middleware pipeline and every endpoint. All storage
// access flows through the repositories constructed here from the injected
// DB handle.
func NewRouter(env config.Env, sqlDB *sql.DB) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"statusCode": stdhttp.StatusNotFound,
			"message":    "Route not found",
			"detail":     nil,
		})
	})

	userRepo := repositories.UserRepository{DB: sqlDB}
	tableRepo := repositories.TableRepository{DB: sqlDB}
	tokens := auth.NewTokenService(env.JWTSecret, env.TokenTTL)
	hasher := auth.NewPasswordHasher(env.BcryptCost)
	debug := !env.IsProduction()

	userHandler := h.UserHandler{Users: userRepo, Tokens: tokens, Hasher: hasher, Debug: debug}
	tableHandler := h.TableHandler{Tables: tableRepo, Debug: debug}
	systemHandler := h.SystemHandler{DB: sqlDB}

	requireAuth := middleware.RequireAuth(tokens, userRepo)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", systemHandler.Health)
		apiGroup.GET("/db-check", systemHandler.DBCheck)

		users := apiGroup.Group("/users")
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)
		users.GET("/profile", requireAuth, userHandler.GetProfile)
		users.PATCH("/profile", requireAuth, userHandler.EditProfile)

		tables := apiGroup.Group("/tables")
		tables.GET("", tableHandler.List)
		tables.GET("/report", requireAuth, middleware.RequireRoles(domain.RoleAdmin), tableHandler.Report)
		tables.POST("", requireAuth, tableHandler.Create)
		tables.PATCH("/:id", requireAuth, tableHandler.Update)
		tables.DELETE("/:id", requireAuth, tableHandler.Delete)
	}

	return r
}
