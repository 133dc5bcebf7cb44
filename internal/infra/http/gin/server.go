package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"stayseek/internal/infra/config"
	"stayseek/internal/infra/obs"
)

type PropertyHTTP interface {
	Search(c *gin.Context)
	Detail(c *gin.Context)
	Calendar(c *gin.Context)
	Categories(c *gin.Context)
}

type OwnerHTTP interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	AddRoom(c *gin.Context)
	Block(c *gin.Context)
	SeasonRate(c *gin.Context)
	UploadPicture(c *gin.Context)
}

type Handlers struct {
	Property       PropertyHTTP
	Owner          OwnerHTTP
	Auth           AuthHTTP
	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Auth != nil {
		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)
		api.GET("/auth/me", h.Auth.Me)
	}
	if h.Property != nil {
		api.GET("/properties", h.Property.Search)
		api.GET("/properties/:id", h.Property.Detail)
		api.GET("/properties/:id/calendar", h.Property.Calendar)
		api.GET("/categories", h.Property.Categories)
	}
	if h.Owner != nil {
		ownerGroup := api.Group("/owner/properties")
		ownerGroup.GET("", h.Owner.List)
		ownerGroup.POST("", h.Owner.Create)
		ownerGroup.PUT("/:id", h.Owner.Update)
		ownerGroup.POST("/:id/rooms", h.Owner.AddRoom)
		ownerGroup.POST("/:id/rooms/:roomId/blocks", h.Owner.Block)
		ownerGroup.POST("/:id/rooms/:roomId/rates", h.Owner.SeasonRate)
		ownerGroup.POST("/:id/pictures", h.Owner.UploadPicture)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
