package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quillhub/quill/config"
	"github.com/quillhub/quill/controllers"
	"github.com/quillhub/quill/middleware"
	"github.com/quillhub/quill/utils"
	"github.com/quillhub/quill/views"
)

// SetupRouter wires routes, middlewares, templates and controllers.
func SetupRouter(db *gorm.DB, store *utils.SessionStore) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Access log goes to its own rolling file so request noise stays out of
	// the application log.
	gl, err := utils.NewRollingFileLogger(cfg.GinLogPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.SetHTMLTemplate(views.Templates())
	r.Use(middleware.CurrentUser(store))

	authController := controllers.NewAuthController(db, store)
	postController := controllers.NewPostController(db)

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/", postController.Index)
	r.GET("/register", authController.ShowRegister)
	r.POST("/register", authController.Register)
	r.GET("/login", authController.ShowLogin)
	r.POST("/login", authController.Login)
	r.GET("/logout", authController.Logout)

	r.GET("/post/:id", postController.GetPost)
	r.POST("/post/:id", middleware.LoginRequired(), postController.CreateComment)

	protected := r.Group("", middleware.LoginRequired())
	protected.GET("/create", postController.ShowCreate)
	protected.POST("/create", postController.CreatePost)
	protected.GET("/edit/:id", postController.ShowEdit)
	protected.POST("/edit/:id", postController.EditPost)
	protected.GET("/delete/:id", postController.DeletePost)

	r.NoRoute(func(ctx *gin.Context) {
		ctx.HTML(404, "error.html", views.ErrorPage{
			Status:  404,
			Message: "The page you are looking for does not exist.",
		})
	})

	return r
}
