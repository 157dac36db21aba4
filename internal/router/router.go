// Package router assembles the Gin engine: middleware, templates, and the
// route table. It is shared by the server binary and the integration tests.
package router

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/config"
	"fintrack/internal/handlers"
	"fintrack/internal/middleware"
	"fintrack/internal/session"
	"fintrack/web"
)

// New builds the application router from injected dependencies.
func New(
	cfg *config.Config,
	store session.Store,
	authHandler *handlers.AuthHandler,
	transactionHandler *handlers.TransactionHandler,
	adminHandler *handlers.AdminHandler,
) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogging())

	engine.SetHTMLTemplate(template.Must(template.ParseFS(web.TemplatesFS, "templates/*.html")))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	engine.GET("/", authHandler.Home)
	engine.GET("/login", authHandler.ShowLogin)
	engine.POST("/login", authHandler.Login)
	engine.GET("/register", authHandler.ShowRegister)
	engine.POST("/register", authHandler.Register)
	engine.GET("/logout", authHandler.Logout)

	// Session-gated routes
	protected := engine.Group("/")
	protected.Use(middleware.RequireSession(store, cfg.SessionCookie))
	protected.GET("/dashboard", transactionHandler.Dashboard)
	protected.GET("/transactions", transactionHandler.List)
	protected.GET("/add", transactionHandler.ShowAdd)
	protected.POST("/add", transactionHandler.Add)
	protected.GET("/edit/:id", transactionHandler.ShowEdit)
	protected.POST("/edit/:id", transactionHandler.Edit)
	protected.POST("/delete/:id", transactionHandler.Delete)

	// Admin routes, gated on top of the session check
	adminGroup := protected.Group("/")
	adminGroup.Use(middleware.RequireAdmin(cfg.AdminUsername))
	adminGroup.GET("/admin", adminHandler.Summary)

	return engine
}
