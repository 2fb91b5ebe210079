package router

import (
	"gorm.io/gorm"

	"inkwell/internal/config"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires all handlers onto the engine. The database handle and
// configuration are passed down explicitly so tests can register the same
// routes against their own database.
func RegisterRoutes(r *gin.Engine, gdb *gorm.DB, cfg *config.Config) {
	r.Use(middleware.LoadUser(gdb))

	authHandler := handlers.NewAuthHandler(gdb)
	postHandler := handlers.NewPostHandler(gdb, cfg)
	userHandler := handlers.NewUserHandler(gdb, cfg)

	// Public Routes
	r.GET("/", postHandler.Frontpage)           // paginated frontpage
	r.GET("/post/:slug", postHandler.Detail)    // post detail with comments
	r.GET("/tag/:slug", postHandler.ListByTag)  // posts carrying a tag
	r.GET("/user/:username", userHandler.Posts) // posts by an author

	r.GET("/signup", authHandler.ShowRegister)
	r.POST("/signup", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/post/:slug", postHandler.CreateComment) // submit a comment
		authorized.GET("/create/post", postHandler.ShowCreate)    // combined post/tag creation page
		authorized.POST("/create/post", postHandler.Create)
		authorized.GET("/user", userHandler.Account) // own account page
	}
}
