package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/inkpress/internal/handler"
)

// Setup configures the Gin engine and routes.
func Setup(gdb *gorm.DB, sessionSecret, uploadDir, uploadURL string, pageSize int) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("inkpress_session", store))

	// serve uploaded files from the configured directory
	r.Static(uploadURL, uploadDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	a := handler.NewAPI(gdb, uploadDir, uploadURL, pageSize)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", a.Register)
			auth.POST("/login", a.Login)
			auth.POST("/logout", a.AuthRequired(), a.Logout)
			auth.GET("/profile", a.AuthRequired(), a.GetProfile)
			auth.PUT("/profile", a.AuthRequired(), a.UpdateProfile)
			auth.PATCH("/profile", a.AuthRequired(), a.UpdateProfile)
		}

		api.GET("/categories", a.GetCategories)
		api.POST("/categories", a.AuthRequired(), a.CreateCategory)
		api.GET("/categories/:slug", a.GetCategory)
		api.PUT("/categories/:slug", a.AuthRequired(), a.UpdateCategory)
		api.PATCH("/categories/:slug", a.AuthRequired(), a.UpdateCategory)
		api.DELETE("/categories/:slug", a.AuthRequired(), a.DeleteCategory)

		api.GET("/posts", a.AuthOptional(), a.GetPosts)
		api.POST("/posts", a.AuthRequired(), a.CreatePost)
		api.GET("/posts/:slug", a.AuthOptional(), a.GetPost)
		api.PUT("/posts/:slug", a.AuthRequired(), a.UpdatePost)
		api.PATCH("/posts/:slug", a.AuthRequired(), a.UpdatePost)
		api.DELETE("/posts/:slug", a.AuthRequired(), a.DeletePost)
		api.POST("/posts/:slug/like", a.AuthRequired(), a.ToggleLike)
		api.GET("/my-posts", a.AuthRequired(), a.GetMyPosts)

		api.GET("/posts/:slug/comments", a.AuthOptional(), a.GetComments)
		api.POST("/posts/:slug/comments", a.AuthRequired(), a.CreateComment)
		api.GET("/comments/:id", a.AuthOptional(), a.GetComment)
		api.PUT("/comments/:id", a.AuthRequired(), a.UpdateComment)
		api.PATCH("/comments/:id", a.AuthRequired(), a.UpdateComment)
		api.DELETE("/comments/:id", a.AuthRequired(), a.DeleteComment)

		api.POST("/uploads", a.AuthRequired(), a.UploadImage)
	}

	return r
}
