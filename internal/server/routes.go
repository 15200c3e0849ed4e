package server

import (
	"pinboard/internal/handler"
	"pinboard/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Pin   *handler.PinHandler
	Board *handler.BoardHandler
	User  *handler.UserHandler
	Media *handler.MediaHandler
}

// getPost registers the same handler for GET and POST, the way the site's
// form pages work.
func getPost(r gin.IRoutes, path string, handlers ...gin.HandlerFunc) {
	r.GET(path, handlers...)
	r.POST(path, handlers...)
}

// RegisterRoutes mounts the site on r. The session middleware must already be
// installed on r.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/media/*path", h.Media.Serve)

	// Public pages
	r.GET("/", h.Pin.Feed)
	getPost(r, "/pin/:id/", h.Pin.Detail)
	r.GET("/boards/", h.Board.List)
	r.GET("/board/:slug/", h.Board.Detail)
	r.GET("/user/:username/", h.User.Profile)
	getPost(r, "/register/", h.User.Register)
	getPost(r, "/login/", h.User.Login)
	r.GET("/logout/", h.User.Logout)

	// Login required
	authorized := r.Group("/", middleware.LoginRequired())
	{
		getPost(authorized, "/pin/create/", h.Pin.Create)
		getPost(authorized, "/pin/:id/edit/", h.Pin.Edit)
		getPost(authorized, "/pin/:id/delete/", h.Pin.Delete)
		authorized.POST("/pin/:id/like/", h.Pin.Like)

		getPost(authorized, "/board/create/", h.Board.Create)
		getPost(authorized, "/board/:slug/edit/", h.Board.Edit)
		getPost(authorized, "/board/:slug/delete/", h.Board.Delete)
	}
}
