package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quillhub/quill/middleware"
	"github.com/quillhub/quill/utils"
	"github.com/quillhub/quill/views"
)

// currentUserID returns the authenticated user's id from the gin context.
// The second value is false for anonymous requests.
func currentUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

func navFor(ctx *gin.Context) views.Nav {
	_, loggedIn := currentUserID(ctx)
	return views.Nav{LoggedIn: loggedIn}
}

// parseID reads a numeric :id path parameter. Zero and garbage both fail.
func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// renderNotFound writes the 404 page.
func renderNotFound(ctx *gin.Context) {
	ctx.HTML(http.StatusNotFound, "error.html", views.ErrorPage{
		Nav:     navFor(ctx),
		Status:  http.StatusNotFound,
		Message: "The page you are looking for does not exist.",
	})
}

// renderStorageError logs the cause and writes a generic failure page.
// Internal error detail never reaches the response.
func renderStorageError(ctx *gin.Context, err error) {
	utils.Sugar.Errorw("storage failure", "path", ctx.Request.URL.Path, "error", err)
	ctx.HTML(http.StatusInternalServerError, "error.html", views.ErrorPage{
		Nav:     navFor(ctx),
		Status:  http.StatusInternalServerError,
		Message: "Something went wrong. Please try again later.",
	})
}
