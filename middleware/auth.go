package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quillhub/quill/utils"
)

const (
	// SessionCookieName is the cookie holding the opaque session token.
	SessionCookieName = "quill_session"
	// ContextUserIDKey is the key used to store the authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
)

// CurrentUser resolves the session cookie into a user identity on every
// request. Anonymous requests pass through with no identity set.
func CurrentUser(store *utils.SessionStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token, err := ctx.Cookie(SessionCookieName); err == nil {
			if userID, ok := store.UserID(ctx.Request.Context(), token); ok {
				ctx.Set(ContextUserIDKey, userID)
			}
		}
		ctx.Next()
	}
}

// LoginRequired redirects anonymous requests to the login page. It must run
// after CurrentUser.
func LoginRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, exists := ctx.Get(ContextUserIDKey); !exists {
			ctx.Redirect(http.StatusSeeOther, "/login")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
