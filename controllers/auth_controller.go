package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quillhub/quill/middleware"
	"github.com/quillhub/quill/models"
	"github.com/quillhub/quill/utils"
	"github.com/quillhub/quill/views"
)

// AuthController handles registration, login and logout.
type AuthController struct {
	db    *gorm.DB
	store *utils.SessionStore
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB, store *utils.SessionStore) *AuthController {
	return &AuthController{db: db, store: store}
}

// ShowRegister renders the registration form.
func (a *AuthController) ShowRegister(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "register.html", views.AuthPage{Nav: navFor(ctx)})
}

// Register creates a local account with a bcrypt-hashed password. A taken
// username re-renders the form instead of surfacing the constraint violation.
func (a *AuthController) Register(ctx *gin.Context) {
	username := strings.TrimSpace(ctx.PostForm("username"))
	password := ctx.PostForm("password")

	if username == "" || password == "" {
		ctx.HTML(http.StatusBadRequest, "register.html", views.AuthPage{
			Nav:      navFor(ctx),
			Error:    "Username and password must not be empty.",
			Username: username,
		})
		return
	}

	var existing models.User
	err := a.db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		ctx.HTML(http.StatusConflict, "register.html", views.AuthPage{
			Nav:      navFor(ctx),
			Error:    "That username is already taken.",
			Username: username,
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		renderStorageError(ctx, err)
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		renderStorageError(ctx, err)
		return
	}

	user := models.User{Username: username, PasswordHash: hash}
	if err := a.db.Create(&user).Error; err != nil {
		// A concurrent registration can still trip the unique index.
		ctx.HTML(http.StatusConflict, "register.html", views.AuthPage{
			Nav:      navFor(ctx),
			Error:    "That username is already taken.",
			Username: username,
		})
		return
	}

	utils.Sugar.Infow("user registered", "username", username, "user_id", user.ID)
	ctx.Redirect(http.StatusSeeOther, "/login?success="+url.QueryEscape("Account created, please sign in."))
}

// ShowLogin renders the login form, surfacing messages passed via query.
func (a *AuthController) ShowLogin(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", views.AuthPage{
		Nav:     navFor(ctx),
		Success: ctx.Query("success"),
	})
}

// Login verifies credentials and establishes a cookie-backed session. The
// failure message never says which of the two inputs was wrong.
func (a *AuthController) Login(ctx *gin.Context) {
	username := strings.TrimSpace(ctx.PostForm("username"))
	password := ctx.PostForm("password")

	var user models.User
	err := a.db.Where("username = ?", username).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		renderStorageError(ctx, err)
		return
	}
	if err != nil || !utils.CheckPassword(user.PasswordHash, password) {
		ctx.HTML(http.StatusUnauthorized, "login.html", views.AuthPage{
			Nav:      navFor(ctx),
			Error:    "Invalid username or password.",
			Username: username,
		})
		return
	}

	token, err := a.store.Create(ctx.Request.Context(), user.ID)
	if err != nil {
		renderStorageError(ctx, err)
		return
	}

	ctx.SetCookie(middleware.SessionCookieName, token, int(a.store.TTL().Seconds()), "/", "", false, true)
	utils.Sugar.Infow("user logged in", "username", username, "user_id", user.ID)
	ctx.Redirect(http.StatusSeeOther, "/")
}

// Logout destroys the session and clears the cookie. Always succeeds.
func (a *AuthController) Logout(ctx *gin.Context) {
	if token, err := ctx.Cookie(middleware.SessionCookieName); err == nil {
		a.store.Destroy(ctx.Request.Context(), token)
	}
	ctx.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusSeeOther, "/")
}
