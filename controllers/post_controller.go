package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quillhub/quill/models"
	"github.com/quillhub/quill/utils"
	"github.com/quillhub/quill/views"
)

// PostController manages the post listing, single-post view with comments,
// and the author-only create/edit/delete operations.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

// Index lists public posts newest-first. Private posts never appear here,
// not even for their author.
func (p *PostController) Index(ctx *gin.Context) {
	var posts []models.Post
	if err := p.db.Preload("User").
		Where("is_private = ?", false).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		renderStorageError(ctx, err)
		return
	}

	items := make([]views.PostItem, 0, len(posts))
	for _, post := range posts {
		items = append(items, views.PostItem{
			ID:        post.ID,
			Title:     post.Title,
			Author:    post.User.Username,
			Tags:      post.Tags,
			CreatedAt: post.CreatedAt,
		})
	}

	ctx.HTML(http.StatusOK, "index.html", views.IndexPage{
		Nav:     navFor(ctx),
		Posts:   items,
		Success: ctx.Query("success"),
	})
}

// ShowCreate renders the empty compose form.
func (p *PostController) ShowCreate(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "create.html", views.ComposePage{Nav: navFor(ctx)})
}

// CreatePost inserts a post authored by the session user.
func (p *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusSeeOther, "/login")
		return
	}

	form := readPostForm(ctx)
	if form.Title == "" {
		ctx.HTML(http.StatusBadRequest, "create.html", views.ComposePage{
			Nav:   navFor(ctx),
			Error: "Title must not be empty.",
			Post:  form,
		})
		return
	}

	post := models.Post{
		UserID:    userID,
		Title:     form.Title,
		Content:   form.Content,
		Tags:      form.Tags,
		IsPrivate: form.IsPrivate,
	}
	if err := p.db.Create(&post).Error; err != nil {
		renderStorageError(ctx, err)
		return
	}

	utils.Sugar.Infow("post created", "post_id", post.ID, "user_id", userID)
	ctx.Redirect(http.StatusSeeOther, "/")
}

// GetPost renders a post with its comments. Private posts are only visible to
// their author; everyone else gets the 404 page.
func (p *PostController) GetPost(ctx *gin.Context) {
	post, ok := p.loadVisiblePost(ctx)
	if !ok {
		return
	}

	var comments []models.Comment
	if err := p.db.Preload("User").
		Where("post_id = ?", post.ID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		renderStorageError(ctx, err)
		return
	}

	userID, _ := currentUserID(ctx)
	commentItems := make([]views.CommentItem, 0, len(comments))
	for _, c := range comments {
		commentItems = append(commentItems, views.CommentItem{
			Author:    c.User.Username,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}

	ctx.HTML(http.StatusOK, "post.html", views.PostPage{
		Nav:       navFor(ctx),
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Tags:      post.Tags,
		Author:    post.User.Username,
		CreatedAt: post.CreatedAt,
		IsPrivate: post.IsPrivate,
		IsOwner:   post.OwnedBy(userID),
		Comments:  commentItems,
		Error:     ctx.Query("error"),
	})
}

// CreateComment attaches a comment by the session user to a post. Runs behind
// LoginRequired; commenting follows the same visibility rule as viewing.
func (p *PostController) CreateComment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusSeeOther, "/login")
		return
	}

	post, ok := p.loadVisiblePost(ctx)
	if !ok {
		return
	}

	content := strings.TrimSpace(ctx.PostForm("content"))
	if content == "" {
		ctx.Redirect(http.StatusSeeOther,
			fmt.Sprintf("/post/%d?error=%s", post.ID, url.QueryEscape("Comment must not be empty.")))
		return
	}

	comment := models.Comment{PostID: post.ID, UserID: userID, Content: content}
	if err := p.db.Create(&comment).Error; err != nil {
		renderStorageError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", post.ID))
}

// ShowEdit renders the edit form, pre-filled. Only the author gets here;
// everyone else is sent home without a word.
func (p *PostController) ShowEdit(ctx *gin.Context) {
	post, ok := p.loadOwnedPost(ctx)
	if !ok {
		return
	}

	ctx.HTML(http.StatusOK, "edit.html", views.ComposePage{
		Nav: navFor(ctx),
		Post: views.PostForm{
			ID:        post.ID,
			Title:     post.Title,
			Content:   post.Content,
			Tags:      post.Tags,
			IsPrivate: post.IsPrivate,
		},
	})
}

// EditPost updates title, content, tags and privacy in place. CreatedAt is
// never touched.
func (p *PostController) EditPost(ctx *gin.Context) {
	post, ok := p.loadOwnedPost(ctx)
	if !ok {
		return
	}

	form := readPostForm(ctx)
	form.ID = post.ID
	if form.Title == "" {
		ctx.HTML(http.StatusBadRequest, "edit.html", views.ComposePage{
			Nav:   navFor(ctx),
			Error: "Title must not be empty.",
			Post:  form,
		})
		return
	}

	updates := map[string]interface{}{
		"title":      form.Title,
		"content":    form.Content,
		"tags":       form.Tags,
		"is_private": form.IsPrivate,
	}
	if err := p.db.Model(&post).Updates(updates).Error; err != nil {
		renderStorageError(ctx, err)
		return
	}

	utils.Sugar.Infow("post updated", "post_id", post.ID, "user_id", post.UserID)
	ctx.Redirect(http.StatusSeeOther, "/")
}

// DeletePost removes a post and its comments in one transaction, so no
// orphaned comment rows survive.
func (p *PostController) DeletePost(ctx *gin.Context) {
	post, ok := p.loadOwnedPost(ctx)
	if !ok {
		return
	}

	err := p.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		renderStorageError(ctx, err)
		return
	}

	utils.Sugar.Infow("post deleted", "post_id", post.ID, "user_id", post.UserID)
	ctx.Redirect(http.StatusSeeOther, "/")
}

// loadVisiblePost fetches the :id post and applies the visibility rule,
// writing the 404 or error page itself when the post cannot be shown.
func (p *PostController) loadVisiblePost(ctx *gin.Context) (models.Post, bool) {
	var post models.Post

	id, ok := parseID(ctx)
	if !ok {
		renderNotFound(ctx)
		return post, false
	}

	if err := p.db.Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderNotFound(ctx)
		} else {
			renderStorageError(ctx, err)
		}
		return post, false
	}

	userID, _ := currentUserID(ctx)
	if !post.VisibleTo(userID) {
		// A private post is indistinguishable from a missing one.
		renderNotFound(ctx)
		return post, false
	}
	return post, true
}

// loadOwnedPost fetches the :id post for a mutation. Missing posts get the
// 404 page; posts owned by someone else cause a silent redirect home.
func (p *PostController) loadOwnedPost(ctx *gin.Context) (models.Post, bool) {
	var post models.Post

	id, ok := parseID(ctx)
	if !ok {
		renderNotFound(ctx)
		return post, false
	}

	if err := p.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderNotFound(ctx)
		} else {
			renderStorageError(ctx, err)
		}
		return post, false
	}

	userID, ok := currentUserID(ctx)
	if !ok || !post.OwnedBy(userID) {
		ctx.Redirect(http.StatusSeeOther, "/")
		return post, false
	}
	return post, true
}

func readPostForm(ctx *gin.Context) views.PostForm {
	return views.PostForm{
		Title:     strings.TrimSpace(ctx.PostForm("title")),
		Content:   ctx.PostForm("content"),
		Tags:      strings.TrimSpace(ctx.PostForm("tags")),
		IsPrivate: ctx.PostForm("private") != "",
	}
}
