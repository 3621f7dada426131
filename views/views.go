// Package views holds the server-rendered HTML pages and the view-model types
// handlers fill in. Templates are embedded in the binary and parsed once.
package views

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded pages for installation on the gin engine.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// Nav carries the signed-in state every page needs for its header links.
type Nav struct {
	LoggedIn bool
}

// PostItem is one row of the public listing.
type PostItem struct {
	ID        uint
	Title     string
	Author    string
	Tags      string
	CreatedAt time.Time
}

// IndexPage backs the home page listing.
type IndexPage struct {
	Nav
	Posts   []PostItem
	Success string
}

// AuthPage backs the register and login forms.
type AuthPage struct {
	Nav
	Error    string
	Success  string
	Username string
}

// PostForm holds the editable fields of a post for the create and edit forms.
type PostForm struct {
	ID        uint
	Title     string
	Content   string
	Tags      string
	IsPrivate bool
}

// ComposePage backs the create and edit forms.
type ComposePage struct {
	Nav
	Error string
	Post  PostForm
}

// CommentItem is one rendered comment.
type CommentItem struct {
	Author    string
	Content   string
	CreatedAt time.Time
}

// PostPage backs the single-post view with its comments.
type PostPage struct {
	Nav
	ID        uint
	Title     string
	Content   string
	Tags      string
	Author    string
	CreatedAt time.Time
	IsPrivate bool
	IsOwner   bool
	Comments  []CommentItem
	Error     string
}

// ErrorPage backs the generic error view.
type ErrorPage struct {
	Nav
	Status  int
	Message string
}
