package models

import "time"

// Post is an article written by a user. CreatedAt is set once at creation and
// never changes on edit; UpdatedAt tracks the last modification.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Tags      string    `gorm:"size:200" json:"tags"`
	IsPrivate bool      `gorm:"not null;default:false" json:"is_private"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Comments  []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments"`
}

// OwnedBy reports whether the given user is the post's author.
func (p *Post) OwnedBy(userID uint) bool {
	return p.UserID == userID
}

// VisibleTo reports whether the given user may open the post directly.
// Public posts are visible to everyone including anonymous visitors (userID 0);
// private posts only to their author.
func (p *Post) VisibleTo(userID uint) bool {
	if !p.IsPrivate {
		return true
	}
	return userID != 0 && p.UserID == userID
}
