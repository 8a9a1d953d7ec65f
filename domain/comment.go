package domain

import (
	"time"
)

// Comment is a reply attached to exactly one post. Comments are only ever
// created, there is no edit or delete path. They are deleted together with
// their post or their author.
type Comment struct {
	ID   int    `json:"id"`
	Text string `json:"text"`

	PostID int  `json:"post_id" gorm:"notNull;index"`
	Post   Post `json:"-" gorm:"constraint:OnDelete:CASCADE"`

	AuthorID int  `json:"-" gorm:"notNull;index"`
	Author   User `json:"author" gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentService is a set of methods to manipulate and work with the Comment model.
type CommentService interface {
	ByPost(postID int) ([]Comment, error)
	Create(comment *Comment) error
}
