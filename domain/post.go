package domain

import (
	"time"
)

// Post is a single authored text entry. It always belongs to an author and
// is deleted together with them. It optionally belongs to a Group; deleting
// the group keeps the post and just clears the reference. Image holds the
// relative path of an optional uploaded illustration, starting below the
// media base directory (e.g. "posts/3f0a....jpeg").
type Post struct {
	ID   int    `json:"id"`
	Text string `json:"text"`

	AuthorID int  `json:"-" gorm:"notNull;index"`
	Author   User `json:"author" gorm:"constraint:OnDelete:CASCADE"`

	GroupID *int   `json:"group_id,omitempty" gorm:"index"`
	Group   *Group `json:"group,omitempty" gorm:"constraint:OnDelete:SET NULL"`

	Image string `json:"image,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostService is a set of methods to manipulate and work with the Post model.
// All list methods return posts newest-first together with the page window
// that was applied.
type PostService interface {
	ByID(id int) (*Post, error)
	All(page int) ([]Post, Page, error)
	ByGroup(groupID, page int) ([]Post, Page, error)
	ByAuthor(authorID, page int) ([]Post, Page, error)
	Feed(userID, page int) ([]Post, Page, error)
	Create(post *Post) error
	Update(post *Post) error
}
