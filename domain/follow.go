package domain

import (
	"time"
)

// Follow is a directed subscription edge: the user with UserID follows the
// author with AuthorID. The composite unique index closes the race between
// two identical concurrent follow requests, the database can never hold two
// edges for the same pair.
type Follow struct {
	ID int `json:"id"`

	UserID int  `json:"-" gorm:"notNull;index;uniqueIndex:uniq_follow_edge"`
	User   User `json:"user" gorm:"constraint:OnDelete:CASCADE"`

	AuthorID int  `json:"-" gorm:"notNull;index;uniqueIndex:uniq_follow_edge"`
	Author   User `json:"author" gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FollowService is a set of methods to manipulate and work with the Follow model.
// Create is insert-if-absent and treats a self-follow as a no-op. Delete
// removes zero or one edge, absence is not an error.
type FollowService interface {
	Create(follow *Follow) error
	Delete(follow *Follow) error
	Exists(userID, authorID int) (bool, error)
}
