package domain

import (
	"time"
)

// Group is a named category that posts can optionally belong to. The Slug is
// the unique identifier used in URLs. Groups are created out-of-band, there
// is no http write surface for them.
type Group struct {
	ID          int    `json:"id"`
	Title       string `json:"title" gorm:"size:200;notNull"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:200;notNull"`
	Description string `json:"description"`

	Posts []Post `json:"-" gorm:"foreignKey:GroupID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GroupService is a set of methods to manipulate and work with the Group model.
type GroupService interface {
	BySlug(slug string) (*Group, error)
	All() ([]Group, error)
	Create(group *Group) error
}
