package domain

import (
	"time"
)

// User is a registered author. The Username is the public identity used in
// profile URLs, the Email is only used for login recovery. Password and
// Remember only ever hold in-flight plaintext values, they are never written
// to the database. The stored counterparts are PasswordHash (bcrypt) and
// RememberHash (HMAC-SHA256 of the session cookie token).
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username" gorm:"uniqueIndex;size:150;notNull"`
	Email    string `json:"email" gorm:"uniqueIndex;size:254;notNull"`

	Password     string `json:"-" gorm:"-"`
	PasswordHash string `json:"-"`
	Remember     string `json:"-" gorm:"-"`
	RememberHash string `json:"-" gorm:"index"`

	Posts    []Post    `json:"-" gorm:"foreignKey:AuthorID"`
	Comments []Comment `json:"-" gorm:"foreignKey:AuthorID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserService is a set of methods to manipulate and work with the User model.
// It also backs the cookie-based auth system: Authenticate checks submitted
// credentials, ByRemember resolves a session cookie token to its user.
type UserService interface {
	ByID(id int) (*User, error)
	ByUsername(username string) (*User, error)
	ByRemember(token string) (*User, error)
	Authenticate(username, password string) (*User, error)
	Create(user *User) error
	Update(user *User) error
}
