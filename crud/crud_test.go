package crud

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"yatube/domain"
)

// testServices spins up the full service container against a throwaway
// sqlite database, migrated with the real models.
func testServices(t *testing.T) *Services {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "yatube.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Group{},
		&domain.Post{},
		&domain.Comment{},
		&domain.Follow{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	services, err := NewServices(db,
		WithUser("test-pepper", "test-hmac-key"),
		WithPost(),
		WithGroup(),
		WithComment(),
		WithFollow(),
	)
	if err != nil {
		t.Fatalf("create services: %v", err)
	}
	return services
}

func createTestUser(t *testing.T, s *Services, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	}
	if err := s.User.Create(user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createTestPost(t *testing.T, s *Services, author *domain.User, text string) *domain.Post {
	t.Helper()
	post := &domain.Post{
		Text:     text,
		AuthorID: author.ID,
	}
	if err := s.Post.Create(post); err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func createTestGroup(t *testing.T, s *Services, slug string) *domain.Group {
	t.Helper()
	group := &domain.Group{
		Title:       "Group " + slug,
		Slug:        slug,
		Description: fmt.Sprintf("test group %s", slug),
	}
	if err := s.Group.Create(group); err != nil {
		t.Fatalf("create group %s: %v", slug, err)
	}
	return group
}

func countRows(t *testing.T, s *Services, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := s.db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}
