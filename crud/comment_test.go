package crud

import (
	"fmt"
	"testing"

	"yatube/domain"
	"yatube/errs"
)

func TestCommentServiceCreate(t *testing.T) {
	s := testServices(t)
	author := createTestUser(t, s, "leo")
	post := createTestPost(t, s, author, "a post")

	before := countRows(t, s, &domain.Comment{})
	comment := &domain.Comment{Text: "first!", PostID: post.ID, AuthorID: author.ID}
	if err := s.Comment.Create(comment); err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if got := countRows(t, s, &domain.Comment{}); got != before+1 {
		t.Errorf("comment count = %d, want %d", got, before+1)
	}
	if comment.Author.ID != author.ID {
		t.Errorf("comment author = %d, want %d", comment.Author.ID, author.ID)
	}
}

func TestCommentServiceEmptyText(t *testing.T) {
	s := testServices(t)
	author := createTestUser(t, s, "leo")
	post := createTestPost(t, s, author, "a post")

	before := countRows(t, s, &domain.Comment{})
	err := s.Comment.Create(&domain.Comment{Text: "  ", PostID: post.ID, AuthorID: author.ID})
	if errs.ErrorCode(err) != errs.EINVALID {
		t.Fatalf("Create() code = %q, want %q", errs.ErrorCode(err), errs.EINVALID)
	}
	if got := countRows(t, s, &domain.Comment{}); got != before {
		t.Errorf("comment count changed to %d, want %d", got, before)
	}
}

func TestCommentServiceUnknownPost(t *testing.T) {
	s := testServices(t)
	author := createTestUser(t, s, "leo")

	err := s.Comment.Create(&domain.Comment{Text: "hello", PostID: 999, AuthorID: author.ID})
	if errs.ErrorCode(err) != errs.ENOTFOUND {
		t.Fatalf("Create() code = %q, want %q", errs.ErrorCode(err), errs.ENOTFOUND)
	}
}

func TestCommentServiceByPostNewestFirst(t *testing.T) {
	s := testServices(t)
	author := createTestUser(t, s, "leo")
	post := createTestPost(t, s, author, "a post")
	other := createTestPost(t, s, author, "another post")

	for i := 0; i < 3; i++ {
		comment := &domain.Comment{
			Text:     fmt.Sprintf("comment %d", i),
			PostID:   post.ID,
			AuthorID: author.ID,
		}
		if err := s.Comment.Create(comment); err != nil {
			t.Fatalf("Create() = %v", err)
		}
	}
	if err := s.Comment.Create(&domain.Comment{Text: "elsewhere", PostID: other.ID, AuthorID: author.ID}); err != nil {
		t.Fatalf("Create() = %v", err)
	}

	comments, err := s.Comment.ByPost(post.ID)
	if err != nil {
		t.Fatalf("ByPost() = %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("ByPost() length = %d, want 3", len(comments))
	}
	if comments[0].Text != "comment 2" || comments[2].Text != "comment 0" {
		t.Errorf("ByPost() order = [%q ... %q], want newest first", comments[0].Text, comments[2].Text)
	}
}
