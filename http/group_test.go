package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"yatube/domain"
)

func TestGroupPosts(t *testing.T) {
	srv, _, services := testServer(t)
	signupTestUser(t, srv, "leo")

	author, err := services.User.ByUsername("leo")
	if err != nil {
		t.Fatalf("load author: %v", err)
	}
	group := &domain.Group{Title: "Cats", Slug: "cats", Description: "cat content"}
	if err := services.Group.Create(group); err != nil {
		t.Fatalf("create group: %v", err)
	}
	for i := 0; i < domain.PageSize+3; i++ {
		post := &domain.Post{Text: fmt.Sprintf("cat post %d", i), AuthorID: author.ID, GroupID: &group.ID}
		if err := services.Post.Create(post); err != nil {
			t.Fatalf("create post: %v", err)
		}
	}
	// A post outside the group must not leak into the listing.
	if err := services.Post.Create(&domain.Post{Text: "ungrouped", AuthorID: author.ID}); err != nil {
		t.Fatalf("create post: %v", err)
	}

	rec := get(srv, "/group/cats/?page=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body struct {
		Group domain.Group  `json:"group"`
		Posts []domain.Post `json:"posts"`
		Page  domain.Page   `json:"page"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Group.Slug != "cats" {
		t.Errorf("group slug = %q, want %q", body.Group.Slug, "cats")
	}
	if len(body.Posts) != 3 {
		t.Errorf("second page length = %d, want 3", len(body.Posts))
	}
	if body.Page.Number != 2 || body.Page.Count != 2 {
		t.Errorf("page = %+v, want number 2 of 2", body.Page)
	}
}

func TestGroupUnknownSlug(t *testing.T) {
	srv, _, _ := testServer(t)
	rec := get(srv, "/group/nope/", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestProfileUnknownUsername(t *testing.T) {
	srv, _, _ := testServer(t)
	rec := get(srv, "/profile/ghost/", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestProfilePosts(t *testing.T) {
	srv, _, services := testServer(t)
	signupTestUser(t, srv, "leo")
	signupTestUser(t, srv, "other")

	leo, err := services.User.ByUsername("leo")
	if err != nil {
		t.Fatalf("load author: %v", err)
	}
	other, err := services.User.ByUsername("other")
	if err != nil {
		t.Fatalf("load author: %v", err)
	}
	if err := services.Post.Create(&domain.Post{Text: "mine", AuthorID: leo.ID}); err != nil {
		t.Fatalf("create post: %v", err)
	}
	if err := services.Post.Create(&domain.Post{Text: "not mine", AuthorID: other.ID}); err != nil {
		t.Fatalf("create post: %v", err)
	}

	rec := get(srv, "/profile/leo/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body struct {
		Author    domain.User   `json:"author"`
		Posts     []domain.Post `json:"posts"`
		Following *bool         `json:"following"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Author.Username != "leo" {
		t.Errorf("author = %q, want %q", body.Author.Username, "leo")
	}
	if len(body.Posts) != 1 || body.Posts[0].Text != "mine" {
		t.Errorf("posts = %+v, want only leo's post", body.Posts)
	}
	// Anonymous viewers get no follow state at all.
	if body.Following != nil {
		t.Errorf("following = %v, want absent for anonymous viewer", *body.Following)
	}
}
