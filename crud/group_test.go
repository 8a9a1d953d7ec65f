package crud

import (
	"testing"

	"yatube/domain"
	"yatube/errs"
)

func TestGroupServiceCreateAndBySlug(t *testing.T) {
	s := testServices(t)

	group := &domain.Group{Title: "Cats", Slug: " Cats ", Description: "all about cats"}
	if err := s.Group.Create(group); err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if group.Slug != "cats" {
		t.Errorf("slug = %q, want normalized %q", group.Slug, "cats")
	}

	got, err := s.Group.BySlug("cats")
	if err != nil {
		t.Fatalf("BySlug() = %v", err)
	}
	if got.Title != "Cats" {
		t.Errorf("title = %q, want %q", got.Title, "Cats")
	}
}

func TestGroupServiceBySlugNotFound(t *testing.T) {
	s := testServices(t)
	_, err := s.Group.BySlug("nope")
	if errs.ErrorCode(err) != errs.ENOTFOUND {
		t.Fatalf("BySlug() code = %q, want %q", errs.ErrorCode(err), errs.ENOTFOUND)
	}
}

func TestGroupServiceSlugTaken(t *testing.T) {
	s := testServices(t)
	createTestGroup(t, s, "cats")

	err := s.Group.Create(&domain.Group{Title: "More Cats", Slug: "cats"})
	if errs.ErrorCode(err) != errs.EINVALID {
		t.Fatalf("Create() code = %q, want %q", errs.ErrorCode(err), errs.EINVALID)
	}
}

func TestGroupServiceValidation(t *testing.T) {
	s := testServices(t)
	tests := []struct {
		name  string
		group domain.Group
	}{
		{"empty title", domain.Group{Title: " ", Slug: "ok"}},
		{"empty slug", domain.Group{Title: "ok", Slug: ""}},
		{"slug with spaces", domain.Group{Title: "ok", Slug: "not a slug"}},
		{"slug with slash", domain.Group{Title: "ok", Slug: "not/a/slug"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group := tt.group
			if code := errs.ErrorCode(s.Group.Create(&group)); code != errs.EINVALID {
				t.Errorf("Create() code = %q, want %q", code, errs.EINVALID)
			}
		})
	}
}
