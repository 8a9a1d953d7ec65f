package crud

import (
	"testing"

	"yatube/domain"
	"yatube/errs"
)

func TestUserServiceCreate(t *testing.T) {
	s := testServices(t)

	user := &domain.User{Username: "leo", Email: "Leo@Example.com ", Password: "password123"}
	if err := s.User.Create(user); err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if user.Email != "leo@example.com" {
		t.Errorf("email = %q, want normalized %q", user.Email, "leo@example.com")
	}
	if user.Password != "" {
		t.Error("plaintext password was not cleared")
	}
	if user.PasswordHash == "" || user.RememberHash == "" {
		t.Error("password hash or remember hash missing after Create()")
	}
}

func TestUserServiceCreateValidation(t *testing.T) {
	s := testServices(t)
	createTestUser(t, s, "taken")

	tests := []struct {
		name string
		user domain.User
	}{
		{"missing username", domain.User{Email: "a@example.com", Password: "password123"}},
		{"username with slash", domain.User{Username: "a/b", Email: "a@example.com", Password: "password123"}},
		{"username taken", domain.User{Username: "taken", Email: "b@example.com", Password: "password123"}},
		{"missing email", domain.User{Username: "x", Password: "password123"}},
		{"bad email", domain.User{Username: "x", Email: "not-an-email", Password: "password123"}},
		{"email taken", domain.User{Username: "x", Email: "taken@example.com", Password: "password123"}},
		{"missing password", domain.User{Username: "x", Email: "x@example.com"}},
		{"short password", domain.User{Username: "x", Email: "x@example.com", Password: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := tt.user
			if code := errs.ErrorCode(s.User.Create(&user)); code != errs.EINVALID {
				t.Errorf("Create() code = %q, want %q", code, errs.EINVALID)
			}
		})
	}
}

func TestUserServiceAuthenticate(t *testing.T) {
	s := testServices(t)
	createTestUser(t, s, "leo")

	user, err := s.User.Authenticate("leo", "password123")
	if err != nil {
		t.Fatalf("Authenticate() = %v", err)
	}
	if user.Username != "leo" {
		t.Errorf("username = %q, want %q", user.Username, "leo")
	}

	if _, err := s.User.Authenticate("leo", "wrong-password"); errs.ErrorCode(err) != errs.EINVALID {
		t.Errorf("wrong password code = %q, want %q", errs.ErrorCode(err), errs.EINVALID)
	}
	if _, err := s.User.Authenticate("ghost", "password123"); errs.ErrorCode(err) != errs.EINVALID {
		t.Errorf("unknown user code = %q, want %q", errs.ErrorCode(err), errs.EINVALID)
	}
}

func TestUserServiceByRemember(t *testing.T) {
	s := testServices(t)
	user := createTestUser(t, s, "leo")
	if user.Remember == "" {
		t.Fatal("Create() did not assign a remember token")
	}

	got, err := s.User.ByRemember(user.Remember)
	if err != nil {
		t.Fatalf("ByRemember() = %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("user id = %d, want %d", got.ID, user.ID)
	}

	if _, err := s.User.ByRemember("bogus-token"); errs.ErrorCode(err) != errs.ENOTFOUND {
		t.Errorf("bogus token code = %q, want %q", errs.ErrorCode(err), errs.ENOTFOUND)
	}
}
