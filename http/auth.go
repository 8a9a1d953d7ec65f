package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"yatube/domain"
	"yatube/errs"
)

const loginPath = "/auth/login/"

type privateKey string

const userKey privateKey = "user"

func (s *Server) registerAuthRoutes(r *mux.Router) {
	r.HandleFunc("/auth/signup/", s.handleSignup).Methods("POST")
	r.HandleFunc(loginPath, s.handleLogin).Methods("POST")
	r.HandleFunc("/auth/logout/", s.requireAuth(s.handleLogout)).Methods("POST")
	r.HandleFunc("/auth/password_change/", s.requireAuth(s.handlePasswordChange)).Methods("POST")
}

// handleSignup handles the route "POST /auth/signup/".
// It creates a new user from the submitted form fields and signs them in.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid form data."))
		return
	}
	user := domain.User{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if err := s.us.Create(&user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if err := s.signIn(w, &user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// handleLogin handles the route "POST /auth/login/".
// On success it sets the session cookie and redirects to the submitted
// "next" target, so a login triggered by a protected action lands the user
// back where they wanted to go.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid form data."))
		return
	}
	user, err := s.us.Authenticate(r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if err := s.signIn(w, user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	http.Redirect(w, r, safeNextTarget(r.FormValue("next")), http.StatusFound)
}

// safeNextTarget keeps post-login redirects on this host. Only local paths
// pass; browsers treat "//host" and "/\host" as absolute URLs, so those are
// rejected too.
func safeNextTarget(next string) string {
	if !strings.HasPrefix(next, "/") ||
		strings.HasPrefix(next, "//") ||
		strings.HasPrefix(next, `/\`) {
		return "/"
	}
	return next
}

// handleLogout handles the route "POST /auth/logout/".
// It clears the session cookie and rotates the user's remember token, which
// invalidates the session on every device.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "remember_token",
		Value:    "",
		Expires:  time.Now(),
		HttpOnly: true,
	})
	user := s.getUserFromContext(r.Context())
	user.Remember = ""
	if err := s.signOutEverywhere(user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// handlePasswordChange handles the route "POST /auth/password_change/".
// The current password has to be confirmed before the new one is stored.
// The session stays valid, only the password hash changes.
func (s *Server) handlePasswordChange(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid form data."))
		return
	}
	input := domain.PasswordChangeInput{
		OldPassword: r.PostFormValue("old_password"),
		NewPassword: r.PostFormValue("new_password"),
	}
	if fieldErrors := input.Validate(); len(fieldErrors) > 0 {
		respondFieldErrors(w, r, fieldErrors, input)
		return
	}

	user := s.getUserFromContext(r.Context())
	if _, err := s.us.Authenticate(user.Username, input.OldPassword); err != nil {
		if errs.ErrorCode(err) == errs.EINVALID {
			respondFieldErrors(w, r, []domain.FieldError{
				{Field: "old_password", Message: "The current password is incorrect."},
			}, input)
			return
		}
		errs.ReturnError(w, r, err)
		return
	}

	user.Password = input.NewPassword
	if err := s.us.Update(user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// signIn sets the session cookie for the given user. A remember token is
// generated on first sign-in and reused afterwards.
func (s *Server) signIn(w http.ResponseWriter, user *domain.User) error {
	if user.Remember == "" {
		token, err := makeRememberToken(s.us, user)
		if err != nil {
			return err
		}
		user.Remember = token
		if err := s.us.Update(user); err != nil {
			return err
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "remember_token",
		Value:    user.Remember,
		HttpOnly: true,
	})
	return nil
}

// signOutEverywhere gives the user a fresh remember token, so the hash of
// the old one no longer matches anything.
func (s *Server) signOutEverywhere(user *domain.User) error {
	token, err := makeRememberToken(s.us, user)
	if err != nil {
		return err
	}
	user.Remember = token
	return s.us.Update(user)
}

// tokenMaker is implemented by the crud user service. The indirection keeps
// the http package on the domain interface for everything else.
type tokenMaker interface {
	MakeRememberToken() (string, error)
}

func makeRememberToken(us domain.UserService, user *domain.User) (string, error) {
	tm, ok := us.(tokenMaker)
	if !ok {
		return "", errs.Errorf(errs.EINTERNAL, "user service cannot mint remember tokens")
	}
	return tm.MakeRememberToken()
}

// The authUser middleware tries to identify the requesting user by their
// session cookie and, on success, attaches them to the request context.
// Requests without a valid cookie pass through anonymously.
func (s *Server) authUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("remember_token")
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		user, err := s.us.ByRemember(cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		r = r.WithContext(s.setUserInContext(r.Context(), user))
		next.ServeHTTP(w, r)
	})
}

// requireAuth guards a handler that needs an authenticated user. Anonymous
// requests are not an error, they get redirected to the login path with the
// original target preserved in the "next" query parameter.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.getUserFromContext(r.Context())
		if user == nil {
			http.Redirect(w, r, loginPath+"?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	}
}

func (s *Server) setUserInContext(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func (s *Server) getUserFromContext(ctx context.Context) *domain.User {
	if temp := ctx.Value(userKey); temp != nil {
		if user, ok := temp.(*domain.User); ok {
			return user
		}
	}
	return nil
}
