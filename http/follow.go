package http

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"yatube/domain"
	"yatube/errs"
)

func (s *Server) registerFollowRoutes(r *mux.Router) {
	r.HandleFunc("/follow/", s.requireAuth(s.handleFollowIndex)).Methods("GET")
	r.HandleFunc("/profile/{username}/follow/", s.requireAuth(s.handleProfileFollow)).Methods("GET")
	r.HandleFunc("/profile/{username}/unfollow/", s.requireAuth(s.handleProfileUnfollow)).Methods("GET")
}

// handleFollowIndex handles the route "GET /follow/".
// It returns the page window of the posts written by the authors the
// requesting user follows, newest first.
func (s *Server) handleFollowIndex(w http.ResponseWriter, r *http.Request) {
	user := s.getUserFromContext(r.Context())
	posts, page, err := s.ps.Feed(user.ID, pageParam(r))
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"posts": posts,
		"page":  page,
	})
}

// handleProfileFollow handles the route "GET /profile/{username}/follow/".
// Following yourself or an already followed author changes nothing; either
// way the request ends in a redirect to the author's profile.
func (s *Server) handleProfileFollow(w http.ResponseWriter, r *http.Request) {
	author, err := s.us.ByUsername(mux.Vars(r)["username"])
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	user := s.getUserFromContext(r.Context())
	follow := domain.Follow{
		UserID:   user.ID,
		AuthorID: author.ID,
	}
	if err := s.fs.Create(&follow); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/profile/%s/", author.Username), http.StatusFound)
}

// handleProfileUnfollow handles the route "GET /profile/{username}/unfollow/".
// It deletes zero or one follow edge; unfollowing someone you don't follow
// is not an error.
func (s *Server) handleProfileUnfollow(w http.ResponseWriter, r *http.Request) {
	author, err := s.us.ByUsername(mux.Vars(r)["username"])
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	user := s.getUserFromContext(r.Context())
	follow := domain.Follow{
		UserID:   user.ID,
		AuthorID: author.ID,
	}
	if err := s.fs.Delete(&follow); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/profile/%s/", author.Username), http.StatusFound)
}
