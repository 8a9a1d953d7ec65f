package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"yatube/errs"
)

func (s *Server) registerProfileRoutes(r *mux.Router) {
	r.HandleFunc("/profile/{username}/", s.handleProfile).Methods("GET")
}

// handleProfile handles the route "GET /profile/{username}/".
// It returns the profile's owner together with the page window of their
// posts, newest first. For an authenticated viewer it additionally reports
// whether the viewer already follows the owner, which drives the
// follow/unfollow affordance in the client.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	author, err := s.us.ByUsername(mux.Vars(r)["username"])
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	posts, page, err := s.ps.ByAuthor(author.ID, pageParam(r))
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	body := map[string]interface{}{
		"author": author,
		"posts":  posts,
		"page":   page,
	}
	if viewer := s.getUserFromContext(r.Context()); viewer != nil {
		following, err := s.fs.Exists(viewer.ID, author.ID)
		if err != nil {
			errs.ReturnError(w, r, err)
			return
		}
		body["following"] = following
	}
	respondJSON(w, r, http.StatusOK, body)
}
