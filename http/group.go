package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"yatube/errs"
)

func (s *Server) registerGroupRoutes(r *mux.Router) {
	r.HandleFunc("/group/{slug}/", s.handleGroupPosts).Methods("GET")
}

// handleGroupPosts handles the route "GET /group/{slug}/".
// It returns the group together with the page window of its posts,
// newest first. An unknown slug is a not-found.
func (s *Server) handleGroupPosts(w http.ResponseWriter, r *http.Request) {
	group, err := s.gs.BySlug(mux.Vars(r)["slug"])
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	posts, page, err := s.ps.ByGroup(group.ID, pageParam(r))
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"group": group,
		"posts": posts,
		"page":  page,
	})
}
