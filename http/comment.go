package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"yatube/domain"
	"yatube/errs"
)

func (s *Server) registerCommentRoutes(r *mux.Router) {
	r.HandleFunc("/posts/{id:[0-9]+}/comment/", s.requireAuth(s.handleAddComment)).Methods("POST")
}

// handleAddComment handles the route "POST /posts/{id}/comment/".
// It attaches a comment by the requesting user to the post and redirects
// back to the post detail view. Comments cannot be edited or deleted.
func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid id format."))
		return
	}
	if err := r.ParseForm(); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid form data."))
		return
	}

	input := domain.CommentInput{
		Text: r.PostFormValue("text"),
	}
	if fieldErrors := input.Validate(); len(fieldErrors) > 0 {
		respondFieldErrors(w, r, fieldErrors, input)
		return
	}

	user := s.getUserFromContext(r.Context())
	comment := domain.Comment{
		Text:     input.Text,
		PostID:   id,
		AuthorID: user.ID,
	}
	if err := s.cs.Create(&comment); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/posts/%d/", id), http.StatusFound)
}
