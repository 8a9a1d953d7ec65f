package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"yatube/domain"
	"yatube/errs"
)

func (s *Server) registerPostRoutes(r *mux.Router) {
	r.HandleFunc("/", s.pageCache.middleware(s.handleIndex)).Methods("GET")
	r.HandleFunc("/create/", s.requireAuth(s.handleNewPost)).Methods("GET")
	r.HandleFunc("/create/", s.requireAuth(s.handleCreatePost)).Methods("POST")
	r.HandleFunc("/posts/{id:[0-9]+}/", s.handlePostDetail).Methods("GET")
	r.HandleFunc("/posts/{id:[0-9]+}/edit/", s.requireAuth(s.handleEditPostForm)).Methods("GET")
	r.HandleFunc("/posts/{id:[0-9]+}/edit/", s.requireAuth(s.handleEditPost)).Methods("POST")
}

// handleIndex handles the route "GET /".
// It returns the page window of all posts, newest first. Responses go
// through the page cache, so fresh writes may not show until expiry.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	posts, page, err := s.ps.All(pageParam(r))
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"posts": posts,
		"page":  page,
	})
}

// handlePostDetail handles the route "GET /posts/{id}/".
// It returns a single post together with its comments, newest first.
func (s *Server) handlePostDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid id format."))
		return
	}
	post, err := s.ps.ByID(id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	comments, err := s.cs.ByPost(post.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"post":      post,
		"image_url": domain.MediaURL(post.Image),
		"comments":  comments,
	})
}

// handleNewPost handles the route "GET /create/".
// It returns the context the client needs to render the creation form,
// namely the selectable groups.
func (s *Server) handleNewPost(w http.ResponseWriter, r *http.Request) {
	groups, err := s.gs.All()
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"groups": groups,
	})
}

// handleCreatePost handles the route "POST /create/".
// On success it persists a new post owned by the requesting user and
// redirects to their profile. Validation failures re-render the form as a
// 422 with field errors and the submitted values, nothing is persisted.
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	input, img, fieldErrors, err := s.parsePostForm(r)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if fieldErrors = append(fieldErrors, input.Validate()...); len(fieldErrors) > 0 {
		respondFieldErrors(w, r, fieldErrors, input)
		return
	}

	user := s.getUserFromContext(r.Context())
	post := domain.Post{
		Text:     input.Text,
		GroupID:  input.GroupID,
		AuthorID: user.ID,
	}
	if img != nil {
		defer img.File.Close()
		if err := s.is.Create(img); err != nil {
			errs.ReturnError(w, r, err)
			return
		}
		post.Image = img.StoredPath
	}
	if err := s.ps.Create(&post); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/profile/%s/", user.Username), http.StatusFound)
}

// handleEditPostForm handles the route "GET /posts/{id}/edit/".
// Non-authors are not shown an error, they get redirected to the read-only
// detail view.
func (s *Server) handleEditPostForm(w http.ResponseWriter, r *http.Request) {
	post, ok := s.editablePost(w, r)
	if !ok {
		return
	}
	groups, err := s.gs.All()
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"post":   post,
		"groups": groups,
	})
}

// handleEditPost handles the route "POST /posts/{id}/edit/".
// The post is mutated in place, its creation timestamp never changes. A
// newly uploaded image replaces the old one.
func (s *Server) handleEditPost(w http.ResponseWriter, r *http.Request) {
	post, ok := s.editablePost(w, r)
	if !ok {
		return
	}
	input, img, fieldErrors, err := s.parsePostForm(r)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if fieldErrors = append(fieldErrors, input.Validate()...); len(fieldErrors) > 0 {
		respondFieldErrors(w, r, fieldErrors, input)
		return
	}

	oldImage := post.Image
	if img != nil {
		defer img.File.Close()
		if err := s.is.Create(img); err != nil {
			errs.ReturnError(w, r, err)
			return
		}
		post.Image = img.StoredPath
	}
	post.Text = input.Text
	post.GroupID = input.GroupID
	if err := s.ps.Update(post); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if img != nil && oldImage != "" {
		if err := s.is.Delete(oldImage); err != nil {
			errs.LogError(r, err)
		}
	}
	http.Redirect(w, r, fmt.Sprintf("/posts/%d/", post.ID), http.StatusFound)
}

// editablePost loads the post addressed by the route and checks that the
// requesting user is its author. Non-authors are silently redirected to the
// detail view; in that case (and on lookup failure) the response is already
// written and ok is false.
func (s *Server) editablePost(w http.ResponseWriter, r *http.Request) (*domain.Post, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid id format."))
		return nil, false
	}
	post, err := s.ps.ByID(id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return nil, false
	}
	user := s.getUserFromContext(r.Context())
	if post.AuthorID != user.ID {
		http.Redirect(w, r, fmt.Sprintf("/posts/%d/", post.ID), http.StatusFound)
		return nil, false
	}
	return post, true
}

// parsePostForm maps the submitted create/edit form onto the typed input
// struct and the optional image upload. An unparsable group selection is a
// field error, an unreadable body is a request error.
func (s *Server) parsePostForm(r *http.Request) (*domain.PostInput, *domain.Image, []domain.FieldError, error) {
	multipart := strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
	if multipart {
		if err := r.ParseMultipartForm(domain.MaxUploadSize); err != nil {
			return nil, nil, nil, errs.Errorf(errs.EINVALID, "Invalid form data.")
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, nil, nil, errs.Errorf(errs.EINVALID, "Invalid form data.")
		}
	}

	input := &domain.PostInput{
		Text: r.PostFormValue("text"),
	}
	var fieldErrors []domain.FieldError
	if g := r.PostFormValue("group"); g != "" {
		groupID, err := strconv.Atoi(g)
		if err != nil {
			fieldErrors = append(fieldErrors, domain.FieldError{Field: "group", Message: "Invalid group selection."})
		} else {
			input.GroupID = &groupID
		}
	}

	var img *domain.Image
	if multipart {
		file, header, err := r.FormFile("image")
		if err == nil {
			img = &domain.Image{
				File:     file,
				Filename: header.Filename,
			}
		} else if err != http.ErrMissingFile {
			return nil, nil, nil, errs.Errorf(errs.EINVALID, "Invalid image upload.")
		}
	}
	return input, img, fieldErrors, nil
}
