package http

import (
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"

	"yatube/crud"
	"yatube/domain"
	"yatube/errs"
)

// Server provides most of the http functionality of this app, namely routing,
// request handling, and middleware. It also performs authentication and
// authorization before handing things over to one of the crud services.
type Server struct {
	router  *mux.Router
	handler http.Handler

	us domain.UserService
	ps domain.PostService
	gs domain.GroupService
	cs domain.CommentService
	fs domain.FollowService
	is domain.ImageService

	pageCache *PageCache
}

// Options carries the http-level configuration of the server.
type Options struct {
	// CSRFKey is the 32 byte auth key for the csrf middleware.
	CSRFKey string
	// CSRFEnabled switches the csrf middleware on. Tests and local
	// API experiments run with it off.
	CSRFEnabled bool
	// CSRFSecure restricts the csrf cookie to https. Off in development.
	CSRFSecure bool
	// CacheTTL is how long a cached index listing response stays valid.
	CacheTTL time.Duration
	// MediaDir is the base directory uploaded images are served from.
	MediaDir string
}

// NewServer returns a new instance of the server, registers all necessary
// routes and gives their handlers access to the app services passed in.
func NewServer(services *crud.Services, is domain.ImageService, opts Options) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		us:        services.User,
		ps:        services.Post,
		gs:        services.Group,
		cs:        services.Comment,
		fs:        services.Follow,
		is:        is,
		pageCache: newPageCache(opts.CacheTTL),
	}

	// Register routes of the auth system.
	s.registerAuthRoutes(s.router)

	// Register routes of the content system.
	s.registerPostRoutes(s.router)
	s.registerGroupRoutes(s.router)
	s.registerProfileRoutes(s.router)
	s.registerCommentRoutes(s.router)
	s.registerFollowRoutes(s.router)

	// Serve uploaded images.
	s.router.PathPrefix("/media/").Handler(
		http.StripPrefix("/media/", http.FileServer(http.Dir(opts.MediaDir))),
	)

	// Unknown paths get a json not-found response instead of the default
	// plain text one.
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errs.ReturnError(w, r, errs.Errorf(errs.ENOTFOUND, "The page does not exist."))
	})

	// Set up middleware that needs to run on every request.
	s.router.Use(requestLogger, setContentTypeJSON, s.authUser)

	s.handler = s.router
	if opts.CSRFEnabled {
		csrfMw := csrf.Protect([]byte(opts.CSRFKey), csrf.Secure(opts.CSRFSecure), csrf.Path("/"))
		s.handler = csrfMw(s.router)
	}
	return s
}

// ServeHTTP makes the server usable as a plain http.Handler, which is what
// the handler tests run against.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ClearPageCache drops all cached listing responses. Exposed for operations
// tooling; the cache otherwise only ever expires by time.
func (s *Server) ClearPageCache() {
	s.pageCache.Clear()
}

// The setContentTypeJSON middleware sets the content type to "application/json"
// for everything except served media files.
func setContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/media/") {
			w.Header().Set("Content-Type", "application/json")
		}
		next.ServeHTTP(w, r)
	})
}

// The requestLogger middleware logs one line per handled request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

// pageParam reads the requested page number from the query string.
// Anything unparsable degrades to the first page.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return page
}

// respondJSON writes a successful json response.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		errs.LogError(r, err)
	}
}

// respondFieldErrors re-renders a submitted form as a validation failure:
// field-level errors plus the submitted values, so the client can restore
// the form state.
func respondFieldErrors(w http.ResponseWriter, r *http.Request, fieldErrors []domain.FieldError, values interface{}) {
	respondJSON(w, r, http.StatusUnprocessableEntity, map[string]interface{}{
		"errors": fieldErrors,
		"values": values,
	})
}

// Run starts to listen and serve on the specified port.
func (s *Server) Run(port int) {
	slog.Info("listening", "port", port)
	log.Fatal(http.ListenAndServe(":"+strconv.Itoa(port), s.handler))
}
