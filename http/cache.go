package http

import (
	"bytes"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// PageCache is a full-response cache for listing views. Entries are only
// ever invalidated by time-based expiry or an explicit Clear, never by
// write events: a post written elsewhere does not appear in a cached
// listing until the entry expires.
type PageCache struct {
	store *gocache.Cache
}

func newPageCache(ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = 20 * time.Second
	}
	return &PageCache{
		store: gocache.New(ttl, 2*ttl),
	}
}

// Clear drops all cached responses.
func (c *PageCache) Clear() {
	c.store.Flush()
}

type cachedResponse struct {
	status      int
	contentType string
	body        []byte
}

// middleware caches successful GET responses of the wrapped handler, keyed
// by the full request URI (so every page window is cached separately).
func (c *PageCache) middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next(w, r)
			return
		}
		key := r.URL.RequestURI()
		if hit, ok := c.store.Get(key); ok {
			cached := hit.(cachedResponse)
			w.Header().Set("Content-Type", cached.contentType)
			w.WriteHeader(cached.status)
			w.Write(cached.body)
			return
		}

		rec := &responseRecorder{header: w.Header().Clone()}
		next(rec, r)

		if rec.status == http.StatusOK {
			c.store.SetDefault(key, cachedResponse{
				status:      rec.status,
				contentType: rec.header.Get("Content-Type"),
				body:        rec.body.Bytes(),
			})
		}
		for key, values := range rec.header {
			w.Header()[key] = values
		}
		w.WriteHeader(rec.status)
		w.Write(rec.body.Bytes())
	}
}

// responseRecorder captures a handler's response so it can be both cached
// and replayed to the client.
type responseRecorder struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (rr *responseRecorder) Header() http.Header {
	return rr.header
}

func (rr *responseRecorder) WriteHeader(status int) {
	if rr.status == 0 {
		rr.status = status
	}
}

func (rr *responseRecorder) Write(b []byte) (int, error) {
	rr.WriteHeader(http.StatusOK)
	return rr.body.Write(b)
}
