package cache

import (
	"bytes"
	"net/http"
)

// Header reports whether a response was served from the cache.
const Header = "X-Cache"

// recorder tees the response body so a 200 can be stored.
type recorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *recorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *recorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Middleware caches GET responses in c under the request URI, tagged with
// tag. Only 200 responses are stored. A request carrying
// "Cache-Control: no-cache" bypasses the lookup but still refreshes the entry.
// A response is not stored if its tag was invalidated while it was built.
func Middleware(c *LRUCache, tag string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := r.URL.RequestURI()
			if r.Header.Get("Cache-Control") != "no-cache" {
				if e, ok := c.Get(key); ok {
					if e.ContentType != "" {
						w.Header().Set("Content-Type", e.ContentType)
					}
					w.Header().Set(Header, "HIT")
					w.WriteHeader(http.StatusOK)
					_, _ = w.Write(e.Body)
					return
				}
			}

			gen := c.Generation(tag)
			rec := &recorder{ResponseWriter: w}
			rec.Header().Set(Header, "MISS")
			next.ServeHTTP(rec, r)

			if rec.status == http.StatusOK {
				body := make([]byte, rec.body.Len())
				copy(body, rec.body.Bytes())
				c.SetIfGeneration(key, tag, Entry{Body: body, ContentType: w.Header().Get("Content-Type")}, gen)
			}
		})
	}
}
