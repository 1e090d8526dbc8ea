package middleware

import (
	"bytes"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// CacheHeader reports HIT, MISS or BYPASS for cache-managed routes.
const CacheHeader = "X-Cache"

type cachedResponse struct {
	status      int
	contentType string
	body        []byte
	expires     time.Time
}

// ResponseCache is a cache-first store for idempotent GET responses.
type ResponseCache struct {
	mu       sync.RWMutex
	entries  map[string]cachedResponse
	ttl      time.Duration
	devHosts []string
	now      func() time.Time
}

// NewResponseCache creates a cache whose entries live for ttl. Requests whose host
// matches one of devHosts bypass it entirely.
func NewResponseCache(ttl time.Duration, devHosts []string) *ResponseCache {
	hosts := make([]string, 0, len(devHosts))
	for _, h := range devHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			hosts = append(hosts, h)
		}
	}
	return &ResponseCache{entries: make(map[string]cachedResponse), ttl: ttl, devHosts: hosts, now: time.Now}
}

// IsDevHost reports whether host (with or without port) is a development host,
// either exactly or as a subdomain.
func (rc *ResponseCache) IsDevHost(host string) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)
	for _, dev := range rc.devHosts {
		if host == dev || strings.HasSuffix(host, "."+dev) {
			return true
		}
	}
	return false
}

// Purge drops every entry.
func (rc *ResponseCache) Purge() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.entries = make(map[string]cachedResponse)
}

func (rc *ResponseCache) get(key string) (cachedResponse, bool) {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	e, ok := rc.entries[key]
	if !ok || rc.now().After(e.expires) {
		return cachedResponse{}, false
	}
	return e, true
}

func (rc *ResponseCache) put(key string, e cachedResponse) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.entries[key] = e
}

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CachePolicy serves GET requests cache-first. Development hosts are answered
// from the network every time with Cache-Control: no-store.
func CachePolicy(rc *ResponseCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		if rc.IsDevHost(c.Request.Host) {
			c.Header("Cache-Control", "no-store")
			c.Header(CacheHeader, "BYPASS")
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if e, ok := rc.get(key); ok {
			c.Header(CacheHeader, "HIT")
			c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", int(rc.ttl.Seconds())))
			c.Data(e.status, e.contentType, e.body)
			c.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Header(CacheHeader, "MISS")
		c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", int(rc.ttl.Seconds())))
		c.Next()

		if rec.Status() == http.StatusOK {
			rc.put(key, cachedResponse{
				status:      rec.Status(),
				contentType: rec.Header().Get("Content-Type"),
				body:        bytes.Clone(rec.body.Bytes()),
				expires:     rc.now().Add(rc.ttl),
			})
		}
	}
}
