// Package apitest is a fake TrustCart API for tests. It records every
// request and answers with canned responses; it implements no business
// logic.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

// BasePath is the prefix the fake API is mounted under.
const BasePath = "/api/v1"

// Request is one recorded call. Path is relative to BasePath.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	// Fields holds multipart text fields.
	Fields url.Values
	// Files maps multipart file fields to the uploaded file names.
	Files map[string][]string
	// JSON is the decoded JSON body, if any.
	JSON map[string]any
}

// HandlerFunc computes a response for a recorded request.
type HandlerFunc func(r Request) (status int, body any)

type Server struct {
	srv *httptest.Server

	mu       sync.Mutex
	handlers map[string]HandlerFunc
	requests []Request
}

// New starts a fake API and stops it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{handlers: make(map[string]HandlerFunc)}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.NoRoute(s.serve)

	s.srv = httptest.NewServer(engine)
	t.Cleanup(s.srv.Close)
	return s
}

// URL is the API base URL to hand to the client.
func (s *Server) URL() string {
	return s.srv.URL + BasePath
}

// Handle answers method+path with a fixed status and JSON body.
func (s *Server) Handle(method, path string, status int, body any) {
	s.HandleFunc(method, path, func(Request) (int, any) { return status, body })
}

// HandleFunc answers method+path with fn. Paths are exact, e.g.
// "/products/p1/reviews".
func (s *Server) HandleFunc(method, path string, fn HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method+" "+path] = fn
}

// Requests returns a copy of every recorded request, in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Calls counts the recorded requests for method+path.
func (s *Server) Calls(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Last returns the most recent request, or false when none arrived.
func (s *Server) Last() (Request, bool) {
	reqs := s.Requests()
	if len(reqs) == 0 {
		return Request{}, false
	}
	return reqs[len(reqs)-1], true
}

func (s *Server) serve(c *gin.Context) {
	rec := Request{
		Method: c.Request.Method,
		Path:   strings.TrimPrefix(c.Request.URL.Path, BasePath),
		Query:  c.Request.URL.Query(),
		Header: c.Request.Header.Clone(),
	}

	switch {
	case strings.HasPrefix(c.ContentType(), "multipart/"):
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "bad multipart body"})
			return
		}
		rec.Fields = url.Values(form.Value)
		rec.Files = make(map[string][]string, len(form.File))
		for field, headers := range form.File {
			for _, fh := range headers {
				rec.Files[field] = append(rec.Files[field], fh.Filename)
			}
		}
	case c.ContentType() == "application/json":
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "bad json body"})
			return
		}
		rec.JSON = body
	}

	s.mu.Lock()
	s.requests = append(s.requests, rec)
	fn, ok := s.handlers[rec.Method+" "+rec.Path]
	s.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"status": "fail", "message": "Can't find " + rec.Path + " on this server!"})
		return
	}

	status, body := fn(rec)
	if body == nil {
		c.Status(status)
		return
	}
	c.JSON(status, body)
}

// FileFields lists the multipart file fields of r, sorted.
func (r Request) FileFields() []string {
	out := make([]string, 0, len(r.Files))
	for k := range r.Files {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Bearer returns the token of the Authorization header, or "".
func (r Request) Bearer() string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

// Data wraps payload the way the API does: {"status":"success","data":{key:payload}}.
func Data(key string, payload any) gin.H {
	return gin.H{"status": "success", "data": gin.H{key: payload}}
}

// PageOf is Data plus the metadata block of list endpoints.
func PageOf(key string, items any, pages int) gin.H {
	h := Data(key, items)
	h["metadata"] = gin.H{"numberOfPages": pages}
	return h
}

// Fail is the API's error body.
func Fail(message string) gin.H {
	return gin.H{"status": "fail", "message": message}
}

// Token builds the sign-in response.
func Token(token string, user any) gin.H {
	h := Data("user", user)
	h["token"] = token
	return h
}
