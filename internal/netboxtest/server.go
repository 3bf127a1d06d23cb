// Package netboxtest provides an in-memory NetBox REST API for tests.
package netboxtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Request is a recorded API call
type Request struct {
	Method   string
	Endpoint string
	Query    string
	Body     map[string]interface{}
}

// Server is a fake NetBox holding objects per endpoint ("dcim/sites", ...)
type Server struct {
	*httptest.Server

	Token string

	mu       sync.Mutex
	objects  map[string][]map[string]interface{}
	nextID   int
	requests []Request
	failures map[string]int
}

// NewServer starts a fake NetBox that accepts the given token
func NewServer(token string) *Server {
	s := newServer(token)
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// NewTLSServer is NewServer over HTTPS with a self-signed certificate
func NewTLSServer(token string) *Server {
	s := newServer(token)
	s.Server = httptest.NewTLSServer(http.HandlerFunc(s.handle))
	return s
}

func newServer(token string) *Server {
	return &Server{
		Token:    token,
		objects:  make(map[string][]map[string]interface{}),
		failures: make(map[string]int),
	}
}

// Seed stores an object as if it already existed and returns its ID
func (s *Server) Seed(endpoint string, obj map[string]interface{}) int {
	return s.store(endpoint, obj)["id"].(int)
}

func (s *Server) store(endpoint string, obj map[string]interface{}) map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	stored := make(map[string]interface{}, len(obj)+1)
	for k, v := range obj {
		stored[k] = v
	}
	stored["id"] = s.nextID
	s.objects[endpoint] = append(s.objects[endpoint], stored)
	return stored
}

// Objects returns the objects stored for an endpoint
func (s *Server) Objects(endpoint string) []map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]map[string]interface{}(nil), s.objects[endpoint]...)
}

// Requests returns every recorded call
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Request(nil), s.requests...)
}

// Count returns how many calls matched method and endpoint
func (s *Server) Count(method, endpoint string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Endpoint == endpoint {
			n++
		}
	}
	return n
}

// FailWith makes every request on endpoint answer with status
func (s *Server) FailWith(endpoint string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[endpoint] = status
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Token "+s.Token {
		http.Error(w, `{"detail":"Invalid token"}`, http.StatusForbidden)
		return
	}

	endpoint := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/"), "/")

	req := Request{Method: r.Method, Endpoint: endpoint, Query: r.URL.RawQuery}
	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&req.Body); err != nil {
			http.Error(w, `{"detail":"bad json"}`, http.StatusBadRequest)
			return
		}
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	status := s.failures[endpoint]
	s.mu.Unlock()

	if status != 0 {
		http.Error(w, `{"detail":"failure injected"}`, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		s.list(w, endpoint, r)
	case http.MethodPost:
		stored := s.store(endpoint, req.Body)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(stored)
	default:
		http.Error(w, `{"detail":"method not allowed"}`, http.StatusMethodNotAllowed)
	}
}

func (s *Server) list(w http.ResponseWriter, endpoint string, r *http.Request) {
	query := r.URL.Query()

	var results []map[string]interface{}
	for _, obj := range s.Objects(endpoint) {
		match := true
		for key := range query {
			if fmt.Sprintf("%v", obj[key]) != query.Get(key) {
				match = false
				break
			}
		}
		if match {
			results = append(results, obj)
		}
	}

	if results == nil {
		results = []map[string]interface{}{}
	}

	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"count":   len(results),
		"results": results,
	})
}
