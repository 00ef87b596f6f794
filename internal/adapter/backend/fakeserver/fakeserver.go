// Package fakeserver is an in-process stand-in for the price tracking backend,
// used by tests across the module.
package fakeserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/mmcdole/pricetrack/internal/domain"
)

// Request is a recorded incoming request
type Request struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	Body          map[string]string
}

// Reply overrides the next response for an endpoint
type Reply struct {
	Status int
	Body   string
}

// Server is a fake backend. Users maps email -> password; Products holds
// every user's tracked products keyed by access token.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	users    map[string]string
	products map[string][]domain.TrackedProduct
	tokens   map[string]string // access token -> email
	replies  map[string]Reply  // route name -> forced reply
	requests []Request
	nextTok  int
}

// Route names accepted by Force
const (
	RouteLogin          = "login"
	RouteRegister       = "register"
	RouteForgotPassword = "forgot-password"
	RouteResetPassword  = "reset-password"
	RouteMyRequests     = "myRequests"
	RouteDelete         = "delete"
)

// New starts a fake backend. Call Close when done.
func New() *Server {
	s := &Server{
		users:    make(map[string]string),
		products: make(map[string][]domain.TrackedProduct),
		tokens:   make(map[string]string),
		replies:  make(map[string]Reply),
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/auth/login", s.record(RouteLogin, s.handleLogin)).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/register", s.record(RouteRegister, s.handleRegister)).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/forgot-password", s.record(RouteForgotPassword, s.handleForgotPassword)).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/reset-password", s.record(RouteResetPassword, s.handleOK)).Methods(http.MethodPost)
	r.HandleFunc("/app/myRequests", s.record(RouteMyRequests, s.handleMyRequests)).Methods(http.MethodGet)
	r.HandleFunc("/app/delete/{id:[0-9]+}", s.record(RouteDelete, s.handleDelete)).Methods(http.MethodDelete)

	s.Server = httptest.NewServer(r)
	return s
}

// AddUser registers an account with a fixed token pair
func (s *Server) AddUser(email, password, accessToken string, products ...domain.TrackedProduct) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = password
	s.tokens[accessToken] = email
	s.products[accessToken] = products
}

// Force makes every following request to route answer with reply
func (s *Server) Force(route string, reply Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[route] = reply
}

// Requests returns a copy of every request received so far
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestsTo returns the recorded requests for one path
func (s *Server) RequestsTo(path string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// Products returns the products currently stored for accessToken
func (s *Server) Products(accessToken string) []domain.TrackedProduct {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.TrackedProduct(nil), s.products[accessToken]...)
}

func (s *Server) record(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
		}
		if r.Body != nil {
			var body map[string]string
			if json.NewDecoder(r.Body).Decode(&body) == nil {
				req.Body = body
			}
		}

		s.mu.Lock()
		s.requests = append(s.requests, req)
		reply, forced := s.replies[route]
		s.mu.Unlock()

		if forced {
			w.WriteHeader(reply.Status)
			fmt.Fprint(w, reply.Body)
			return
		}

		next(w, r.WithContext(withRequest(r.Context(), req)))
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req := requestFrom(r.Context())
	email, password := req.Body["email"], req.Body["password"]

	s.mu.Lock()
	stored, ok := s.users[email]
	var token string
	if ok && stored == password {
		for tok, owner := range s.tokens {
			if owner == email {
				token = tok
				break
			}
		}
		if token == "" {
			s.nextTok++
			token = "access-" + strconv.Itoa(s.nextTok)
			s.tokens[token] = email
		}
	}
	s.mu.Unlock()

	if token == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"accessToken":  nil,
			"refreshToken": nil,
			"message":      "Bad credentials",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"accessToken":  token,
		"refreshToken": "refresh-" + token,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	req := requestFrom(r.Context())
	email := req.Body["email"]

	s.mu.Lock()
	_, exists := s.users[email]
	if !exists {
		s.users[email] = req.Body["password"]
	}
	s.mu.Unlock()

	if exists {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, "Email already registered")
		return
	}
	w.WriteHeader(http.StatusCreated)
	fmt.Fprint(w, "User registered successfully!")
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "If an account with that email exists, a password reset link has been sent.")
}

func (s *Server) handleOK(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleMyRequests(w http.ResponseWriter, r *http.Request) {
	token, ok := s.authorize(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	s.mu.Lock()
	products := s.products[token]
	s.mu.Unlock()

	if len(products) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	token, ok := s.authorize(r)
	if !ok {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	products := s.products[token]
	for i, p := range products {
		if p.PriceTrackingRequestID == id {
			s.products[token] = append(products[:i:i], products[i+1:]...)
			w.WriteHeader(http.StatusOK)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprint(w, "Price tracking request not found")
}

func (s *Server) authorize(r *http.Request) (string, bool) {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return "", false
	}
	token := header[len(prefix):]

	s.mu.Lock()
	_, ok := s.tokens[token]
	s.mu.Unlock()
	return token, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
