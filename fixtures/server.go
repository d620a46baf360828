package fixtures

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"

	"github.com/gorilla/mux"
)

// RecordedRequest is a request received by the fake PayPal API.
type RecordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   string
	Vars   map[string]string
}

// PayPalServer is a fake PayPal REST API. It issues bearer tokens from
// /v1/oauth2/token and answers API routes registered with Handle, rejecting
// calls that do not carry the current token.
type PayPalServer struct {
	Server *httptest.Server

	router        *mux.Router
	tokenRequests int64
	expiresIn     int

	mtx         sync.Mutex
	accessToken string
	requests    []RecordedRequest
}

// NewPayPalServer starts a fake PayPal API handing out tokens valid for
// expiresIn seconds.
func NewPayPalServer(expiresIn int) *PayPalServer {
	s := &PayPalServer{
		router:      mux.NewRouter(),
		expiresIn:   expiresIn,
		accessToken: AccessToken,
	}
	s.router.HandleFunc("/v1/oauth2/token", s.handleToken).Methods(http.MethodPost)
	s.Server = httptest.NewServer(s.router)
	return s
}

// URL is the base URL of the fake API.
func (s *PayPalServer) URL() string {
	return s.Server.URL
}

// Close shuts the fake API down. Further calls fail at the network level.
func (s *PayPalServer) Close() {
	s.Server.Close()
}

// TokenRequests is the number of successful and failed token exchanges seen.
func (s *PayPalServer) TokenRequests() int64 {
	return atomic.LoadInt64(&s.tokenRequests)
}

// RevokeToken makes the current bearer token unacceptable, as PayPal does once
// a token expires early.
func (s *PayPalServer) RevokeToken() {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.accessToken = ""
}

// Requests returns the API requests received so far, excluding token exchanges.
func (s *PayPalServer) Requests() []RecordedRequest {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// Handle registers a canned response for method and path. Path may use mux
// variables, e.g. /v2/checkout/orders/{id}.
func (s *PayPalServer) Handle(method, path string, status int, body string) {
	s.router.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
		if !s.record(req) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.Header().Set("Paypal-Debug-Id", "90957fca61718")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}).Methods(method)
}

// HandleAny answers every API route not matched by Handle.
func (s *PayPalServer) HandleAny(status int, body string) {
	s.router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !s.record(req) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (s *PayPalServer) record(req *http.Request) bool {
	b, _ := io.ReadAll(req.Body)

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.requests = append(s.requests, RecordedRequest{
		Method: req.Method,
		Path:   req.URL.Path,
		Query:  req.URL.RawQuery,
		Header: req.Header.Clone(),
		Body:   string(b),
		Vars:   mux.Vars(req),
	})

	return s.accessToken != "" && req.Header.Get("Authorization") == "Bearer "+s.accessToken
}

func (s *PayPalServer) handleToken(w http.ResponseWriter, req *http.Request) {
	n := atomic.AddInt64(&s.tokenRequests, 1)

	w.Header().Set("Content-Type", "application/json")

	id, secret, ok := req.BasicAuth()
	if !ok || id != ClientID || secret != ClientSecret {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, InvalidClientResponse)
		return
	}
	if err := req.ParseForm(); err != nil || req.PostForm.Get("grant_type") != "client_credentials" {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"unsupported_grant_type"}`)
		return
	}

	token := AccessToken
	if n > 1 {
		token = fmt.Sprintf("%s-%d", AccessToken, n)
	}

	s.mtx.Lock()
	s.accessToken = token
	s.mtx.Unlock()

	_, _ = fmt.Fprintf(w, `{"scope":%q,"access_token":%q,"token_type":"Bearer","app_id":"APP-80W284485P519543T","expires_in":%d,"nonce":"2020-04-03T15:35:36ZaYZlGvEkV4yVSz8g6bAKFoGSEzuy3CQcz3ljhibkOHg"}`,
		TokenScope, token, s.expiresIn)
}
