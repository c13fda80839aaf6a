package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// GraphPerson is a person served by a GraphServer.
type GraphPerson struct {
	ID        string
	GivenName string
	Surname   string
	MediaType string
	Photo     []byte
}

// GraphServer is a fake Microsoft Graph endpoint serving the people search,
// photo metadata, photo binary, and /me routes. Requests are recorded.
type GraphServer struct {
	*httptest.Server

	// Token is the bearer token the server accepts.
	Token string

	mu       sync.Mutex
	people   map[string][]GraphPerson
	byID     map[string]GraphPerson
	requests []string
}

// NewGraphServer starts a fake Graph server. people maps a search term to the
// ordered candidates returned for it.
func NewGraphServer(t testing.TB, people map[string][]GraphPerson) *GraphServer {
	t.Helper()

	gs := &GraphServer{
		Token:  "test-token",
		people: people,
		byID:   map[string]GraphPerson{},
	}
	for _, candidates := range people {
		for _, p := range candidates {
			gs.byID[p.ID] = p
		}
	}
	gs.Server = httptest.NewServer(http.HandlerFunc(gs.serve))
	t.Cleanup(gs.Close)
	return gs
}

// Requests returns the request paths seen so far, with the raw query appended.
func (gs *GraphServer) Requests() []string {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return append([]string(nil), gs.requests...)
}

func (gs *GraphServer) serve(w http.ResponseWriter, r *http.Request) {
	record := r.URL.Path
	if r.URL.RawQuery != "" {
		record += "?" + r.URL.RawQuery
	}
	gs.mu.Lock()
	gs.requests = append(gs.requests, record)
	gs.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer "+gs.Token {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	path := r.URL.Path
	switch {
	case path == "/me":
		writeJSON(w, map[string]string{"id": "me", "displayName": "Test User"})
	case path == "/me/people":
		term := strings.Trim(r.URL.Query().Get("$search"), `"`)
		value := make([]map[string]string, 0)
		for _, p := range gs.people[term] {
			value = append(value, map[string]string{"id": p.ID, "givenName": p.GivenName, "surname": p.Surname})
		}
		writeJSON(w, map[string]any{"value": value})
	case strings.HasPrefix(path, "/users/"):
		rest := strings.TrimPrefix(path, "/users/")
		id, route, _ := strings.Cut(rest, "/")
		person, ok := gs.byID[id]
		if !ok || person.MediaType == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch {
		case route == "photo":
			writeJSON(w, map[string]string{"@odata.mediaContentType": person.MediaType})
		case strings.HasPrefix(route, "photos/") && strings.HasSuffix(route, "/$value"):
			w.Header().Set("Content-Type", person.MediaType)
			_, _ = w.Write(person.Photo)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
