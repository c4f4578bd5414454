package testutil

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// DemoKey is the only api_key the APOD mock accepts.
const DemoKey = "DEMO_KEY"

// Fixed fields of the picture the APOD mock serves.
const (
	ApodTitle = "Comets and Bright Star"
	ApodURL   = "http://apod.nasa.gov/apod/image/1601/CatalinaBorrellyArcturus2016-01-01_Hemmerich600w.jpg"
)

const apodExplanation = "This morning's sky shows two comets and a bright star near Arcturus."

// APODServer mimics the planetary/apod endpoint and records the query of
// every request it receives.
type APODServer struct {
	*httptest.Server

	mu      sync.Mutex
	queries []url.Values
}

// NewAPODServer starts an APOD mock that is closed when the test ends.
func NewAPODServer(t testing.TB) *APODServer {
	t.Helper()
	s := &APODServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *APODServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.queries = append(s.queries, r.URL.Query())
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if r.URL.Path != "/planetary/apod" {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "no such endpoint"})
		return
	}
	if r.URL.Query().Get("api_key") != DemoKey {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "You must define api_key=" + DemoKey + " as parameter"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"url":         ApodURL,
		"media_type":  "image",
		"explanation": apodExplanation,
		"concepts":    []string{},
		"title":       ApodTitle,
	})
}

// Queries returns the query parameters of every request so far.
func (s *APODServer) Queries() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]url.Values, len(s.queries))
	copy(out, s.queries)
	return out
}

// PinnedClient returns an HTTP client that connects to the mock whatever
// host a request names, so clients generated for http://localhost:9090
// reach it.
func (s *APODServer) PinnedClient() *http.Client {
	addr := s.Listener.Addr().String()
	dialer := &net.Dialer{}
	return &http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, _ string) (net.Conn, error) {
				return dialer.DialContext(ctx, network, addr)
			},
		},
	}
}
