package testing

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// MockReleaseServer serves release assets the way GitHub's
// releases/latest/download endpoint does
type MockReleaseServer struct {
	*httptest.Server

	mu       sync.Mutex
	assets   map[string]MockResponse
	requests []MockRequest
}

// MockResponse holds response data for a path
type MockResponse struct {
	StatusCode int
	Body       []byte
}

// MockRequest records a request made to the mock server
type MockRequest struct {
	Method string
	Path   string
}

// NewMockReleaseServer creates a new mock release server
func NewMockReleaseServer(t *testing.T) *MockReleaseServer {
	t.Helper()

	mock := &MockReleaseServer{
		assets: make(map[string]MockResponse),
	}

	mock.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requests = append(mock.requests, MockRequest{Method: r.Method, Path: r.URL.Path})
		response, ok := mock.assets[r.URL.Path]
		mock.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Length", strconv.Itoa(len(response.Body)))
		if response.StatusCode != 0 {
			w.WriteHeader(response.StatusCode)
		}
		w.Write(response.Body)
	}))

	t.Cleanup(func() {
		mock.Server.Close()
	})

	return mock
}

// SetAsset serves body with 200 OK at path
func (m *MockReleaseServer) SetAsset(path string, body []byte) {
	m.SetResponse(path, http.StatusOK, body)
}

// SetResponse serves body with the given status at path
func (m *MockReleaseServer) SetResponse(path string, statusCode int, body []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[path] = MockResponse{StatusCode: statusCode, Body: body}
}

// AssetURL returns the absolute URL of path on the server
func (m *MockReleaseServer) AssetURL(path string) string {
	return m.Server.URL + path
}

// GetRequestCount returns the number of requests made to a path
func (m *MockReleaseServer) GetRequestCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, req := range m.requests {
		if req.Path == path {
			count++
		}
	}
	return count
}
