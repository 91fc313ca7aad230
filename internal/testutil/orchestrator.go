package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/thruflo/loanops/internal/backend"
)

// DefaultReply is returned by the fake orchestrator when its queue is empty.
const DefaultReply = "How can I assist you today?"

// scripted is a queued reply.
type scripted struct {
	status int
	body   []byte
}

// FakeOrchestrator is an in-process orchestrator for tests. Replies to
// POST /chat are served from a FIFO queue.
type FakeOrchestrator struct {
	server *httptest.Server

	mu       sync.Mutex
	queue    []scripted
	requests []backend.ChatRequest
	files    map[string][]byte
	healthy  bool
}

// NewFakeOrchestrator starts a FakeOrchestrator that is closed when the test
// completes.
func NewFakeOrchestrator(t *testing.T) *FakeOrchestrator {
	t.Helper()

	f := &FakeOrchestrator{
		files:   make(map[string][]byte),
		healthy: true,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/chat", f.handleChat)
	mux.HandleFunc("/health", f.handleHealth)
	mux.HandleFunc("/download/", f.handleDownload)
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)

	return f
}

// URL returns the base URL of the server.
func (f *FakeOrchestrator) URL() string {
	return f.server.URL
}

// Close shuts the server down, making every later request fail.
func (f *FakeOrchestrator) Close() {
	f.server.Close()
}

// Push queues a successful chat reply.
func (f *FakeOrchestrator) Push(resp backend.ChatResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		panic(err)
	}
	f.PushRaw(http.StatusOK, string(data))
}

// PushRaw queues a reply with an arbitrary status and body.
func (f *FakeOrchestrator) PushRaw(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, scripted{status: status, body: []byte(body)})
}

// AddFile makes a document downloadable.
func (f *FakeOrchestrator) AddFile(name string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[name] = data
}

// SetHealthy controls the /health answer.
func (f *FakeOrchestrator) SetHealthy(healthy bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.healthy = healthy
}

// Requests returns every chat request received so far.
func (f *FakeOrchestrator) Requests() []backend.ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]backend.ChatRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *FakeOrchestrator) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req backend.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	next := scripted{status: http.StatusOK, body: []byte(`{"reply":"` + DefaultReply + `"}`)}
	if len(f.queue) > 0 {
		next = f.queue[0]
		f.queue = f.queue[1:]
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(next.status)
	w.Write(next.body)
}

func (f *FakeOrchestrator) handleHealth(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	healthy := f.healthy
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"down"}`))
		return
	}
	w.Write([]byte(`{"status":"ok","message":"Agentic Loan Orchestrator is running"}`))
}

func (f *FakeOrchestrator) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/download/")

	f.mu.Lock()
	data, ok := f.files[name]
	f.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Write(data)
}
