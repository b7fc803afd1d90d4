package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// FakeAssemblyAI serves the subset of the AssemblyAI API the tool uses.
// Every transcript walks through Statuses and then reports completed.
type FakeAssemblyAI struct {
	Server   *httptest.Server
	APIKey   string
	SRT      string
	Statuses []string
	Failure  string

	mu          sync.Mutex
	gets        int
	uploads     int
	exports     int
	submissions []map[string]any
}

// NewFakeAssemblyAI starts a fake service that returns srt for every job.
func NewFakeAssemblyAI(t testing.TB, srt string, statuses ...string) *FakeAssemblyAI {
	t.Helper()

	fake := &FakeAssemblyAI{APIKey: "test-key", SRT: srt, Statuses: statuses}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v2/upload", fake.guard(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		fake.mu.Lock()
		fake.uploads++
		fake.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"upload_url": "https://cdn.test/upload/1"})
	}))
	mux.HandleFunc("POST /v2/transcript", fake.guard(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		fake.mu.Lock()
		fake.submissions = append(fake.submissions, body)
		fake.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"id": "tr-test", "status": "queued"})
	}))
	mux.HandleFunc("GET /v2/transcript", fake.guard(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"transcripts": []any{}})
	}))
	mux.HandleFunc("GET /v2/transcript/{id}", fake.guard(func(w http.ResponseWriter, r *http.Request) {
		fake.mu.Lock()
		status := "completed"
		if fake.gets < len(fake.Statuses) {
			status = fake.Statuses[fake.gets]
		}
		fake.gets++
		fake.mu.Unlock()
		body := map[string]any{"id": r.PathValue("id"), "status": status}
		if status == "error" {
			body["error"] = fake.Failure
		}
		writeJSON(w, http.StatusOK, body)
	}))
	mux.HandleFunc("GET /v2/transcript/{id}/srt", fake.guard(func(w http.ResponseWriter, _ *http.Request) {
		fake.mu.Lock()
		fake.exports++
		fake.mu.Unlock()
		_, _ = io.WriteString(w, fake.SRT)
	}))

	fake.Server = httptest.NewServer(mux)
	t.Cleanup(fake.Server.Close)
	return fake
}

// URL returns the base URL to configure clients with.
func (f *FakeAssemblyAI) URL() string { return f.Server.URL }

// Uploads returns how many media uploads were received.
func (f *FakeAssemblyAI) Uploads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uploads
}

// Exports returns how many SRT exports were served.
func (f *FakeAssemblyAI) Exports() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.exports
}

// Submissions returns the decoded transcript submissions.
func (f *FakeAssemblyAI) Submissions() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.submissions...)
}

func (f *FakeAssemblyAI) guard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != f.APIKey {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Authentication error, API token missing/invalid"})
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
