package assemblyai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"subfix/internal/services"
)

// fakeService is an in-memory stand-in for the AssemblyAI API.
type fakeService struct {
	mu       sync.Mutex
	statuses []Status
	failure  string
	uploaded []byte
	submits  []TranscriptRequest
	gets     int
	srtQuery string
}

func (f *fakeService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v2/upload", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		data, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.uploaded = data
		f.mu.Unlock()
		writeJSON(w, map[string]string{"upload_url": "https://cdn.example/upload/abc"})
	})
	mux.HandleFunc("POST /v2/transcript", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		var req TranscriptRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.submits = append(f.submits, req)
		f.mu.Unlock()
		writeJSON(w, Transcript{ID: "tr-1", Status: StatusQueued, AudioURL: req.AudioURL})
	})
	mux.HandleFunc("GET /v2/transcript/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		status := StatusCompleted
		if f.gets < len(f.statuses) {
			status = f.statuses[f.gets]
		}
		f.gets++
		resp := Transcript{ID: r.PathValue("id"), Status: status}
		if status == StatusError {
			resp.Error = f.failure
		}
		writeJSON(w, resp)
	})
	mux.HandleFunc("GET /v2/transcript/{id}/srt", func(w http.ResponseWriter, r *http.Request) {
		if !f.authorized(w, r) {
			return
		}
		f.mu.Lock()
		f.srtQuery = r.URL.RawQuery
		f.mu.Unlock()
		_, _ = io.WriteString(w, "1\n00:00:00,000 --> 00:00:01,000\nI teh best\n")
	})
	return mux
}

func (f *fakeService) authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") != "secret" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Authentication error, API token missing/invalid"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, svc *fakeService, key string) *Client {
	t.Helper()
	server := httptest.NewServer(svc.handler())
	t.Cleanup(server.Close)
	client, err := New(Config{APIKey: key, BaseURL: server.URL, HTTPClient: server.Client()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func fastPolicy() PollPolicy {
	return PollPolicy{Interval: time.Millisecond, MaxInterval: 4 * time.Millisecond, Multiplier: 2}
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{APIKey: "  "})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestUploadFile(t *testing.T) {
	svc := &fakeService{}
	client := newTestClient(t, svc, "secret")
	path := filepath.Join(t.TempDir(), "talk.wav")
	if err := os.WriteFile(path, []byte("RIFFdata"), 0o644); err != nil {
		t.Fatal(err)
	}
	url, err := client.UploadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if url != "https://cdn.example/upload/abc" {
		t.Fatalf("unexpected upload url %q", url)
	}
	if string(svc.uploaded) != "RIFFdata" {
		t.Fatalf("server received %q", svc.uploaded)
	}

	if _, err := client.UploadFile(context.Background(), filepath.Join(t.TempDir(), "missing.wav")); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for missing media, got %v", err)
	}
}

func TestUnauthorizedIsConfigurationError(t *testing.T) {
	svc := &fakeService{}
	client := newTestClient(t, svc, "wrong")
	_, err := client.Get(context.Background(), "tr-1")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "API token missing/invalid") {
		t.Fatalf("expected service detail in error, got %v", err)
	}
}

func TestPollThroughStates(t *testing.T) {
	svc := &fakeService{statuses: []Status{StatusQueued, StatusProcessing, StatusProcessing, StatusCompleted}}
	client := newTestClient(t, svc, "secret")

	var seen []State
	got, err := client.Poll(context.Background(), "tr-1", fastPolicy(), func(state State, _ Transcript) {
		seen = append(seen, state)
	})
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if got.Status != StatusCompleted {
		t.Fatalf("unexpected final status %q", got.Status)
	}
	want := []State{StateSubmitted, StateInProgress, StateInProgress, StateCompleted}
	if len(seen) != len(want) {
		t.Fatalf("states = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("states = %v, want %v", seen, want)
		}
	}
}

func TestPollFailure(t *testing.T) {
	svc := &fakeService{statuses: []Status{StatusProcessing, StatusError}, failure: "audio too short"}
	client := newTestClient(t, svc, "secret")

	_, err := client.Poll(context.Background(), "tr-1", fastPolicy(), nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external error, got %v", err)
	}
	if !strings.Contains(err.Error(), "audio too short") {
		t.Fatalf("expected service detail, got %v", err)
	}
}

func TestPollTimeout(t *testing.T) {
	statuses := make([]Status, 10000)
	for i := range statuses {
		statuses[i] = StatusProcessing
	}
	svc := &fakeService{statuses: statuses}
	client := newTestClient(t, svc, "secret")

	policy := fastPolicy()
	policy.Timeout = 20 * time.Millisecond
	_, err := client.Poll(context.Background(), "tr-1", policy, nil)
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestPollCancelled(t *testing.T) {
	svc := &fakeService{statuses: []Status{StatusProcessing, StatusProcessing}}
	client := newTestClient(t, svc, "secret")

	ctx, cancel := context.WithCancel(context.Background())
	policy := PollPolicy{Interval: time.Hour}
	_, err := client.Poll(ctx, "tr-1", policy, func(State, Transcript) { cancel() })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPollPolicyBackoff(t *testing.T) {
	policy := PollPolicy{Interval: time.Second, MaxInterval: 5 * time.Second, Multiplier: 2}.normalized()
	got := []time.Duration{policy.Interval}
	for i := 0; i < 4; i++ {
		got = append(got, policy.next(got[len(got)-1]))
	}
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 5 * time.Second, 5 * time.Second}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("intervals = %v, want %v", got, want)
		}
	}

	def := PollPolicy{}.normalized()
	if def.Interval != 3*time.Second || def.MaxInterval != 3*time.Second || def.Multiplier != 1 || def.Timeout != 0 {
		t.Fatalf("unexpected default policy %+v", def)
	}
}

func TestStateFor(t *testing.T) {
	cases := map[Status]State{
		StatusQueued:     StateSubmitted,
		StatusProcessing: StateInProgress,
		StatusCompleted:  StateCompleted,
		StatusError:      StateFailed,
		"something-new":  StateInProgress,
	}
	for status, want := range cases {
		if got := StateFor(status); got != want {
			t.Fatalf("StateFor(%q) = %v, want %v", status, got, want)
		}
	}
	if !StateFailed.Terminal() || StateInProgress.Terminal() {
		t.Fatal("unexpected Terminal() results")
	}
}

func TestTranscribeLocalFile(t *testing.T) {
	svc := &fakeService{statuses: []Status{StatusQueued, StatusProcessing, StatusCompleted}}
	client := newTestClient(t, svc, "secret")
	path := filepath.Join(t.TempDir(), "talk.wav")
	if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	var states int
	result, err := NewTranscriber(client, nil).Transcribe(context.Background(), path, Options{
		WordBoost:       []string{"Kubernetes", "etcd"},
		BoostParam:      "high",
		CharsPerCaption: 32,
		Policy:          fastPolicy(),
		OnStatus:        func(State, Transcript) { states++ },
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if result.TranscriptID != "tr-1" || !strings.Contains(result.SRT, "I teh best") {
		t.Fatalf("unexpected result %+v", result)
	}
	if states != 3 {
		t.Fatalf("expected 3 status callbacks, got %d", states)
	}
	if len(svc.submits) != 1 {
		t.Fatalf("expected a single submission, got %d", len(svc.submits))
	}
	sub := svc.submits[0]
	if sub.AudioURL != "https://cdn.example/upload/abc" || sub.BoostParam != "high" || len(sub.WordBoost) != 2 {
		t.Fatalf("unexpected submission %+v", sub)
	}
	if svc.srtQuery != "chars_per_caption=32" {
		t.Fatalf("unexpected export query %q", svc.srtQuery)
	}
}

func TestTranscribeRemoteURLSkipsUpload(t *testing.T) {
	svc := &fakeService{}
	client := newTestClient(t, svc, "secret")

	result, err := NewTranscriber(client, nil).Transcribe(context.Background(), "https://example.com/ep.mp3", Options{Policy: fastPolicy(), BoostParam: "high"})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if svc.uploaded != nil {
		t.Fatal("remote media should not be uploaded")
	}
	if result.AudioURL != "https://example.com/ep.mp3" {
		t.Fatalf("unexpected audio url %q", result.AudioURL)
	}
	if sub := svc.submits[0]; sub.BoostParam != "" || sub.WordBoost != nil {
		t.Fatalf("boost settings sent without words: %+v", sub)
	}
	if svc.srtQuery != "" {
		t.Fatalf("unexpected export query %q", svc.srtQuery)
	}
}

func TestTranscribeFailed(t *testing.T) {
	svc := &fakeService{statuses: []Status{StatusError}, failure: "unsupported format"}
	client := newTestClient(t, svc, "secret")

	_, err := NewTranscriber(client, nil).Transcribe(context.Background(), "https://example.com/ep.mp3", Options{Policy: fastPolicy()})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external error, got %v", err)
	}
	if svc.srtQuery != "" {
		t.Fatal("export should not run after failure")
	}
}
