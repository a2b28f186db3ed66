package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"scribe/internal/services/assemblyai"
)

// fakeAPI is a scripted transcription backend. Each GetTranscript call
// pops the next state from states; the final state repeats.
type fakeAPI struct {
	server *httptest.Server

	states     []string
	queries    atomic.Int64
	uploads    atomic.Int64
	subtitles  atomic.Int64
	createBody atomic.Pointer[map[string]any]
	uploadSize atomic.Int64
	transcript map[string]any
	subtitle   string
}

func newFakeAPI(t *testing.T, states []string, transcript map[string]any) *fakeAPI {
	t.Helper()
	api := &fakeAPI{states: states, transcript: transcript, subtitle: "1\nremote subtitle\n"}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v2/upload", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read upload body: %v", err)
		}
		api.uploads.Add(1)
		api.uploadSize.Store(int64(len(body)))
		_ = json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn.test/upload-abc"})
	})
	mux.HandleFunc("POST /v2/transcript", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode create body: %v", err)
		}
		api.createBody.Store(&payload)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "job-1", "status": "queued"})
	})
	mux.HandleFunc("GET /v2/transcript/job-1", func(w http.ResponseWriter, r *http.Request) {
		n := int(api.queries.Add(1)) - 1
		if n >= len(api.states) {
			n = len(api.states) - 1
		}
		resp := map[string]any{"id": "job-1", "status": api.states[n]}
		if api.states[n] == "completed" || api.states[n] == "error" {
			for k, v := range api.transcript {
				resp[k] = v
			}
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("GET /v2/transcript/job-1/{format}", func(w http.ResponseWriter, r *http.Request) {
		api.subtitles.Add(1)
		_, _ = io.WriteString(w, api.subtitle)
	})

	api.server = httptest.NewServer(mux)
	t.Cleanup(api.server.Close)
	return api
}

func newTestService(t *testing.T, api *fakeAPI, out io.Writer) *Service {
	t.Helper()
	client, err := assemblyai.NewClient(assemblyai.Config{APIKey: "test-key", BaseURL: api.server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	poller := assemblyai.NewPoller(client,
		assemblyai.WithSleep(func(context.Context, time.Duration) error { return nil }))
	return NewService(client,
		WithPoller(poller),
		WithStdout(out),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func runOptions(t *testing.T, mutate func(*Params)) Options {
	t.Helper()
	params := validParams()
	params.Input = "https://example.com/show.mp3"
	params.PollInterval = time.Millisecond
	if mutate != nil {
		mutate(&params)
	}
	opts, err := NewOptions(params)
	if err != nil {
		t.Fatalf("NewOptions returned error: %v", err)
	}
	return opts
}

func TestRunTextFromURL(t *testing.T) {
	api := newFakeAPI(t, []string{"queued", "processing", "completed"},
		map[string]any{"text": "hello from the show"})

	var out bytes.Buffer
	svc := newTestService(t, api, &out)

	if err := svc.Run(context.Background(), runOptions(t, nil)); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if out.String() != "hello from the show" {
		t.Fatalf("stdout = %q", out.String())
	}
	if got := api.queries.Load(); got != 3 {
		t.Fatalf("status queries = %d, want 3", got)
	}

	payload := *api.createBody.Load()
	if payload["audio_url"] != "https://example.com/show.mp3" {
		t.Fatalf("audio_url = %v", payload["audio_url"])
	}
	if payload["language_detection"] != true {
		t.Fatalf("language_detection = %v", payload["language_detection"])
	}
}

func TestRunUploadsLocalAudio(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp3")
	if err := os.WriteFile(path, []byte("fake mp3 bytes"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	api := newFakeAPI(t, []string{"completed"}, map[string]any{"text": "ok"})
	var out bytes.Buffer
	svc := newTestService(t, api, &out)

	opts := runOptions(t, func(p *Params) { p.Input = path })
	if err := svc.Run(context.Background(), opts); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if api.uploads.Load() != 1 {
		t.Fatalf("uploads = %d, want 1", api.uploads.Load())
	}
	if api.uploadSize.Load() != int64(len("fake mp3 bytes")) {
		t.Fatalf("upload size = %d", api.uploadSize.Load())
	}
	payload := *api.createBody.Load()
	if payload["audio_url"] != "https://cdn.test/upload-abc" {
		t.Fatalf("audio_url = %v", payload["audio_url"])
	}
}

func TestRunDiarizedSRTPreferred(t *testing.T) {
	api := newFakeAPI(t, []string{"completed"}, map[string]any{
		"utterances": []map[string]any{
			{"speaker": 1, "text": "Hello there.", "start": 0, "end": 2000},
			{"speaker": "B", "text": "Hi.", "start": 2000, "end": 3000},
		},
	})

	var out bytes.Buffer
	svc := newTestService(t, api, &out)

	opts := runOptions(t, func(p *Params) {
		p.Format = FormatSRT
		p.SpeakerLabels = true
	})
	if err := svc.Run(context.Background(), opts); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Speaker 1: Hello there.") || !strings.Contains(got, "Speaker B: Hi.") {
		t.Fatalf("unexpected SRT output:\n%s", got)
	}
	if !strings.Contains(got, "00:00:00,000 --> 00:00:02,000") {
		t.Fatalf("missing timing line:\n%s", got)
	}
	if api.subtitles.Load() != 0 {
		t.Fatal("remote subtitle endpoint should not be consulted when diarized rendering succeeds")
	}
}

func TestRunFallsBackToRemoteSubtitles(t *testing.T) {
	// Speaker labels requested, but the service returned no utterances.
	api := newFakeAPI(t, []string{"completed"}, map[string]any{"text": "plain"})

	var out bytes.Buffer
	svc := newTestService(t, api, &out)

	opts := runOptions(t, func(p *Params) {
		p.Format = FormatVTT
		p.SpeakerLabels = true
	})
	if err := svc.Run(context.Background(), opts); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if api.subtitles.Load() != 1 {
		t.Fatalf("subtitle fetches = %d, want 1", api.subtitles.Load())
	}
	if out.String() != "1\nremote subtitle\n" {
		t.Fatalf("stdout = %q", out.String())
	}
}

func TestRunRemoteSubtitlesWithoutSpeakerLabels(t *testing.T) {
	api := newFakeAPI(t, []string{"completed"}, map[string]any{
		"utterances": []map[string]any{
			{"speaker": "A", "text": "Ignored for plain captions.", "start": 0, "end": 1000},
		},
	})

	var out bytes.Buffer
	svc := newTestService(t, api, &out)

	opts := runOptions(t, func(p *Params) { p.Format = FormatSRT })
	if err := svc.Run(context.Background(), opts); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if api.subtitles.Load() != 1 {
		t.Fatalf("subtitle fetches = %d, want 1", api.subtitles.Load())
	}
}

func TestRunTerminalErrorStatus(t *testing.T) {
	api := newFakeAPI(t, []string{"processing", "error"},
		map[string]any{"error": "audio too short"})

	var out bytes.Buffer
	svc := newTestService(t, api, &out)

	err := svc.Run(context.Background(), runOptions(t, nil))
	var jobErr *TranscriptError
	if !errors.As(err, &jobErr) {
		t.Fatalf("expected *TranscriptError, got %v", err)
	}
	if jobErr.JobID != "job-1" || jobErr.Message != "audio too short" {
		t.Fatalf("unexpected error %#v", jobErr)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be written on failure, got %q", out.String())
	}
}

func TestRunWritesOutputFile(t *testing.T) {
	api := newFakeAPI(t, []string{"completed"}, map[string]any{"text": "to disk"})

	var out bytes.Buffer
	svc := newTestService(t, api, &out)

	dest := filepath.Join(t.TempDir(), "transcript.txt")
	opts := runOptions(t, func(p *Params) { p.Output = dest })
	if err := svc.Run(context.Background(), opts); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	written, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(written) != "to disk" {
		t.Fatalf("file contents = %q", written)
	}
	if out.Len() != 0 {
		t.Fatalf("stdout must stay empty when writing to a file, got %q", out.String())
	}
}

func TestRunDiarizedTextRendering(t *testing.T) {
	api := newFakeAPI(t, []string{"completed"}, map[string]any{
		"text": "flat text",
		"utterances": []map[string]any{
			{"speaker": "A", "text": "First.", "start": 0, "end": 500},
			{"text": "No speaker given.", "start": 500, "end": 900},
		},
	})

	var out bytes.Buffer
	svc := newTestService(t, api, &out)

	opts := runOptions(t, func(p *Params) { p.SpeakerLabels = true })
	if err := svc.Run(context.Background(), opts); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Speaker A: First.") {
		t.Fatalf("missing diarized line:\n%s", got)
	}
	if !strings.Contains(got, "Speaker Unknown: No speaker given.") {
		t.Fatalf("missing default speaker line:\n%s", got)
	}
}
