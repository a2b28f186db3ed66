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
	"testing"
)

func TestClientUpload(t *testing.T) {
	const content = "fake audio bytes"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v2/upload" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "test-key" {
			t.Fatalf("unexpected authorization header %q", got)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read upload body: %v", err)
		}
		if string(body) != content {
			t.Fatalf("upload body = %q, want %q", body, content)
		}
		if err := json.NewEncoder(w).Encode(map[string]string{"upload_url": "https://cdn.example/abc"}); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "clip.mp3")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	client := newTestClient(t, server.URL)
	got, err := client.Upload(context.Background(), path)
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if got != "https://cdn.example/abc" {
		t.Fatalf("Upload = %q", got)
	}
}

func TestClientUploadMissingFile(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:0")
	if _, err := client.Upload(context.Background(), filepath.Join(t.TempDir(), "absent.mp3")); err == nil {
		t.Fatal("expected error for missing upload source")
	}
}

func TestClientCreateTranscript(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v2/transcript" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload["audio_url"] != "https://cdn.example/abc" {
			t.Fatalf("audio_url = %v", payload["audio_url"])
		}
		if payload["speaker_labels"] != true {
			t.Fatalf("speaker_labels = %v", payload["speaker_labels"])
		}
		if payload["language_code"] != "ru" {
			t.Fatalf("language_code = %v", payload["language_code"])
		}
		if _, present := payload["speech_threshold"]; present {
			t.Fatal("unset speech_threshold must be omitted")
		}
		if err := json.NewEncoder(w).Encode(map[string]string{"id": "job-1", "status": "queued"}); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	created, err := client.CreateTranscript(context.Background(), "https://cdn.example/abc", TranscriptParams{
		SpeechModel:   "best",
		LanguageCode:  "ru",
		Punctuate:     true,
		FormatText:    true,
		SpeakerLabels: true,
	})
	if err != nil {
		t.Fatalf("CreateTranscript returned error: %v", err)
	}
	if created.ID != "job-1" || created.Status != "queued" {
		t.Fatalf("unexpected transcript %#v", created)
	}
}

func TestClientGetTranscriptSpeakerLabels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/transcript/job-1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		const body = `{
			"id": "job-1",
			"status": "completed",
			"text": "hello",
			"utterances": [
				{"speaker": 1, "text": "hello", "start": 0, "end": 1000},
				{"speaker": "B", "text": "world", "start": 1000, "end": 2000},
				{"text": "anonymous", "start": 2000, "end": 3000}
			]
		}`
		if _, err := io.WriteString(w, body); err != nil {
			t.Fatalf("write response: %v", err)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	transcript, err := client.GetTranscript(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("GetTranscript returned error: %v", err)
	}
	if !transcript.IsTerminal() {
		t.Fatalf("completed transcript must be terminal: %#v", transcript)
	}
	if got := transcript.Utterances[0].Speaker.String(); got != "1" {
		t.Fatalf("numeric speaker label = %q, want \"1\"", got)
	}
	if got := transcript.Utterances[1].Speaker.String(); got != "B" {
		t.Fatalf("textual speaker label = %q, want \"B\"", got)
	}
	if transcript.Utterances[2].Speaker != nil {
		t.Fatal("absent speaker must decode as nil")
	}

	raw := transcript.RawUtterances()
	if len(raw) != 3 {
		t.Fatalf("RawUtterances = %d entries", len(raw))
	}
	if raw[2].Speaker != nil {
		t.Fatal("absent speaker must stay absent after conversion")
	}
}

func TestClientGetSubtitles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/transcript/job-1/vtt" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("chars_per_caption"); got != "64" {
			t.Fatalf("chars_per_caption = %q", got)
		}
		if _, err := io.WriteString(w, "WEBVTT\n\n"); err != nil {
			t.Fatalf("write response: %v", err)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	body, err := client.GetSubtitles(context.Background(), "job-1", SubtitleVTT, 64)
	if err != nil {
		t.Fatalf("GetSubtitles returned error: %v", err)
	}
	if !strings.HasPrefix(body, "WEBVTT") {
		t.Fatalf("unexpected subtitle body %q", body)
	}
}

func TestClientGetSubtitlesRejectsText(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:0")
	if _, err := client.GetSubtitles(context.Background(), "job-1", SubtitleFormat("text"), 64); err == nil {
		t.Fatal("expected error for non-subtitle format")
	}
}

func TestClientSurfacesHTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error": "bad key"}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.GetTranscript(context.Background(), "job-1")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d", statusErr.StatusCode)
	}
	if !strings.Contains(statusErr.Body, "bad key") {
		t.Fatalf("body = %q", statusErr.Body)
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Config{APIKey: "   "}); err == nil {
		t.Fatal("expected error for blank api key")
	}
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(Config{APIKey: "test-key", BaseURL: baseURL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}
