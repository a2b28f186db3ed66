package assemblyai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://api.assemblyai.com"
	defaultHTTPTimeout = 10 * time.Minute
)

// Config captures the runtime settings required to talk to the API.
type Config struct {
	APIKey  string
	BaseURL string
}

// Client calls the AssemblyAI v2 REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("assemblyai: api key required")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	client := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// StatusError reports a non-success HTTP response from the service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("assemblyai: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Upload streams a local file to /v2/upload and returns the remote
// reference the service assigned to it.
func (c *Client) Upload(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open upload source: %w", err)
	}
	defer file.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/upload", file)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	var parsed uploadResponse
	if err := c.do(req, &parsed); err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	return parsed.UploadURL, nil
}

// CreateTranscript submits a transcription job for the given audio
// reference and returns the created transcript resource.
func (c *Client) CreateTranscript(ctx context.Context, audioURL string, params TranscriptParams) (Transcript, error) {
	payload, err := json.Marshal(newCreateTranscriptRequest(audioURL, params))
	if err != nil {
		return Transcript{}, fmt.Errorf("encode transcript request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/transcript", bytes.NewReader(payload))
	if err != nil {
		return Transcript{}, fmt.Errorf("build transcript request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	var transcript Transcript
	if err := c.do(req, &transcript); err != nil {
		return Transcript{}, fmt.Errorf("create transcript: %w", err)
	}
	return transcript, nil
}

// GetTranscript queries the current state of a transcription job.
func (c *Client) GetTranscript(ctx context.Context, id string) (Transcript, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/transcript/"+id, nil)
	if err != nil {
		return Transcript{}, fmt.Errorf("build status request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	var transcript Transcript
	if err := c.do(req, &transcript); err != nil {
		return Transcript{}, fmt.Errorf("get transcript %s: %w", id, err)
	}
	return transcript, nil
}

// GetSubtitles fetches the server-rendered caption document for a
// completed transcript.
func (c *Client) GetSubtitles(ctx context.Context, id string, format SubtitleFormat, charsPerCaption int) (string, error) {
	switch format {
	case SubtitleSRT, SubtitleVTT:
	default:
		return "", fmt.Errorf("subtitle format %q is not supported; expected srt or vtt", format)
	}

	url := fmt.Sprintf("%s/v2/transcript/%s/%s?chars_per_caption=%s",
		c.baseURL, id, format, strconv.Itoa(charsPerCaption))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build subtitle request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch subtitles: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read subtitle response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return string(body), nil
}

// do executes a request whose response body is JSON. Non-success
// responses surface as *StatusError with the body attached.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
