package assemblyai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"subfix/internal/services"
)

const (
	defaultBaseURL     = "https://api.assemblyai.com"
	defaultUserAgent   = "subfix/dev"
	defaultHTTPTimeout = 2 * time.Minute
	errorBodyLimit     = 4096
)

// Status is the job status reported by the service.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// Config describes the AssemblyAI client configuration.
type Config struct {
	APIKey     string
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

// Client wraps the AssemblyAI REST API.
type Client struct {
	apiKey    string
	userAgent string
	baseURL   *url.URL
	http      *http.Client
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "assemblyai", "init", "api key is required", nil)
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("assemblyai: parse base url: %w", err)
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		apiKey:    apiKey,
		userAgent: userAgent,
		baseURL:   baseURL,
		http:      client,
	}, nil
}

// TranscriptRequest is the body of a transcript submission.
type TranscriptRequest struct {
	AudioURL   string   `json:"audio_url"`
	WordBoost  []string `json:"word_boost,omitempty"`
	BoostParam string   `json:"boost_param,omitempty"`
}

// Transcript is the subset of the transcript resource the tool reads.
type Transcript struct {
	ID       string `json:"id"`
	Status   Status `json:"status"`
	Error    string `json:"error,omitempty"`
	AudioURL string `json:"audio_url,omitempty"`
}

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

// Upload streams raw media to the service and returns the private URL to
// submit for transcription.
func (c *Client) Upload(ctx context.Context, media io.Reader) (string, error) {
	if c == nil {
		return "", errors.New("assemblyai: client is nil")
	}
	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL.JoinPath("v2", "upload"), media)
	if err != nil {
		return "", fmt.Errorf("assemblyai: build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	var payload uploadResponse
	if err := c.doJSON(req, "upload", &payload); err != nil {
		return "", err
	}
	if strings.TrimSpace(payload.UploadURL) == "" {
		return "", services.Wrap(services.ErrExternalTool, "assemblyai", "upload", "response missing upload_url", nil)
	}
	return payload.UploadURL, nil
}

// UploadFile uploads the local file at path.
func (c *Client) UploadFile(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "assemblyai", "upload", "open media", err)
	}
	defer file.Close()
	return c.Upload(ctx, file)
}

// Submit starts a transcript job.
func (c *Client) Submit(ctx context.Context, request TranscriptRequest) (Transcript, error) {
	if c == nil {
		return Transcript{}, errors.New("assemblyai: client is nil")
	}
	if strings.TrimSpace(request.AudioURL) == "" {
		return Transcript{}, services.Wrap(services.ErrValidation, "assemblyai", "submit", "audio_url is required", nil)
	}
	body, err := json.Marshal(request)
	if err != nil {
		return Transcript{}, fmt.Errorf("assemblyai: encode submit request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL.JoinPath("v2", "transcript"), bytes.NewReader(body))
	if err != nil {
		return Transcript{}, fmt.Errorf("assemblyai: build submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var transcript Transcript
	if err := c.doJSON(req, "submit", &transcript); err != nil {
		return Transcript{}, err
	}
	if transcript.ID == "" {
		return Transcript{}, services.Wrap(services.ErrExternalTool, "assemblyai", "submit", "response missing transcript id", nil)
	}
	return transcript, nil
}

// Get fetches the current state of a transcript job.
func (c *Client) Get(ctx context.Context, id string) (Transcript, error) {
	if c == nil {
		return Transcript{}, errors.New("assemblyai: client is nil")
	}
	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL.JoinPath("v2", "transcript", id), nil)
	if err != nil {
		return Transcript{}, fmt.Errorf("assemblyai: build status request: %w", err)
	}
	var transcript Transcript
	if err := c.doJSON(req, "status", &transcript); err != nil {
		return Transcript{}, err
	}
	return transcript, nil
}

// ExportSRT returns a completed transcript as SRT text. charsPerCaption
// limits caption width when positive.
func (c *Client) ExportSRT(ctx context.Context, id string, charsPerCaption int) (string, error) {
	if c == nil {
		return "", errors.New("assemblyai: client is nil")
	}
	endpoint := c.baseURL.JoinPath("v2", "transcript", id, "srt")
	if charsPerCaption > 0 {
		endpoint.RawQuery = url.Values{"chars_per_caption": {strconv.Itoa(charsPerCaption)}}.Encode()
	}
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("assemblyai: build export request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("assemblyai: export request failed: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp, "export srt"); err != nil {
		return "", err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("assemblyai: read srt: %w", err)
	}
	return string(data), nil
}

func (c *Client) newRequest(ctx context.Context, method string, endpoint *url.URL, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return nil, err
	}
	c.applyHeaders(req)
	return req, nil
}

func (c *Client) applyHeaders(req *http.Request) {
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
}

func (c *Client) doJSON(req *http.Request, operation string, target any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("assemblyai: %s request failed: %w", operation, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp, operation); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("assemblyai: decode %s response: %w", operation, err)
	}
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func checkStatus(resp *http.Response, operation string) error {
	if resp.StatusCode < 400 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	detail := strings.TrimSpace(string(body))
	var parsed errorResponse
	if json.Unmarshal(body, &parsed) == nil && parsed.Error != "" {
		detail = parsed.Error
	}
	marker := services.ErrExternalTool
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		marker = services.ErrConfiguration
	case resp.StatusCode == http.StatusNotFound:
		marker = services.ErrNotFound
	}
	return services.Wrap(marker, "assemblyai", operation, fmt.Sprintf("%s: %s", resp.Status, detail), nil)
}
