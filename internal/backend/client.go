// Package backend talks to the hotel-operations service that performs OCR,
// stores guests and delivers notifications.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gravadigital/hotelops-dashboard/internal/domain/guest"
	"github.com/gravadigital/hotelops-dashboard/internal/domain/notification"
	"github.com/gravadigital/hotelops-dashboard/internal/logger"
)

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "hotelops-dashboard"
	maxErrorBody   = 512

	pathProbe  = "/test"
	pathOCR    = "/api/ocr"
	pathGuests = "/api/guests"
	pathNotify = "/api/notify"
)

// Options configures a Client. BaseURL is required.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client issues the dashboard's requests against the backend
type Client struct {
	baseURL string
	client  *http.Client
	log     *log.Logger
}

// Upload is a file selected for OCR
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// New creates a backend client
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client:  httpClient,
		log:     logger.Backend(),
	}
}

// BaseURL returns the backend address requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Probe hits the backend's test endpoint. The response body is ignored.
func (c *Client) Probe(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, pathProbe, nil, "")
	if err != nil {
		return err
	}
	return c.do(req, "probe", nil)
}

// ExtractDocument uploads an identity document for OCR
func (c *Client) ExtractDocument(ctx context.Context, upload Upload) (guest.OCRResult, error) {
	var result guest.OCRResult

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(upload.Filename)))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return result, fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := part.Write(upload.Data); err != nil {
		return result, fmt.Errorf("failed to write upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return result, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, pathOCR, body, writer.FormDataContentType())
	if err != nil {
		return result, err
	}

	c.log.Debug("Uploading document for OCR", "filename", upload.Filename, "size", len(upload.Data))
	err = c.do(req, "ocr", &result)
	return result, err
}

// CreateGuest saves a draft. The response may be any JSON value.
func (c *Client) CreateGuest(ctx context.Context, draft guest.Draft) (any, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, pathGuests, draft)
	if err != nil {
		return nil, err
	}

	var created any
	err = c.do(req, "create guest", &created)
	return created, err
}

// ListGuests fetches the complete guest collection
func (c *Client) ListGuests(ctx context.Context) ([]guest.Record, error) {
	req, err := c.newRequest(ctx, http.MethodGet, pathGuests, nil, "")
	if err != nil {
		return nil, err
	}

	var records []guest.Record
	if err := c.do(req, "list guests", &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []guest.Record{}
	}
	return records, nil
}

// Notify dispatches an SMS or WhatsApp message
func (c *Client) Notify(ctx context.Context, request notification.Request) (notification.Result, error) {
	var result notification.Result

	req, err := c.newJSONRequest(ctx, http.MethodPost, pathNotify, request)
	if err != nil {
		return result, err
	}

	err = c.do(req, "notify", &result)
	return result, err
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return c.newRequest(ctx, method, path, bytes.NewReader(body), "application/json")
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// do sends req and decodes a 2xx JSON body into out (skipped when out is nil)
func (c *Client) do(req *http.Request, op string, out any) error {
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("Backend request failed", "op", op, "url", req.URL.String(), "error", err)
		return &Error{Op: op, Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("Backend responded", "op", op, "status", resp.StatusCode, "latency", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{
			Op:     op,
			Kind:   KindServer,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Kind: KindDecode, Status: resp.StatusCode, Err: err}
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
