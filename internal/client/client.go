// Package client is a typed HTTP client for the note API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	models "nicenote/internal/domain/models/notebook"
)

// DefaultTimeout is the default HTTP timeout for API requests
const DefaultTimeout = 15 * time.Second

// APIError is a non-2xx response, decoded from its problem document when possible
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Detail)
}

// Client talks to the note API
type Client struct {
	baseURL    string
	language   string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLanguage sets Accept-Language so error details come back localized
func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = lang }
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListQuery selects one page of the note list
type ListQuery struct {
	Cursor   *models.ListCursor
	Limit    int
	FolderID *string
	TagID    *string
}

// ListNotes fetches one keyset page
func (c *Client) ListNotes(ctx context.Context, q ListQuery) (*models.NotePage, error) {
	params := url.Values{}
	if q.Cursor != nil {
		params.Set("cursor", q.Cursor.UpdatedAt.Format(time.RFC3339Nano))
		params.Set("cursorId", q.Cursor.ID)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.FolderID != nil {
		params.Set("folderId", *q.FolderID)
	}
	if q.TagID != nil {
		params.Set("tagId", *q.TagID)
	}

	var page models.NotePage
	if err := c.do(ctx, http.MethodGet, "/notes", params, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchNotes runs a full-text search
func (c *Client) SearchNotes(ctx context.Context, query string, limit int) ([]models.SearchHit, error) {
	params := url.Values{"q": {query}}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var resp struct {
		Data []models.SearchHit `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/notes/search", params, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetNote fetches a full note
func (c *Client) GetNote(ctx context.Context, id string) (*models.Note, error) {
	var note models.Note
	if err := c.do(ctx, http.MethodGet, "/notes/"+url.PathEscape(id), nil, nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// CreateNote creates a note; an empty title is stored as "Untitled"
func (c *Client) CreateNote(ctx context.Context, title string, content *string, folderID *string) (*models.Note, error) {
	body := struct {
		Title    string  `json:"title"`
		Content  *string `json:"content"`
		FolderID *string `json:"folderId,omitempty"`
	}{title, content, folderID}

	var note models.Note
	if err := c.do(ctx, http.MethodPost, "/notes", nil, body, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// SaveNote sends a partial update and returns the stored note
func (c *Client) SaveNote(ctx context.Context, id string, patch models.NotePatch) (*models.Note, error) {
	var note models.Note
	if err := c.do(ctx, http.MethodPatch, "/notes/"+url.PathEscape(id), nil, patch, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// DeleteNote deletes a note
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, in, out any) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var problem struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &problem) == nil {
			apiErr.Detail = problem.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
