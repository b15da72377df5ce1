// Package bexio is a minimal client for the Bexio 3.0 file API: listing,
// searching, and downloading documents with a personal access token.
package bexio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/belegwerk-dev/belegwerk/internal/naming"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.bexio.com"

	// TokenEnvVar names the environment variable holding the personal
	// access token.
	TokenEnvVar = "BEXIO_ACCESS_TOKEN"

	// downloadWorkers bounds the number of parallel file downloads.
	downloadWorkers = 20
)

// File is one entry of the Bexio file store.
type File struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Extension    string `json:"extension"`
	SizeInBytes  int    `json:"size_in_bytes"`
	MimeType     string `json:"mime_type"`
	CreatedAt    string `json:"created_at"`
	Archived     bool   `json:"archived"`
	IsReferenced bool   `json:"is_referenced"`
}

// Filename returns the sanitized on-disk name for the file.
func (f File) Filename() string {
	return sanitizeFilename(f.Name + "." + f.Extension)
}

// SearchTerm is one criterion of a file search request.
type SearchTerm struct {
	Field    string `json:"field"`
	Value    any    `json:"value"`
	Criteria string `json:"criteria"`
}

// CreatedSince matches files created at or after t.
func CreatedSince(t time.Time) SearchTerm {
	return SearchTerm{Field: "created_at", Value: t.UTC().Format(time.RFC3339), Criteria: ">="}
}

// CreatedUntil matches files created at or before t.
func CreatedUntil(t time.Time) SearchTerm {
	return SearchTerm{Field: "created_at", Value: t.UTC().Format(time.RFC3339), Criteria: "<="}
}

// NameLike matches files whose name contains the given fragment.
func NameLike(fragment string) SearchTerm {
	return SearchTerm{Field: "name", Value: fragment, Criteria: "like"}
}

// Referenced matches files by whether a booking references them.
func Referenced(referenced bool) SearchTerm {
	return SearchTerm{Field: "is_referenced", Value: referenced, Criteria: "="}
}

// Query selects which files to list. When Terms is non-empty the search
// endpoint is used, otherwise a plain listing.
type Query struct {
	// ArchivedState is "all", "not_archived", "archived", or empty for the
	// API default (inbox only).
	ArchivedState string
	// Limit caps the number of results; 0 means no limit parameter.
	Limit int
	// OrderBy is passed through, e.g. "id_desc" for newest first.
	OrderBy string

	Terms []SearchTerm
}

// Client talks to the Bexio 3.0 API. The zero value is not usable; create
// one with NewClient.
type Client struct {
	// BaseURL may be overridden before the first request.
	BaseURL string
	// Debug receives request and response dumps when non-nil.
	Debug io.Writer

	token   string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient returns a client authenticating with the given personal access
// token. Requests are rate limited well below the published API quota.
func NewClient(token string) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		token:   token,
		http:    &http.Client{Timeout: 120 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(5), 5),
	}
}

// ListFiles fetches the file entries matching the query.
func (c *Client) ListFiles(ctx context.Context, q Query) ([]File, error) {
	endpoint := "/3.0/files"
	if len(q.Terms) > 0 {
		endpoint = "/3.0/files/search"
	}

	params := url.Values{}
	if q.ArchivedState != "" {
		params.Set("archived_state", q.ArchivedState)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.OrderBy != "" {
		params.Set("order_by", q.OrderBy)
	}

	requestURL := c.BaseURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	var body io.Reader
	method := http.MethodGet
	if len(q.Terms) > 0 {
		method = http.MethodPost
		payload, err := json.Marshal(q.Terms)
		if err != nil {
			return nil, fmt.Errorf("encoding search terms: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	resp, err := c.do(ctx, method, requestURL, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading file list: %w", err)
	}
	c.debugf("RESPONSE %d\n%s\n", resp.StatusCode, data)

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, data)
	}

	var files []File
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, fmt.Errorf("decoding file list: %w", err)
	}
	return files, nil
}

// Download fetches one file into dir and returns the path written. Name
// collisions get a numeric suffix; a partially written file is removed on
// failure.
func (c *Client) Download(ctx context.Context, f File, dir string) (string, error) {
	out, err := naming.CreateExclusive(dir, f.Filename())
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", f.Filename(), err)
	}
	path := out.Name()

	requestURL := fmt.Sprintf("%s/3.0/files/%d/download", c.BaseURL, f.ID)
	resp, err := c.do(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		out.Close()
		os.Remove(path)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		out.Close()
		os.Remove(path)
		return "", statusError(resp.StatusCode, data)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("closing %s: %w", filepath.Base(path), err)
	}
	return path, nil
}

// DownloadResult reports the outcome of one file in a batch download.
type DownloadResult struct {
	File File
	Path string
	Err  error
}

// DownloadAll fetches the given files into dir in parallel. Each finished
// file is reported through the callback; individual failures do not abort
// the batch.
func (c *Client) DownloadAll(ctx context.Context, files []File, dir string, done func(DownloadResult)) {
	var g errgroup.Group
	g.SetLimit(downloadWorkers)
	for _, f := range files {
		f := f
		g.Go(func() error {
			path, err := c.Download(ctx, f, dir)
			done(DownloadResult{File: f, Path: path, Err: err})
			return nil
		})
	}
	_ = g.Wait()
}

func (c *Client) do(ctx context.Context, method, requestURL string, body io.Reader) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.debugf("REQUEST %s %s\n", method, requestURL)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling bexio api: %w", err)
	}
	return resp, nil
}

func (c *Client) debugf(format string, args ...any) {
	if c.Debug != nil {
		fmt.Fprintf(c.Debug, "%s | ", time.Now().Format(time.RFC3339))
		fmt.Fprintf(c.Debug, format, args...)
	}
}

func statusError(code int, body []byte) error {
	if code == http.StatusUnauthorized {
		return fmt.Errorf("bexio api: HTTP 401: der Token ist ungültig oder abgelaufen")
	}
	return fmt.Errorf("bexio api: HTTP %d: %s", code, bytes.TrimSpace(body))
}

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

func sanitizeFilename(name string) string {
	return invalidFilenameChars.ReplaceAllString(name, "_")
}
