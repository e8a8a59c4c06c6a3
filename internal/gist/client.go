// Package gist talks to the GitHub gist API, which serves as the remote blob
// for snapshot sync. One gist file holds the encoded snapshot payload.
package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const (
	defaultBaseURL = "https://api.github.com"

	// fileName is the gist file carrying the payload; legacyFileName is read
	// as a fallback for gists written before the rename.
	fileName       = "deck_data.json"
	legacyFileName = "deck_db.json"
)

var (
	ErrUnauthorized = errors.New("gist: token rejected")
	ErrNotFound     = errors.New("gist: not found")
	ErrUnavailable  = errors.New("gist: unavailable")
	ErrEmpty        = errors.New("gist: no payload file")
)

// Remote is the blob the sync engine reads and writes.
type Remote interface {
	Fetch(ctx context.Context) (string, error)
	Update(ctx context.Context, payload string) error
	Validate(ctx context.Context) error
}

// Client implements Remote against the GitHub API.
type Client struct {
	baseURL string
	gistID  string
	http    *http.Client
}

var _ Remote = (*Client)(nil)

// NewClient returns a client for one gist, authenticated with a personal
// access token. baseURL overrides the GitHub endpoint when non-empty.
func NewClient(token, gistID, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(context.Background(), src)
	httpClient.Timeout = 15 * time.Second
	return &Client{
		baseURL: baseURL,
		gistID:  gistID,
		http:    httpClient,
	}
}

type gistFile struct {
	Content string `json:"content"`
}

type gistBody struct {
	Files map[string]gistFile `json:"files"`
}

// Fetch returns the raw payload stored in the gist.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	var body gistBody
	if err := c.do(ctx, http.MethodGet, nil, &body); err != nil {
		return "", err
	}
	if f, ok := body.Files[fileName]; ok && f.Content != "" {
		return f.Content, nil
	}
	if f, ok := body.Files[legacyFileName]; ok && f.Content != "" {
		return f.Content, nil
	}
	return "", ErrEmpty
}

// Update overwrites the gist payload file.
func (c *Client) Update(ctx context.Context, payload string) error {
	body := gistBody{Files: map[string]gistFile{
		fileName: {Content: payload},
	}}
	return c.do(ctx, http.MethodPatch, body, nil)
}

// Validate checks that the token and gist id are usable.
func (c *Client) Validate(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, nil, nil)
}

func (c *Client) do(ctx context.Context, method string, in, out any) error {
	var reqBody *bytes.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	url := c.baseURL + "/gists/" + c.gistID
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
