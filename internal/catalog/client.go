// Copyright (c) 2025 The softhub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iust/softhub/internal/logging"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultBaseURL is the production portal origin.
	DefaultBaseURL = "https://apitest.fpna.ir"

	// DefaultTimeout bounds every catalog request.
	DefaultTimeout = 15 * time.Second

	// MaxResponseSize caps how much of a response body is read.
	MaxResponseSize = 10 * 1024 * 1024

	categoriesPath = "/software/categories/"
	listPath       = "/software/list/"
	detailPath     = "/software/detail/%s/"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrNotFound is reported (to the log) when the portal answers 404.
var ErrNotFound = errors.New("not found")

// APIError describes a non-2xx answer from the portal.
type APIError struct {
	Path   string
	Status int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("catalog %s: HTTP %d", e.Path, e.Status)
}

// =============================================================================
// CLIENT
// =============================================================================

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns the production configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// Client talks to one portal origin.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logging.Logger
}

// NewClient creates a Client. Zero fields in cfg take their defaults; a nil
// cfg or logger is allowed.
func NewClient(cfg *ClientConfig, log *logging.Logger) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logging.Nop()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With("component", "catalog"),
	}
}

// BaseURL returns the origin the client is bound to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchCategories returns every category, or an empty slice on any failure.
func (c *Client) FetchCategories(ctx context.Context) []Category {
	var categories []Category
	if err := c.getJSON(ctx, categoriesPath, &categories); err != nil {
		c.log.Error("failed to fetch categories", "path", categoriesPath, "error", err)
		return []Category{}
	}
	if categories == nil {
		categories = []Category{}
	}
	return categories
}

// FetchSoftwareList returns the first page of the software list, or a zero
// list on any failure.
func (c *Client) FetchSoftwareList(ctx context.Context) SoftwareList {
	var list SoftwareList
	if err := c.getJSON(ctx, listPath, &list); err != nil {
		c.log.Error("failed to fetch software list", "path", listPath, "error", err)
		return SoftwareList{Count: 0, Results: []SoftwareSummary{}}
	}
	if list.Results == nil {
		list.Results = []SoftwareSummary{}
	}
	return list
}

// FetchSoftwareDetail returns the record for slug, or nil when it does not
// exist or cannot be fetched.
func (c *Client) FetchSoftwareDetail(ctx context.Context, slug string) *SoftwareDetail {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil
	}
	path := fmt.Sprintf(detailPath, url.PathEscape(slug))

	var detail *SoftwareDetail
	if err := c.getJSON(ctx, path, &detail); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.log.Info("software not found", "slug", slug)
		} else {
			c.log.Error("failed to fetch software detail", "path", path, "error", err)
		}
		return nil
	}
	// A null or empty object is the portal's way of saying "no such entry".
	if detail == nil || (detail.Slug == "" && detail.Title == "") {
		c.log.Info("software not found", "slug", slug, "reason", "empty body")
		return nil
	}
	return detail
}

// LoadCatalog fetches categories and the software list concurrently and
// returns once both have completed. Each half degrades on its own.
func (c *Client) LoadCatalog(ctx context.Context) ([]Category, SoftwareList) {
	var (
		categories []Category
		list       SoftwareList
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		categories = c.FetchCategories(gctx)
		return nil
	})
	g.Go(func() error {
		list = c.FetchSoftwareList(gctx)
		return nil
	})
	_ = g.Wait()

	c.log.Debug("catalog loaded", "categories", len(categories), "software", len(list.Results), "count", list.Count)
	return categories, list
}

// Ping fetches the category list and reports how many categories came back.
// Unlike the Fetch methods it returns the failure instead of degrading.
func (c *Client) Ping(ctx context.Context) (int, error) {
	var categories []Category
	if err := c.getJSON(ctx, categoriesPath, &categories); err != nil {
		return 0, err
	}
	return len(categories), nil
}

// getJSON issues a GET for path and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug("catalog request", "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Path: path, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if len(body) > MaxResponseSize {
		return fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
