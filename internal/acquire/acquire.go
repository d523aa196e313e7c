// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire fetches message archives from the IETF mail archive
// API, one paginated query per mailing list, fanned out concurrently and
// merged with message-id deduplication.
// See docs/ARCHITECTURE § Acquisition.
package acquire

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/JacckNew/ietf-weavers/internal/httputil"
	"github.com/JacckNew/ietf-weavers/pkg/types"
)

const (
	defaultBaseURL   = "https://mailarchive.ietf.org/api/v1"
	defaultPageSize  = 200
	defaultUserAgent = "ietf-weavers/1.0"
	defaultTimeout   = 30 * time.Second
)

// Client talks to the mail archive API.
type Client struct {
	cfg  types.AcquisitionConfig
	http *http.Client
	log  *zap.Logger
}

// NewClient builds a Client, filling zero-valued config fields with
// defaults. A nil logger is replaced with a no-op one.
func NewClient(cfg types.AcquisitionConfig, log *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}
}

// Request scopes one acquisition run.
type Request struct {
	Lists     []string
	StartDate string
	EndDate   string
}

// messagePage is the API's paginated response envelope.
type messagePage struct {
	Count   int           `json:"count"`
	Next    string        `json:"next"`
	Results []types.Email `json:"results"`
}

// FetchList pages through one mailing list's messages, honoring the
// configured per-page delay and the MaxMessages cap.
func (c *Client) FetchList(ctx context.Context, list string, req Request) ([]types.Email, error) {
	query := url.Values{}
	query.Set("email_list", list)
	query.Set("limit", fmt.Sprint(c.cfg.PageSize))
	if req.StartDate != "" {
		query.Set("start_date", req.StartDate)
	}
	if req.EndDate != "" {
		query.Set("end_date", req.EndDate)
	}
	next := c.cfg.BaseURL + "/message/?" + query.Encode()

	var emails []types.Email
	for page := 0; next != ""; page++ {
		if page > 0 && c.cfg.DownloadDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.cfg.DownloadDelay):
			}
		}

		body, err := c.get(ctx, next)
		if err != nil {
			return nil, fmt.Errorf("list %s page %d: %w", list, page, err)
		}

		var pageData messagePage
		if err := json.Unmarshal(body, &pageData); err != nil {
			return nil, fmt.Errorf("list %s page %d: parsing response: %w", list, page, err)
		}

		for i := range pageData.Results {
			if pageData.Results[i].List() == "" {
				pageData.Results[i].MailingList = list
			}
		}
		emails = append(emails, pageData.Results...)
		c.log.Debug("page fetched",
			zap.String("list", list),
			zap.Int("page", page),
			zap.Int("messages", len(pageData.Results)))

		if c.cfg.MaxMessages > 0 && len(emails) >= c.cfg.MaxMessages {
			emails = emails[:c.cfg.MaxMessages]
			break
		}
		next = pageData.Next
	}
	return emails, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("User-Agent", c.cfg.UserAgent)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := httputil.DoWithRetry(ctx, c.http, httpReq, 0)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return buf, nil
}

// FetchAll fans one FetchList goroutine out per list and merges the
// results, deduplicating by message id. A failed list is logged and
// skipped; the run fails only when every list fails.
func (c *Client) FetchAll(ctx context.Context, req Request) ([]types.Email, error) {
	if len(req.Lists) == 0 {
		return nil, fmt.Errorf("no mailing lists requested")
	}

	type listResult struct {
		list   string
		emails []types.Email
		err    error
	}
	ch := make(chan listResult, len(req.Lists))
	var wg sync.WaitGroup

	for _, list := range req.Lists {
		wg.Add(1)
		go func(list string) {
			defer wg.Done()
			emails, err := c.FetchList(ctx, list, req)
			ch <- listResult{list: list, emails: emails, err: err}
		}(list)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	byList := make(map[string][]types.Email, len(req.Lists))
	failures := 0
	for lr := range ch {
		if lr.err != nil {
			failures++
			c.log.Warn("list fetch failed", zap.String("list", lr.list), zap.Error(lr.err))
			continue
		}
		byList[lr.list] = lr.emails
	}
	if failures == len(req.Lists) {
		return nil, fmt.Errorf("all %d lists failed", len(req.Lists))
	}

	// Merge in stable list order so runs are reproducible.
	lists := make([]string, 0, len(byList))
	for list := range byList {
		lists = append(lists, list)
	}
	sort.Strings(lists)

	seen := make(map[string]bool)
	var merged []types.Email
	duplicates := 0
	for _, list := range lists {
		for _, e := range byList[list] {
			if e.MessageID != "" && seen[e.MessageID] {
				duplicates++
				continue
			}
			if e.MessageID != "" {
				seen[e.MessageID] = true
			}
			merged = append(merged, e)
		}
	}

	c.log.Info("acquisition complete",
		zap.Int("lists", len(lists)),
		zap.Int("messages", len(merged)),
		zap.Int("duplicates", duplicates),
		zap.Int("failed_lists", failures))
	return merged, nil
}

// Save writes the fetched emails as a JSON array, the shape LoadEmails
// consumes.
func Save(path string, emails []types.Email) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	data, err := json.MarshalIndent(emails, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding emails: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
