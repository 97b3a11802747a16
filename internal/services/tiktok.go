package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// TikTokClient talks to the JSON endpoints behind the TikTok web UI. One
// client is created at startup and shared read-only across all concurrent
// stage invocations.
type TikTokClient struct {
	httpClient *http.Client
	baseURL    string
	sessionID  string
}

// HTTPStatusError carries the status code so call sites can separate
// permanent rejections (4xx) from transient provider trouble.
type HTTPStatusError struct {
	Code int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("provider returned HTTP %d", e.Code)
}

// Transient reports whether retrying the request can plausibly succeed.
func (e *HTTPStatusError) Transient() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// RawVideo is one search result as the provider shapes it.
type RawVideo struct {
	ID         string `json:"id"`
	Desc       string `json:"desc"`
	CreateTime int64  `json:"createTime"`
	Author     struct {
		UniqueID string `json:"uniqueId"`
	} `json:"author"`
	Video struct {
		PlayAddr string `json:"playAddr"`
		Cover    string `json:"cover"`
	} `json:"video"`
	Stats map[string]float64 `json:"stats"`
}

func NewTikTokClient(sessionID string) *TikTokClient {
	return &TikTokClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://www.tiktok.com",
		sessionID:  sessionID,
	}
}

// Search pages through results for a keyword until count items are collected
// or the provider reports exhaustion.
func (c *TikTokClient) Search(ctx context.Context, keyword string, count int) ([]RawVideo, error) {
	var items []RawVideo
	offset := 0

	for len(items) < count {
		q := url.Values{
			"keyword": {keyword},
			"offset":  {fmt.Sprintf("%d", offset)},
			"count":   {"20"},
		}

		body, err := c.get(ctx, "/api/search/item/full/", q)
		if err != nil {
			return nil, err
		}

		var payload struct {
			ItemList []RawVideo `json:"item_list"`
			HasMore  bool       `json:"has_more"`
			Cursor   int        `json:"cursor"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("failed to decode search response: %w", err)
		}

		items = append(items, payload.ItemList...)
		if !payload.HasMore || len(payload.ItemList) == 0 {
			break
		}
		offset = payload.Cursor
	}

	if len(items) > count {
		items = items[:count]
	}
	return items, nil
}

// Comments returns up to count comment texts for a video.
func (c *TikTokClient) Comments(ctx context.Context, videoID string, count int) ([]string, error) {
	var comments []string
	cursor := 0

	for len(comments) < count {
		q := url.Values{
			"aweme_id": {videoID},
			"cursor":   {fmt.Sprintf("%d", cursor)},
			"count":    {"20"},
		}

		body, err := c.get(ctx, "/api/comment/list/", q)
		if err != nil {
			return nil, err
		}

		var payload struct {
			Comments []struct {
				Text string `json:"text"`
			} `json:"comments"`
			HasMore int `json:"has_more"`
			Cursor  int `json:"cursor"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("failed to decode comment response: %w", err)
		}

		for _, cm := range payload.Comments {
			if cm.Text != "" {
				comments = append(comments, cm.Text)
			}
		}
		if payload.HasMore == 0 || len(payload.Comments) == 0 {
			break
		}
		cursor = payload.Cursor
	}

	if len(comments) > count {
		comments = comments[:count]
	}
	return comments, nil
}

func (c *TikTokClient) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Referer", c.baseURL+"/")
	if c.sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "sessionid", Value: c.sessionID})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPStatusError{Code: resp.StatusCode}
	}

	return io.ReadAll(resp.Body)
}
