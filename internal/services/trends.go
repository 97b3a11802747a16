package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GoogleTrendsClient reads the trending-searches JSON endpoints behind the
// Google Trends UI. Both endpoints prefix their JSON with an anti-hijacking
// marker that has to be stripped before decoding.
type GoogleTrendsClient struct {
	httpClient *http.Client
	baseURL    string
}

const trendsJSONPrefix = ")]}',"

func NewGoogleTrendsClient() *GoogleTrendsClient {
	return &GoogleTrendsClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://trends.google.com",
	}
}

// Daily returns today's top trending search queries for the US edition.
func (c *GoogleTrendsClient) Daily(ctx context.Context) ([]string, error) {
	q := url.Values{"hl": {"en-US"}, "tz": {"360"}, "geo": {"US"}}
	body, err := c.get(ctx, "/trends/api/dailytrends", q)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Default struct {
			TrendingSearchesDays []struct {
				TrendingSearches []struct {
					Title struct {
						Query string `json:"query"`
					} `json:"title"`
				} `json:"trendingSearches"`
			} `json:"trendingSearchesDays"`
		} `json:"default"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode daily trends: %w", err)
	}

	var keywords []string
	for _, day := range payload.Default.TrendingSearchesDays {
		for _, s := range day.TrendingSearches {
			if s.Title.Query != "" {
				keywords = append(keywords, s.Title.Query)
			}
		}
	}
	return keywords, nil
}

// Realtime returns currently trending story titles.
func (c *GoogleTrendsClient) Realtime(ctx context.Context, count int, category, region string) ([]string, error) {
	q := url.Values{
		"hl":   {"en-US"},
		"tz":   {"360"},
		"cat":  {category},
		"geo":  {region},
		"fi":   {"0"},
		"fs":   {"0"},
		"ri":   {"300"},
		"rs":   {fmt.Sprintf("%d", count)},
		"sort": {"0"},
	}
	body, err := c.get(ctx, "/trends/api/realtimetrends", q)
	if err != nil {
		return nil, err
	}

	var payload struct {
		StorySummaries struct {
			TrendingStories []struct {
				Title string `json:"title"`
			} `json:"trendingStories"`
		} `json:"storySummaries"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode realtime trends: %w", err)
	}

	var keywords []string
	for _, story := range payload.StorySummaries.TrendingStories {
		if story.Title != "" {
			keywords = append(keywords, story.Title)
		}
		if len(keywords) >= count {
			break
		}
	}
	return keywords, nil
}

func (c *GoogleTrendsClient) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("trends request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trends endpoint returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read trends response: %w", err)
	}

	cleaned := strings.TrimPrefix(strings.TrimSpace(string(body)), trendsJSONPrefix)
	return []byte(strings.TrimSpace(cleaned)), nil
}
