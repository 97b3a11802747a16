package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	yt "github.com/kkdai/youtube/v2"
)

// MediaService retrieves raw media bytes from a video URL. Plain HTTP covers
// the usual CDN play addresses; YouTube links need the stream client because
// the watch URL is not the media itself.
type MediaService struct {
	httpClient *http.Client
	ytClient   *yt.Client
	maxBytes   int64
}

const defaultMaxMediaBytes = 200 * 1024 * 1024

func NewMediaService() *MediaService {
	return &MediaService{
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		ytClient:   &yt.Client{},
		maxBytes:   defaultMaxMediaBytes,
	}
}

func (s *MediaService) Fetch(ctx context.Context, mediaURL string) ([]byte, error) {
	if isYouTubeURL(mediaURL) {
		return s.fetchYouTube(ctx, mediaURL)
	}
	return s.fetchHTTP(ctx, mediaURL)
}

func (s *MediaService) fetchHTTP(ctx context.Context, mediaURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", mediaURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("media request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPStatusError{Code: resp.StatusCode}
	}

	return s.readCapped(resp.Body)
}

func (s *MediaService) fetchYouTube(ctx context.Context, mediaURL string) ([]byte, error) {
	video, err := s.ytClient.GetVideoContext(ctx, mediaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch YouTube video metadata: %w", err)
	}

	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		return nil, fmt.Errorf("no playable formats available")
	}

	best := formats[0]
	for _, f := range formats {
		if f.Bitrate > best.Bitrate {
			best = f
		}
	}

	stream, _, err := s.ytClient.GetStreamContext(ctx, video, &best)
	if err != nil {
		return nil, fmt.Errorf("failed to open media stream: %w", err)
	}
	defer stream.Close()

	return s.readCapped(stream)
}

func (s *MediaService) readCapped(r io.Reader) ([]byte, error) {
	limited := io.LimitReader(r, s.maxBytes+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read media stream: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("media exceeds %d MB limit", s.maxBytes/(1024*1024))
	}
	return data, nil
}

func isYouTubeURL(mediaURL string) bool {
	parsed, err := url.Parse(mediaURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Host)
	return strings.Contains(host, "youtube.com") || strings.Contains(host, "youtu.be")
}
