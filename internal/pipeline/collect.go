package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/mosesab/viralytics/internal/models"
	"github.com/mosesab/viralytics/internal/retry"
	"github.com/mosesab/viralytics/internal/services"
)

// Collector pulls candidate videos from the provider and normalizes them
// into the shape the rest of the pipeline works with.
type Collector struct {
	searcher VideoSearcher
}

var searchPolicy = retry.Policy{
	Attempts:   5,
	Initial:    2 * time.Second,
	Max:        10 * time.Second,
	Multiplier: 2,
}

func NewCollector(searcher VideoSearcher) *Collector {
	return &Collector{searcher: searcher}
}

// FetchTrending searches the provider for count videos matching keyword.
// Transient provider trouble (429, 5xx, network errors) is retried; any
// other HTTP rejection fails immediately.
func (c *Collector) FetchTrending(ctx context.Context, keyword string, count int) ([]models.Video, error) {
	items, err := retry.Do(ctx, searchPolicy, func() ([]services.RawVideo, error) {
		items, err := c.searcher.Search(ctx, keyword, count)
		if err != nil {
			var statusErr *services.HTTPStatusError
			if errors.As(err, &statusErr) && !statusErr.Transient() {
				return nil, retry.Permanent(err)
			}
			return nil, err
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	videos := make([]models.Video, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		videos = append(videos, normalizeVideo(item))
	}
	return videos, nil
}

func normalizeVideo(raw services.RawVideo) models.Video {
	stats := raw.Stats
	if stats == nil {
		stats = models.VideoStats{}
	}
	return models.Video{
		VideoID:       raw.ID,
		Author:        raw.Author.UniqueID,
		CreateTime:    raw.CreateTime,
		Description:   raw.Desc,
		VideoURL:      raw.Video.PlayAddr,
		CoverURL:      raw.Video.Cover,
		Stats:         stats,
		PipelineState: models.StateUnanalyzed,
	}
}
