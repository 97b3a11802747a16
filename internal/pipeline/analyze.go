package pipeline

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/mosesab/viralytics/internal/models"
	"github.com/mosesab/viralytics/internal/retry"
	"github.com/mosesab/viralytics/internal/services"
)

// AnalyzerConfig holds the curation knobs for the analyze stage.
type AnalyzerConfig struct {
	TopN              int
	MinSentimentScore float64
	MaxComments       int
}

// Analyzer scores fetched videos on audience sentiment and engagement and
// ranks them into a top-picks shortlist.
type Analyzer struct {
	comments   CommentProvider
	classifier TextClassifier
	cfg        AnalyzerConfig
}

var commentFetchPolicy = retry.Policy{
	Attempts:   3,
	Initial:    1 * time.Second,
	Max:        10 * time.Second,
	Multiplier: 2,
}

func NewAnalyzer(comments CommentProvider, classifier TextClassifier, cfg AnalyzerConfig) *Analyzer {
	return &Analyzer{comments: comments, classifier: classifier, cfg: cfg}
}

// Ranking is the outcome of analyzing one batch of videos. All holds every
// successfully analyzed video in input order; Top is the ranked shortlist.
type Ranking struct {
	All    []models.AnalyzedVideo
	Top    []models.AnalyzedVideo
	Failed int
}

// EngagementScore is interactions per play. A video with no recorded plays
// scores zero rather than dividing by zero.
func EngagementScore(stats models.VideoStats) float64 {
	plays := stats["playCount"]
	if plays == 0 {
		return 0
	}
	return (stats["diggCount"] + stats["commentCount"]) / plays
}

// AnalyzeOne fetches a video's comments, classifies them, and attaches the
// resulting scores. A video with no comments still gets a neutral sentiment
// row so it is never re-analyzed on the next run.
func (a *Analyzer) AnalyzeOne(ctx context.Context, video models.Video) (models.AnalyzedVideo, error) {
	comments, err := retry.Do(ctx, commentFetchPolicy, func() ([]string, error) {
		comments, err := a.comments.Comments(ctx, video.VideoID, a.cfg.MaxComments)
		if err != nil {
			var statusErr *services.HTTPStatusError
			if errors.As(err, &statusErr) && !statusErr.Transient() {
				return nil, retry.Permanent(err)
			}
			return nil, err
		}
		return comments, nil
	})
	if err != nil {
		return models.AnalyzedVideo{}, err
	}

	result, err := a.classifier.Classify(ctx, comments)
	if err != nil {
		return models.AnalyzedVideo{}, err
	}

	return models.AnalyzedVideo{
		Video: video,
		Analysis: models.Analysis{
			SentimentScore:  result.Compound,
			SentimentLabel:  result.Label,
			Emotion:         result.Emotion,
			EngagementScore: EngagementScore(video.Stats),
		},
	}, nil
}

// AnalyzeAndRank analyzes every video concurrently, then ranks the ones that
// clear the sentiment floor by engagement. A failure on one video drops only
// that video. Ranking is deterministic: equal engagement scores keep their
// input order.
func (a *Analyzer) AnalyzeAndRank(ctx context.Context, videos []models.Video) Ranking {
	results := make([]*models.AnalyzedVideo, len(videos))

	var wg sync.WaitGroup
	for i, video := range videos {
		wg.Add(1)
		go func(i int, video models.Video) {
			defer wg.Done()
			analyzed, err := a.AnalyzeOne(ctx, video)
			if err != nil {
				return
			}
			results[i] = &analyzed
		}(i, video)
	}
	wg.Wait()

	var ranking Ranking
	for _, r := range results {
		if r == nil {
			ranking.Failed++
			continue
		}
		ranking.All = append(ranking.All, *r)
	}

	eligible := make([]models.AnalyzedVideo, 0, len(ranking.All))
	for _, v := range ranking.All {
		if v.Analysis.SentimentScore >= a.cfg.MinSentimentScore {
			eligible = append(eligible, v)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Analysis.EngagementScore > eligible[j].Analysis.EngagementScore
	})
	if len(eligible) > a.cfg.TopN {
		eligible = eligible[:a.cfg.TopN]
	}
	ranking.Top = eligible

	return ranking
}
