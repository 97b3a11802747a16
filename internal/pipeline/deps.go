package pipeline

import (
	"context"

	"github.com/mosesab/viralytics/internal/models"
	"github.com/mosesab/viralytics/internal/services"
	"github.com/mosesab/viralytics/internal/textclass"
)

// Store is the persistence surface the stages read from and write back to.
// repository.Store implements it; each call is a self-contained transaction.
type Store interface {
	GetProject(ctx context.Context, id int64) (*models.Project, error)
	IsPaused(ctx context.Context, id int64) (bool, error)
	SaveTrends(ctx context.Context, projectID int64, trends []models.SelectedTrend) error
	SaveVideos(ctx context.Context, projectID int64, label string, videos []models.Video) (int, error)
	UnanalyzedVideos(ctx context.Context, projectID int64) ([]models.Video, error)
	ApplyAnalysis(ctx context.Context, projectID int64, analyzed []models.AnalyzedVideo, topIDs map[string]bool) error
	TopUnscriptedVideos(ctx context.Context, projectID int64) ([]models.Video, error)
	SaveScript(ctx context.Context, videoDBID int64, script, localPath *string) error
}

// Events is the status/log sink. Delivery is best-effort; implementations
// must never block stage progress on a slow observer.
type Events interface {
	Log(ctx context.Context, message string)
	Error(ctx context.Context, message string)
	Status(ctx context.Context, step, status string, projectID int64)
	WorkflowComplete(ctx context.Context, projectID int64)
}

// TextGenerator is the shared generative-text session.
type TextGenerator interface {
	Generate(ctx context.Context, params services.GenerateParams) ([]byte, error)
}

// TrendsSource exposes the two trending-keyword feeds. Calls may block; the
// selector wraps them in its own retry discipline.
type TrendsSource interface {
	Daily(ctx context.Context) ([]string, error)
	Realtime(ctx context.Context, count int, category, region string) ([]string, error)
}

// VideoSearcher is the video-search capability.
type VideoSearcher interface {
	Search(ctx context.Context, keyword string, count int) ([]services.RawVideo, error)
}

// CommentProvider fetches comment texts for a video.
type CommentProvider interface {
	Comments(ctx context.Context, videoID string, count int) ([]string, error)
}

// MediaFetcher retrieves raw media bytes.
type MediaFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// TextClassifier scores a comment thread. textclass.Pool implements it with
// CPU work isolated on its own workers.
type TextClassifier interface {
	Classify(ctx context.Context, comments []string) (textclass.Result, error)
}
