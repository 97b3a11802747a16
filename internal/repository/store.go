package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mosesab/viralytics/internal/models"
)

// Store bundles the three repositories behind the single surface the
// pipeline stages read from and write to.
type Store struct {
	Projects *ProjectRepo
	Trends   *TrendRepo
	Videos   *VideoRepo
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Projects: NewProjectRepo(pool),
		Trends:   NewTrendRepo(pool),
		Videos:   NewVideoRepo(pool),
	}
}

func (s *Store) CreateProject(ctx context.Context, name, channelDescription string) (*models.Project, error) {
	return s.Projects.Create(ctx, name, channelDescription)
}

func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.Projects.List(ctx)
}

func (s *Store) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	return s.Projects.GetByID(ctx, id)
}

func (s *Store) SetPaused(ctx context.Context, id int64, paused bool) error {
	return s.Projects.SetPaused(ctx, id, paused)
}

func (s *Store) IsPaused(ctx context.Context, id int64) (bool, error) {
	return s.Projects.IsPaused(ctx, id)
}

func (s *Store) SaveTrends(ctx context.Context, projectID int64, trends []models.SelectedTrend) error {
	return s.Trends.CreateBatch(ctx, projectID, trends)
}

func (s *Store) SaveVideos(ctx context.Context, projectID int64, label string, videos []models.Video) (int, error) {
	return s.Videos.InsertFetched(ctx, projectID, label, videos)
}

func (s *Store) UnanalyzedVideos(ctx context.Context, projectID int64) ([]models.Video, error) {
	return s.Videos.ListUnanalyzed(ctx, projectID)
}

func (s *Store) ApplyAnalysis(ctx context.Context, projectID int64, analyzed []models.AnalyzedVideo, topIDs map[string]bool) error {
	return s.Videos.ApplyAnalysis(ctx, projectID, analyzed, topIDs)
}

func (s *Store) TopUnscriptedVideos(ctx context.Context, projectID int64) ([]models.Video, error) {
	return s.Videos.ListTopUnscripted(ctx, projectID)
}

func (s *Store) SaveScript(ctx context.Context, videoDBID int64, script, localPath *string) error {
	return s.Videos.SetScript(ctx, videoDBID, script, localPath)
}

func (s *Store) ProjectSummary(ctx context.Context, projectID int64) (*models.ProjectSummary, error) {
	trends, err := s.Trends.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.Videos.Summary(ctx, projectID, trends)
}
