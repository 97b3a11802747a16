package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mosesab/viralytics/internal/models"
)

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

const videoColumns = `id, project_id, trend_keyword, video_id, author_username, create_time,
	description, video_url, cover_url, stats, pipeline_state,
	sentiment_compound_score, sentiment_polarity, emotion, engagement_score, is_top_pick,
	generated_script, local_file_path`

// InsertFetched stores freshly fetched videos under a trend keyword (or region
// label). The provider video_id is globally unique: a row that already exists
// is skipped, never overwritten. Returns the number of newly inserted rows.
func (r *VideoRepo) InsertFetched(ctx context.Context, projectID int64, label string, videos []models.Video) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO videos (
			project_id, trend_keyword, video_id, author_username, create_time,
			description, video_url, cover_url, stats
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (video_id) DO NOTHING`

	inserted := 0
	for _, v := range videos {
		statsBytes, _ := json.Marshal(v.Stats)
		if v.Stats == nil {
			statsBytes = []byte("{}")
		}

		tag, err := tx.Exec(ctx, query,
			projectID, label, v.VideoID, v.Author, v.CreateTime,
			v.Description, v.VideoURL, v.CoverURL, statsBytes,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert video %s: %w", v.VideoID, err)
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return inserted, nil
}

// ListUnanalyzed returns the project's videos the analyze stage has not
// touched yet. Keyed off the sentiment score so a re-run never re-selects an
// already analyzed video.
func (r *VideoRepo) ListUnanalyzed(ctx context.Context, projectID int64) ([]models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos
		WHERE project_id = $1 AND sentiment_compound_score IS NULL ORDER BY id`
	return r.queryVideos(ctx, query, projectID)
}

// ApplyAnalysis writes analysis results for a batch of videos and flags the
// top picks, all in one transaction: either every row updates or none do.
func (r *VideoRepo) ApplyAnalysis(ctx context.Context, projectID int64, analyzed []models.AnalyzedVideo, topIDs map[string]bool) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `UPDATE videos SET
			sentiment_compound_score = $1,
			sentiment_polarity = $2,
			emotion = $3,
			engagement_score = $4,
			is_top_pick = $5,
			pipeline_state = $6
		WHERE id = $7 AND project_id = $8`

	for _, v := range analyzed {
		a := v.Analysis
		if _, err := tx.Exec(ctx, query,
			a.SentimentScore, a.SentimentLabel, a.Emotion, a.EngagementScore,
			topIDs[v.VideoID], models.StateAnalyzed, v.ID, projectID,
		); err != nil {
			return fmt.Errorf("failed to update analysis for video %s: %w", v.VideoID, err)
		}
	}

	return tx.Commit(ctx)
}

// ListTopUnscripted returns top-pick videos with no generated script yet.
func (r *VideoRepo) ListTopUnscripted(ctx context.Context, projectID int64) ([]models.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos
		WHERE project_id = $1 AND is_top_pick = TRUE AND generated_script IS NULL ORDER BY id`
	return r.queryVideos(ctx, query, projectID)
}

// SetScript records the generated script and downloaded media path for one
// video. Either value may be nil (failed generation or skipped download).
func (r *VideoRepo) SetScript(ctx context.Context, videoDBID int64, script, localPath *string) error {
	state := models.StateAnalyzed
	if script != nil {
		state = models.StateScripted
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE videos SET generated_script = $1, local_file_path = $2, pipeline_state = $3 WHERE id = $4`,
		script, localPath, state, videoDBID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Summary collects the project's trends and videos, partitioning videos by
// the top-pick flag.
func (r *VideoRepo) Summary(ctx context.Context, projectID int64, trends []models.Trend) (*models.ProjectSummary, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE project_id = $1 ORDER BY id`
	videos, err := r.queryVideos(ctx, query, projectID)
	if err != nil {
		return nil, err
	}

	summary := &models.ProjectSummary{
		Trends:        trends,
		FetchedVideos: []models.Video{},
		TopVideos:     []models.Video{},
	}
	for _, v := range videos {
		if v.IsTopPick {
			summary.TopVideos = append(summary.TopVideos, v)
		} else {
			summary.FetchedVideos = append(summary.FetchedVideos, v)
		}
	}
	return summary, nil
}

func (r *VideoRepo) queryVideos(ctx context.Context, query string, args ...interface{}) ([]models.Video, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := []models.Video{}
	for rows.Next() {
		var v models.Video
		var statsBytes []byte
		err := rows.Scan(
			&v.ID, &v.ProjectID, &v.TrendKeyword, &v.VideoID, &v.Author, &v.CreateTime,
			&v.Description, &v.VideoURL, &v.CoverURL, &statsBytes, &v.PipelineState,
			&v.SentimentScore, &v.SentimentLabel, &v.Emotion, &v.EngagementScore, &v.IsTopPick,
			&v.GeneratedScript, &v.LocalFilePath,
		)
		if err != nil {
			return nil, err
		}
		if len(statsBytes) > 0 {
			json.Unmarshal(statsBytes, &v.Stats)
		}
		if v.Stats == nil {
			v.Stats = models.VideoStats{}
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}
