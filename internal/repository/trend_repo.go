package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mosesab/viralytics/internal/models"
)

type TrendRepo struct {
	pool *pgxpool.Pool
}

func NewTrendRepo(pool *pgxpool.Pool) *TrendRepo {
	return &TrendRepo{pool: pool}
}

// CreateBatch inserts the selected trends in one transaction. Keywords are
// intentionally not deduplicated: reruns may legitimately pick the same
// keyword again.
func (r *TrendRepo) CreateBatch(ctx context.Context, projectID int64, trends []models.SelectedTrend) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO trends (project_id, keyword, justification, suggested_video_title, long_term_potential)
		VALUES ($1, $2, $3, $4, $5)`

	for _, t := range trends {
		if _, err := tx.Exec(ctx, query,
			projectID, t.Keyword, t.Justification, t.SuggestedVideoTitle, t.LongTermPotential,
		); err != nil {
			return fmt.Errorf("failed to insert trend %q: %w", t.Keyword, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *TrendRepo) ListByProject(ctx context.Context, projectID int64) ([]models.Trend, error) {
	query := `SELECT id, project_id, keyword, justification, suggested_video_title, long_term_potential
		FROM trends WHERE project_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trends := []models.Trend{}
	for rows.Next() {
		var t models.Trend
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Keyword, &t.Justification,
			&t.SuggestedVideoTitle, &t.LongTermPotential); err != nil {
			return nil, err
		}
		trends = append(trends, t)
	}
	return trends, rows.Err()
}
