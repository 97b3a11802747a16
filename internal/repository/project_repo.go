package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mosesab/viralytics/internal/models"
)

// ErrNotFound is returned when a referenced project or video does not exist.
var ErrNotFound = errors.New("record not found")

type ProjectRepo struct {
	pool *pgxpool.Pool
}

func NewProjectRepo(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

func (r *ProjectRepo) Create(ctx context.Context, name, channelDescription string) (*models.Project, error) {
	p := &models.Project{Name: name, ChannelDescription: channelDescription}

	query := `INSERT INTO projects (name, channel_description)
		VALUES ($1, $2) RETURNING id, is_paused, created_at`

	err := r.pool.QueryRow(ctx, query, name, channelDescription).
		Scan(&p.ID, &p.IsPaused, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return p, nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	p := &models.Project{}
	query := `SELECT id, name, channel_description, is_paused, created_at
		FROM projects WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.ChannelDescription, &p.IsPaused, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProjectRepo) List(ctx context.Context) ([]models.Project, error) {
	query := `SELECT id, name, channel_description, is_paused, created_at
		FROM projects ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.ChannelDescription, &p.IsPaused, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepo) SetPaused(ctx context.Context, id int64, paused bool) error {
	tag, err := r.pool.Exec(ctx, "UPDATE projects SET is_paused = $1 WHERE id = $2", paused, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IsPaused reports the pause flag for a project. An absent project reads as
// paused, so a workflow against a missing project halts instead of running
// stages nobody owns.
func (r *ProjectRepo) IsPaused(ctx context.Context, id int64) (bool, error) {
	var paused bool
	err := r.pool.QueryRow(ctx, "SELECT is_paused FROM projects WHERE id = $1", id).Scan(&paused)
	if errors.Is(err, pgx.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return true, err
	}
	return paused, nil
}
