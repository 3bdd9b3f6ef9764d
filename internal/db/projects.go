package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"tuberank/internal/models"
)

// CreateProject inserts a new project owned by userID.
func (d *DB) CreateProject(ctx context.Context, p *models.Project) error {
	query := `
		INSERT INTO projects (user_id, title)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	return d.Pool.QueryRow(ctx, query, p.UserID, p.Title).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetProjectsByUser returns a user's projects, newest first.
func (d *DB) GetProjectsByUser(ctx context.Context, userID string) ([]models.Project, error) {
	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := d.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetProject returns a project by ID, scoped to its owner.
func (d *DB) GetProject(ctx context.Context, id uuid.UUID, userID string) (*models.Project, error) {
	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM projects
		WHERE id = $1 AND user_id = $2
	`
	var p models.Project
	err := d.Pool.QueryRow(ctx, query, id, userID).Scan(&p.ID, &p.UserID, &p.Title, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// AddProjectKeyword saves a scored keyword into a project. A keyword already
// saved in the project (case-insensitive) is rejected.
func (d *DB) AddProjectKeyword(ctx context.Context, k *models.ProjectKeyword) error {
	query := `
		INSERT INTO project_keywords (project_id, keyword, competition, demand)
		VALUES ($1, $2, $3, $4)
		RETURNING id, added_at
	`
	err := d.Pool.QueryRow(ctx, query, k.ProjectID, k.Keyword, k.Competition, k.Demand).Scan(&k.ID, &k.AddedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateProjectKeyword
		}
		return err
	}
	return nil
}

// GetProjectKeywords returns the keywords saved in a project, oldest first.
func (d *DB) GetProjectKeywords(ctx context.Context, projectID uuid.UUID) ([]models.ProjectKeyword, error) {
	query := `
		SELECT id, project_id, keyword, competition, demand, added_at
		FROM project_keywords
		WHERE project_id = $1
		ORDER BY added_at
	`
	rows, err := d.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keywords []models.ProjectKeyword
	for rows.Next() {
		var k models.ProjectKeyword
		if err := rows.Scan(&k.ID, &k.ProjectID, &k.Keyword, &k.Competition, &k.Demand, &k.AddedAt); err != nil {
			return nil, err
		}
		keywords = append(keywords, k)
	}
	return keywords, rows.Err()
}
