package database

import (
	"context"
	"errors"
	"fmt"
	"issuetracker/models"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	columnID        = "id"
	columnName      = "name"
	columnProjectID = "project_id"
	columnDoc       = "doc"
)

func (db *PostgresStore) CreateProject(ctx context.Context, name string) (*models.Project, error) {
	query := `
		INSERT INTO projects (id, name)
		VALUES ($1, $2)
		RETURNING id, name
	`

	project, err := scanProject(db.Pool.QueryRow(ctx, query, uuid.NewString(), name))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	log.Printf("Created project: %s (ID: %s)", project.Name, project.ID)
	return project, nil
}

// FindProject returns the oldest project with exactly this name.
func (db *PostgresStore) FindProject(ctx context.Context, name string) (*models.Project, error) {
	query := `
		SELECT id, name
		FROM projects
		WHERE name = $1
		ORDER BY created_at
		LIMIT 1
	`

	project, err := scanProject(db.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("project %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

// FindProjects lists projects named name, or every project when name is empty.
func (db *PostgresStore) FindProjects(ctx context.Context, name string) ([]models.Project, error) {
	qb := NewQueryBuilder()
	if name != "" {
		qb.AddCondition(columnName, name)
	}

	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM projects
		%s
		ORDER BY created_at
	`, columnID, columnName, qb.WhereClause())

	rows, err := db.Pool.Query(ctx, query, qb.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

func (db *PostgresStore) UpdateProject(ctx context.Context, id, name string) (*models.Project, error) {
	query := `
		UPDATE projects SET name = $2
		WHERE id = $1
		RETURNING id, name
	`

	project, err := scanProject(db.Pool.QueryRow(ctx, query, id, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject removes the project and, through the foreign key, its issues.
func (db *PostgresStore) DeleteProject(ctx context.Context, id string) error {
	query := `DELETE FROM projects WHERE id = $1`

	result, err := db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}

	log.Printf("Deleted project: %s", id)
	return nil
}

// Helper functions

func scanProject(row rowScanner) (*models.Project, error) {
	var project models.Project
	if err := row.Scan(&project.ID, &project.Name); err != nil {
		return nil, err
	}
	return &project, nil
}

func scanProjects(rows rowsScanner) ([]models.Project, error) {
	projects := []models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}
