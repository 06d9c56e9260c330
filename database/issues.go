package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"issuetracker/models"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateIssue assigns issue an ID and stores it as a JSONB document.
// The owning project must already exist.
func (db *PostgresStore) CreateIssue(ctx context.Context, issue *models.Issue) error {
	issue.ID = uuid.NewString()

	doc, err := json.Marshal(issue)
	if err != nil {
		return fmt.Errorf("failed to encode issue: %w", err)
	}

	query := `
		INSERT INTO issues (id, project_id, doc)
		VALUES ($1, $2, $3)
	`

	if _, err := db.Pool.Exec(ctx, query, issue.ID, issue.ProjectID, doc); err != nil {
		return fmt.Errorf("failed to create issue: %w", err)
	}

	log.Printf("Created issue: %s (project: %s)", issue.ID, issue.ProjectID)
	return nil
}

func (db *PostgresStore) FindIssue(ctx context.Context, id string) (*models.Issue, error) {
	query := `SELECT doc FROM issues WHERE id = $1`

	issue, err := scanIssue(db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("issue %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	return issue, nil
}

// FindIssues returns the project's issues matching every key of filter.
// Returns empty slice (not nil) if nothing matches.
func (db *PostgresStore) FindIssues(ctx context.Context, projectID string, filter models.IssueFilter) ([]models.Issue, error) {
	start := time.Now()
	defer func() {
		log.Printf("FindIssues: duration=%v project=%s filters=%v",
			time.Since(start), projectID, filter.Keys())
	}()

	qb := NewQueryBuilder()
	qb.AddCondition(columnProjectID, projectID)

	for _, key := range filter.Keys() {
		docs, err := containmentDocs(key, filter[key])
		if err != nil {
			return nil, err
		}
		qb.AddContainsAny(columnDoc, docs)
	}

	query := fmt.Sprintf(`SELECT %s FROM issues %s`, columnDoc, qb.WhereClause())

	rows, err := db.Pool.Query(ctx, query, qb.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to query issues: %w", err)
	}
	defer rows.Close()

	return scanIssues(rows)
}

// UpdateIssue merges the update into the stored document and returns the
// result.
func (db *PostgresStore) UpdateIssue(ctx context.Context, id string, update models.IssueUpdate) (*models.Issue, error) {
	patch, err := json.Marshal(update.Fields())
	if err != nil {
		return nil, fmt.Errorf("failed to encode update: %w", err)
	}

	query := `
		UPDATE issues SET doc = doc || $2::jsonb
		WHERE id = $1
		RETURNING doc
	`

	issue, err := scanIssue(db.Pool.QueryRow(ctx, query, id, patch))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("issue %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update issue: %w", err)
	}

	log.Printf("Updated issue: %s", id)
	return issue, nil
}

// DeleteIssue removes the issue only if it belongs to projectID.
func (db *PostgresStore) DeleteIssue(ctx context.Context, id, projectID string) error {
	query := `DELETE FROM issues WHERE id = $1 AND project_id = $2`

	result, err := db.Pool.Exec(ctx, query, id, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete issue: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("issue %s: %w", id, ErrNotFound)
	}

	log.Printf("Deleted issue: %s", id)
	return nil
}

// Helper functions

// containmentDocs encodes one single-key JSON object per filter value.
func containmentDocs(key string, values []any) ([][]byte, error) {
	docs := make([][]byte, 0, len(values))
	for _, v := range values {
		doc, err := json.Marshal(map[string]any{key: v})
		if err != nil {
			return nil, fmt.Errorf("failed to encode filter %s: %w", key, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func scanIssue(row rowScanner) (*models.Issue, error) {
	var doc []byte
	if err := row.Scan(&doc); err != nil {
		return nil, err
	}

	var issue models.Issue
	if err := json.Unmarshal(doc, &issue); err != nil {
		return nil, fmt.Errorf("failed to decode issue: %w", err)
	}
	return &issue, nil
}

func scanIssues(rows rowsScanner) ([]models.Issue, error) {
	issues := []models.Issue{}
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan issue: %w", err)
		}
		issues = append(issues, *issue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating issues: %w", err)
	}

	return issues, nil
}
