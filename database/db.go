package database

import (
	"context"
	"errors"
	"fmt"
	"issuetracker/models"
	"strings"
)

// ErrNotFound is returned when no document matches a find-one, update or
// delete.
var ErrNotFound = errors.New("not found")

// Store is the data-access layer over the two collections, projects and
// issues. Implementations are safe for concurrent use.
type Store interface {
	CreateProject(ctx context.Context, name string) (*models.Project, error)
	FindProject(ctx context.Context, name string) (*models.Project, error)
	FindProjects(ctx context.Context, name string) ([]models.Project, error)
	UpdateProject(ctx context.Context, id, name string) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error

	CreateIssue(ctx context.Context, issue *models.Issue) error
	FindIssue(ctx context.Context, id string) (*models.Issue, error)
	FindIssues(ctx context.Context, projectID string, filter models.IssueFilter) ([]models.Issue, error)
	UpdateIssue(ctx context.Context, id string, update models.IssueUpdate) (*models.Issue, error)
	DeleteIssue(ctx context.Context, id, projectID string) error

	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close(ctx context.Context) error
}

// Connect builds a Store for databaseURL, choosing the backend from its
// scheme. It does not wait for the server to be reachable; call Ping for
// that. defaultName is the Mongo database used when the URL names none.
func Connect(ctx context.Context, databaseURL, defaultName string) (Store, error) {
	switch {
	case strings.HasPrefix(databaseURL, "mongodb://"), strings.HasPrefix(databaseURL, "mongodb+srv://"):
		store, err := ConnectMongo(ctx, databaseURL, defaultName)
		if err != nil {
			return nil, err
		}
		return store, nil
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		store, err := ConnectPostgres(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported database URL scheme (want mongodb:// or postgres://)")
	}
}

var (
	_ Store = (*PostgresStore)(nil)
	_ Store = (*MongoStore)(nil)
)
