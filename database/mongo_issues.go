package database

import (
	"context"
	"errors"
	"fmt"
	"issuetracker/models"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *MongoStore) CreateIssue(ctx context.Context, issue *models.Issue) error {
	issue.ID = primitive.NewObjectID().Hex()

	if _, err := s.issues.InsertOne(ctx, issue); err != nil {
		return fmt.Errorf("failed to create issue: %w", err)
	}

	log.Printf("Created issue: %s (project: %s)", issue.ID, issue.ProjectID)
	return nil
}

func (s *MongoStore) FindIssue(ctx context.Context, id string) (*models.Issue, error) {
	var issue models.Issue
	err := s.issues.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&issue)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("issue %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}

	return &issue, nil
}

// FindIssues returns the project's issues matching every key of filter.
// Returns empty slice (not nil) if nothing matches.
func (s *MongoStore) FindIssues(ctx context.Context, projectID string, filter models.IssueFilter) ([]models.Issue, error) {
	start := time.Now()
	defer func() {
		log.Printf("FindIssues: duration=%v project=%s filters=%v",
			time.Since(start), projectID, filter.Keys())
	}()

	cursor, err := s.issues.Find(ctx, issueFilterDoc(projectID, filter))
	if err != nil {
		return nil, fmt.Errorf("failed to query issues: %w", err)
	}

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, fmt.Errorf("error iterating issues: %w", err)
	}

	return issues, nil
}

func (s *MongoStore) UpdateIssue(ctx context.Context, id string, update models.IssueUpdate) (*models.Issue, error) {
	var issue models.Issue
	err := s.issues.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		issueUpdateDoc(update),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&issue)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("issue %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update issue: %w", err)
	}

	log.Printf("Updated issue: %s", id)
	return &issue, nil
}

// DeleteIssue removes the issue only if it belongs to projectID.
func (s *MongoStore) DeleteIssue(ctx context.Context, id, projectID string) error {
	result, err := s.issues.DeleteOne(ctx, bson.D{
		{Key: "_id", Value: id},
		{Key: "projectId", Value: projectID},
	})
	if err != nil {
		return fmt.Errorf("failed to delete issue: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("issue %s: %w", id, ErrNotFound)
	}

	log.Printf("Deleted issue: %s", id)
	return nil
}

// Helper functions

// issueFilterDoc scopes filter to projectID. The scope is its own $and
// clause so a projectId key in filter can narrow it but never replace it.
func issueFilterDoc(projectID string, filter models.IssueFilter) bson.D {
	scope := bson.D{{Key: "projectId", Value: projectID}}
	if len(filter) == 0 {
		return scope
	}

	clauses := bson.A{scope}
	for _, key := range filter.Keys() {
		values := filter[key]
		if len(values) == 1 {
			clauses = append(clauses, bson.D{{Key: key, Value: values[0]}})
			continue
		}
		clauses = append(clauses, bson.D{{Key: key, Value: bson.D{{Key: "$in", Value: bson.A(values)}}}})
	}

	return bson.D{{Key: "$and", Value: clauses}}
}

func issueUpdateDoc(update models.IssueUpdate) bson.D {
	return bson.D{{Key: "$set", Value: bson.M(update.Fields())}}
}
