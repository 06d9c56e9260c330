package database

import (
	"context"
	"errors"
	"fmt"
	"issuetracker/models"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *MongoStore) CreateProject(ctx context.Context, name string) (*models.Project, error) {
	project := &models.Project{
		ID:   primitive.NewObjectID().Hex(),
		Name: name,
	}

	if _, err := s.projects.InsertOne(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	log.Printf("Created project: %s (ID: %s)", project.Name, project.ID)
	return project, nil
}

// FindProject returns the first project, in natural order, with exactly this name.
func (s *MongoStore) FindProject(ctx context.Context, name string) (*models.Project, error) {
	var project models.Project
	err := s.projects.FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("project %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &project, nil
}

// FindProjects lists projects named name, or every project when name is empty.
func (s *MongoStore) FindProjects(ctx context.Context, name string) ([]models.Project, error) {
	filter := bson.D{}
	if name != "" {
		filter = bson.D{{Key: "name", Value: name}}
	}

	cursor, err := s.projects.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}

func (s *MongoStore) UpdateProject(ctx context.Context, id, name string) (*models.Project, error) {
	var project models.Project
	err := s.projects.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "name", Value: name}}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return &project, nil
}

// DeleteProject removes the project and then every issue that references it.
func (s *MongoStore) DeleteProject(ctx context.Context, id string) error {
	result, err := s.projects.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}

	if _, err := s.issues.DeleteMany(ctx, bson.D{{Key: "projectId", Value: id}}); err != nil {
		return fmt.Errorf("failed to delete project issues: %w", err)
	}

	log.Printf("Deleted project: %s", id)
	return nil
}
