package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	collectionProjects = "projects"
	collectionIssues   = "issues"

	// codeNamespaceExists is the server error for creating an existing collection.
	codeNamespaceExists = 48
)

var projectValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"name"},
		"properties": bson.M{
			"name": bson.M{"bsonType": "string"},
		},
	},
}

var issueValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"projectId", "issue_title", "issue_text", "created_by", "open", "created_on", "updated_on"},
		"properties": bson.M{
			"projectId":   bson.M{"bsonType": "string"},
			"issue_title": bson.M{"bsonType": "string"},
			"issue_text":  bson.M{"bsonType": "string"},
			"created_by":  bson.M{"bsonType": "string"},
			"assigned_to": bson.M{"bsonType": "string"},
			"status_text": bson.M{"bsonType": "string"},
			"open":        bson.M{"bsonType": "bool"},
			"created_on":  bson.M{"bsonType": "date"},
			"updated_on":  bson.M{"bsonType": "date"},
		},
	},
}

// MongoStore keeps projects and issues in two collections of one database.
type MongoStore struct {
	client   *mongo.Client
	db       *mongo.Database
	projects *mongo.Collection
	issues   *mongo.Collection
}

// ConnectMongo creates the client. The driver connects in the background
// and reconnects on its own; nothing here blocks on the server.
func ConnectMongo(ctx context.Context, uri, defaultName string) (*MongoStore, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	name := cs.Database
	if name == "" {
		name = defaultName
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	db := client.Database(name)
	return &MongoStore{
		client:   client,
		db:       db,
		projects: db.Collection(collectionProjects),
		issues:   db.Collection(collectionIssues),
	}, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	log.Printf("Database connection established (mongo db=%s)", s.db.Name())
	return nil
}

// Migrate installs the collection validators and the lookup indexes.
// projects.name is indexed but deliberately not unique.
func (s *MongoStore) Migrate(ctx context.Context) error {
	if err := s.ensureCollection(ctx, collectionProjects, projectValidator); err != nil {
		return err
	}
	if err := s.ensureCollection(ctx, collectionIssues, issueValidator); err != nil {
		return err
	}

	if _, err := s.projects.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to index projects: %w", err)
	}

	if _, err := s.issues.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "projectId", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to index issues: %w", err)
	}

	log.Printf("Migration applied: mongo validators and indexes (db=%s)", s.db.Name())
	return nil
}

func (s *MongoStore) ensureCollection(ctx context.Context, name string, validator bson.M) error {
	err := s.db.CreateCollection(ctx, name, options.CreateCollection().SetValidator(validator))
	if err == nil {
		return nil
	}

	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != codeNamespaceExists {
		return fmt.Errorf("failed to create collection %s: %w", name, err)
	}

	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := s.db.RunCommand(ctx, cmd).Err(); err != nil {
		return fmt.Errorf("failed to update validator on %s: %w", name, err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect: %w", err)
	}
	log.Println("Database connection closed")
	return nil
}
