package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"issuetracker/database"
	"issuetracker/models"
	"sync"
)

// memStore is an in-memory database.Store. The err fields force the
// matching operation to fail.
type memStore struct {
	mu       sync.Mutex
	nextID   int
	projects []models.Project
	issues   []models.Issue

	errFindProject error
	errCreateIssue error
	errFindIssues  error
	errPing        error
}

var _ database.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) newID() string {
	s.nextID++
	return fmt.Sprintf("%024x", s.nextID)
}

func (s *memStore) CreateProject(ctx context.Context, name string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := models.Project{ID: s.newID(), Name: name}
	s.projects = append(s.projects, p)
	return &p, nil
}

func (s *memStore) FindProject(ctx context.Context, name string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.errFindProject != nil {
		return nil, s.errFindProject
	}
	for _, p := range s.projects {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *memStore) FindProjects(ctx context.Context, name string) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects := []models.Project{}
	for _, p := range s.projects {
		if name == "" || p.Name == name {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (s *memStore) UpdateProject(ctx context.Context, id, name string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i].Name = name
			p := s.projects[i]
			return &p, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *memStore) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

func (s *memStore) CreateIssue(ctx context.Context, issue *models.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.errCreateIssue != nil {
		return s.errCreateIssue
	}
	issue.ID = s.newID()
	s.issues = append(s.issues, *issue)
	return nil
}

func (s *memStore) FindIssue(ctx context.Context, id string) (*models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, issue := range s.issues {
		if issue.ID == id {
			return &issue, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *memStore) FindIssues(ctx context.Context, projectID string, filter models.IssueFilter) ([]models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.errFindIssues != nil {
		return nil, s.errFindIssues
	}

	issues := []models.Issue{}
	for _, issue := range s.issues {
		if issue.ProjectID == projectID && matches(issue, filter) {
			issues = append(issues, issue)
		}
	}
	return issues, nil
}

func (s *memStore) UpdateIssue(ctx context.Context, id string, update models.IssueUpdate) (*models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.issues {
		if s.issues[i].ID == id {
			update.Apply(&s.issues[i])
			issue := s.issues[i]
			return &issue, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *memStore) DeleteIssue(ctx context.Context, id, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.issues {
		if s.issues[i].ID == id && s.issues[i].ProjectID == projectID {
			s.issues = append(s.issues[:i], s.issues[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

func (s *memStore) Ping(ctx context.Context) error {
	return s.errPing
}

func (s *memStore) Migrate(ctx context.Context) error {
	return nil
}

func (s *memStore) Close(ctx context.Context) error {
	return nil
}

// matches compares JSON encodings, the same equality the JSONB backend uses.
func matches(issue models.Issue, filter models.IssueFilter) bool {
	raw, err := json.Marshal(issue)
	if err != nil {
		return false
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return false
	}

	for key, values := range filter {
		field, ok := doc[key]
		if !ok {
			return false
		}

		found := false
		for _, v := range values {
			want, err := json.Marshal(v)
			if err == nil && bytes.Equal(want, field) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
