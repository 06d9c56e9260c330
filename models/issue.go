package models

import (
	"time"
)

// Issue belongs to exactly one project. JSON and BSON field names are the
// wire names clients filter and update by.
type Issue struct {
	ID         string    `json:"_id" bson:"_id"`
	ProjectID  string    `json:"projectId" bson:"projectId"`
	IssueTitle string    `json:"issue_title" bson:"issue_title"`
	IssueText  string    `json:"issue_text" bson:"issue_text"`
	CreatedOn  time.Time `json:"created_on" bson:"created_on"`
	UpdatedOn  time.Time `json:"updated_on" bson:"updated_on"`
	CreatedBy  string    `json:"created_by" bson:"created_by"`
	AssignedTo string    `json:"assigned_to" bson:"assigned_to"`
	Open       bool      `json:"open" bson:"open"`
	StatusText string    `json:"status_text" bson:"status_text"`
}

// Issue field names as they appear in documents and request bodies.
const (
	FieldID         = "_id"
	FieldProjectID  = "projectId"
	FieldIssueTitle = "issue_title"
	FieldIssueText  = "issue_text"
	FieldCreatedOn  = "created_on"
	FieldUpdatedOn  = "updated_on"
	FieldCreatedBy  = "created_by"
	FieldAssignedTo = "assigned_to"
	FieldOpen       = "open"
	FieldStatusText = "status_text"
)

// CreateIssueRequest is the POST payload after conversion to strings.
// IssueTitle, IssueText and CreatedBy are required.
type CreateIssueRequest struct {
	IssueTitle string `json:"issue_title"`
	IssueText  string `json:"issue_text"`
	CreatedBy  string `json:"created_by"`
	AssignedTo string `json:"assigned_to"`
	StatusText string `json:"status_text"`
}

// NewIssue builds an open issue for projectID with both timestamps set to now.
// The ID is assigned by the store on insert.
func NewIssue(projectID string, req CreateIssueRequest, now time.Time) *Issue {
	return &Issue{
		ProjectID:  projectID,
		IssueTitle: req.IssueTitle,
		IssueText:  req.IssueText,
		CreatedOn:  now,
		UpdatedOn:  now,
		CreatedBy:  req.CreatedBy,
		AssignedTo: req.AssignedTo,
		Open:       true,
		StatusText: req.StatusText,
	}
}

// Now returns the current UTC time truncated to the millisecond, the finest
// precision every backend stores.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
