package models

import (
	"time"
)

// IssueUpdate is a sparse update. A nil field is left untouched; a non-nil
// field is written, including the empty string and false.
type IssueUpdate struct {
	IssueTitle *string
	IssueText  *string
	CreatedBy  *string
	AssignedTo *string
	StatusText *string
	Open       *bool
	UpdatedOn  time.Time
}

// Fields returns the document fields the update writes, keyed by wire name.
// updated_on is always present.
func (u IssueUpdate) Fields() map[string]any {
	fields := map[string]any{FieldUpdatedOn: u.UpdatedOn}

	strs := []struct {
		name  string
		value *string
	}{
		{FieldIssueTitle, u.IssueTitle},
		{FieldIssueText, u.IssueText},
		{FieldCreatedBy, u.CreatedBy},
		{FieldAssignedTo, u.AssignedTo},
		{FieldStatusText, u.StatusText},
	}
	for _, s := range strs {
		if s.value != nil {
			fields[s.name] = *s.value
		}
	}

	if u.Open != nil {
		fields[FieldOpen] = *u.Open
	}

	return fields
}

// Apply writes the update onto issue in place.
func (u IssueUpdate) Apply(issue *Issue) {
	if u.IssueTitle != nil {
		issue.IssueTitle = *u.IssueTitle
	}
	if u.IssueText != nil {
		issue.IssueText = *u.IssueText
	}
	if u.CreatedBy != nil {
		issue.CreatedBy = *u.CreatedBy
	}
	if u.AssignedTo != nil {
		issue.AssignedTo = *u.AssignedTo
	}
	if u.StatusText != nil {
		issue.StatusText = *u.StatusText
	}
	if u.Open != nil {
		issue.Open = *u.Open
	}
	issue.UpdatedOn = u.UpdatedOn
}
