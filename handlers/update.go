package handlers

import (
	"issuetracker/models"
)

var updatableStrings = []string{
	models.FieldIssueTitle,
	models.FieldIssueText,
	models.FieldCreatedBy,
	models.FieldAssignedTo,
	models.FieldStatusText,
}

// hasUpdates is the gate in front of an update: at least one updatable
// field, open included, must be sent with a value other than "". null
// passes the gate but changes nothing.
func hasUpdates(body map[string]any) bool {
	for _, key := range updatableStrings {
		if sent(body, key) {
			return true
		}
	}
	return sent(body, models.FieldOpen)
}

// buildUpdate keeps only truthy string fields, so a string field cannot be
// cleared through the API. open is kept whenever sent with a non-null
// value, false included. Objects and arrays fail with a CastError.
func buildUpdate(body map[string]any) (models.IssueUpdate, error) {
	update := models.IssueUpdate{UpdatedOn: models.Now()}

	targets := map[string]**string{
		models.FieldIssueTitle: &update.IssueTitle,
		models.FieldIssueText:  &update.IssueText,
		models.FieldCreatedBy:  &update.CreatedBy,
		models.FieldAssignedTo: &update.AssignedTo,
		models.FieldStatusText: &update.StatusText,
	}
	for key, target := range targets {
		s, ok, err := stringField(body, key)
		if err != nil {
			return models.IssueUpdate{}, err
		}
		if ok {
			*target = &s
		}
	}

	if v := body[models.FieldOpen]; v != nil && v != "" {
		open, err := models.ParseOpen(body[models.FieldOpen])
		if err != nil {
			return models.IssueUpdate{}, err
		}
		update.Open = &open
	}

	return update, nil
}
