package handlers

import (
	"errors"
	"issuetracker/database"
	"issuetracker/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every failure except a persistence error on create is reported with a 200
// and an error field; clients branch on the presence of "error".
const (
	msgProjectNotFound = "project not found"
	msgNoIssuesFound   = "no issues found"
	msgCouldNotGet     = "could not get issues"
	msgRequiredMissing = "required field(s) missing"
	msgServerError     = "server error"
	msgMissingID       = "missing _id"
	msgNoUpdateFields  = "no update field(s) sent"
	msgCouldNotUpdate  = "could not update"
	msgUpdated         = "successfully updated"
	msgCouldNotDelete  = "could not delete"
	msgDeleted         = "successfully deleted"
)

// ListIssues returns the project's issues, narrowed by every query-string
// key as an equality filter.
func ListIssues(db database.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("project")
		ctx := c.Request.Context()

		project, err := db.FindProject(ctx, name)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				logf(c, "Project not found: %s", name)
				c.JSON(http.StatusOK, []gin.H{{"error": msgProjectNotFound}})
				return
			}
			logf(c, "ListIssues database error: %v", err)
			c.JSON(http.StatusOK, gin.H{"error": msgCouldNotGet})
			return
		}

		filter, err := models.ParseIssueFilter(c.Request.URL.Query())
		if err != nil {
			logf(c, "ListIssues filter error: %v", err)
			c.JSON(http.StatusOK, gin.H{"error": msgCouldNotGet})
			return
		}

		issues, err := db.FindIssues(ctx, project.ID, filter)
		if err != nil {
			logf(c, "ListIssues database error: %v", err)
			c.JSON(http.StatusOK, gin.H{"error": msgCouldNotGet})
			return
		}

		if len(issues) == 0 {
			c.JSON(http.StatusOK, []gin.H{{"error": msgNoIssuesFound}})
			return
		}

		c.JSON(http.StatusOK, issues)
	}
}

// CreateIssue files an issue, creating the project on first use. Two
// concurrent first issues for one name can create two projects.
func CreateIssue(db database.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("project")
		ctx := c.Request.Context()

		body, err := readBody(c)
		if err != nil {
			logf(c, "CreateIssue body error: %v", err)
			body = map[string]any{}
		}

		req, ok, err := createRequest(body)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"error": msgRequiredMissing})
			return
		}
		if err != nil {
			logf(c, "CreateIssue cast error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgServerError})
			return
		}

		project, err := db.FindProject(ctx, name)
		if errors.Is(err, database.ErrNotFound) {
			project, err = db.CreateProject(ctx, name)
		}
		if err != nil {
			logf(c, "CreateIssue database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgServerError})
			return
		}

		issue := models.NewIssue(project.ID, req, models.Now())
		if err := db.CreateIssue(ctx, issue); err != nil {
			logf(c, "CreateIssue database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": msgServerError})
			return
		}

		c.JSON(http.StatusOK, issue)
	}
}

// UpdateIssue applies a sparse update to the issue named by _id. The
// project must exist but the update itself is by id alone.
func UpdateIssue(db database.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("project")
		ctx := c.Request.Context()

		body, err := readBody(c)
		if err != nil {
			logf(c, "UpdateIssue body error: %v", err)
			body = map[string]any{}
		}

		id, ok := truthyString(body[models.FieldID])
		if !ok {
			c.JSON(http.StatusOK, gin.H{"error": msgMissingID})
			return
		}

		if !hasUpdates(body) {
			c.JSON(http.StatusOK, gin.H{"error": msgNoUpdateFields, "_id": id})
			return
		}

		if _, err := db.FindProject(ctx, name); err != nil {
			logf(c, "UpdateIssue project lookup failed: %v", err)
			c.JSON(http.StatusOK, gin.H{"error": msgCouldNotUpdate, "_id": id})
			return
		}

		update, err := buildUpdate(body)
		if err != nil {
			logf(c, "UpdateIssue cast error: %v", err)
			c.JSON(http.StatusOK, gin.H{"error": msgCouldNotUpdate, "_id": id})
			return
		}

		if _, err := db.UpdateIssue(ctx, id, update); err != nil {
			logf(c, "UpdateIssue database error: %v", err)
			c.JSON(http.StatusOK, gin.H{"error": msgCouldNotUpdate, "_id": id})
			return
		}

		c.JSON(http.StatusOK, gin.H{"result": msgUpdated, "_id": id})
	}
}

// DeleteIssue removes the issue named by _id if it belongs to the project.
func DeleteIssue(db database.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("project")
		ctx := c.Request.Context()

		body, err := readBody(c)
		if err != nil {
			logf(c, "DeleteIssue body error: %v", err)
			body = map[string]any{}
		}

		id, ok := truthyString(body[models.FieldID])
		if !ok {
			logf(c, "DeleteIssue missing _id")
			c.JSON(http.StatusOK, gin.H{"error": msgMissingID})
			return
		}

		project, err := db.FindProject(ctx, name)
		if err != nil {
			logf(c, "DeleteIssue project lookup failed: %v", err)
			c.JSON(http.StatusOK, gin.H{"error": msgCouldNotDelete, "_id": id})
			return
		}

		if err := db.DeleteIssue(ctx, id, project.ID); err != nil {
			logf(c, "DeleteIssue database error: %v", err)
			c.JSON(http.StatusOK, gin.H{"error": msgCouldNotDelete, "_id": id})
			return
		}

		c.JSON(http.StatusOK, gin.H{"result": msgDeleted, "_id": id})
	}
}
