package handlers

import (
	"issuetracker/database"
	"issuetracker/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListProjects lists every project, or those named ?name= exactly.
func ListProjects(db database.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		projects, err := db.FindProjects(c.Request.Context(), c.Query("name"))
		if err != nil {
			logf(c, "ListProjects database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
			return
		}

		c.JSON(http.StatusOK, models.ProjectsResponse{
			Projects: projects,
			Total:    len(projects),
		})
	}
}
