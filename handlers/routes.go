package handlers

import (
	"issuetracker/database"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API. Issue routes answer under both /issues and
// /api/issues.
func RegisterRoutes(r gin.IRouter, db database.Store) {
	r.GET("/health", HealthCheck(db))
	r.GET("/healthz", HealthCheck(db))

	r.GET("/projects", ListProjects(db))

	for _, prefix := range []string{"/issues", "/api/issues"} {
		issues := r.Group(prefix)
		issues.GET("/:project", ListIssues(db))
		issues.POST("/:project", CreateIssue(db))
		issues.PUT("/:project", UpdateIssue(db))
		issues.DELETE("/:project", DeleteIssue(db))
	}
}
