package models

// Project is a named grouping of issues.
// Name is the external key clients address a project by; it is not unique at
// the storage level, so concurrent first writes can create duplicates.
type Project struct {
	ID   string `json:"_id" bson:"_id"`
	Name string `json:"name" bson:"name"`
}

// ProjectsResponse is the response format for project listings.
type ProjectsResponse struct {
	Projects []Project `json:"projects"`
	Total    int       `json:"total"`
}
