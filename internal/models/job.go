package models

import "time"

// Job is a browseable job posting.
type Job struct {
	ID             string    `json:"id" bson:"_id"`
	Title          string    `json:"title" bson:"title"`
	Company        string    `json:"company" bson:"company"`
	Location       string    `json:"location" bson:"location"`
	Description    string    `json:"description" bson:"description"`
	Requirements   []string  `json:"requirements" bson:"requirements"`
	Salary         string    `json:"salary,omitempty" bson:"salary,omitempty"`
	JobType        string    `json:"jobType" bson:"jobType"`
	Skills         []string  `json:"skills,omitempty" bson:"skills,omitempty"`
	ApplicationURL string    `json:"applicationUrl,omitempty" bson:"applicationUrl,omitempty"`
	PostedDate     time.Time `json:"postedDate" bson:"postedDate"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}

var ValidJobTypes = map[string]bool{
	"Full-time":  true,
	"Part-time":  true,
	"Contract":   true,
	"Internship": true,
	"Remote":     true,
}
