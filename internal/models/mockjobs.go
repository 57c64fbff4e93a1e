package models

import (
	"strings"
	"time"
)

// MockJobs are fixture postings served without persistence. Their ids carry
// the reserved "mock" prefix so they can never collide with stored jobs.
var MockJobs = []Job{
	{
		ID:       "mock1",
		Title:    "Senior Frontend Developer",
		Company:  "TechCorp",
		Location: "Remote",
		Description: "We're looking for an experienced frontend developer proficient " +
			"in React to join our growing team.",
		Requirements: []string{
			"5+ years of experience with React",
			"Experience with state management libraries",
			"Strong CSS and responsive design skills",
			"Experience with testing frameworks",
		},
		Salary:         "$120,000 - $150,000",
		JobType:        "Full-time",
		Skills:         []string{"React", "JavaScript", "CSS", "Redux"},
		PostedDate:     time.Now().Add(-3 * 24 * time.Hour),
		ApplicationURL: "https://example.com/apply",
	},
	{
		ID:          "mock2",
		Title:       "Backend Engineer",
		Company:     "DataSystems Inc",
		Location:    "New York, NY",
		Description: "Join our backend team to build scalable APIs and services.",
		Requirements: []string{
			"3+ years of experience with Node.js",
			"Experience with MongoDB or PostgreSQL",
			"Knowledge of RESTful API design",
			"Familiarity with containerization using Docker",
		},
		Salary:         "$110,000 - $140,000",
		JobType:        "Full-time",
		Skills:         []string{"Node.js", "Express", "MongoDB", "Docker"},
		PostedDate:     time.Now().Add(-5 * 24 * time.Hour),
		ApplicationURL: "https://example.com/apply",
	},
	{
		ID:          "mock3",
		Title:       "Full Stack Developer",
		Company:     "WebSolutions",
		Location:    "Chicago, IL",
		Description: "Building responsive web applications using modern technologies.",
		Requirements: []string{
			"3+ years full stack development experience",
			"Proficient in JavaScript/TypeScript",
			"Experience with React and Node.js",
			"Database design and management",
		},
		Salary:         "$100,000 - $130,000",
		JobType:        "Full-time",
		Skills:         []string{"JavaScript", "React", "Node.js", "PostgreSQL"},
		PostedDate:     time.Now().Add(-7 * 24 * time.Hour),
		ApplicationURL: "https://example.com/apply",
	},
}

// IsMockJobID reports whether an id names a fixture job.
func IsMockJobID(id string) bool {
	return strings.HasPrefix(id, "mock")
}

// FindMockJob looks up a fixture job by id.
func FindMockJob(id string) (*Job, bool) {
	for i := range MockJobs {
		if MockJobs[i].ID == id {
			return &MockJobs[i], true
		}
	}
	return nil, false
}
