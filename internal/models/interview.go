package models

import "time"

// InterviewStatus is the lifecycle state of a mock interview.
type InterviewStatus string

const (
	StatusPending    InterviewStatus = "pending"
	StatusActive     InterviewStatus = "active"
	StatusInProgress InterviewStatus = "in_progress"
	StatusSubmitted  InterviewStatus = "submitted"
	StatusReviewed   InterviewStatus = "reviewed"
	// StatusCompleted is a terminal state set by external tooling only;
	// no operation in this service produces it.
	StatusCompleted InterviewStatus = "completed"
)

// AcceptsQuestion reports whether a question may still be attached.
func (s InterviewStatus) AcceptsQuestion() bool {
	return s == StatusPending || s == StatusActive || s == StatusInProgress
}

// JobRefKind discriminates between fixture-backed and persisted jobs.
type JobRefKind string

const (
	JobRefMock      JobRefKind = "mock"
	JobRefPersisted JobRefKind = "persisted"
)

// JobRef is a tagged reference to the job an interview was started from.
// Exactly one kind is set at creation time; downstream code switches on
// Kind instead of sniffing id prefixes.
type JobRef struct {
	Kind JobRefKind `json:"kind" bson:"kind"`
	ID   string     `json:"id" bson:"id"`
}

// AIFeedback is the structured review embedded in a reviewed interview.
// IsLoading is a client-side marker only and is never persisted.
type AIFeedback struct {
	Correctness     string `json:"correctness" bson:"correctness"`
	TimeComplexity  string `json:"timeComplexity" bson:"timeComplexity"`
	SpaceComplexity string `json:"spaceComplexity" bson:"spaceComplexity"`
	CodeQuality     string `json:"codeQuality" bson:"codeQuality"`
	EdgeCases       string `json:"edgeCases" bson:"edgeCases"`
	Improvements    string `json:"improvements" bson:"improvements"`
	BetterSolution  string `json:"betterSolution,omitempty" bson:"betterSolution,omitempty"`
	OverallScore    int    `json:"overallScore" bson:"overallScore"`
	IsLoading       bool   `json:"isLoading,omitempty" bson:"-"`
}

// IsEmpty reports whether the feedback carries no assessment at all.
func (f *AIFeedback) IsEmpty() bool {
	if f == nil {
		return true
	}
	return f.Correctness == "" && f.TimeComplexity == "" && f.SpaceComplexity == "" &&
		f.CodeQuality == "" && f.EdgeCases == "" && f.Improvements == ""
}

// Interview binds an owner, a job snapshot, an optional question, submitted
// code and the resulting feedback.
type Interview struct {
	ID         string          `json:"id" bson:"_id"`
	Owner      string          `json:"owner" bson:"owner"`
	JobRef     JobRef          `json:"jobRef" bson:"jobRef"`
	JobTitle   string          `json:"jobTitle" bson:"jobTitle"`
	Company    string          `json:"company" bson:"company"`
	QuestionID string          `json:"questionId,omitempty" bson:"questionId,omitempty"`
	Status     InterviewStatus `json:"status" bson:"status"`
	Complexity string          `json:"complexity" bson:"complexity"`
	Code       string          `json:"code" bson:"code"`
	Language   string          `json:"language" bson:"language"`
	AIFeedback *AIFeedback     `json:"aiFeedback,omitempty" bson:"aiFeedback,omitempty"`

	OverallScore *int       `json:"overallScore,omitempty" bson:"overallScore,omitempty"`
	StartedAt    time.Time  `json:"startedAt" bson:"startedAt"`
	SubmittedAt  *time.Time `json:"submittedAt,omitempty" bson:"submittedAt,omitempty"`

	// Version is checked and incremented on every update so concurrent
	// submits to the same interview cannot silently overwrite each other.
	Version   int       `json:"version" bson:"version"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
