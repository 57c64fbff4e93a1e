package repositories

import (
	"context"
	"errors"

	"jobsforce/api/internal/models"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

// ErrVersionConflict is returned when an update loses a compare-and-swap
// against a concurrent writer.
var ErrVersionConflict = errors.New("version conflict")

// InterviewStats summarizes a user's interview history.
type InterviewStats struct {
	Total        int64
	Completed    int64
	AverageScore float64
}

type InterviewRepository interface {
	Create(ctx context.Context, interview *models.Interview) error
	GetByID(ctx context.Context, id string) (*models.Interview, error)
	ListByOwner(ctx context.Context, owner string) ([]models.Interview, error)
	// Update replaces the stored document iff the stored version matches
	// interview.Version, then increments it. Returns ErrVersionConflict when
	// a concurrent writer got there first.
	Update(ctx context.Context, interview *models.Interview) error
	// SetQuestion links a question without touching the rest of the document.
	SetQuestion(ctx context.Context, id, questionID string) error
	Stats(ctx context.Context, owner string) (*InterviewStats, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id string) (*models.Question, error)
}

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	List(ctx context.Context) ([]models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
