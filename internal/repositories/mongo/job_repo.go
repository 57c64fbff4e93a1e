package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jobsforce/api/internal/models"
	"jobsforce/api/internal/repositories"
)

// JobRepo wraps the jobs collection.
type JobRepo struct{ col *mongo.Collection }

func NewJobRepo(c *Client) (*JobRepo, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}
	return &JobRepo{col: db.Collection("jobs")}, nil
}

func (r *JobRepo) Create(ctx context.Context, job *models.Job) error {
	now := time.Now().UTC()
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	if job.PostedDate.IsZero() {
		job.PostedDate = now
	}
	job.CreatedAt, job.UpdatedAt = now, now

	_, err := r.col.InsertOne(ctx, job)
	return err
}

func (r *JobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepo) List(ctx context.Context) ([]models.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "postedDate", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Job
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *JobRepo) Update(ctx context.Context, job *models.Job) error {
	job.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": job.ID}, job)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (r *JobRepo) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
