package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"jobsforce/api/internal/models"
	"jobsforce/api/internal/repositories"
)

// QuestionRepo wraps the questions collection. Questions are write-once.
type QuestionRepo struct{ col *mongo.Collection }

func NewQuestionRepo(c *Client) (*QuestionRepo, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}
	return &QuestionRepo{col: db.Collection("questions")}, nil
}

func (r *QuestionRepo) Create(ctx context.Context, q *models.Question) error {
	if q.Title == "" {
		return errors.New("title required")
	}
	now := time.Now().UTC()
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	q.CreatedAt, q.UpdatedAt = now, now

	_, err := r.col.InsertOne(ctx, q)
	return err
}

func (r *QuestionRepo) GetByID(ctx context.Context, id string) (*models.Question, error) {
	var q models.Question
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}
