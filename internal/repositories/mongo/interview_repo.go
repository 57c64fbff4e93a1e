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

// InterviewRepo wraps the interviews collection.
type InterviewRepo struct{ col *mongo.Collection }

func NewInterviewRepo(c *Client) (*InterviewRepo, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	col := db.Collection("interviews")
	// owner listing is the hot read path
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}},
	})

	return &InterviewRepo{col: col}, nil
}

func (r *InterviewRepo) Create(ctx context.Context, interview *models.Interview) error {
	now := time.Now().UTC()
	if interview.ID == "" {
		interview.ID = uuid.New().String()
	}
	interview.CreatedAt, interview.UpdatedAt = now, now
	interview.StartedAt = now
	if interview.Status == "" {
		interview.Status = models.StatusPending
	}
	interview.Version = 1

	_, err := r.col.InsertOne(ctx, interview)
	return err
}

func (r *InterviewRepo) GetByID(ctx context.Context, id string) (*models.Interview, error) {
	var interview models.Interview
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&interview)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

func (r *InterviewRepo) ListByOwner(ctx context.Context, owner string) ([]models.Interview, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Interview
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update is a compare-and-swap on (id, version): the replacement only lands
// when no concurrent writer has bumped the version since this copy was read.
func (r *InterviewRepo) Update(ctx context.Context, interview *models.Interview) error {
	expected := interview.Version
	interview.Version = expected + 1
	interview.UpdatedAt = time.Now().UTC()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": interview.ID, "version": expected}, interview)
	if err != nil {
		interview.Version = expected
		return err
	}
	if res.MatchedCount == 0 {
		interview.Version = expected
		// distinguish a missing document from a lost race
		if count, countErr := r.col.CountDocuments(ctx, bson.M{"_id": interview.ID}); countErr == nil && count == 0 {
			return repositories.ErrNotFound
		}
		return repositories.ErrVersionConflict
	}
	return nil
}

func (r *InterviewRepo) SetQuestion(ctx context.Context, id, questionID string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"questionId": questionID, "updatedAt": time.Now().UTC()},
		"$inc": bson.M{"version": 1},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// ReviewedSince feeds the export job.
func (r *InterviewRepo) ReviewedSince(ctx context.Context, since time.Time) ([]models.Interview, error) {
	filter := bson.M{
		"status":    models.StatusReviewed,
		"updatedAt": bson.M{"$gt": since},
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Interview
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *InterviewRepo) Stats(ctx context.Context, owner string) (*repositories.InterviewStats, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{"owner": owner})
	if err != nil {
		return nil, err
	}
	completed, err := r.col.CountDocuments(ctx, bson.M{
		"owner":  owner,
		"status": bson.M{"$in": []models.InterviewStatus{models.StatusSubmitted, models.StatusReviewed}},
	})
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"owner": owner, "overallScore": bson.M{"$exists": true}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "avgScore": bson.M{"$avg": "$overallScore"}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		AvgScore float64 `bson:"avgScore"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	stats := &repositories.InterviewStats{Total: total, Completed: completed}
	if len(rows) > 0 {
		stats.AverageScore = rows[0].AvgScore
	}
	return stats, nil
}
