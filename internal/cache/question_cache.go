// Package cache keeps recently generated questions in Redis so a retried
// question fetch for an interview does not burn another model call.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"jobsforce/api/internal/models"
)

const questionKeyPrefix = "interview:question:"

// ErrMiss is returned when nothing is cached for the key.
var ErrMiss = errors.New("cache miss")

type QuestionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewQuestionCache(rdb *redis.Client, ttl time.Duration) *QuestionCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &QuestionCache{rdb: rdb, ttl: ttl}
}

// Put stores a question under its interview. A nil cache or redis failure is
// silent: caching is best-effort.
func (c *QuestionCache) Put(ctx context.Context, interviewID string, q *models.Question) {
	if c == nil || c.rdb == nil || interviewID == "" || q == nil {
		return
	}
	data, err := json.Marshal(q)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, questionKeyPrefix+interviewID, data, c.ttl)
}

func (c *QuestionCache) Get(ctx context.Context, interviewID string) (*models.Question, error) {
	if c == nil || c.rdb == nil {
		return nil, ErrMiss
	}
	data, err := c.rdb.Get(ctx, questionKeyPrefix+interviewID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	var q models.Question
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, ErrMiss
	}
	return &q, nil
}
