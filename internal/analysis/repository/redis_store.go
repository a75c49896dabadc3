package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/mamadousow/clipsentry/internal/analysis"
	"github.com/mamadousow/clipsentry/internal/models"
)

const (
	jobKeyPrefix = "analysis:job:"
)

type redisJobStore struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// NewRedisJobStore stores each job as JSON under analysis:job:<handle>.
// The key TTL is a backstop twice the retention window; the janitor still
// deletes terminal jobs explicitly at retention.
func NewRedisJobStore(redisClient *redis.Client, retention time.Duration) analysis.JobStore {
	return &redisJobStore{
		redisClient: redisClient,
		ttl:         2 * retention,
	}
}

func (s *redisJobStore) jobKey(jobID string) string {
	return jobKeyPrefix + jobID
}

func (s *redisJobStore) Create(ctx context.Context, job *models.AnalysisJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	ok, err := s.redisClient.SetNX(ctx, s.jobKey(job.JobID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	if !ok {
		return fmt.Errorf("job %s already exists", job.JobID)
	}
	return nil
}

func (s *redisJobStore) Get(ctx context.Context, jobID string) (*models.AnalysisJob, error) {
	data, err := s.redisClient.Get(ctx, s.jobKey(jobID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, analysis.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	job := &models.AnalysisJob{}
	if err = json.Unmarshal([]byte(data), job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return job, nil
}

// Update writes only over an existing key. A purged job must stay gone: a
// plain SET here would let an in-flight run resurrect the entry after the
// janitor or a cancel deleted it.
func (s *redisJobStore) Update(ctx context.Context, job *models.AnalysisJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	ok, err := s.redisClient.SetXX(ctx, s.jobKey(job.JobID), data, redis.KeepTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if !ok {
		return analysis.ErrJobNotFound
	}
	return nil
}

func (s *redisJobStore) Delete(ctx context.Context, jobID string) error {
	if err := s.redisClient.Del(ctx, s.jobKey(jobID)).Err(); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}
