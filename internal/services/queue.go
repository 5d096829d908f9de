package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"codequest/resume-validator/internal/models"
)

const (
	pendingList    = "resume_validation:pending"
	processingList = "resume_validation:processing"
	deadLetterList = "resume_validation:dead"
)

// Delivery is one in-flight job taken from the queue. The consumer must
// resolve it with exactly one of Ack or Retry.
type Delivery struct {
	Job models.ValidationJob

	raw   string
	queue *redisQueue
}

type ValidationQueue interface {
	// Enqueue pushes a job onto the durable pending list and returns its ID.
	Enqueue(ctx context.Context, job models.ValidationJob) (string, error)

	// Receive blocks up to the configured timeout for the next job, moving it
	// atomically onto the processing list so no other consumer sees it.
	// Returns (nil, nil) when the timeout elapses with no work.
	Receive(ctx context.Context) (*Delivery, error)
}

type redisQueue struct {
	client         *redis.Client
	receiveTimeout time.Duration
	maxDeliveries  int
}

func NewValidationQueue(client *redis.Client, receiveTimeout time.Duration, maxDeliveries int) ValidationQueue {
	return &redisQueue{
		client:         client,
		receiveTimeout: receiveTimeout,
		maxDeliveries:  maxDeliveries,
	}
}

func (q *redisQueue) Enqueue(ctx context.Context, job models.ValidationJob) (string, error) {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}

	payload, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("failed to encode job: %w", err)
	}

	if err := q.client.LPush(ctx, pendingList, payload).Err(); err != nil {
		return "", fmt.Errorf("failed to enqueue job: %w", err)
	}

	return job.ID, nil
}

func (q *redisQueue) Receive(ctx context.Context) (*Delivery, error) {
	raw, err := q.client.BLMove(ctx, pendingList, processingList, "RIGHT", "LEFT", q.receiveTimeout).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to receive job: %w", err)
	}

	var job models.ValidationJob
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		// Poison payload: drop it from the processing list so it cannot wedge
		// the consumer, and park it for inspection.
		q.client.LRem(ctx, processingList, 1, raw)
		q.client.LPush(ctx, deadLetterList, raw)
		return nil, fmt.Errorf("invalid job payload: %w", err)
	}

	return &Delivery{Job: job, raw: raw, queue: q}, nil
}

// Ack removes a completed job from the processing list.
func (d *Delivery) Ack(ctx context.Context) error {
	if err := d.queue.client.LRem(ctx, processingList, 1, d.raw).Err(); err != nil {
		return fmt.Errorf("failed to ack job %s: %w", d.Job.ID, err)
	}
	return nil
}

// Retry removes the job from the processing list and re-enqueues it with a
// bumped delivery count, or dead-letters it once deliveries are exhausted.
func (d *Delivery) Retry(ctx context.Context) error {
	if err := d.queue.client.LRem(ctx, processingList, 1, d.raw).Err(); err != nil {
		return fmt.Errorf("failed to remove job %s for retry: %w", d.Job.ID, err)
	}

	job := d.Job
	job.Deliveries++

	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job %s for retry: %w", d.Job.ID, err)
	}

	target := pendingList
	if job.Deliveries >= d.queue.maxDeliveries {
		target = deadLetterList
	}

	if err := d.queue.client.LPush(ctx, target, payload).Err(); err != nil {
		return fmt.Errorf("failed to requeue job %s: %w", d.Job.ID, err)
	}

	return nil
}

// Exhausted reports whether another Retry would dead-letter the job.
func (d *Delivery) Exhausted() bool {
	return d.Job.Deliveries+1 >= d.queue.maxDeliveries
}
