package services

import (
	"context"
	"log"
	"sync"
	"time"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
}

type worker struct {
	queue       ValidationQueue
	validator   ValidatorService
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewWorker(queue ValidationQueue, validator ValidatorService, concurrency int) Worker {
	return &worker{
		queue:       queue,
		validator:   validator,
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent consumers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.consume(ctx, i+1)
	}

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

func (w *worker) consume(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("👷 Consumer #%d started\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Consumer #%d stopped\n", workerID)
			return
		default:
		}

		delivery, err := w.queue.Receive(ctx)
		if err != nil {
			log.Printf("⚠️  Consumer #%d receive error: %v\n", workerID, err)
			time.Sleep(time.Second)
			continue
		}
		if delivery == nil {
			// Receive timed out with no work; loop to re-check stopChan.
			continue
		}

		if err := w.validator.ProcessJob(ctx, delivery.Job); err != nil {
			log.Printf("❌ Consumer #%d job %s failed (delivery %d): %v\n",
				workerID, delivery.Job.ID, delivery.Job.Deliveries+1, err)
			if delivery.Exhausted() {
				log.Printf("💀 Job %s exhausted its deliveries, dead-lettering\n", delivery.Job.ID)
			}
			if retryErr := delivery.Retry(ctx); retryErr != nil {
				log.Printf("⚠️  Consumer #%d failed to requeue job %s: %v\n", workerID, delivery.Job.ID, retryErr)
			}
			continue
		}

		if ackErr := delivery.Ack(ctx); ackErr != nil {
			log.Printf("⚠️  Consumer #%d failed to ack job %s: %v\n", workerID, delivery.Job.ID, ackErr)
		}
	}
}
