package services

import (
	"context"
	"log"
	"sync"
	"time"

	"codequest/resume-validator/internal/repositories"
)

const reasonTimedOut = "Validation timed out. Please upload again."

// Reaper is the reconciliation pass that bounds stuck-Processing time: a job
// that crashed between dequeue and its terminal write would otherwise leave
// the candidate staring at a spinner forever. It runs outside the hot path
// and force-rejects records whose attempt started longer ago than the
// configured deadline. No attempt is charged; the fault is the system's.
type Reaper interface {
	Start(ctx context.Context)
	Stop()
	RunOnce(ctx context.Context) int
}

type reaper struct {
	repo     repositories.RegistrationRepository
	interval time.Duration
	maxAge   time.Duration
	batch    int
	wg       sync.WaitGroup
	stopChan chan struct{}
}

func NewReaper(repo repositories.RegistrationRepository, interval, maxAge time.Duration, batch int) Reaper {
	return &reaper{
		repo:     repo,
		interval: interval,
		maxAge:   maxAge,
		batch:    batch,
		stopChan: make(chan struct{}),
	}
}

func (r *reaper) Start(ctx context.Context) {
	log.Printf("🧹 Starting reaper (interval %s, max age %s)\n", r.interval, r.maxAge)
	r.wg.Add(1)
	go r.run(ctx)
}

func (r *reaper) Stop() {
	close(r.stopChan)
	r.wg.Wait()
	log.Println("✅ Reaper stopped")
}

func (r *reaper) run(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			return
		case <-ticker.C:
			if n := r.RunOnce(ctx); n > 0 {
				log.Printf("🧹 Reaper resolved %d stuck registrations\n", n)
			}
		}
	}
}

// RunOnce force-rejects one batch of timed-out registrations and returns how
// many were resolved.
func (r *reaper) RunOnce(ctx context.Context) int {
	cutoff := time.Now().Add(-r.maxAge)

	stuck, err := r.repo.FindStuckProcessing(cutoff, r.batch)
	if err != nil {
		log.Printf("⚠️  Reaper failed to list stuck registrations: %v\n", err)
		return 0
	}

	resolved := 0
	for _, reg := range stuck {
		if err := r.repo.ForceReject(reg.ID, reasonTimedOut); err != nil {
			log.Printf("⚠️  Reaper failed to reset registration %s: %v\n", reg.ID, err)
			continue
		}
		resolved++
	}

	return resolved
}
