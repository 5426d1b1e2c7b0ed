// Package scheduler drives the periodic recomputation jobs on goroutines
// separate from the request-serving path. Each job runs in its own
// sequential loop, so a job can never overlap itself; distinct jobs may
// interleave, which the transactional snapshot writes make safe.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"
)

// Job is a named unit of periodic work. Run receives a context that is
// cancelled when the scheduler stops.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler owns the background job loops.
type Scheduler struct {
	jobs   []Job
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Add registers a job. Must be called before Start.
func (s *Scheduler) Add(name string, interval time.Duration, run func(ctx context.Context) error) {
	s.jobs = append(s.jobs, Job{Name: name, Interval: interval, Run: run})
}

// Start launches one goroutine per job. Every job runs once immediately,
// then on its interval. A failed run is logged and retried on the next
// tick.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	for _, job := range s.jobs {
		s.wg.Add(1)
		go func(job Job) {
			defer s.wg.Done()
			s.runJob(ctx, job)

			ticker := time.NewTicker(job.Interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					s.runJob(ctx, job)
				}
			}
		}(job)
	}

	log.Printf("Scheduler started with %d jobs", len(s.jobs))
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
	log.Println("Scheduler stopped")
}

func (s *Scheduler) runJob(ctx context.Context, job Job) {
	if err := job.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Printf("Job %s failed: %v", job.Name, err)
	}
}
