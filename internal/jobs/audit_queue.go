package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"tuberank/internal/models"
)

// ErrQueueFull is returned when the audit queue cannot accept more work.
var ErrQueueFull = errors.New("audit queue is full")

// ErrQueueClosed is returned when enqueueing after shutdown.
var ErrQueueClosed = errors.New("audit queue is shut down")

const auditQueueCapacity = 64

// Auditor produces an audit report for a video or channel URL.
type Auditor interface {
	Audit(ctx context.Context, url string) (*models.AuditReport, error)
}

// AuditQueue runs audits asynchronously on a fixed worker pool. Each job
// moves pending -> processing -> completed or failed, and every state
// transition is owned by the worker that claimed the job.
type AuditQueue struct {
	auditor Auditor
	work    chan uuid.UUID

	mu   sync.RWMutex
	jobs map[uuid.UUID]*models.AuditJob

	closeOnce sync.Once
	closed    chan struct{}
	wg        sync.WaitGroup
}

// NewAuditQueue creates a queue and starts the given number of workers.
func NewAuditQueue(auditor Auditor, workers int) *AuditQueue {
	if workers < 1 {
		workers = 1
	}
	q := &AuditQueue{
		auditor: auditor,
		work:    make(chan uuid.UUID, auditQueueCapacity),
		jobs:    make(map[uuid.UUID]*models.AuditJob),
		closed:  make(chan struct{}),
	}

	q.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go q.worker(i)
	}

	slog.Info("audit queue started", "workers", workers)
	return q
}

// Enqueue registers a new pending job and hands it to the worker pool.
func (q *AuditQueue) Enqueue(url string) (*models.AuditJob, error) {
	select {
	case <-q.closed:
		return nil, ErrQueueClosed
	default:
	}

	job := &models.AuditJob{
		ID:        uuid.New(),
		URL:       url,
		Status:    models.JobPending,
		CreatedAt: time.Now(),
	}

	q.mu.Lock()
	q.jobs[job.ID] = job
	q.mu.Unlock()

	select {
	case q.work <- job.ID:
	default:
		q.mu.Lock()
		delete(q.jobs, job.ID)
		q.mu.Unlock()
		return nil, ErrQueueFull
	}

	return q.snapshot(job.ID), nil
}

// Get returns a copy of the job's current state, or nil if unknown.
func (q *AuditQueue) Get(id uuid.UUID) *models.AuditJob {
	return q.snapshot(id)
}

// Shutdown stops accepting work and waits for in-flight jobs to finish.
func (q *AuditQueue) Shutdown() {
	q.closeOnce.Do(func() {
		close(q.closed)
		close(q.work)
	})
	q.wg.Wait()
	slog.Info("audit queue stopped")
}

func (q *AuditQueue) worker(id int) {
	defer q.wg.Done()

	for jobID := range q.work {
		q.setStatus(jobID, models.JobProcessing)

		job := q.snapshot(jobID)
		if job == nil {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		report, err := q.auditor.Audit(ctx, job.URL)
		cancel()

		now := time.Now()
		q.mu.Lock()
		if j, ok := q.jobs[jobID]; ok {
			j.CompletedAt = &now
			if err != nil {
				j.Status = models.JobFailed
				j.Error = err.Error()
			} else {
				j.Status = models.JobCompleted
				j.Report = report
			}
		}
		q.mu.Unlock()

		if err != nil {
			slog.Warn("audit job failed", "worker", id, "job_id", jobID, "url", job.URL, "error", err)
		} else {
			slog.Info("audit job completed", "worker", id, "job_id", jobID, "url", job.URL)
		}
	}
}

func (q *AuditQueue) setStatus(id uuid.UUID, status string) {
	q.mu.Lock()
	if j, ok := q.jobs[id]; ok {
		j.Status = status
	}
	q.mu.Unlock()
}

func (q *AuditQueue) snapshot(id uuid.UUID) *models.AuditJob {
	q.mu.RLock()
	defer q.mu.RUnlock()

	j, ok := q.jobs[id]
	if !ok {
		return nil
	}
	out := *j
	return &out
}
