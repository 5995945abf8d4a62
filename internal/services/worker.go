package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resumatch/resume-analyzer/internal/repositories"
)

// Worker consumes queued analyses. A poller re-enqueues anything still queued
// in the database, so jobs survive restarts.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(analysisID uuid.UUID)
}

type worker struct {
	analysisRepo repositories.AnalysisRepository
	jobService   AnalysisJobService
	jobQueue     chan uuid.UUID
	concurrency  int
	wg           sync.WaitGroup
	stopChan     chan struct{}
	logger       *zap.Logger
}

const pendingPollInterval = 10 * time.Second

func NewWorker(
	analysisRepo repositories.AnalysisRepository,
	jobService AnalysisJobService,
	concurrency int,
	logger *zap.Logger,
) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &worker{
		analysisRepo: analysisRepo,
		jobService:   jobService,
		jobQueue:     make(chan uuid.UUID, 100),
		concurrency:  concurrency,
		stopChan:     make(chan struct{}),
		logger:       logger,
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.logger.Info("starting analysis worker", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.logger.Info("stopping analysis worker")
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("analysis worker stopped")
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(analysisID uuid.UUID) {
	select {
	case w.jobQueue <- analysisID:
		w.logger.Debug("analysis enqueued", zap.String("analysis_id", analysisID.String()))
	case <-w.stopChan:
		w.logger.Warn("worker stopped, analysis not enqueued", zap.String("analysis_id", analysisID.String()))
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			w.logger.Debug("worker goroutine stopped", zap.Int("worker_id", workerID))
			return
		case analysisID := <-w.jobQueue:
			w.logger.Info("processing analysis",
				zap.Int("worker_id", workerID),
				zap.String("analysis_id", analysisID.String()))

			if err := w.jobService.ProcessAnalysis(ctx, analysisID); err != nil {
				w.logger.Error("analysis processing failed",
					zap.Int("worker_id", workerID),
					zap.String("analysis_id", analysisID.String()),
					zap.Error(err))
			}
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(pendingPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			pending, err := w.analysisRepo.FindPendingJobs(10)
			if err != nil {
				w.logger.Warn("failed to fetch pending analyses", zap.Error(err))
				continue
			}

			if len(pending) > 0 {
				w.logger.Info("re-enqueueing pending analyses", zap.Int("count", len(pending)))
			}

			for _, analysis := range pending {
				w.EnqueueJob(analysis.ID)
			}
		}
	}
}
