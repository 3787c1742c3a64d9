package generation

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"reelforge/internal/model"
	"reelforge/internal/provider"
)

// failureMessage is the fixed error recorded when failure injection triggers.
const failureMessage = "simulated generation failure"

// resultBaseURL is the synthetic storage location for generated assets.
const resultBaseURL = "https://storage.reelforge.dev/generated"

// ExecutorConfig tunes the simulated generation work. WorkScale divides the
// registry's duration estimate and MaxWork caps the scaled wait, so the demo
// executor finishes in seconds rather than minutes. FailureRate in [0,1]
// injects synthetic failures; Rand may be set in tests for deterministic
// outcomes and defaults to math/rand.
type ExecutorConfig struct {
	WorkScale   int
	MaxWork     time.Duration
	FailureRate float64
	Rand        func() float64
}

// Executor performs the simulated generation work for one record at a time
// per goroutine, advancing the record through processing to a terminal
// status. It never overwrites a record that was cancelled while the work was
// in flight: every terminal write goes through the store's conditional
// transitions.
type Executor struct {
	store    *RecordStore
	registry *provider.Registry
	logger   *slog.Logger
	cfg      ExecutorConfig
	wg       sync.WaitGroup
}

// NewExecutor creates an executor over the given store and registry.
func NewExecutor(s *RecordStore, reg *provider.Registry, logger *slog.Logger, cfg ExecutorConfig) *Executor {
	if cfg.WorkScale <= 0 {
		cfg.WorkScale = 1
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.Float64
	}
	return &Executor{
		store:    s,
		registry: reg,
		logger:   logger,
		cfg:      cfg,
	}
}

// Dispatch launches asynchronous execution for the record. It returns
// immediately; the caller keeps no handle on the work beyond the record id.
// The goroutine operates on a copy of the record to avoid data races with
// the caller.
func (e *Executor) Dispatch(g *model.Generation) {
	gCopy := clone(g)
	e.wg.Go(func() {
		e.execute(gCopy)
	})
}

// Wait blocks until all in-flight generation goroutines complete.
func (e *Executor) Wait() {
	e.wg.Wait()
}

// execute runs the generation lifecycle: queued→processing→completed/failed.
// Writes are conditional on the record still being non-terminal, so a cancel
// racing this goroutine always wins.
func (e *Executor) execute(g *model.Generation) {
	generationsStarted.Inc()
	generationsInFlight.Inc()
	defer generationsInFlight.Dec()

	if err := e.store.Transition(g.ID, model.StatusProcessing); err != nil {
		// Cancelled before work started.
		e.logger.Debug("generation no longer runnable", "generation_id", g.ID, "error", err)
		generationsFinished.WithLabelValues(model.StatusCancelled).Inc()
		return
	}

	time.Sleep(e.workDuration(g))

	if e.cfg.FailureRate > 0 && e.cfg.Rand() < e.cfg.FailureRate {
		e.finish(g.ID, model.StatusFailed, func() error {
			return e.store.Fail(g.ID, failureMessage)
		})
		return
	}

	url := fmt.Sprintf("%s/%s.%s", resultBaseURL, g.ID, fileExtension(g.Type))
	e.finish(g.ID, model.StatusCompleted, func() error {
		return e.store.Complete(g.ID, url)
	})
}

// finish applies a terminal write and resolves the cancel-vs-complete race:
// an ErrInvalidTransition here means the record went terminal under us
// (cancelled), and the write is dropped.
func (e *Executor) finish(id, status string, write func() error) {
	err := write()
	switch {
	case err == nil:
		e.logger.Info("generation finished", "generation_id", id, "status", status)
		generationsFinished.WithLabelValues(status).Inc()
	case errors.Is(err, ErrInvalidTransition):
		e.logger.Debug("dropping late generation result", "generation_id", id, "error", err)
		generationsFinished.WithLabelValues(model.StatusCancelled).Inc()
	default:
		e.logger.Error("failed to finish generation", "generation_id", id, "error", err)
	}
}

// workDuration derives the simulated work time from the registry estimate,
// compressed by WorkScale and capped at MaxWork.
func (e *Executor) workDuration(g *model.Generation) time.Duration {
	estimate := time.Duration(e.registry.EstimateDuration(g.Type, g.Provider)) * time.Second
	d := estimate / time.Duration(e.cfg.WorkScale)
	if e.cfg.MaxWork > 0 && d > e.cfg.MaxWork {
		d = e.cfg.MaxWork
	}
	return d
}

// fileExtension maps a content type to the extension used in synthetic
// result URLs.
func fileExtension(contentType string) string {
	switch contentType {
	case model.TypeImage:
		return "png"
	case model.TypeVideo:
		return "mp4"
	case model.TypeAudio:
		return "mp3"
	case model.TypeText:
		return "txt"
	default:
		return "bin"
	}
}
