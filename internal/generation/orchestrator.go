package generation

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"reelforge/internal/model"
	"reelforge/internal/provider"
)

const (
	// MaxBatchSize is the cap on requests per batch submission.
	MaxBatchSize = 10

	// DefaultListLimit applies when a list query specifies no limit.
	DefaultListLimit = 50

	// probeCacheTTL bounds how long a provider connection probe is reused.
	probeCacheTTL = 30 * time.Second
)

// Request describes a single generation submission.
type Request struct {
	Type       string         `json:"type"`
	Provider   string         `json:"provider"`
	Prompt     string         `json:"prompt"`
	Parameters map[string]any `json:"parameters,omitempty"`
	ProjectID  *string        `json:"project_id,omitempty"`
}

// ConnectionResult reports the outcome of a provider connection probe.
type ConnectionResult struct {
	Provider string `json:"provider"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

// Stats holds aggregate counts over all generation records.
type Stats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	ByType   map[string]int `json:"by_type"`
}

// Orchestrator validates generation requests against the provider registry,
// creates records, hands work to the executor, and serves status, list and
// cancel queries over the record store.
type Orchestrator struct {
	store    *RecordStore
	registry *provider.Registry
	executor *Executor
	logger   *slog.Logger
	probes   *cache.Cache
}

// NewOrchestrator wires the orchestrator over its collaborators.
func NewOrchestrator(s *RecordStore, reg *provider.Registry, exec *Executor, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		store:    s,
		registry: reg,
		executor: exec,
		logger:   logger,
		probes:   cache.New(probeCacheTTL, time.Minute),
	}
}

// validate checks a request against the registry without mutating any state.
func (o *Orchestrator) validate(req Request) error {
	if !o.registry.Available(req.Provider) {
		return fmt.Errorf("%w: %q is not configured or available", ErrProviderUnavailable, req.Provider)
	}
	if !o.registry.Supports(req.Provider, req.Type) {
		return fmt.Errorf("%w: %q does not support %q", ErrUnsupportedType, req.Provider, req.Type)
	}
	if req.Prompt == "" {
		return ErrEmptyPrompt
	}
	return nil
}

// Submit validates the request, creates a queued record, and schedules
// asynchronous execution. The returned record is a snapshot taken before
// execution starts; callers poll Get for progress.
func (o *Orchestrator) Submit(ctx context.Context, req Request) (*model.Generation, error) {
	if err := o.validate(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	estimate := o.registry.EstimateDuration(req.Type, req.Provider)
	g := &model.Generation{
		ID:                  model.NewID(),
		Type:                req.Type,
		Provider:            req.Provider,
		Prompt:              req.Prompt,
		Parameters:          req.Parameters,
		ProjectID:           req.ProjectID,
		Status:              model.StatusQueued,
		CreatedAt:           now,
		EstimatedCompletion: now.Add(time.Duration(estimate) * time.Second),
	}

	if err := o.store.Insert(g); err != nil {
		return nil, fmt.Errorf("insert generation: %w", err)
	}

	o.executor.Dispatch(g)

	o.logger.Info("generation submitted",
		"generation_id", g.ID,
		"type", g.Type,
		"provider", g.Provider,
		"estimated_seconds", estimate,
	)
	return g, nil
}

// SubmitBatch submits up to MaxBatchSize requests. Validation is
// all-or-nothing: every request is checked before any record is created.
// Scheduling after that point is independent per request.
func (o *Orchestrator) SubmitBatch(ctx context.Context, reqs []Request) ([]*model.Generation, error) {
	if len(reqs) > MaxBatchSize {
		return nil, fmt.Errorf("%w: %d requests, maximum %d", ErrBatchTooLarge, len(reqs), MaxBatchSize)
	}

	for i, req := range reqs {
		if err := o.validate(req); err != nil {
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
	}

	generations := make([]*model.Generation, 0, len(reqs))
	for _, req := range reqs {
		g, err := o.Submit(ctx, req)
		if err != nil {
			return nil, err
		}
		generations = append(generations, g)
	}
	return generations, nil
}

// Get returns the current record for an id.
func (o *Orchestrator) Get(id string) (*model.Generation, error) {
	return o.store.Get(id)
}

// List returns records sorted by creation time descending, optionally
// filtered by status, truncated to limit (DefaultListLimit when limit <= 0).
func (o *Orchestrator) List(statusFilter string, limit int) []*model.Generation {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	all := o.store.List()
	generations := all[:0]
	for _, g := range all {
		if statusFilter == "" || g.Status == statusFilter {
			generations = append(generations, g)
		}
	}

	sort.Slice(generations, func(i, j int) bool {
		return generations[i].CreatedAt.After(generations[j].CreatedAt)
	})

	if len(generations) > limit {
		generations = generations[:limit]
	}
	return generations
}

// Cancel marks a generation cancelled. It fails with ErrNotFound for unknown
// ids and ErrInvalidTransition when the record is already terminal. A
// concurrently running execution observes the cancellation through its
// conditional terminal write.
func (o *Orchestrator) Cancel(id string) error {
	if err := o.store.Cancel(id); err != nil {
		return err
	}
	o.logger.Info("generation cancelled", "generation_id", id)
	return nil
}

// TestConnection probes a provider's connectivity. No real network call is
// made; the probe reflects the registry's configured flag. Results are
// cached briefly so repeated UI polling does not re-probe.
func (o *Orchestrator) TestConnection(providerName string) ConnectionResult {
	if cached, ok := o.probes.Get(providerName); ok {
		return cached.(ConnectionResult)
	}

	result := ConnectionResult{Provider: providerName}
	if o.registry.Available(providerName) {
		result.Status = "connected"
		result.Message = fmt.Sprintf("Successfully connected to %s", providerName)
	} else {
		result.Status = "failed"
		result.Message = fmt.Sprintf("Failed to connect to %s", providerName)
	}

	o.probes.SetDefault(providerName, result)
	return result
}

// ProviderStatuses probes every registered provider concurrently and returns
// their availability summaries keyed by provider name.
func (o *Orchestrator) ProviderStatuses(ctx context.Context) (map[string]provider.Status, error) {
	names := o.registry.Names()
	statuses := make([]provider.Status, len(names))

	g, _ := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			statuses[i] = o.registry.StatusOf(name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]provider.Status, len(names))
	for i, name := range names {
		out[name] = statuses[i]
	}
	return out, nil
}

// Stats aggregates record counts by status and content type.
func (o *Orchestrator) Stats() Stats {
	all := o.store.List()
	stats := Stats{
		Total:    len(all),
		ByStatus: make(map[string]int),
		ByType:   make(map[string]int),
	}
	for _, g := range all {
		stats.ByStatus[g.Status]++
		stats.ByType[g.Type]++
	}
	return stats
}
