package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"record-reconciler/core/events"
	"record-reconciler/core/logger"
	"record-reconciler/core/metrics"
	recon "record-reconciler/core/reconcile"
	"record-reconciler/core/source"
	"record-reconciler/feature/reconcile/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidRequest is returned when a request is missing a location or names an invalid one.
var ErrInvalidRequest = errors.New("invalid reconcile request")

// Request describes one reconciliation. Zero values fall back to the configuration.
type Request struct {
	InputA         string `json:"input_a" example:"s3://records/a.csv"`
	InputB         string `json:"input_b" example:"s3://records/b.csv"`
	Output         string `json:"output" example:"s3://records/out.csv"`
	ChunkSize      int    `json:"chunk_size,omitempty" example:"1000"`
	Workers        int    `json:"workers,omitempty" example:"4"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
	Delimiter      string `json:"delimiter,omitempty" example:","`
	Pairing        string `json:"pairing,omitempty" example:"positional"`
	FieldPolicy    string `json:"field_policy,omitempty" example:"strict"`
}

// Report is the outcome of Run.
type Report struct {
	Run     models.Run    `json:"run"`
	Summary recon.Summary `json:"summary"`
}

// RunEvent is the payload published on run completion or failure.
type RunEvent struct {
	RunID   string         `json:"run_id"`
	Status  string         `json:"status"`
	InputA  string         `json:"input_a"`
	InputB  string         `json:"input_b"`
	Output  string         `json:"output"`
	Summary *recon.Summary `json:"summary,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Service runs reconciliations and records their history.
type Service struct {
	cfg       recon.Config
	resolver  *source.Resolver
	store     *Store
	cache     *recon.ResultCache
	collector *metrics.Collector
	publisher events.Publisher
	logger    *zap.Logger
}

// NewService creates a reconcile service. store, collector and publisher may be nil.
func NewService(cfg recon.Config, resolver *source.Resolver, store *Store, collector *metrics.Collector, publisher events.Publisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Service{
		cfg:       cfg,
		resolver:  resolver,
		store:     store,
		cache:     recon.NewResultCache(cfg.CacheTTL()),
		collector: collector,
		publisher: publisher,
		logger:    logger,
	}
}

type plan struct {
	opts   recon.Options
	inputA source.Location
	inputB source.Location
	output source.Location
}

// Options resolves the engine options of req against the configuration.
func (s *Service) Options(req Request) recon.Options {
	opts := s.cfg.Options()
	if req.InputA != "" {
		opts.SourceA = req.InputA
	}
	if req.InputB != "" {
		opts.SourceB = req.InputB
	}
	if req.ChunkSize != 0 {
		opts.ChunkSize = req.ChunkSize
	}
	if req.Workers != 0 {
		opts.Workers = req.Workers
	}
	if req.TimeoutSeconds != 0 {
		opts.Timeout = time.Duration(req.TimeoutSeconds) * time.Second
	}
	if req.Delimiter != "" {
		opts.Delimiter = req.Delimiter
	}
	if req.Pairing != "" {
		opts.Pairing = recon.Pairing(req.Pairing)
	}
	if req.FieldPolicy != "" {
		opts.FieldPolicy = recon.FieldPolicy(req.FieldPolicy)
	}
	return opts
}

func (s *Service) plan(req Request) (*plan, error) {
	opts := s.Options(req).WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	output := req.Output
	if output == "" {
		output = s.cfg.Output
	}

	p := &plan{opts: opts}
	for _, target := range []struct {
		name string
		raw  string
		loc  *source.Location
	}{
		{"input_a", opts.SourceA, &p.inputA},
		{"input_b", opts.SourceB, &p.inputB},
		{"output", output, &p.output},
	} {
		if target.raw == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrInvalidRequest, target.name)
		}
		loc, err := source.Parse(target.raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRequest, target.name, err)
		}
		*target.loc = loc
	}
	return p, nil
}

// Run reconciles the two inputs of req into its output and records the run.
// The returned report is non-nil whenever a run was started, including failed runs.
func (s *Service) Run(ctx context.Context, req Request) (*Report, error) {
	p, err := s.plan(req)
	if err != nil {
		return nil, err
	}

	run := &models.Run{
		ID:          uuid.NewString(),
		InputA:      p.inputA.String(),
		InputB:      p.inputB.String(),
		Output:      p.output.String(),
		ChunkSize:   p.opts.ChunkSize,
		Workers:     p.opts.Workers,
		Pairing:     string(p.opts.Pairing),
		FieldPolicy: string(p.opts.FieldPolicy),
		Status:      models.StatusRunning,
		CreatedAt:   time.Now(),
	}
	l := logger.WithRun(s.logger, run.ID)
	l.Info("Reconciliation started",
		zap.String("input_a", run.InputA),
		zap.String("input_b", run.InputB),
		zap.String("output", run.Output),
	)

	if err := s.store.Save(ctx, run); err != nil {
		l.Warn("Failed to record run start", zap.Error(err))
	}

	summary, cached, runErr := s.execute(ctx, p, l)
	run.Cached = cached
	if summary != nil {
		run.ApplySummary(*summary)
	}
	run.Finish(runErr, time.Now())

	s.finish(run, summary, l)

	report := &Report{Run: *run}
	if runErr != nil {
		l.Error("Reconciliation failed", zap.Error(runErr))
		return report, runErr
	}
	report.Summary = *summary
	l.Info("Reconciliation completed",
		zap.Int("written", summary.Output),
		zap.Int("matched", summary.Matched),
		zap.Int("only_a", summary.OnlyA),
		zap.Int("only_b", summary.OnlyB),
		zap.Int("conflicts", summary.Conflicts),
		zap.Bool("cached", cached),
	)
	return report, nil
}

func (s *Service) execute(ctx context.Context, p *plan, l *zap.Logger) (*recon.Summary, bool, error) {
	engine, err := recon.NewEngine(p.opts, l)
	if err != nil {
		return nil, false, err
	}
	if s.collector != nil {
		engine.WithObserver(s.collector)
	}

	result, cached, err := s.cache.GetOrBuild(ctx, p.opts.CacheKey(), func(ctx context.Context) (*recon.Result, error) {
		a, err := s.resolver.Open(ctx, p.inputA)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", recon.ErrSourceRead, err)
		}
		defer a.Close()

		b, err := s.resolver.Open(ctx, p.inputB)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", recon.ErrSourceRead, err)
		}
		defer b.Close()

		return engine.Reconcile(ctx, a, b)
	})
	if err != nil {
		return nil, cached, err
	}

	sink, err := s.resolver.Create(ctx, p.output, p.opts.Delimiter)
	if err != nil {
		return nil, cached, err
	}
	for _, rec := range result.Records {
		if err := sink.Write(rec); err != nil {
			sink.Abort()
			return nil, cached, err
		}
	}
	if err := sink.Commit(ctx); err != nil {
		return nil, cached, err
	}

	summary := result.Summary
	return &summary, cached, nil
}

func (s *Service) finish(run *models.Run, summary *recon.Summary, l *zap.Logger) {
	// The request context may already be cancelled.
	ctx := context.Background()

	if err := s.store.Save(ctx, run); err != nil {
		l.Warn("Failed to record run result", zap.Error(err))
	}

	elapsed := time.Duration(run.DurationMs) * time.Millisecond
	event := RunEvent{
		RunID:   run.ID,
		Status:  run.Status,
		InputA:  run.InputA,
		InputB:  run.InputB,
		Output:  run.Output,
		Summary: summary,
		Error:   run.Error,
	}

	name := events.RunCompleted
	status := metrics.StatusCompleted
	if run.Status == models.StatusFailed {
		name = events.RunFailed
		status = metrics.StatusFailed
	}
	if s.collector != nil {
		s.collector.ObserveRun(status, summary, elapsed)
	}
	if err := s.publisher.Publish(name, event); err != nil {
		l.Warn("Failed to publish run event", zap.Error(err))
	}
}

// GetRun returns a recorded run.
func (s *Service) GetRun(ctx context.Context, id string) (*models.Run, error) {
	return s.store.Get(ctx, id)
}

// ListRuns returns the most recent runs.
func (s *Service) ListRuns(ctx context.Context, limit int) ([]models.Run, error) {
	return s.store.List(ctx, limit)
}
