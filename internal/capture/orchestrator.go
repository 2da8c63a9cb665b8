package capture

import (
	"context"

	"github.com/aleister1102/screendiff/internal/config"
	"github.com/aleister1102/screendiff/internal/errorwrapper"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Orchestrator dispatches capture jobs either sequentially or concurrently.
// When the config carries no explicit override, the capability probe decides:
// a host meeting every threshold runs all jobs concurrently, anything weaker
// runs them strictly in order.
type Orchestrator struct {
	capturer Capturer
	probe    CapabilityProbe
	logger   zerolog.Logger
}

// NewOrchestrator creates a new capture orchestrator
func NewOrchestrator(capturer Capturer, probe CapabilityProbe, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		capturer: capturer,
		probe:    probe,
		logger:   logger.With().Str("component", "CaptureOrchestrator").Logger(),
	}
}

// GenerateImages runs every configured capture job. Concurrent mode has
// join-all, fail-fast semantics; sequential mode continues past individual
// failures and reports them as one aggregate error alongside the successes.
func (o *Orchestrator) GenerateImages(ctx context.Context, cfg config.CaptureConfig) ([]*CaptureResult, error) {
	if len(cfg.Jobs) == 0 {
		return nil, errorwrapper.NewValidationError("jobs", cfg.Jobs, "at least one capture job is required")
	}

	// Defaults go onto copies so the caller's config stays untouched
	jobs := make([]config.CaptureJobConfig, len(cfg.Jobs))
	copy(jobs, cfg.Jobs)
	for i := range jobs {
		jobs[i].ClickSteps = append([]config.ClickStep(nil), jobs[i].ClickSteps...)
		jobs[i].ApplyDefaults()
	}
	capability := cfg.Capability
	capability.ApplyDefaults()

	serial, err := o.resolveMode(ctx, cfg.Serial, capability)
	if err != nil {
		return nil, err
	}

	if serial {
		return o.runSequentially(ctx, jobs)
	}
	return o.runConcurrently(ctx, jobs)
}

// resolveMode honors an explicit serial override, otherwise consults the probe
func (o *Orchestrator) resolveMode(ctx context.Context, override *bool, thresholds config.CapabilityConfig) (bool, error) {
	if override != nil {
		o.logger.Debug().Bool("serial", *override).Msg("Execution mode set by override")
		return *override, nil
	}

	capability, err := o.probe.Snapshot(ctx)
	if err != nil {
		return false, err
	}

	parallel := AllowsParallel(thresholds, capability)
	o.logger.Debug().
		Int("cores", capability.Cores).
		Float64("clock_mhz", capability.ClockMHz).
		Uint64("free_mem_mb", capability.FreeMemoryMB).
		Bool("parallel", parallel).
		Msg("Execution mode decided by capability heuristic")

	return !parallel, nil
}

// runSequentially executes jobs strictly in configuration order, one at a
// time, collecting per-job failures without stopping.
func (o *Orchestrator) runSequentially(ctx context.Context, jobs []config.CaptureJobConfig) ([]*CaptureResult, error) {
	results := make([]*CaptureResult, 0, len(jobs))
	var failures []error

	for _, job := range jobs {
		result, err := o.capturer.Capture(ctx, job)
		if err != nil {
			o.logger.Warn().Err(err).Str("name", job.Name).Msg("Capture job failed")
			failures = append(failures, errorwrapper.WrapError(err, "capture job "+job.Name+" failed"))
			continue
		}
		results = append(results, result)
	}

	if len(failures) > 0 {
		return results, errorwrapper.NewAggregateError(failures)
	}
	return results, nil
}

// runConcurrently launches all jobs at once, failing the whole run on the
// first rejection.
func (o *Orchestrator) runConcurrently(ctx context.Context, jobs []config.CaptureJobConfig) ([]*CaptureResult, error) {
	results := make([]*CaptureResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			result, err := o.capturer.Capture(gctx, job)
			if err != nil {
				return errorwrapper.WrapError(err, "capture job "+job.Name+" failed")
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
