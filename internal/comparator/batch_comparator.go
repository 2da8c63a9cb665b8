package comparator

import (
	"context"
	"path/filepath"

	"github.com/aleister1102/screendiff/internal/config"
	"github.com/aleister1102/screendiff/internal/filemanager"
	"github.com/aleister1102/screendiff/internal/imageset"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// BatchComparator is the top-level comparison entry point: it matches the
// baseline and new directories and fans the single-image comparator out over
// every comparable pair.
type BatchComparator struct {
	matcher         *imageset.Matcher
	imageComparator *ImageComparator
	fileManager     *filemanager.FileManager
	logger          zerolog.Logger
}

// NewBatchComparator creates a new batch comparator
func NewBatchComparator(
	matcher *imageset.Matcher,
	imageComparator *ImageComparator,
	fm *filemanager.FileManager,
	logger zerolog.Logger,
) *BatchComparator {
	return &BatchComparator{
		matcher:         matcher,
		imageComparator: imageComparator,
		fileManager:     fm,
		logger:          logger.With().Str("component", "BatchComparator").Logger(),
	}
}

// CompareImages matches both directories and compares every pair present in
// both. All per-image comparisons run concurrently with join-all semantics:
// the first failure fails the whole batch. When the diff directory is not
// configured it defaults to <NewDir>/diff.
func (bc *BatchComparator) CompareImages(ctx context.Context, cfg config.CompareConfig) (*BatchOutcome, error) {
	if err := config.ValidateCompareConfig(&cfg); err != nil {
		return nil, err
	}

	match, err := bc.matcher.Match(ctx, cfg.BaselineDir, cfg.NewDir, imageset.ListOptions{Extension: cfg.Extension})
	if err != nil {
		return nil, err
	}

	outcome := &BatchOutcome{
		Passed:   []DiffOutcome{},
		Failed:   []DiffOutcome{},
		Missing:  match.Missing,
		Outdated: match.Outdated,
	}

	if len(match.Compare) == 0 {
		bc.logSummary(outcome)
		return outcome, nil
	}

	diffDir := cfg.DiffDir
	if diffDir == "" {
		diffDir = filepath.Join(cfg.NewDir, config.DefaultDiffSubdir)
	}
	if err := bc.fileManager.EnsureDirectory(diffDir, 0755); err != nil {
		return nil, err
	}

	results := make([]*DiffOutcome, len(match.Compare))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range match.Compare {
		i, name := i, name
		g.Go(func() error {
			result, err := bc.imageComparator.DiffImages(gctx, SingleCompareInput{
				BaselineDir:   cfg.BaselineDir,
				NewDir:        cfg.NewDir,
				DiffDir:       diffDir,
				ImageName:     name,
				DiffImageName: name,
			})
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, result := range results {
		if result.ImagesAreSame {
			outcome.Passed = append(outcome.Passed, *result)
		} else {
			outcome.Failed = append(outcome.Failed, *result)
		}
	}

	bc.logSummary(outcome)
	return outcome, nil
}

func (bc *BatchComparator) logSummary(outcome *BatchOutcome) {
	bc.logger.Info().
		Int("passed", len(outcome.Passed)).
		Int("failed", len(outcome.Failed)).
		Int("missing", len(outcome.Missing)).
		Int("outdated", len(outcome.Outdated)).
		Msg("Comparison run finished")
}
