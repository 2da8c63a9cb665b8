package imageset

import (
	"context"

	"github.com/aleister1102/screendiff/internal/errorwrapper"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// MatchResult classifies file names across a baseline and a new directory.
// Compare holds names present in both sets, Missing names only present in
// the new directory, Outdated names only present in the baseline directory.
// The three slices are pairwise disjoint.
type MatchResult struct {
	Compare  []string
	Missing  []string
	Outdated []string
}

// Matcher classifies image files across two directories by exact name match
type Matcher struct {
	lister *Lister
	logger zerolog.Logger
}

// NewMatcher creates a new directory set matcher
func NewMatcher(lister *Lister, logger zerolog.Logger) *Matcher {
	return &Matcher{
		lister: lister,
		logger: logger.With().Str("component", "ImageSetMatcher").Logger(),
	}
}

// Match lists both directories and partitions their file names. Name matching
// is exact and extension-sensitive: "a.jpg" and "a.png" are distinct files.
// Compare and Missing preserve the new-directory listing order, Outdated the
// baseline-directory listing order.
func (m *Matcher) Match(ctx context.Context, dirBaseline, dirNew string, opts ListOptions) (*MatchResult, error) {
	if dirBaseline == "" {
		return nil, errorwrapper.NewValidationError("dir_baseline", dirBaseline, "baseline directory is required")
	}
	if dirNew == "" {
		return nil, errorwrapper.NewValidationError("dir_new", dirNew, "new directory is required")
	}

	// The two listings have no ordering dependency, fetch them concurrently.
	var baselineNames, newNames []string
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		baselineNames, err = m.lister.List(dirBaseline, opts)
		return err
	})
	g.Go(func() error {
		var err error
		newNames, err = m.lister.List(dirNew, opts)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	baselineSet := make(map[string]struct{}, len(baselineNames))
	for _, name := range baselineNames {
		baselineSet[name] = struct{}{}
	}
	newSet := make(map[string]struct{}, len(newNames))
	for _, name := range newNames {
		newSet[name] = struct{}{}
	}

	result := &MatchResult{
		Compare:  []string{},
		Missing:  []string{},
		Outdated: []string{},
	}

	for _, name := range newNames {
		if _, ok := baselineSet[name]; ok {
			result.Compare = append(result.Compare, name)
		} else {
			result.Missing = append(result.Missing, name)
		}
	}

	for _, name := range baselineNames {
		if _, ok := newSet[name]; !ok {
			result.Outdated = append(result.Outdated, name)
		}
	}

	m.logger.Debug().
		Int("compare", len(result.Compare)).
		Int("missing", len(result.Missing)).
		Int("outdated", len(result.Outdated)).
		Msg("Matched image sets")

	return result, nil
}
