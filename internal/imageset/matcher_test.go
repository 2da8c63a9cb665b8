package imageset

import (
	"context"
	"testing"

	"github.com/aleister1102/screendiff/internal/errorwrapper"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher() *Matcher {
	return NewMatcher(NewLister(zerolog.Nop()), zerolog.Nop())
}

func TestMatcher_MixedSets(t *testing.T) {
	baselineDir := t.TempDir()
	newDir := t.TempDir()
	touchFiles(t, baselineDir, "a.jpg", "b.jpg")
	touchFiles(t, newDir, "a.jpg", "c.jpg")

	result, err := newTestMatcher().Match(context.Background(), baselineDir, newDir, ListOptions{})

	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg"}, result.Compare)
	assert.Equal(t, []string{"c.jpg"}, result.Missing)
	assert.Equal(t, []string{"b.jpg"}, result.Outdated)
}

func TestMatcher_ExtensionSensitiveNames(t *testing.T) {
	baselineDir := t.TempDir()
	newDir := t.TempDir()
	touchFiles(t, baselineDir, "a.jpg")
	touchFiles(t, newDir, "a.png")

	result, err := newTestMatcher().Match(context.Background(), baselineDir, newDir, ListOptions{})

	require.NoError(t, err)
	assert.Empty(t, result.Compare)
	assert.Equal(t, []string{"a.png"}, result.Missing)
	assert.Equal(t, []string{"a.jpg"}, result.Outdated)
}

func TestMatcher_PartitionInvariants(t *testing.T) {
	baselineDir := t.TempDir()
	newDir := t.TempDir()
	touchFiles(t, baselineDir, "a.png", "b.png", "c.png", "d.png")
	touchFiles(t, newDir, "c.png", "d.png", "e.png")

	result, err := newTestMatcher().Match(context.Background(), baselineDir, newDir, ListOptions{})
	require.NoError(t, err)

	// The three sets are pairwise disjoint
	seen := map[string]int{}
	for _, name := range result.Compare {
		seen[name]++
	}
	for _, name := range result.Missing {
		seen[name]++
	}
	for _, name := range result.Outdated {
		seen[name]++
	}
	for name, count := range seen {
		assert.Equalf(t, 1, count, "name %s classified %d times", name, count)
	}

	// compare + missing covers the new set, compare + outdated the baseline set
	assert.Equal(t, 3, len(result.Compare)+len(result.Missing))
	assert.Equal(t, 4, len(result.Compare)+len(result.Outdated))
}

func TestMatcher_EmptyBaseline(t *testing.T) {
	baselineDir := t.TempDir()
	newDir := t.TempDir()
	touchFiles(t, newDir, "a.png", "b.png")

	result, err := newTestMatcher().Match(context.Background(), baselineDir, newDir, ListOptions{})

	require.NoError(t, err)
	assert.Empty(t, result.Compare)
	assert.ElementsMatch(t, []string{"a.png", "b.png"}, result.Missing)
	assert.Empty(t, result.Outdated)
}

func TestMatcher_EmptyNew(t *testing.T) {
	baselineDir := t.TempDir()
	newDir := t.TempDir()
	touchFiles(t, baselineDir, "a.png")

	result, err := newTestMatcher().Match(context.Background(), baselineDir, newDir, ListOptions{})

	require.NoError(t, err)
	assert.Empty(t, result.Compare)
	assert.Empty(t, result.Missing)
	assert.Equal(t, []string{"a.png"}, result.Outdated)
}

func TestMatcher_MissingParameters(t *testing.T) {
	matcher := newTestMatcher()

	tests := []struct {
		name        string
		dirBaseline string
		dirNew      string
	}{
		{name: "missing baseline", dirBaseline: "", dirNew: t.TempDir()},
		{name: "missing new", dirBaseline: t.TempDir(), dirNew: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := matcher.Match(context.Background(), tt.dirBaseline, tt.dirNew, ListOptions{})
			require.Error(t, err)
			assert.ErrorIs(t, err, errorwrapper.ErrInvalidConfiguration)
		})
	}
}

func TestMatcher_PropagatesListerFailure(t *testing.T) {
	_, err := newTestMatcher().Match(context.Background(), "/definitely/not/here", t.TempDir(), ListOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, errorwrapper.ErrDirectoryNotFound)
}
