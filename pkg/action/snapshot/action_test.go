package snapshot

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/dtogen/pkg/manifest"
)

const path = "/proj/manifest.yaml"

func entry(file, content string) manifest.Entry {
	return manifest.NewEntry(file, "csharp", "dtos", file, []byte(content))
}

func seed(t *testing.T, runs ...manifest.Run) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	m := &manifest.Manifest{}
	for _, r := range runs {
		m.AddRun(r)
	}
	require.NoError(t, m.Save(fs, path))
	return fs
}

func TestCompare(t *testing.T) {
	a := manifest.NewRun("v1", entry("A.cs", "a"), entry("B.cs", "b"), entry("C.cs", "c"))
	b := manifest.NewRun("v2", entry("A.cs", "a"), entry("B.cs", "b2"), entry("D.cs", "d"))

	c := Compare(a, b)
	assert.Equal(t, []string{"D.cs"}, c.Added)
	assert.Equal(t, []string{"C.cs"}, c.Removed)
	assert.Equal(t, []string{"B.cs"}, c.Modified)
	assert.False(t, c.Empty())
	assert.True(t, Compare(a, a).Empty())
}

func TestDiffCurrentWithPrevious(t *testing.T) {
	fs := seed(t,
		manifest.NewRun("v1", entry("A.cs", "a")),
		manifest.NewRun("v2", entry("A.cs", "changed")),
	)
	diff, err := DiffCurrentWithPrevious(fs, path)
	require.NoError(t, err)
	assert.Contains(t, diff, "A.cs")
	assert.Contains(t, diff, manifest.Checksum([]byte("changed")))

	fs = seed(t,
		manifest.NewRun("v1", entry("A.cs", "a")),
		manifest.NewRun("v2", entry("A.cs", "a")),
	)
	diff, err = DiffCurrentWithPrevious(fs, path)
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestDiffNeedsTwoRuns(t *testing.T) {
	_, err := DiffCurrentWithPrevious(seed(t, manifest.NewRun("v1")), path)
	require.ErrorIs(t, err, ErrNoHistory)

	_, err = DiffCurrentWithPrevious(afero.NewMemMapFs(), path)
	require.ErrorIs(t, err, ErrNoHistory)
}

func TestList(t *testing.T) {
	fs := seed(t, manifest.NewRun("v1"), manifest.NewRun("v2"), manifest.NewRun("v3"))
	m, err := List(fs, path)
	require.NoError(t, err)
	require.Len(t, m.Runs, 3)
	assert.Equal(t, m.Runs[2].ID, m.CurrentRun)
	assert.Equal(t, m.Runs[1].ID, m.PreviousRun)
}
