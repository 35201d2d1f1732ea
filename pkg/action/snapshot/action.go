// Package snapshot inspects the generation runs recorded in a manifest.
package snapshot

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/cmmoran/dtogen/pkg/manifest"
)

var ErrNoHistory = errors.New("no current/previous runs recorded")

// Changes lists files by how they differ between two runs.
type Changes struct {
	Added    []string
	Removed  []string
	Modified []string
}

func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Modified) == 0
}

// List returns all runs recorded in the manifest.
func List(fs afero.Fs, manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(fs, manifestPath)
}

// CurrentAndPrevious returns the two most recent runs.
func CurrentAndPrevious(fs afero.Fs, manifestPath string) (previous, current manifest.Run, err error) {
	m, err := manifest.Load(fs, manifestPath)
	if err != nil {
		return previous, current, err
	}
	if m.CurrentRun == "" || m.PreviousRun == "" {
		return previous, current, ErrNoHistory
	}

	var okCur, okPrev bool
	current, okCur = m.Run(m.CurrentRun)
	previous, okPrev = m.Run(m.PreviousRun)
	if !okCur || !okPrev {
		return previous, current, errors.Newf("runs %s/%s not found in manifest", m.PreviousRun, m.CurrentRun)
	}
	return previous, current, nil
}

// DiffCurrentWithPrevious returns a textual diff of the entries of the two
// most recent runs, keyed by file. An empty string means no change.
func DiffCurrentWithPrevious(fs afero.Fs, manifestPath string) (string, error) {
	previous, current, err := CurrentAndPrevious(fs, manifestPath)
	if err != nil {
		return "", err
	}
	return cmp.Diff(byFile(previous), byFile(current)), nil
}

// Compare classifies every file of a and b.
func Compare(a, b manifest.Run) Changes {
	before, after := byFile(a), byFile(b)
	var c Changes
	for f, e := range after {
		old, ok := before[f]
		switch {
		case !ok:
			c.Added = append(c.Added, f)
		case !cmp.Equal(old, e):
			c.Modified = append(c.Modified, f)
		}
	}
	for f := range before {
		if _, ok := after[f]; !ok {
			c.Removed = append(c.Removed, f)
		}
	}
	sort.Strings(c.Added)
	sort.Strings(c.Removed)
	sort.Strings(c.Modified)
	return c
}

func byFile(r manifest.Run) map[string]manifest.Entry {
	out := make(map[string]manifest.Entry, len(r.Entries))
	for _, e := range r.Entries {
		out[e.File] = e
	}
	return out
}
