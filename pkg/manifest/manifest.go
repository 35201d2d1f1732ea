// Package manifest records generation runs and the files each run wrote.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Entry is one file written by a run.
type Entry struct {
	Name     string `yaml:"name" json:"name"`
	Language string `yaml:"language" json:"language"`
	Layer    string `yaml:"layer" json:"layer"`
	File     string `yaml:"file" json:"file"`
	Checksum string `yaml:"checksum" json:"checksum"`
}

// Run is one invocation of the generator.
type Run struct {
	ID        string    `yaml:"id" json:"id"`
	Version   string    `yaml:"version" json:"version"`
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`
	Entries   []Entry   `yaml:"entries" json:"entries"`
}

// Manifest tracks generation runs, newest last.
type Manifest struct {
	CurrentRun  string `yaml:"current_run" json:"current_run"`
	PreviousRun string `yaml:"previous_run" json:"previous_run"`
	Runs        []Run  `yaml:"runs" json:"runs"`
}

// Checksum is the hex sha256 of content.
func Checksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func NewEntry(name, language, layer, file string, content []byte) Entry {
	return Entry{Name: name, Language: language, Layer: layer, File: file, Checksum: Checksum(content)}
}

// NewRun starts a run with a fresh id.
func NewRun(version string, entries ...Entry) Run {
	return Run{
		ID:        uuid.NewString(),
		Version:   version,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Entries:   entries,
	}
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(fs afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read manifest")
	}

	var m Manifest
	if err = yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "unmarshal manifest")
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(fs afero.Fs, path string) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create manifest directory")
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "marshal manifest")
	}

	if err = afero.WriteFile(fs, path, data, 0o644); err != nil {
		return errors.Wrap(err, "write manifest")
	}

	return nil
}

// AddRun records r and moves the version pointers. A run with an id that is
// already present replaces the earlier record.
func (m *Manifest) AddRun(r Run) {
	if m.CurrentRun != "" && m.CurrentRun != r.ID {
		m.PreviousRun = m.CurrentRun
	}
	m.CurrentRun = r.ID

	for i := range m.Runs {
		if m.Runs[i].ID == r.ID {
			m.Runs[i] = r
			return
		}
	}

	m.Runs = append(m.Runs, r)
}

// Run returns the run with the provided id, if present.
func (m *Manifest) Run(id string) (Run, bool) {
	for _, r := range m.Runs {
		if r.ID == id {
			return r, true
		}
	}
	return Run{}, false
}
