// Package writer persists generated code under a project's folder layout.
package writer

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/cmmoran/dtogen/pkg/code"
)

// Layer is a logical project layer such as "dtos" or "pages".
type Layer string

const (
	LayerDtos       Layer = "dtos"
	LayerPages      Layer = "pages"
	LayerComponents Layer = "components"
	LayerModels     Layer = "models"
)

var ErrUnknownLayer = errors.New("unknown layer")

// DefaultLayers maps every built-in layer to a folder of the same name.
func DefaultLayers() map[Layer]string {
	return map[Layer]string{
		LayerDtos:       "Dtos",
		LayerPages:      "Pages",
		LayerComponents: "Components",
		LayerModels:     "models",
	}
}

// Target is one code item bound for a layer.
type Target struct {
	Code  *code.Code
	Layer Layer
}

// Written records where a target ended up.
type Written struct {
	Name     string
	Language string
	Layer    Layer
	Path     string // relative to the writer root
	Content  string
}

type Writer struct {
	fs     afero.Fs
	root   string
	layers map[Layer]string
	log    *zap.Logger
}

type Option func(*Writer)

func WithLayers(layers map[Layer]string) Option { return func(w *Writer) { w.layers = layers } }
func WithLogger(l *zap.Logger) Option           { return func(w *Writer) { w.log = l } }

// New writes under root on fs. Layers default to DefaultLayers.
func New(fs afero.Fs, root string, opts ...Option) *Writer {
	w := &Writer{fs: fs, root: root, layers: DefaultLayers(), log: zap.NewNop()}
	for _, fn := range opts {
		fn(w)
	}
	return w
}

// Folder resolves layer to its folder below the root.
func (w *Writer) Folder(layer Layer) (string, error) {
	dir, ok := w.layers[layer]
	if !ok {
		return "", errors.Wrapf(ErrUnknownLayer, "%q", layer)
	}
	return dir, nil
}

// Layers lists the configured layers in name order.
func (w *Writer) Layers() []Layer {
	out := make([]Layer, 0, len(w.layers))
	for l := range w.layers {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Write stores every target's Statement at <root>/<layer folder>/<FileName>.
// Nil and empty codes are skipped. Every layer is resolved before anything is
// written, so an unknown layer leaves the file system untouched.
func (w *Writer) Write(ctx context.Context, targets ...Target) ([]Written, error) {
	dirs := make([]string, len(targets))
	for i, t := range targets {
		if t.Code == nil || t.Code.IsEmpty() {
			continue
		}
		dir, err := w.Folder(t.Layer)
		if err != nil {
			return nil, errors.Wrapf(err, "code %s", t.Code.Name())
		}
		dirs[i] = dir
	}

	var out []Written
	for i, t := range targets {
		if t.Code == nil || t.Code.IsEmpty() {
			w.log.Debug("skipping empty code", zap.Int("index", i))
			continue
		}
		if err := ctx.Err(); err != nil {
			return out, err
		}
		rel := filepath.Join(dirs[i], t.Code.FileName())
		full := filepath.Join(w.root, rel)
		if err := w.fs.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return out, errors.Wrapf(err, "create %s", filepath.Dir(full))
		}
		if err := afero.WriteFile(w.fs, full, []byte(t.Code.Statement()), 0o644); err != nil {
			return out, errors.Wrapf(err, "write %s", full)
		}
		w.log.Info("wrote file", zap.String("path", full), zap.String("layer", string(t.Layer)))
		out = append(out, Written{
			Name:     t.Code.Name(),
			Language: t.Code.Language().Name,
			Layer:    t.Layer,
			Path:     filepath.ToSlash(rel),
			Content:  t.Code.Statement(),
		})
	}
	return out, nil
}
