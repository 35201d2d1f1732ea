// Package generate runs the selected generators over DTO definitions, writes
// the results and records the run in the manifest.
package generate

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/cmmoran/dtogen/pkg/code"
	"github.com/cmmoran/dtogen/pkg/dto"
	"github.com/cmmoran/dtogen/pkg/generator/blazor"
	"github.com/cmmoran/dtogen/pkg/generator/csharp"
	"github.com/cmmoran/dtogen/pkg/generator/golang"
	"github.com/cmmoran/dtogen/pkg/manifest"
	"github.com/cmmoran/dtogen/pkg/result"
	"github.com/cmmoran/dtogen/pkg/writer"
)

// Target selects one generator.
type Target string

const (
	TargetCSharp    Target = "csharp"
	TargetGo        Target = "go"
	TargetList      Target = "list"
	TargetDetail    Target = "detail"
	TargetComponent Target = "component"
)

var ErrUnknownTarget = errors.New("unknown target")

// AllTargets lists every target in generation order.
func AllTargets() []Target {
	return []Target{TargetCSharp, TargetGo, TargetList, TargetDetail, TargetComponent}
}

// ParseTargets accepts target names case-insensitively. An empty input
// selects every target.
func ParseTargets(names ...string) ([]Target, error) {
	if len(names) == 0 {
		return AllTargets(), nil
	}
	out := make([]Target, 0, len(names))
	for _, n := range names {
		t := Target(strings.ToLower(strings.TrimSpace(n)))
		if _, ok := layers[t]; !ok {
			return nil, errors.Wrapf(ErrUnknownTarget, "%q", n)
		}
		out = append(out, t)
	}
	return out, nil
}

var layers = map[Target]writer.Layer{
	TargetCSharp:    writer.LayerDtos,
	TargetGo:        writer.LayerModels,
	TargetList:      writer.LayerPages,
	TargetDetail:    writer.LayerPages,
	TargetComponent: writer.LayerComponents,
}

type Options struct {
	Targets      []Target
	Version      string
	ManifestPath string
	ListForm     blazor.ListFormOptions
	DetailForm   blazor.DetailFormOptions
	GoPackage    string
	Logger       *zap.Logger
}

// Failure is a generator that did not produce code for a DTO.
type Failure struct {
	Dto     string
	Target  Target
	Message string
}

type Report struct {
	Written  []writer.Written
	Failures []Failure
	Run      manifest.Run
}

type Action struct {
	fs   afero.Fs
	w    *writer.Writer
	opts Options

	cs     *csharp.Generator
	gen    *golang.Generator
	list   *blazor.ListFormGenerator
	detail *blazor.DetailFormGenerator
	comp   *blazor.ComponentGenerator
}

// New binds the action to fs for the manifest and w for generated files.
func New(fs afero.Fs, w *writer.Writer, opts Options) *Action {
	if len(opts.Targets) == 0 {
		opts.Targets = AllTargets()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	var goOpts []golang.Option
	if opts.GoPackage != "" {
		goOpts = append(goOpts, golang.WithPackage(opts.GoPackage))
	}
	return &Action{
		fs:     fs,
		w:      w,
		opts:   opts,
		cs:     csharp.New(),
		gen:    golang.New(goOpts...),
		list:   blazor.NewListFormGenerator(),
		detail: blazor.NewDetailFormGenerator(),
		comp:   blazor.NewComponentGenerator(),
	}
}

// Run generates every target for every definition. Generator failures are
// collected in the report and do not stop the run; I/O errors do.
func (a *Action) Run(ctx context.Context, defs ...dto.Definition) (*Report, error) {
	log := a.opts.Logger
	rep := &Report{}

	var targets []writer.Target
	for i := range defs {
		def := &defs[i]
		for _, t := range a.opts.Targets {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			r := a.generate(def, t)
			if r.IsFailure() {
				log.Warn("generator failed", zap.String("dto", def.Name), zap.String("target", string(t)), zap.String("message", r.Message()))
				rep.Failures = append(rep.Failures, Failure{Dto: def.Name, Target: t, Message: r.Message()})
				continue
			}
			for _, c := range r.Value().Items() {
				targets = append(targets, writer.Target{Code: c, Layer: layers[t]})
			}
		}
	}

	written, err := a.w.Write(ctx, targets...)
	rep.Written = written
	if err != nil {
		return rep, err
	}

	entries := make([]manifest.Entry, 0, len(written))
	for _, wr := range written {
		entries = append(entries, manifest.NewEntry(wr.Name, wr.Language, string(wr.Layer), wr.Path, []byte(wr.Content)))
	}
	rep.Run = manifest.NewRun(a.opts.Version, entries...)

	if a.opts.ManifestPath != "" {
		m, err := manifest.Load(a.fs, a.opts.ManifestPath)
		if err != nil {
			return rep, err
		}
		m.AddRun(rep.Run)
		if err = m.Save(a.fs, a.opts.ManifestPath); err != nil {
			return rep, err
		}
	}
	log.Info("generation complete",
		zap.String("run", rep.Run.ID),
		zap.Int("files", len(written)),
		zap.Int("failures", len(rep.Failures)),
	)
	return rep, nil
}

func (a *Action) generate(def *dto.Definition, t Target) result.Of[code.Codes] {
	switch t {
	case TargetCSharp:
		return single(a.cs.GenerateDto(def))
	case TargetGo:
		return single(a.gen.GenerateDto(def))
	case TargetList:
		opts := a.opts.ListForm
		return single(a.list.Generate(def, &opts))
	case TargetDetail:
		opts := a.opts.DetailForm
		return single(a.detail.Generate(def, &opts))
	case TargetComponent:
		ns, err := def.ToComponentNamespace()
		if err != nil {
			return result.FailOfErr[code.Codes](err)
		}
		return a.comp.GenerateNamespace(ns)
	}
	return result.FailOfErr[code.Codes](errors.Wrapf(ErrUnknownTarget, "%q", t))
}

func single(r result.Of[*code.Code]) result.Of[code.Codes] {
	return result.From(r.Result, code.NewCodes(r.Value()))
}
