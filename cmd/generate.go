package cmd

import (
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/cmmoran/dtogen/internal/store"
	"github.com/cmmoran/dtogen/pkg/action/generate"
	"github.com/cmmoran/dtogen/pkg/dto"
	"github.com/cmmoran/dtogen/pkg/writer"
)

func newGenerateCommand(a *app) *cobra.Command {
	var (
		targets []string
		runName string
	)
	generateCmd := &cobra.Command{
		Use:   "generate MODULE [DTO...]",
		Short: "generate code for the DTOs of a module",
		Long: `Render every selected target for the DTOs of MODULE (all of them when none
are named), write the files under output.root and record the run in the
manifest.

Targets: csharp, go, list, detail, component.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			sel, err := generate.ParseTargets(targets...)
			if err != nil {
				return err
			}

			var defs []dto.Definition
			err = a.withStore(c.Context(), func(db *sql.DB) error {
				defs, err = a.definitions(c, db, args[0], args[1:])
				return err
			})
			if err != nil {
				return err
			}

			cfg := a.cfg
			ver := runName
			if ver == "" {
				ver = cfg.Version
			}
			w := writer.New(a.fs, cfg.Output.Root, writer.WithLayers(cfg.Layers()), writer.WithLogger(a.log))
			action := generate.New(a.fs, w, generate.Options{
				Targets:      sel,
				Version:      ver,
				ManifestPath: cfg.Manifest.Path,
				ListForm:     cfg.Generator.ListForm,
				DetailForm:   cfg.Generator.DetailForm,
				GoPackage:    cfg.Generator.GoPackage,
				Logger:       a.log,
			})
			rep, err := action.Run(c.Context(), defs...)
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			for _, wr := range rep.Written {
				row(out, wr.Name, wr.Path)
			}
			for _, f := range rep.Failures {
				failure(out, "%s [%s]: %s", f.Dto, f.Target, f.Message)
			}
			success(out, "run %s: %d files written", rep.Run.ID, len(rep.Written))
			if len(rep.Failures) > 0 {
				return errors.Newf("%d generator failures", len(rep.Failures))
			}
			return nil
		},
	}
	generateCmd.Flags().StringSliceVarP(&targets, "targets", "t", []string{}, "targets to render (default all)")
	generateCmd.Flags().StringVar(&runName, "run-version", "", "version recorded with the run (defaults to the version setting)")
	return generateCmd
}

// definitions loads the named DTOs of a module, or all of them.
func (a *app) definitions(c *cobra.Command, db *sql.DB, module string, names []string) ([]dto.Definition, error) {
	ctx := c.Context()
	m, err := a.module(ctx, db, module)
	if err != nil {
		return nil, err
	}
	repo := store.NewDtoRepository(db)

	var rows []*store.Dto
	if len(names) == 0 {
		if rows, err = repo.List(ctx, m.ID); err != nil {
			return nil, err
		}
	}
	for _, n := range names {
		d, err := repo.GetByName(ctx, m.ID, n)
		if err != nil {
			return nil, errors.Wrapf(err, "dto %s.%s", m.Name, n)
		}
		rows = append(rows, d)
	}
	if len(rows) == 0 {
		return nil, errors.Newf("module %s has no DTOs", m.Name)
	}

	defs := make([]dto.Definition, len(rows))
	for i, d := range rows {
		defs[i] = store.ToDefinition(d)
	}
	return defs, nil
}
