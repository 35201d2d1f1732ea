package cmd

import (
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/dtogen/internal/store"
	"github.com/cmmoran/dtogen/pkg/introspect"
)

func newIntrospectCommand(a *app) *cobra.Command {
	var (
		options             = introspect.NewOptions()
		excludeByTagStrings = make([]string, 0)
		dryRun              bool
	)

	introspectCmd := &cobra.Command{
		Use:   "introspect MODULE",
		Short: "import DTOs from Go structs",
		Long: `Load the Go packages under --input-directory and store one DTO per exported
struct in MODULE. The module is created when it does not exist. Existing DTOs
of the same name are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			options.Logger = a.log
			return a.withStore(ctx, func(db *sql.DB) error {
				modules := store.NewModuleRepository(db)
				m, err := modules.GetByName(ctx, args[0])
				if err != nil && !errors.Is(err, store.ErrNotFound) {
					return err
				}
				if m != nil && options.Namespace == "" && options.RootNamespace == "" {
					options.Namespace = m.Namespace
				}

				l, err := introspect.NewWithOpts(options, excludeByTagStrings...)
				if err != nil {
					return err
				}
				defs, err := l.Load(ctx)
				if err != nil {
					return err
				}
				out := c.OutOrStdout()
				if len(defs) == 0 {
					warn(out, "no exported structs found in %s", options.InDir)
					return nil
				}
				if dryRun {
					data, err := yaml.Marshal(defs)
					if err != nil {
						return errors.Wrap(err, "marshal definitions")
					}
					_, err = out.Write(data)
					return err
				}

				if m == nil {
					m = &store.Module{Name: args[0], Namespace: defs[0].Namespace}
					if err = modules.Create(ctx, m); err != nil {
						return err
					}
					success(out, "module %s created (namespace %s)", m.Name, m.Namespace)
				}
				repo := store.NewDtoRepository(db)
				for _, def := range defs {
					d := store.FromDefinition(m.ID, def)
					existing, err := repo.GetByName(ctx, m.ID, def.Name)
					switch {
					case err == nil:
						d.ID = existing.ID
						err = repo.Update(ctx, d)
					case errors.Is(err, store.ErrNotFound):
						err = repo.Create(ctx, d)
					}
					if err != nil {
						return errors.Wrapf(err, "store %s", def.Name)
					}
					row(out, def.Name, def.Namespace)
				}
				success(out, "%d DTOs imported into %s", len(defs), m.Name)
				return nil
			})
		},
	}
	flags := introspectCmd.Flags()
	flags.StringVarP(&options.InDir, "input-directory", "i", ".", "directory to load packages from")
	flags.StringSliceVarP(&options.Patterns, "patterns", "p", []string{"./..."}, "package patterns")
	flags.StringVarP(&options.Namespace, "namespace", "n", "", "namespace for every DTO (defaults to the module's, else derived from go.mod)")
	flags.StringVar(&options.RootNamespace, "root-namespace", "", "replace the module path part of derived namespaces")
	flags.BoolVarP(&options.ExcludeDeprecated, "exclude-deprecated", "d", false, "exclude deprecated structs and fields")
	flags.StringSliceVarP(&options.ExcludeTypes, "exclude-types", "t", []string{}, "exclude named structs")
	flags.StringSliceVarP(&excludeByTagStrings, "exclude-tags", "T", []string{}, `exclude fields with matching tags, ex: dto:"-" as dto:-`)
	flags.BoolVar(&dryRun, "dry-run", false, "print the definitions as yaml instead of storing them")
	return introspectCmd
}
