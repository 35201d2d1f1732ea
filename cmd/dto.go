package cmd

import (
	"database/sql"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/dtogen/internal/store"
	"github.com/cmmoran/dtogen/pkg/dto"
)

func newDtoCommand(a *app) *cobra.Command {
	dtoCmd := &cobra.Command{
		Use:   "dto",
		Short: "Manage DTO definitions",
	}
	dtoCmd.AddCommand(
		newDtoAddCommand(a),
		newDtoListCommand(a),
		newDtoShowCommand(a),
		newDtoDeleteCommand(a),
	)
	return dtoCmd
}

func newDtoAddCommand(a *app) *cobra.Command {
	var (
		fields, comment, file string
		replace               bool
	)
	addCmd := &cobra.Command{
		Use:   "add MODULE [NAME]",
		Short: "add a DTO from a field list or a yaml definition",
		Example: `  dtogen dto add Accounts User --fields "Id:int,Email:string?,Tags:string[]"
  dtogen dto add Accounts --file user.yaml`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(c *cobra.Command, args []string) error {
			var def dto.Definition
			switch {
			case file != "":
				data, err := afero.ReadFile(a.fs, file)
				if err != nil {
					return errors.Wrapf(err, "read %s", file)
				}
				if err = yaml.Unmarshal(data, &def); err != nil {
					return errors.Wrapf(err, "parse %s", file)
				}
				if len(args) == 2 {
					def.Name = args[1]
				}
			case len(args) == 2:
				parsed, err := dto.ParseFields(fields)
				if err != nil {
					return err
				}
				def = dto.Definition{Name: args[1], Comment: comment, Fields: parsed}
			default:
				return errors.New("a DTO name or --file is required")
			}

			return a.withStore(c.Context(), func(db *sql.DB) error {
				ctx := c.Context()
				m, err := a.module(ctx, db, args[0])
				if err != nil {
					return err
				}
				if def.Namespace == "" {
					def.Namespace = m.Namespace
				}
				if err = def.Validate(); err != nil {
					return err
				}

				repo := store.NewDtoRepository(db)
				d := store.FromDefinition(m.ID, def)
				existing, err := repo.GetByName(ctx, m.ID, def.Name)
				switch {
				case err == nil && replace:
					d.ID = existing.ID
					if err = repo.Update(ctx, d); err != nil {
						return err
					}
					success(c.OutOrStdout(), "dto %s.%s replaced (%d fields)", m.Name, d.Name, len(d.Properties))
					return nil
				case err == nil:
					return errors.Wrapf(store.ErrAlreadyExists, "dto %s.%s (use --replace)", m.Name, def.Name)
				case !errors.Is(err, store.ErrNotFound):
					return err
				}
				if err = repo.Create(ctx, d); err != nil {
					return err
				}
				success(c.OutOrStdout(), "dto %s.%s created (%d fields)", m.Name, d.Name, len(d.Properties))
				return nil
			})
		},
	}
	addCmd.Flags().StringVarP(&fields, "fields", "f", "", `field list, ex: "Id:int,Email:string?,Tags:string[]"`)
	addCmd.Flags().StringVarP(&comment, "comment", "c", "", "DTO comment")
	addCmd.Flags().StringVar(&file, "file", "", "yaml DTO definition")
	addCmd.Flags().BoolVar(&replace, "replace", false, "replace an existing DTO of the same name")
	return addCmd
}

func newDtoListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list MODULE",
		Short: "list the DTOs of a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return a.withStore(c.Context(), func(db *sql.DB) error {
				m, err := a.module(c.Context(), db, args[0])
				if err != nil {
					return err
				}
				dtos, err := store.NewDtoRepository(db).List(c.Context(), m.ID)
				if err != nil {
					return err
				}
				out := c.OutOrStdout()
				if len(dtos) == 0 {
					warn(out, "module %s has no DTOs", m.Name)
					return nil
				}
				title(out, "%s (%s)", m.Name, m.Namespace)
				for _, d := range dtos {
					row(out, d.Name, fmt.Sprintf("%d fields", len(d.Properties)))
				}
				return nil
			})
		},
	}
}

func newDtoShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show MODULE NAME",
		Short: "print a DTO definition as yaml",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return a.withStore(c.Context(), func(db *sql.DB) error {
				m, err := a.module(c.Context(), db, args[0])
				if err != nil {
					return err
				}
				d, err := store.NewDtoRepository(db).GetByName(c.Context(), m.ID, args[1])
				if err != nil {
					return errors.Wrapf(err, "dto %s.%s", m.Name, args[1])
				}
				data, err := yaml.Marshal(store.ToDefinition(d))
				if err != nil {
					return errors.Wrap(err, "marshal dto")
				}
				_, err = c.OutOrStdout().Write(data)
				return err
			})
		},
	}
}

func newDtoDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete MODULE NAME",
		Short: "delete a DTO",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return a.withStore(c.Context(), func(db *sql.DB) error {
				m, err := a.module(c.Context(), db, args[0])
				if err != nil {
					return err
				}
				repo := store.NewDtoRepository(db)
				d, err := repo.GetByName(c.Context(), m.ID, args[1])
				if err != nil {
					return errors.Wrapf(err, "dto %s.%s", m.Name, args[1])
				}
				if err = repo.Delete(c.Context(), d.ID); err != nil {
					return err
				}
				success(c.OutOrStdout(), "dto %s.%s deleted", m.Name, d.Name)
				return nil
			})
		},
	}
}
