package cmd

import (
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/cmmoran/dtogen/internal/store"
	"github.com/cmmoran/dtogen/pkg/naming"
)

func newModuleCommand(a *app) *cobra.Command {
	moduleCmd := &cobra.Command{
		Use:   "module",
		Short: "Manage modules",
		Long:  "A module groups DTOs that share a namespace.",
	}

	var namespace, description string
	addCmd := &cobra.Command{
		Use:   "add NAME",
		Short: "create a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			m := &store.Module{Name: args[0], Namespace: namespace, Description: description}
			if m.Namespace == "" {
				m.Namespace = naming.ToPropName(m.Name)
			}
			return a.withStore(c.Context(), func(db *sql.DB) error {
				if err := store.NewModuleRepository(db).Create(c.Context(), m); err != nil {
					return err
				}
				success(c.OutOrStdout(), "module %s created (namespace %s)", m.Name, m.Namespace)
				return nil
			})
		},
	}
	addCmd.Flags().StringVarP(&namespace, "namespace", "n", "", "namespace of the module's DTOs (defaults to the module name)")
	addCmd.Flags().StringVarP(&description, "description", "d", "", "free text description")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list modules",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return a.withStore(c.Context(), func(db *sql.DB) error {
				mods, err := store.NewModuleRepository(db).List(c.Context())
				if err != nil {
					return err
				}
				out := c.OutOrStdout()
				if len(mods) == 0 {
					warn(out, "no modules")
					return nil
				}
				title(out, "Modules")
				for _, m := range mods {
					row(out, m.Name, m.Namespace)
				}
				return nil
			})
		},
	}

	moduleCmd.AddCommand(addCmd, listCmd)
	return moduleCmd
}
