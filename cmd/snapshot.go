package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cmmoran/dtogen/pkg/action/snapshot"
)

func newSnapshotCommand(a *app) *cobra.Command {
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect recorded generation runs",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list generation runs",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			m, err := snapshot.List(a.fs, a.cfg.Manifest.Path)
			if err != nil {
				return err
			}
			out := c.OutOrStdout()
			if len(m.Runs) == 0 {
				warn(out, "no runs recorded in %s", a.cfg.Manifest.Path)
				return nil
			}
			title(out, "Runs")
			for _, r := range m.Runs {
				marker := ""
				switch r.ID {
				case m.CurrentRun:
					marker = " (current)"
				case m.PreviousRun:
					marker = " (previous)"
				}
				row(out, r.ID, r.CreatedAt.Format("2006-01-02 15:04:05")+" "+r.Version+marker)
			}
			return nil
		},
	}

	var raw bool
	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "show what changed between the last two runs",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			out := c.OutOrStdout()
			if raw {
				diff, err := snapshot.DiffCurrentWithPrevious(a.fs, a.cfg.Manifest.Path)
				if err != nil {
					return err
				}
				_, err = out.Write([]byte(diff))
				return err
			}

			previous, current, err := snapshot.CurrentAndPrevious(a.fs, a.cfg.Manifest.Path)
			if err != nil {
				return err
			}
			changes := snapshot.Compare(previous, current)
			if changes.Empty() {
				success(out, "no changes")
				return nil
			}
			for _, f := range changes.Added {
				_, _ = okColor.Fprintln(out, "+ "+f)
			}
			for _, f := range changes.Removed {
				_, _ = errColor.Fprintln(out, "- "+f)
			}
			for _, f := range changes.Modified {
				_, _ = warnColor.Fprintln(out, "~ "+f)
			}
			return nil
		},
	}
	diffCmd.Flags().BoolVar(&raw, "raw", false, "print the entry-level diff")

	snapshotCmd.AddCommand(listCmd, diffCmd)
	return snapshotCmd
}
