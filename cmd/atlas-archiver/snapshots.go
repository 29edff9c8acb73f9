package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/raoulx24/atlas-archiver/internal/snapshot"
)

var snapshotsAll bool

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List the cluster's snapshots eligible in the current window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.ValidateAtlas(); err != nil {
			return err
		}

		job, err := buildJob(cfg, time.Now())
		if err != nil {
			return err
		}
		snaps, err := newAtlasClient(cfg).ListSnapshots(cmd.Context(), job.Cluster)
		if err != nil {
			return err
		}
		if !snapshotsAll {
			snaps = snapshot.Eligible(snaps, job.Window.Start, job.Window.End)
		} else {
			snaps = snapshot.Filter(snaps)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "window %s\n", job.Window)
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCREATED\tSTATUS\tTYPE\tSIZE")
		for _, s := range snaps {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", s.ID, s.CreatedAt.Format(time.RFC3339), s.Status, s.Type, s.SizeBytes)
		}
		return tw.Flush()
	},
}

func init() {
	snapshotsCmd.Flags().BoolVar(&snapshotsAll, "all", false, "list every snapshot, not only the eligible ones")
	rootCmd.AddCommand(snapshotsCmd)
}
