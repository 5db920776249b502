package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/finwell/finhealth/internal/model"
)

var trackersCmd = &cobra.Command{
	Use:   "trackers",
	Short: "Manage company survey trackers",
	Long:  "Commands for creating, listing, updating, and rolling back company trackers.",
}

// -- trackers create --

var trackersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a company tracker",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initService(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		company, _ := cmd.Flags().GetString("company")
		key, _ := cmd.Flags().GetString("key")
		include, _ := cmd.Flags().GetStringSlice("include")
		exclude, _ := cmd.Flags().GetStringSlice("exclude")

		created, err := env.Store.CreateTracker(ctx, &model.Tracker{
			CompanyName: company,
			URLKey:      key,
			Include:     include,
			Exclude:     exclude,
			Active:      true,
		})
		if err != nil {
			return eris.Wrap(err, "trackers create")
		}

		fmt.Printf("created tracker %s (version %d)\n", created.URLKey, created.Version)
		return nil
	},
}

// -- trackers list --

var trackersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List company trackers",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initService(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		trackers, err := env.Store.ListTrackers(ctx)
		if err != nil {
			return eris.Wrap(err, "trackers list")
		}

		if len(trackers) == 0 {
			fmt.Fprintln(os.Stderr, "No trackers found.")
			return nil
		}

		formatTrackersList(os.Stdout, trackers)
		return nil
	},
}

// -- trackers show --

var trackersShowCmd = &cobra.Command{
	Use:   "show <url-key>",
	Short: "Show full details of a tracker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initService(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		t, err := env.Store.GetTracker(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "trackers show")
		}
		if t == nil {
			return eris.Errorf("trackers show: no tracker with key %s", args[0])
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	},
}

// -- trackers versions --

var trackersVersionsCmd = &cobra.Command{
	Use:   "versions <url-key>",
	Short: "List archived tracker revisions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initService(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		versions, err := env.Store.ListTrackerVersions(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "trackers versions")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "VERSION\tCREATED")
		for _, v := range versions {
			_, _ = fmt.Fprintf(w, "%d\t%s\n", v.Version, v.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

// -- trackers rollback --

var trackersRollbackCmd = &cobra.Command{
	Use:   "rollback <url-key> <version>",
	Short: "Restore an archived tracker revision as a new version",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		version, err := strconv.Atoi(args[1])
		if err != nil || version < 1 {
			return eris.Errorf("trackers rollback: invalid version %q", args[1])
		}

		env, err := initService(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		t, err := env.Store.RollbackTracker(ctx, args[0], version)
		if err != nil {
			return eris.Wrap(err, "trackers rollback")
		}
		env.Service.InvalidateTracker(ctx, args[0])

		fmt.Printf("rolled back %s to version %d configuration (now version %d)\n", t.URLKey, version, t.Version)
		return nil
	},
}

func init() {
	trackersCreateCmd.Flags().String("company", "", "company display name")
	trackersCreateCmd.Flags().String("key", "", "URL key for the tracker")
	trackersCreateCmd.Flags().StringSlice("include", nil, "question ids to include (empty = all)")
	trackersCreateCmd.Flags().StringSlice("exclude", nil, "question ids to exclude")
	_ = trackersCreateCmd.MarkFlagRequired("company")
	_ = trackersCreateCmd.MarkFlagRequired("key")

	trackersCmd.AddCommand(trackersCreateCmd)
	trackersCmd.AddCommand(trackersListCmd)
	trackersCmd.AddCommand(trackersShowCmd)
	trackersCmd.AddCommand(trackersVersionsCmd)
	trackersCmd.AddCommand(trackersRollbackCmd)
	rootCmd.AddCommand(trackersCmd)
}

// formatTrackersList writes a tabular list of trackers to w.
func formatTrackersList(out io.Writer, trackers []model.Tracker) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KEY\tCOMPANY\tVERSION\tACTIVE\tEXCLUDED\tUPDATED")
	for _, t := range trackers {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%t\t%d\t%s\n",
			t.URLKey,
			t.CompanyName,
			t.Version,
			t.Active,
			len(t.Exclude),
			t.UpdatedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}
