package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"topogen/internal/repository/sqlite"

	"github.com/spf13/cobra"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded inventory snapshots",
	Example: `topogen history --db topogen.db
topogen history --links 3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		dbPath, _ := flags.GetString("db")
		limit, _ := flags.GetInt("limit")
		links, _ := flags.GetInt64("links")

		if dbPath == "" {
			src, _, err := loadSource()
			if err != nil {
				return err
			}
			dbPath = src.Database.Path
		}
		if dbPath == "" {
			return errors.New("no snapshot database: set --db or database.path in the source file")
		}

		repo, err := sqlite.New(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer repo.Close()

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		defer tw.Flush()

		if links > 0 {
			list, err := repo.ListLinks(cmd.Context(), links)
			if err != nil {
				return err
			}
			fmt.Fprintln(tw, "ID\tTYPE\tFROM\tTO")
			for _, l := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.ID, l.Type, l.From, l.To)
			}
			return nil
		}

		snaps, err := repo.ListSnapshots(cmd.Context(), limit)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "ID\tCREATED\tLOCATION\tSITE\tHOSTS\tDOWNLINKS\tOFFLINE")
		for _, s := range snaps {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%t\n",
				s.ID, s.CreatedAt.Local().Format(time.DateTime), s.Location, s.Site,
				s.HostCount, s.DownlinkSwitches, s.Offline)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().String("db", "", "SQLite snapshot database (defaults to the source file's)")
	historyCmd.Flags().Int("limit", 20, "number of snapshots to show, 0 for all")
	historyCmd.Flags().Int64("links", 0, "show the links of this snapshot instead")
}
