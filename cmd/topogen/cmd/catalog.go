package cmd

import (
	"fmt"
	"os"

	"topogen/internal/catalog"
	"topogen/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog [model]",
	Short: "List device models, or show one device spec",
	Example: `topogen catalog
topogen catalog modelA`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, _, err := loadSource()
		if err != nil {
			return err
		}
		specs := catalog.NewDirCatalog(src.DeviceSpecs)
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			models, err := specs.Models()
			if err != nil {
				return fmt.Errorf("list %s: %w", specs.Dir(), err)
			}
			for _, m := range models {
				fmt.Fprintln(out, m)
			}
			return nil
		}

		spec, err := specs.Lookup(args[0])
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(spec); err != nil {
			return err
		}
		return enc.Close()
	},
}

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:     "init [path]",
	Short:   "Write a default inventory source file",
	Example: "topogen init inventory/hosts.yml",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.SourceSuffix
		if len(args) == 1 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		src := config.DefaultSource()
		if err := src.Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n%s\n", path, src.Summary())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite an existing file")
}
