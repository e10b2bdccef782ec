package cmd

import (
	"io"

	"github.com/spf13/cobra"
)

// inventoryCmd represents the inventory command
var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Resolve the topology request and print its inventory",
	Example: `topogen inventory
topogen inventory --list
topogen inventory --format json -o inventory.json
topogen inventory -r - < request.yml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		list, _ := flags.GetBool("list")
		format, _ := flags.GetString("format")
		output, _ := flags.GetString("output")
		dbPath, _ := flags.GetString("db")

		// --list is the Ansible dynamic inventory protocol
		if list {
			format = "json"
		}

		return runInventory(cmd, format, output, dbPath, cmd.OutOrStdout())
	},
}

// runInventory generates the inventory and writes it in format
func runInventory(cmd *cobra.Command, format, output, dbPath string, w io.Writer) error {
	e, err := setup(dbPath, true)
	if err != nil {
		return err
	}
	defer e.Close()

	result, err := e.generator.Generate(cmd.Context())
	if err != nil {
		return err
	}

	if result.Snapshot != nil {
		e.logger.Info("snapshot saved", "id", result.Snapshot.ID, "hosts", result.Snapshot.HostCount)
	}

	return writeInventory(result.Inventory, format, output, w)
}

func init() {
	rootCmd.AddCommand(inventoryCmd)
	inventoryCmd.Flags().Bool("list", false, "print the JSON dynamic inventory")
	inventoryCmd.Flags().StringP("format", "f", "yaml", "output format: yaml, json")
	inventoryCmd.Flags().StringP("output", "o", "", "write to a file instead of stdout")
	inventoryCmd.Flags().String("db", "", "record a snapshot in this SQLite database")
}
