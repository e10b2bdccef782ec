package cmd

import (
	"io"

	"topogen/internal/codec"

	"github.com/spf13/cobra"
)

// hostCmd represents the host command
var hostCmd = &cobra.Command{
	Use:     "host <mgmt_ip>",
	Short:   "Print the variables of one host as JSON",
	Long:    "Print the variables of one host as JSON. Unknown hosts print {}, as the Ansible dynamic inventory protocol expects.",
	Example: "topogen host 10.0.0.1",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHost(cmd, args[0], cmd.OutOrStdout())
	},
}

// runHost generates the inventory and writes one host's variables as JSON
func runHost(cmd *cobra.Command, name string, w io.Writer) error {
	e, err := setup("", false)
	if err != nil {
		return err
	}
	defer e.Close()

	result, err := e.generator.Generate(cmd.Context())
	if err != nil {
		return err
	}

	return codec.NewJSONCodec().ExportHost(result.Inventory, name, w)
}

func init() {
	rootCmd.AddCommand(hostCmd)
}
