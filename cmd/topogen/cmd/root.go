package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"topogen/internal/codec"
	"topogen/internal/config"
	"topogen/internal/inventory"
	"topogen/internal/logging"
	"topogen/internal/repository/sqlite"
	"topogen/internal/service"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands.
// It also answers Ansible's inventory script calls: --list and --host <name>.
var rootCmd = &cobra.Command{
	Use:   "topogen",
	Short: "Generate Ansible inventories for DST/ACC site topologies",
	Example: `ansible-inventory -i topogen --list
topogen --list
topogen --host 10.0.0.1`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		list, _ := cmd.Flags().GetBool("list")
		host, _ := cmd.Flags().GetString("host")

		switch {
		case list && host != "":
			return errors.New("--list and --host are mutually exclusive")
		case list:
			return runInventory(cmd, "json", "", "", cmd.OutOrStdout())
		case host != "":
			return runHost(cmd, host, cmd.OutOrStdout())
		default:
			return cmd.Help()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().Bool("list", false, "print the JSON dynamic inventory (Ansible inventory script protocol)")
	rootCmd.Flags().String("host", "", "print one host's variables as JSON (Ansible inventory script protocol)")

	flags := rootCmd.PersistentFlags()
	flags.StringP("source", "s", "", "inventory source file (must end in hosts.yml)")
	flags.StringP("request", "r", "", "topology request file, - for stdin (overrides the source file)")
	flags.String("log-level", "", "log level: debug, info, warn, error")

	for _, name := range []string{"source", "request", "log-level"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads .env and TOPOGEN_* environment variables.
func initConfig() {
	// A missing .env is normal
	_ = godotenv.Load()

	viper.SetEnvPrefix("topogen")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadSource loads the source file named by --source, or the first one found
func loadSource() (*config.Source, string, error) {
	if path := viper.GetString("source"); path != "" {
		src, err := config.LoadSource(path)
		return src, path, err
	}
	return config.Load()
}

// newLogger builds the stderr logger; the flag or env wins over the source file
func newLogger(src *config.Source) (*slog.Logger, error) {
	name := viper.GetString("log-level")
	if name == "" && src != nil {
		name = src.Log.Level
	}
	level, err := logging.ParseLevel(name)
	if err != nil {
		return nil, err
	}
	return logging.New(os.Stderr, level), nil
}

// env holds what every generating command needs
type env struct {
	source    *config.Source
	generator *service.Generator
	repo      *sqlite.Repository
	logger    *slog.Logger
}

func (e *env) Close() {
	if e.repo != nil {
		e.repo.Close()
	}
}

// setup loads the source file and builds a generator. dbPath overrides the
// source file's database path when set; record false skips the database.
func setup(dbPath string, record bool) (*env, error) {
	src, sourcePath, err := loadSource()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(src)
	if err != nil {
		return nil, err
	}

	if req := viper.GetString("request"); req != "" {
		src.Request = req
	}
	if dbPath != "" {
		src.Database.Path = dbPath
	}

	e := &env{source: src, logger: logger}
	opts := []service.Option{service.WithLogger(logger)}

	if record && src.Database.Path != "" {
		repo, err := sqlite.New(src.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		e.repo = repo
		opts = append(opts, service.WithRepository(repo))
	}

	g, err := service.NewGenerator(src, sourcePath, opts...)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.generator = g

	logger.Debug("source loaded", "path", sourcePath, "request", src.Request, "device_specs", src.DeviceSpecs)
	return e, nil
}

// writeInventory exports inv in format to path, or to w when path is empty
func writeInventory(inv *inventory.Inventory, format, path string, w io.Writer) error {
	exporter, err := codec.ForFormat(format)
	if err != nil {
		return err
	}

	if path == "" {
		return exporter.Export(inv, w)
	}

	// Write beside the target and rename so readers never see a partial file
	tmp, err := os.CreateTemp(filepath.Dir(path), ".topogen-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := exporter.Export(inv, tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
