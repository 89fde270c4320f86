package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mockhub/mockhub/pkg/config"
	"github.com/mockhub/mockhub/pkg/logging"
	"github.com/mockhub/mockhub/pkg/server"
)

// serveFlags holds the flag values for the serve command.
type serveFlags struct {
	listen     string
	configFile string
	storePath  string
	seedFile   string
	logLevel   string
	logFormat  string
}

var serveFlagVals serveFlags

// serveCmd runs the mock server in the foreground.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the mock server (foreground)",
	Long: `Start the mock server. Configuration comes from an optional YAML file,
overridden by flags. Without --store the server keeps all configuration
in memory and --seed is the only way to define mocks.`,
	Example: `  # Serve a seed file on the default port
  mockhub serve --seed mocks.yaml

  # Persistent store with a custom listen address
  mockhub serve --store mockhub.db --listen :8080

  # Full configuration file
  mockhub serve --config mockhub.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(&serveFlagVals)
	},
}

func initServeCmd() {
	rootCmd.AddCommand(serveCmd)

	f := &serveFlagVals
	serveCmd.Flags().StringVarP(&f.listen, "listen", "l", "", "Listen address (default :4520)")
	serveCmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Path to server configuration file")
	serveCmd.Flags().StringVar(&f.storePath, "store", "", "Path to the bbolt database (empty = in-memory)")
	serveCmd.Flags().StringVar(&f.seedFile, "seed", "", "Path to a mock definition seed file")
	serveCmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	serveCmd.Flags().StringVar(&f.logFormat, "log-format", "", "Log format: text or json")
}

func runServe(f *serveFlags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Format: logging.ParseFormat(cfg.Logging.Format),
	})

	srv, err := server.New(cfg,
		server.WithLogger(log),
		server.WithVersion(Version),
	)
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

// loadConfig merges the configuration file (when given) with flag
// overrides.
func loadConfig(f *serveFlags) (*config.Config, error) {
	cfg := config.Default()
	if f.configFile != "" {
		loaded, err := config.LoadFromFile(f.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if f.listen != "" {
		cfg.Listen = f.listen
	}
	if f.storePath != "" {
		cfg.StorePath = f.storePath
	}
	if f.seedFile != "" {
		cfg.SeedFile = f.seedFile
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Logging.Format = f.logFormat
	}
	return cfg, nil
}
