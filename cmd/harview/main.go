package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cnharrison/harview/internal/body"
	"github.com/cnharrison/harview/internal/config"
	"github.com/cnharrison/harview/internal/logging"
	"github.com/cnharrison/harview/internal/output"
	"github.com/cnharrison/harview/internal/store"
	"github.com/cnharrison/harview/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		output.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	logLevel   string
	logFile    string
}

// session is what every command needs once flags are parsed
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	cleanup func() error
}

func (s *session) close() {
	if err := s.cleanup(); err != nil {
		fmt.Fprintln(os.Stderr, "closing log:", err)
	}
}

// setup loads the config, applies flag overrides and starts logging.
// Logs without a configured file go to fallback.
func (o *rootOptions) setup(fallback io.Writer) (*session, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}

	logger, cleanup, err := logging.Setup(cfg.Log, fallback)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return &session{cfg: cfg, logger: logger, cleanup: cleanup}, nil
}

// loadStore reads and parses path into a fresh store
func (s *session) loadStore(path string) (*store.Store, error) {
	st := store.New(s.logger)
	if err := st.LoadFile(path); err != nil {
		return nil, err
	}
	return st, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "harview [file.har]",
		Short: "Browse, filter and export HTTP Archive files",
		Long: `harview is a terminal viewer and toolkit for HAR capture files.

Run it with a HAR file to open the interactive viewer, or use the
subcommands to list, inspect and export entries from scripts.

Examples:
  harview capture.har
  harview list capture.har --errors
  harview show capture.har entry-3 --jq '.data[0]'
  harview export capture.har entry-3 entry-7 --out ./bodies
  harview save capture.har --type fetch --status 500`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runView(opts, args[0])
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file path (default ~/.harview/config.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "write logs to this file with rotation")

	root.AddCommand(newViewCmd(opts))
	root.AddCommand(newListCmd(opts))
	root.AddCommand(newShowCmd(opts))
	root.AddCommand(newCurlCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newSaveCmd(opts))

	return root
}

func newViewCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "view <file.har>",
		Short: "Open the interactive viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(opts, args[0])
		},
	}
}

func runView(opts *rootOptions, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}

	// stderr would corrupt the screen
	s, err := opts.setup(io.Discard)
	if err != nil {
		return err
	}
	defer s.close()

	resolver, err := body.NewResolver(s.cfg.Cache.BodyEntries, s.logger)
	if err != nil {
		return err
	}

	app := ui.NewApplication(path, ui.Options{
		Store:    store.New(s.logger),
		Resolver: resolver,
		Config:   s.cfg,
		Logger:   s.logger,
	})
	if err := app.Run(); err != nil {
		return fmt.Errorf("error running application: %w", err)
	}
	return nil
}
