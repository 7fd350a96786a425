package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	cuebook "github.com/cuebook/cuebook"
	"github.com/cuebook/cuebook/internal/platform"
	"github.com/cuebook/cuebook/pkg/core"
)

var (
	verbose  bool
	adapter  string
	storeURI string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cuebook",
	Short: "Timestamped notes for video pages, organized into ordered groups",
	Long: `Cuebook attaches timestamped notes to video page URLs and keeps them in
named, user-ordered groups. Notes persist in a pluggable key-value store
(filesystem by default, Redis for sharing) and survive schema upgrades.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter: fs, memory or redis (default from config)")
	rootCmd.PersistentFlags().StringVar(&storeURI, "store", "", "Store location: directory for fs, URL for redis (default from config)")
}

// newRepo assembles a repository from config file, environment and flags.
func newRepo() (*core.Repository, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	cfg, err := platform.LoadConfig(cwd)
	if err != nil {
		return nil, err
	}
	if adapter != "" {
		cfg.Adapter = adapter
	}
	uri := cfg.URI()
	if storeURI != "" {
		uri = storeURI
	}

	opts := []cuebook.Option{
		cuebook.WithAdapter(cfg.Adapter),
		cuebook.WithLogger(slog.Default()),
	}
	if cfg.SystemDir != "" {
		opts = append(opts, cuebook.WithSystemDir(cfg.SystemDir))
	}
	if cfg.EventBuffer > 0 {
		opts = append(opts, cuebook.WithEventBuffer(cfg.EventBuffer))
	}
	if cfg.ReadOnly {
		opts = append(opts, cuebook.WithReadOnly(true))
	}
	return cuebook.New(uri, opts...)
}
