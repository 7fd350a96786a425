package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchPattern string

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print store changes made by other processes as they happen",
	Long: `Observe the store for out-of-process changes (another cuebook invocation,
a browser host writing the same directory) and print one line per changed
page. Only storage adapters with change detection support this; the
default filesystem adapter does.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := newRepo()
		if err != nil {
			fatal("Failed to open store", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		events, err := repo.Watch(ctx, watchPattern)
		if err != nil {
			fatal("Failed to watch store", err)
		}

		fmt.Println("Watching for changes (Ctrl-C to stop)")
		for e := range events {
			fmt.Println(e.String())
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "", "Only report logical keys matching this glob")
	rootCmd.AddCommand(watchCmd)
}
