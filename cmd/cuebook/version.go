package main

import (
	"fmt"

	"github.com/spf13/cobra"

	cuebook "github.com/cuebook/cuebook"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cuebook",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cuebook version %s\n", cuebook.Version)
	},
}

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List all pages with stored notes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := newRepo()
		if err != nil {
			fatal("Failed to open store", err)
		}
		keys, err := repo.Keys(cmd.Context())
		if err != nil {
			fatal("Failed to list pages", err)
		}
		for _, k := range keys {
			fmt.Println(k)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd, pagesCmd)
}
