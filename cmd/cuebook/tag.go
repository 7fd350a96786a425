package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// tagCmd groups the tag subcommands
var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage a note's tags",
}

var tagAddCmd = &cobra.Command{
	Use:   "add <url> <note-id> <tag>",
	Short: "Attach a tag to a note",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := newRepo()
		if err != nil {
			fatal("Failed to open store", err)
		}
		if err := repo.AddTag(context.Background(), args[0], args[1], args[2]); err != nil {
			fatal("Failed to add tag", err)
		}
		fmt.Printf("Tagged note %s with %q\n", args[1], args[2])
	},
}

var tagRemoveCmd = &cobra.Command{
	Use:   "remove <url> <note-id> <tag>",
	Short: "Remove a tag from a note",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := newRepo()
		if err != nil {
			fatal("Failed to open store", err)
		}
		if err := repo.RemoveTag(context.Background(), args[0], args[1], args[2]); err != nil {
			fatal("Failed to remove tag", err)
		}
		fmt.Printf("Removed tag %q from note %s\n", args[2], args[1])
	},
}

func init() {
	tagCmd.AddCommand(tagAddCmd, tagRemoveCmd)
	rootCmd.AddCommand(tagCmd)
}
