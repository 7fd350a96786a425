package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuebook/cuebook/pkg/core"
)

var (
	addTime  string
	addGroup string
	addTags  []string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <url> <text>",
	Short: "Add a note to a page",
	Long:  `Attach a note to a video page URL, optionally at a playback timestamp and inside a group.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := newRepo()
		if err != nil {
			fatal("Failed to open store", err)
		}

		note, err := repo.AddNote(context.Background(), args[0], core.Note{
			Text:  args[1],
			Time:  addTime,
			Group: addGroup,
			Tags:  addTags,
		})
		if err != nil {
			fatal("Failed to add note", err)
		}
		fmt.Printf("Added note %s\n", note.ID)
	},
}

func init() {
	addCmd.Flags().StringVarP(&addTime, "time", "t", "", "Playback timestamp (MM:SS or HH:MM:SS)")
	addCmd.Flags().StringVarP(&addGroup, "group", "g", "", "Group name (defaults to Ungrouped)")
	addCmd.Flags().StringSliceVar(&addTags, "tag", nil, "Tag to attach (repeatable)")
	rootCmd.AddCommand(addCmd)
}
