package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuebook/cuebook/pkg/reorder"
)

var (
	moveToGroup string
	moveBefore  string
	moveToStart bool
)

// moveCmd represents the move command
var moveCmd = &cobra.Command{
	Use:   "move <url> <note-id>",
	Short: "Move a note within or across groups",
	Long: `Relocate a note in one atomic step. Without --group the note stays in its
current group; the destination slot comes from --before, --start or the
default (end of group).`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := newRepo()
		if err != nil {
			fatal("Failed to open store", err)
		}
		ctx := context.Background()
		url, noteID := args[0], args[1]

		target := moveToGroup
		if target == "" {
			notes, err := repo.Notes(ctx, url)
			if err != nil {
				fatal("Failed to load notes", err)
			}
			for _, n := range notes {
				if n.ID == noteID {
					target = n.Group
					break
				}
			}
		}

		session := reorder.NewSession()
		if err := session.BeginNote(noteID); err != nil {
			fatal("Failed to start move", err)
		}
		switch {
		case moveBefore != "":
			err = session.HoverNote(moveBefore, target)
		case moveToStart:
			err = session.HoverGroupStart(target)
		default:
			err = session.HoverGroupEnd(target)
		}
		if err != nil {
			fatal("Failed to resolve target", err)
		}

		intent, err := session.Drop()
		if err != nil {
			fatal("Failed to resolve move", err)
		}
		if err := intent.Apply(ctx, repo, url); err != nil {
			fatal("Failed to move note", err)
		}
		fmt.Printf("Moved note %s\n", noteID)
	},
}

func init() {
	moveCmd.Flags().StringVarP(&moveToGroup, "group", "g", "", "Destination group (defaults to the note's current group)")
	moveCmd.Flags().StringVar(&moveBefore, "before", "", "Insert directly before this note id")
	moveCmd.Flags().BoolVar(&moveToStart, "start", false, "Insert at the start of the group")
	rootCmd.AddCommand(moveCmd)
}
