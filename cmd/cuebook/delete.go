package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <url> <note-id>",
	Short: "Delete a note",
	Long:  `Delete a note by id. The previous note list stays recoverable with 'cuebook undo'.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := newRepo()
		if err != nil {
			fatal("Failed to open store", err)
		}
		if err := repo.DeleteNote(context.Background(), args[0], args[1]); err != nil {
			fatal("Failed to delete note", err)
		}
		fmt.Printf("Deleted note %s\n", args[1])
	},
}

// undoCmd represents the undo command
var undoCmd = &cobra.Command{
	Use:   "undo <url>",
	Short: "Restore the note list from before the last destructive operation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := newRepo()
		if err != nil {
			fatal("Failed to open store", err)
		}
		restored, err := repo.Undo(context.Background(), args[0])
		if err != nil {
			fatal("Failed to undo", err)
		}
		if !restored {
			fmt.Println("Nothing to undo")
			return
		}
		fmt.Println("Restored previous note list")
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd, undoCmd)
}
