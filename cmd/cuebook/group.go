package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cuebook/cuebook/pkg/core"
)

var groupCascade string

// groupCmd groups the group subcommands
var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage a page's note groups",
}

var groupAddCmd = &cobra.Command{
	Use:   "add <url> <name>",
	Short: "Create a group",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := newRepo()
		if err != nil {
			fatal("Failed to open store", err)
		}
		if err := repo.AddGroup(context.Background(), args[0], args[1]); err != nil {
			fatal("Failed to add group", err)
		}
		fmt.Printf("Added group %q\n", args[1])
	},
}

var groupRenameCmd = &cobra.Command{
	Use:   "rename <url> <old> <new>",
	Short: "Rename a group and update its member notes",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := newRepo()
		if err != nil {
			fatal("Failed to open store", err)
		}
		if err := repo.RenameGroup(context.Background(), args[0], args[1], args[2]); err != nil {
			fatal("Failed to rename group", err)
		}
		fmt.Printf("Renamed group %q to %q\n", args[1], args[2])
	},
}

var groupDeleteCmd = &cobra.Command{
	Use:   "delete <url> <name>",
	Short: "Delete a group",
	Long: `Delete a group. Member notes are moved to Ungrouped by default;
--cascade delete removes them together with the group. The previous note
list stays recoverable with 'cuebook undo'.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := newRepo()
		if err != nil {
			fatal("Failed to open store", err)
		}
		if err := repo.DeleteGroup(context.Background(), args[0], args[1], core.Cascade(groupCascade)); err != nil {
			fatal("Failed to delete group", err)
		}
		fmt.Printf("Deleted group %q\n", args[1])
	},
}

var groupMoveCmd = &cobra.Command{
	Use:   "move <url> <name> <before>",
	Short: "Move a group before another group",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := newRepo()
		if err != nil {
			fatal("Failed to open store", err)
		}
		if err := repo.MoveGroup(context.Background(), args[0], args[1], args[2]); err != nil {
			fatal("Failed to move group", err)
		}
		fmt.Printf("Moved group %q before %q\n", args[1], args[2])
	},
}

var groupListCmd = &cobra.Command{
	Use:   "list <url>",
	Short: "List a page's groups in display order",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := newRepo()
		if err != nil {
			fatal("Failed to open store", err)
		}
		groups, err := repo.Groups(context.Background(), args[0])
		if err != nil {
			fatal("Failed to list groups", err)
		}
		for _, g := range groups {
			fmt.Println(g)
		}
	},
}

func init() {
	groupDeleteCmd.Flags().StringVar(&groupCascade, "cascade", string(core.CascadeReassign),
		"What happens to member notes: reassign or delete")
	groupCmd.AddCommand(groupAddCmd, groupRenameCmd, groupDeleteCmd, groupMoveCmd, groupListCmd)
	rootCmd.AddCommand(groupCmd)
}
