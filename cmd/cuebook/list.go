package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cuebook/cuebook/pkg/core"
)

var (
	listJSON bool
	listTag  string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list <url>",
	Short: "List the notes of a page, grouped and ordered",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := newRepo()
		if err != nil {
			fatal("Failed to open store", err)
		}

		ns, err := repo.Namespace(context.Background(), args[0])
		if err != nil {
			fatal("Failed to load notes", err)
		}

		notes := ns.Notes
		if listTag != "" {
			var filtered []core.Note
			for _, n := range notes {
				for _, t := range n.Tags {
					if t == listTag {
						filtered = append(filtered, n)
						break
					}
				}
			}
			notes = filtered
		}

		if listJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(notes); err != nil {
				fatal("Failed to encode notes", err)
			}
			return
		}

		printGrouped(ns.Groups, notes)
	},
}

// printGrouped renders notes in display order: each group in Groups order,
// then the sentinel block, with intra-group order taken from the note list.
func printGrouped(groups []string, notes []core.Note) {
	order := append([]string{}, groups...)
	order = append(order, core.SentinelGroup)

	for _, group := range order {
		var members []core.Note
		for _, n := range notes {
			if n.Group == group {
				members = append(members, n)
			}
		}
		if len(members) == 0 {
			continue
		}
		fmt.Printf("%s\n", group)
		for _, n := range members {
			line := "  - "
			if n.Time != "" {
				line += "[" + n.Time + "] "
			}
			line += n.Text
			if len(n.Tags) > 0 {
				line += "  #" + strings.Join(n.Tags, " #")
			}
			fmt.Println(line)
		}
	}
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output notes as JSON")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Only show notes carrying this tag")
	rootCmd.AddCommand(listCmd)
}
