package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cuebook/cuebook/pkg/core"
)

var (
	exportFormat string
	exportMatch  string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all pages' notes and groups to stdout",
	Long: `Dump every namespace in the store as a single document keyed by page URL.
Use --match to restrict to URLs matching a glob pattern.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repo, err := newRepo()
		if err != nil {
			fatal("Failed to open store", err)
		}
		ctx := context.Background()

		keys, err := repo.Keys(ctx)
		if err != nil {
			fatal("Failed to list pages", err)
		}

		dump := make(map[string]core.Namespace)
		for _, key := range keys {
			if exportMatch != "" {
				match, err := doublestar.Match(exportMatch, key)
				if err != nil {
					fatal("Bad --match pattern", err)
				}
				if !match {
					continue
				}
			}
			ns, err := repo.Namespace(ctx, key)
			if err != nil {
				fatal("Failed to load "+key, err)
			}
			dump[key] = ns
		}

		switch exportFormat {
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(dump); err != nil {
				fatal("Failed to encode", err)
			}
		case "yaml":
			if err := yaml.NewEncoder(os.Stdout).Encode(dump); err != nil {
				fatal("Failed to encode", err)
			}
		default:
			fatal("Unknown format", fmt.Errorf("%q (want json or yaml)", exportFormat))
		}
	},
}

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import namespaces from an export file",
	Long: `Load a document produced by 'cuebook export' and replace each contained
namespace in the store. The format is inferred from the file extension.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fatal("Failed to read file", err)
		}

		var dump map[string]core.Namespace
		switch strings.ToLower(filepath.Ext(args[0])) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, &dump)
		default:
			err = json.Unmarshal(data, &dump)
		}
		if err != nil {
			fatal("Failed to parse file", err)
		}

		repo, err := newRepo()
		if err != nil {
			fatal("Failed to open store", err)
		}
		ctx := context.Background()

		for key, ns := range dump {
			if err := repo.ReplaceNamespace(ctx, key, ns); err != nil {
				fatal("Failed to import "+key, err)
			}
		}
		fmt.Printf("Imported %d page(s)\n", len(dump))
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json or yaml")
	exportCmd.Flags().StringVar(&exportMatch, "match", "", "Only export page URLs matching this glob")
	rootCmd.AddCommand(exportCmd, importCmd)
}
