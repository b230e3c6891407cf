package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/quillhq/inkwell"
	"github.com/quillhq/inkwell/pkg/core"
	"github.com/spf13/cobra"
)

var (
	listJSON   bool
	filterTag  string
	listDrafts bool
	listMatch  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all posts in the vault",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		wd, err := os.Getwd()
		if err != nil {
			fmt.Printf("Error getting working directory: %v\n", err)
			os.Exit(1)
		}

		if listMatch != "" {
			if !doublestar.ValidatePattern(listMatch) {
				fmt.Printf("Error: invalid match pattern: %s\n", listMatch)
				os.Exit(1)
			}
		}

		service, err := inkwell.New(wd,
			inkwell.WithVersioning(!nover),
			inkwell.WithMustExist(true),
			inkwell.WithLogger(slog.Default()),
		)
		if err != nil {
			fmt.Printf("Error initializing inkwell: %v\n", err)
			os.Exit(1)
		}

		docs, err := service.ListDocuments(context.Background())
		if err != nil {
			fmt.Printf("Error listing posts: %v\n", err)
			os.Exit(1)
		}

		// Filter
		var filtered []core.Document
		for _, doc := range docs {
			if filterTag != "" && !doc.HasTag(filterTag) {
				continue
			}
			if !listDrafts && doc.IsDraft() {
				continue
			}
			if listMatch != "" {
				ok, err := doublestar.Match(listMatch, doc.ID)
				if err != nil || !ok {
					continue
				}
			}
			filtered = append(filtered, doc)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(filtered); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}

		for _, doc := range filtered {
			// Basic output: ID - Title (if available)
			title := ""
			if t := doc.Title(); t != "" {
				title = fmt.Sprintf("- %s", t)
			}
			marker := ""
			if doc.IsDraft() {
				marker = " [draft]"
			}
			fmt.Printf("%s %s%s\n", doc.ID, title, marker)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&filterTag, "tag", "", "Filter posts by tag")
	listCmd.Flags().BoolVar(&listDrafts, "drafts", false, "Include draft posts")
	listCmd.Flags().StringVar(&listMatch, "match", "", "Filter post IDs by glob pattern (doublestar)")
}
