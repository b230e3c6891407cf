package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/quillhq/inkwell"
	"github.com/quillhq/inkwell/pkg/core"
	"github.com/spf13/cobra"
)

var (
	newDraft bool
	newTags  []string
	newMath  bool
	newTOC   bool
)

// newCmd scaffolds a fresh post with a well-formed front-matter block.
var newCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a new post",
	Long: `Create a new post with the given title. The post ID (filename) is derived
from the title via slugification, and the front matter is pre-filled with the
title, the current timestamp and the draft flag.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		title := args[0]

		id, err := slug.Normalize(title)
		if err != nil {
			fatal("Failed to derive post ID from title", err)
		}

		wd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		root, err := inkwell.FindVaultRoot(wd)
		if err != nil {
			root = wd
		}

		service, err := inkwell.New(root,
			inkwell.WithAdapter(adapter),
			inkwell.WithVersioning(!nover),
			inkwell.WithMustExist(true),
			inkwell.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to initialize inkwell", err)
		}

		meta := core.Metadata{
			"title": title,
			"date":  time.Now().Format(time.RFC3339),
			"draft": newDraft,
		}
		if len(newTags) > 0 {
			meta["tags"] = newTags
		}
		if newMath {
			meta["math"] = true
		}
		if newTOC {
			meta["toc"] = true
		}

		msg := inkwell.FormatChangeReason(inkwell.CommitTypeFeat, "posts", fmt.Sprintf("add %s", id), "")
		ctx := context.WithValue(context.Background(), core.ChangeReasonKey, msg)

		if err := service.SaveDocument(ctx, id, "", meta); err != nil {
			fatal("Failed to create post", err)
		}

		fmt.Printf("Created post '%s'.\n", id)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().BoolVar(&newDraft, "draft", true, "Mark the post as a draft")
	newCmd.Flags().StringSliceVar(&newTags, "tag", nil, "Tags for the post (repeatable)")
	newCmd.Flags().BoolVar(&newMath, "math", false, "Enable math rendering for the post")
	newCmd.Flags().BoolVar(&newTOC, "toc", false, "Enable table of contents for the post")
}
