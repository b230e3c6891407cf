package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/quillhq/inkwell"
	"github.com/quillhq/inkwell/pkg/core"
	"github.com/spf13/cobra"
)

var (
	writeID      string
	writeBody    string
	writeTitle   string
	changeReason string
	writeType    string
	writeScope   string
	writeNoLint  bool
)

// writeCmd represents the write command
var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Write a post",
	Long:  `Create or update a post with the given ID and body. Existing front matter is preserved unless overridden.`,
	Run: func(cmd *cobra.Command, args []string) {
		if writeID == "" {
			fmt.Println("Error: --id is required")
			cmd.Usage()
			os.Exit(1)
		}

		cwd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		service, err := inkwell.New(cwd,
			inkwell.WithAdapter(adapter),
			inkwell.WithVersioning(!nover),
			inkwell.WithLintOnSave(!writeNoLint),
			inkwell.WithLogger(slog.Default()),
			// AutoInit is false by default
		)
		if err != nil {
			fatal("Failed to initialize inkwell", err)
		}

		ctx := context.Background()

		// Preserve front matter of an existing post; --title overrides.
		var meta core.Metadata
		if existing, err := service.GetDocument(ctx, writeID); err == nil {
			meta = existing.Metadata
		}
		if writeTitle != "" {
			if meta == nil {
				meta = core.Metadata{}
			}
			meta["title"] = writeTitle
		}

		// Logic to construct message
		var finalMsg string
		if writeType != "" {
			if changeReason == "" {
				changeReason = fmt.Sprintf("update %s", writeID)
			}
			finalMsg = inkwell.FormatChangeReason(writeType, writeScope, changeReason, "")
		} else {
			if changeReason != "" {
				// Legacy mode
				finalMsg = inkwell.AppendFooter(changeReason)
			} else {
				scope := "posts"
				if writeScope != "" {
					scope = writeScope
				}
				finalMsg = inkwell.FormatChangeReason(inkwell.CommitTypeDocs, scope, fmt.Sprintf("update %s", writeID), "")
			}
		}

		// Pass commit message via context (Adapter specific requirement)
		ctx = context.WithValue(ctx, core.ChangeReasonKey, finalMsg)

		if err := service.SaveDocument(ctx, writeID, writeBody, meta); err != nil {
			fatal("Failed to save post", err)
		}

		fmt.Printf("Post '%s' saved and committed.\n", writeID)
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().StringVar(&writeID, "id", "", "Post ID (filename)")
	writeCmd.Flags().StringVar(&writeBody, "body", "", "Post body")
	writeCmd.Flags().StringVar(&writeTitle, "title", "", "Post title (front matter)")
	writeCmd.Flags().StringVarP(&changeReason, "message", "m", "", "Change reason (audit note)")
	writeCmd.Flags().StringVarP(&writeType, "type", "t", "", "Change type (feat, fix, etc)")
	writeCmd.Flags().StringVarP(&writeScope, "scope", "s", "", "Commit scope")
	writeCmd.Flags().BoolVar(&writeNoLint, "no-lint", false, "Skip content checks on save")
	writeCmd.MarkFlagRequired("id")
}
