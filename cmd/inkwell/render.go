package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/quillhq/inkwell"
	"github.com/quillhq/inkwell/pkg/render"
	"github.com/spf13/cobra"
)

var (
	renderTOC bool
)

// renderCmd previews a single post as HTML.
var renderCmd = &cobra.Command{
	Use:   "render [id]",
	Short: "Render a post to HTML",
	Long: `Render converts a post body to HTML on stdout, with syntax-highlighted
code fences. With --toc it prints the table of contents derived from the
post headings instead.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		wd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		service, err := inkwell.New(wd,
			inkwell.WithVersioning(!nover),
			inkwell.WithMustExist(true),
			inkwell.WithReadOnly(true),
			inkwell.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to initialize inkwell", err)
		}

		doc, err := service.GetDocument(context.Background(), id)
		if err != nil {
			fatal("Failed to read post", err)
		}

		r := render.New()

		if renderTOC {
			entries, err := r.TOC([]byte(doc.Body))
			if err != nil {
				fatal("Failed to build table of contents", err)
			}
			for _, e := range entries {
				for i := 1; i < e.Level; i++ {
					fmt.Print("  ")
				}
				fmt.Printf("- %s (#%s)\n", e.Text, e.ID)
			}
			return
		}

		html, err := r.ToHTML([]byte(doc.Body))
		if err != nil {
			fatal("Failed to render post", err)
		}
		os.Stdout.Write(html)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().BoolVar(&renderTOC, "toc", false, "Print the table of contents instead of HTML")
}
