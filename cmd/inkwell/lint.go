package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/quillhq/inkwell"
	"github.com/quillhq/inkwell/pkg/lint"
	"github.com/spf13/cobra"
)

var (
	lintJSON   bool
	lintStrict bool
)

// lintCmd checks every post for structural problems.
var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check all posts for structural problems",
	Long: `Lint walks the vault and checks every post: front matter must carry a
non-blank title and a parseable date, flags must be booleans, tags and images
must be lists of strings, code fences and math blocks must be closed, and
fence language tags must be present and known. Errors exit non-zero;
warnings are informational unless --strict is set.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		wd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		root, err := inkwell.FindVaultRoot(wd)
		if err != nil {
			root = wd
		}

		repo, err := inkwell.Init(root,
			inkwell.WithVersioning(!nover),
			inkwell.WithMustExist(true),
			inkwell.WithReadOnly(true),
			inkwell.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to open vault", err)
		}

		linter := lint.New(lint.WithWarningsAsErrors(lintStrict))
		report, err := linter.LintAll(context.Background(), repo)
		if err != nil {
			fatal("Lint failed", err)
		}

		if lintJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(report); err != nil {
				fatal("Failed to encode report", err)
			}
		} else {
			for _, f := range report.Findings {
				fmt.Println(f.String())
			}
			fmt.Printf("%d posts checked: %d errors, %d warnings\n",
				report.Documents, len(report.Errors()), len(report.Warnings()))
		}

		if !report.OK() {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
	lintCmd.Flags().BoolVar(&lintJSON, "json", false, "Output the report in JSON format")
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "Treat warnings as errors")
}
