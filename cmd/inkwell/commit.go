package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/quillhq/inkwell"
	"github.com/quillhq/inkwell/pkg/git"
	"github.com/spf13/cobra"
)

var (
	commitMsg string
)

// commitCmd represents the commit command
var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit changes",
	Long:  `Commit staged changes to the underlying Git repository.`,
	Run: func(cmd *cobra.Command, args []string) {
		if commitMsg == "" {
			fmt.Println("Error: --message is required")
			cmd.Usage()
			os.Exit(1)
		}

		cwd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		root, err := inkwell.FindVaultRoot(cwd)
		if err != nil {
			root = cwd
		}

		client := git.NewClient(root, "", slog.Default())
		if !client.IsRepo() {
			fatal("Failed to commit", fmt.Errorf("not a git repository: %s", root))
		}

		if err := client.Commit(inkwell.AppendFooter(commitMsg)); err != nil {
			fatal("Failed to commit", err)
		}

		fmt.Println("Committed changes.")
	},
}

func init() {
	rootCmd.AddCommand(commitCmd)
	commitCmd.Flags().StringVarP(&commitMsg, "message", "m", "", "Commit message")
	commitCmd.MarkFlagRequired("message")
}
