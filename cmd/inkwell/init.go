package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/quillhq/inkwell"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize an inkwell vault (git init)",
	Long:  `Initialize a new Inkwell vault in the current directory. Unless --no-git is set, this effectively runs 'git init'.`,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		_, err = inkwell.Init(cwd,
			inkwell.WithAutoInit(true),
			inkwell.WithVersioning(!nover),
			inkwell.WithAdapter(adapter),
			inkwell.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to initialize vault", err)
		}

		fmt.Println("Initialized Inkwell vault in", cwd)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
