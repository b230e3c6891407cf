package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/quillhq/inkwell"
	"github.com/spf13/cobra"
)

var (
	readJSON bool
)

var readCmd = &cobra.Command{
	Use:   "read [id]",
	Short: "Read a post",
	Long:  `Read a post by its ID. Outputs the raw body by default, or a JSON object with --json.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		wd, err := os.Getwd()
		if err != nil {
			fmt.Printf("Error getting working directory: %v\n", err)
			os.Exit(1)
		}

		service, err := inkwell.New(wd,
			inkwell.WithVersioning(!nover),
			inkwell.WithMustExist(true),
			inkwell.WithReadOnly(true),
			inkwell.WithLogger(slog.Default()),
		)
		if err != nil {
			fmt.Printf("Error initializing inkwell: %v\n", err)
			os.Exit(1)
		}

		doc, err := service.GetDocument(context.Background(), id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading post: %v\n", err)
			os.Exit(1)
		}

		if readJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(doc); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}

		// Default: Print Body
		fmt.Print(doc.Body)
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().BoolVar(&readJSON, "json", false, "Output in JSON format")
}
