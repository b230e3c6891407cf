package main

import (
	"context"
	"fmt"
	"os"

	"github.com/quillhq/inkwell"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a post from the vault",
	Long:  `Delete permanently removes a post from the vault and stages the deletion in Git.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		wd, err := os.Getwd()
		if err != nil {
			fmt.Printf("Error getting working directory: %v\n", err)
			os.Exit(1)
		}

		root, err := inkwell.FindVaultRoot(wd)
		if err != nil {
			fmt.Printf("Error: Not an Inkwell vault: %v\n", err)
			os.Exit(1)
		}

		service, err := inkwell.New(root, inkwell.WithAdapter(adapter), inkwell.WithVersioning(!nover), inkwell.WithMustExist(true))
		if err != nil {
			fmt.Printf("Error initializing inkwell: %v\n", err)
			os.Exit(1)
		}

		if err := service.DeleteDocument(context.Background(), id); err != nil {
			fmt.Printf("Error deleting post: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Post deleted: %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
