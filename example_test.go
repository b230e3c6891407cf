package inkwell_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/quillhq/inkwell"
	"github.com/quillhq/inkwell/pkg/core"
)

// Example_basic demonstrates how to initialize a vault, save a post, and read it back.
func Example_basic() {
	// Create a temporary directory for the example
	tmpDir, err := os.MkdirTemp("", "inkwell-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	// Initialize the Inkwell service targeting the temporary directory.
	// WithAutoInit(true) ensures the underlying storage (git repo) is initialized.
	vault, err := inkwell.New(tmpDir, inkwell.WithAutoInit(true))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// 1. Save a post
	err = vault.SaveDocument(ctx, "hello-world", "My first post.", core.Metadata{
		"title": "Hello World",
		"date":  "2024-01-15",
		"tags":  []string{"example"},
	})
	if err != nil {
		log.Fatal(err)
	}

	// 2. Read it back
	doc, err := vault.GetDocument(ctx, "hello-world")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Found post: %s (%s)\n", doc.ID, doc.Title())
	// Output:
	// Found post: hello-world (Hello World)
}

// Example_typed demonstrates type-safe front-matter access using generics.
func Example_typed() {
	type Post struct {
		Title string   `yaml:"title"`
		Draft bool     `yaml:"draft"`
		Tags  []string `yaml:"tags"`
	}

	tmpDir, err := os.MkdirTemp("", "inkwell-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	repo, err := inkwell.OpenTypedRepository[Post](tmpDir,
		inkwell.WithAutoInit(true),
		inkwell.WithVersioning(false),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	post := &inkwell.PostModel[Post]{
		ID:   "typed-post",
		Body: "Typed body.",
		Meta: Post{Title: "Typed Post", Draft: true, Tags: []string{"go"}},
	}
	if err := repo.Save(ctx, post); err != nil {
		log.Fatal(err)
	}

	loaded, err := repo.Get(ctx, "typed-post")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s draft=%v\n", loaded.Meta.Title, loaded.Meta.Draft)
	// Output:
	// Typed Post draft=true
}
