// Package inkwell is the Composition Root for the Inkwell application.
//
// It connects the core business logic (Domain Layer) with the infrastructure adapters
// (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Inkwell treats a directory of blog posts as a transactional content database.
// Every post is a plain text file with a front-matter block (title, date, flags,
// images, tags) followed by a markup body. While the default implementation uses
// the File System and Git, Inkwell's core is agnostic, allowing for future
// adapters (e.g., S3, SQLite).
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from persistence details.
//   - **Transactional Safe**: Atomic operations regardless of the underlying storage.
//   - **Front Matter First**: Native support for YAML front-matter parsing and indexing.
//   - **Content Checks**: Built-in linting of front matter and body structure (fences, math, languages).
//   - **Typed Retrieval**: Generic wrapper (`NewTypedRepository[T]`) for type-safe post access.
//   - **Default Adapter (FS + Git)**: Out-of-the-box support for local Markdown files with Git versioning.
//   - **Extensible**: Designed to support other backends via `core.Repository`.
//
// Usage:
//
//	// Initialize service with functional options
//	svc, err := inkwell.New("./blog",
//		inkwell.WithAutoInit(true),
//		inkwell.WithLogger(logger),
//	)
//
//	// Save a post
//	err := svc.SaveDocument(ctx, "hello-world", "Body text.", core.Metadata{
//		"title": "Hello World",
//	})
package inkwell
