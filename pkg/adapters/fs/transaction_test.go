package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhq/inkwell/pkg/adapters/fs"
	"github.com/quillhq/inkwell/pkg/core"
)

func TestTransaction_CommitAppliesStagedChanges(t *testing.T) {
	repo, tmp := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, core.Document{
		ID:       "existing",
		Metadata: core.Metadata{"title": "Existing"},
	}))

	tx, err := repo.Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, tx.Save(ctx, core.Document{
		ID:       "staged",
		Body:     "staged body",
		Metadata: core.Metadata{"title": "Staged"},
	}))
	require.NoError(t, tx.Delete(ctx, "existing"))

	// Nothing is on disk until commit.
	_, err = os.Stat(filepath.Join(tmp, "staged.md"))
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, tx.Commit(ctx, "batch update"))

	_, err = os.Stat(filepath.Join(tmp, "staged.md"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(tmp, "existing.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestTransaction_ReadYourWrites(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, core.Document{
		ID:       "base",
		Metadata: core.Metadata{"title": "Base"},
	}))

	tx, err := repo.Begin(ctx)
	require.NoError(t, err)

	// Staged documents are visible inside the transaction.
	require.NoError(t, tx.Save(ctx, core.Document{ID: "draft", Body: "wip"}))
	doc, err := tx.Get(ctx, "draft")
	require.NoError(t, err)
	assert.Equal(t, "wip", doc.Body)

	// Staged deletes hide committed documents.
	require.NoError(t, tx.Delete(ctx, "base"))
	_, err = tx.Get(ctx, "base")
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, tx.Rollback(ctx))
}

func TestTransaction_RollbackDiscards(t *testing.T) {
	repo, tmp := setupRepo(t)
	ctx := context.Background()

	tx, err := repo.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Save(ctx, core.Document{ID: "ghost", Body: "never lands"}))
	require.NoError(t, tx.Rollback(ctx))

	_, err = os.Stat(filepath.Join(tmp, "ghost.md"))
	assert.True(t, os.IsNotExist(err))

	// A closed transaction refuses further work.
	err = tx.Save(ctx, core.Document{ID: "late"})
	assert.Error(t, err)
}

func TestTransaction_ReadOnlyRepo(t *testing.T) {
	tmp := t.TempDir()
	seed := fs.NewRepository(fs.Config{Path: tmp, AutoInit: true, Gitless: true})
	require.NoError(t, seed.Initialize(context.Background()))

	ro := fs.NewRepository(fs.Config{Path: tmp, Gitless: true, ReadOnly: true, MustExist: true})
	require.NoError(t, ro.Initialize(context.Background()))

	_, err := ro.Begin(context.Background())
	assert.ErrorIs(t, err, core.ErrReadOnly)
}
