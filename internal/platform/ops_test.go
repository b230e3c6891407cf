package platform_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/quillhq/inkwell"
	"github.com/quillhq/inkwell/pkg/adapters/fs"
	"github.com/quillhq/inkwell/pkg/git"
)

func TestInit(t *testing.T) {
	t.Run("AutoInit=true Creates Directory and Git Repo", func(t *testing.T) {
		if !git.IsInstalled() {
			t.Skip("git not installed")
		}
		tmpDir := t.TempDir()
		vaultPath := filepath.Join(tmpDir, "vault")

		repo, err := inkwell.Init(vaultPath, inkwell.WithAutoInit(true), inkwell.WithForceTemp(true))
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}

		fsRepo, ok := repo.(*fs.Repository)
		if !ok {
			t.Fatalf("Expected fs repository")
		}

		if fsRepo.Path != vaultPath {
			t.Errorf("Expected path %s, got %s", vaultPath, fsRepo.Path)
		}

		// Check directory exists
		if info, err := os.Stat(vaultPath); err != nil || !info.IsDir() {
			t.Errorf("Vault directory not created")
		}

		// Check git repo (look for .git)
		if _, err := os.Stat(filepath.Join(vaultPath, ".git")); os.IsNotExist(err) {
			t.Errorf(".git directory not found")
		}
	})

	t.Run("AutoInit=false Fails if Directory Missing", func(t *testing.T) {
		tmpDir := t.TempDir()
		vaultPath := filepath.Join(tmpDir, "missing")

		_, err := inkwell.Init(vaultPath, inkwell.WithAutoInit(false), inkwell.WithMustExist(true), inkwell.WithForceTemp(true))
		if err == nil {
			t.Error("Expected failure for missing directory when AutoInit=false")
		}
	})

	t.Run("Versioning=false Does Not Initialize Git", func(t *testing.T) {
		tmpDir := t.TempDir()
		vaultPath := filepath.Join(tmpDir, "gitless_vault")

		repo, err := inkwell.Init(vaultPath, inkwell.WithAutoInit(true), inkwell.WithVersioning(false), inkwell.WithForceTemp(true))
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}

		fsRepo, ok := repo.(*fs.Repository)
		if !ok {
			t.Fatalf("Expected fs repository")
		}

		if fsRepo.Path != vaultPath {
			t.Errorf("Expected path %s, got %s", vaultPath, fsRepo.Path)
		}

		if _, err := os.Stat(vaultPath); os.IsNotExist(err) {
			t.Errorf("Vault directory not created")
		}

		// Check git repo should NOT exist
		if _, err := os.Stat(filepath.Join(vaultPath, ".git")); !os.IsNotExist(err) {
			t.Errorf(".git directory should not exist in gitless mode")
		}
	})

	t.Run("Unknown Adapter", func(t *testing.T) {
		_, err := inkwell.Init(t.TempDir(), inkwell.WithAdapter("s3"), inkwell.WithForceTemp(true))
		if err == nil {
			t.Error("Expected error for unknown adapter")
		}
	})
}

func TestSync(t *testing.T) {
	t.Run("Sync Fails if Gitless", func(t *testing.T) {
		tmpDir := t.TempDir()
		err := inkwell.Sync(tmpDir, inkwell.WithVersioning(false), inkwell.WithForceTemp(true))
		if err == nil {
			t.Error("Expected Sync to fail in gitless mode")
		}
	})

	t.Run("Sync Fails with No Remote", func(t *testing.T) {
		if !git.IsInstalled() {
			t.Skip("git not installed")
		}
		tmpDir := t.TempDir()
		// Initialize a repo without remote
		client := git.NewClient(tmpDir, ".inkwell.lock", nil)
		_ = client.Init()
		_ = client.Commit("initial commit") // commit so we have HEAD

		err := inkwell.Sync(tmpDir, inkwell.WithVersioning(true), inkwell.WithForceTemp(true))
		if err == nil {
			t.Error("Expected Sync to fail without remote")
		}
	})
}
