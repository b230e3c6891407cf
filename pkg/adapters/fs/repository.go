// Package fs implements the filesystem storage adapter: articles live
// as front-matter markup files in a directory tree, versioned with git
// and indexed by a small mtime cache.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/quillhq/inkwell/pkg/core"
	"github.com/quillhq/inkwell/pkg/git"
)

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path      string
	AutoInit  bool
	Gitless   bool
	MustExist bool
	ReadOnly  bool
	Logger    *slog.Logger
	SystemDir string // e.g. ".inkwell"
	// EventBuffer is the watch channel capacity. Zero means 100.
	EventBuffer int
	// ErrorHandler receives runtime watcher errors.
	ErrorHandler func(error)
}

// Repository implements core.Repository using the filesystem and Git.
type Repository struct {
	Path   string
	git    *git.Client
	cache  *cache
	config Config

	serializers map[string]Serializer

	mu            sync.RWMutex
	watcherActive bool
	lastReconcile *time.Time
	activeTx      map[string]bool
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.SystemDir == "" {
		config.SystemDir = ".inkwell"
	}
	return &Repository{
		Path:        config.Path,
		git:         git.NewClient(config.Path, config.SystemDir+".lock", config.Logger),
		config:      config,
		cache:       newCache(config.Path, config.SystemDir),
		serializers: DefaultSerializers(),
		activeTx:    make(map[string]bool),
	}
}

// RegisterSerializer adds or replaces the serializer for an extension.
func (r *Repository) RegisterSerializer(ext string, s Serializer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.serializers[ext] = s
}

func (r *Repository) serializerFor(ext string) (Serializer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.serializers[ext]
	return s, ok
}

// Begin starts a new transaction.
func (r *Repository) Begin(ctx context.Context) (core.Transaction, error) {
	if r.config.ReadOnly {
		return nil, core.ErrReadOnly
	}
	return NewTransaction(r), nil
}

// Initialize performs the necessary setup for the repository (mkdir, git init).
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.ReadOnly {
		// Read-only vaults must already exist; nothing to set up.
		info, err := os.Stat(r.Path)
		if err != nil {
			return fmt.Errorf("vault path is not readable: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("vault path is not a directory: %s", r.Path)
		}
		return nil
	}

	// 1. Directory Initialization
	if r.config.MustExist {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("vault path does not exist: %s", r.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("vault path is not a directory: %s", r.Path)
		}
	} else {
		if err := os.MkdirAll(r.Path, 0755); err != nil {
			return fmt.Errorf("failed to create vault directory: %w", err)
		}
	}

	// 2. Git Initialization
	if !r.config.Gitless {
		if !git.IsInstalled() {
			return fmt.Errorf("git is not installed")
		}

		wasNewRepo := false
		if !r.git.IsRepo() {
			if r.config.AutoInit {
				if err := r.git.Init(); err != nil {
					return fmt.Errorf("failed to git init: %w", err)
				}
				wasNewRepo = true
			} else {
				return fmt.Errorf("path is not a git repository: %s", r.Path)
			}
		}

		// Ensure .gitignore has the system directory
		mod, err := r.ensureIgnore()
		if err != nil {
			return fmt.Errorf("failed to ensure .gitignore: %w", err)
		}

		if mod && wasNewRepo {
			// If we just created the repo, commit the .gitignore to start clean
			if err := r.git.Add(".gitignore"); err != nil {
				return fmt.Errorf("failed to add .gitignore: %w", err)
			}
			if err := r.git.Commit(fmt.Sprintf("chore: configure %s ignore", r.config.SystemDir)); err != nil {
				return fmt.Errorf("failed to commit .gitignore: %w", err)
			}
		}
	}

	return nil
}

func (r *Repository) ensureIgnore() (bool, error) {
	ignorePath := filepath.Join(r.Path, ".gitignore")
	ignoreEntry := r.config.SystemDir + "/"

	content, err := os.ReadFile(ignorePath)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	lines := strings.Split(string(content), "\n")
	for _, line := range lines {
		if strings.TrimSpace(line) == ignoreEntry {
			return false, nil
		}
	}

	f, err := os.OpenFile(ignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()

	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		if _, err := f.WriteString("\n"); err != nil {
			return false, err
		}
	}

	if _, err := f.WriteString(ignoreEntry + "\n"); err != nil {
		return false, err
	}

	return true, nil
}

// Sync synchronizes the repository with its remote.
func (r *Repository) Sync(ctx context.Context) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if r.config.Gitless {
		return fmt.Errorf("cannot sync in gitless mode")
	}
	if !r.git.IsRepo() {
		return fmt.Errorf("path is not a git repository: %s", r.Path)
	}
	if !r.git.HasRemote() {
		return fmt.Errorf("remote 'origin' not configured")
	}

	unlock, err := r.git.Lock()
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	return r.git.Sync()
}

// filenameFor maps a document ID to its on-disk filename and extension.
// IDs without an extension (or with an unsupported one) default to
// Markdown.
func (r *Repository) filenameFor(id string) (filename, ext string) {
	ext = filepath.Ext(id)
	if _, ok := r.serializerFor(ext); !ok {
		ext = ".md"
		return id + ext, ext
	}
	return id, ext
}

// resolveID maps an absolute file path back to a document ID.
// Markdown files drop their extension; other dialects keep it so the
// ID round-trips through Get.
func (r *Repository) resolveID(path string) (string, error) {
	relPath, err := filepath.Rel(r.Path, path)
	if err != nil {
		return "", err
	}
	relPath = filepath.ToSlash(relPath)

	if ext := filepath.Ext(relPath); ext == ".md" {
		return strings.TrimSuffix(relPath, ext), nil
	}
	return relPath, nil
}

// Save persists a document to the filesystem and commits it to Git.
//
// Workflow:
//  1. Validate ID and resolve the serializer from the extension.
//  2. Create parent directories.
//  3. Serialize (front matter + body) and write atomically to disk.
//  4. (If Git enabled) 'git add' and 'git commit' with context metadata.
func (r *Repository) Save(ctx context.Context, doc core.Document) error {
	if doc.ID == "" {
		return core.ErrEmptyID
	}
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}

	filename, ext := r.filenameFor(doc.ID)
	serializer, ok := r.serializerFor(ext)
	if !ok {
		return fmt.Errorf("no serializer for %s", ext)
	}

	fullPath := filepath.Join(r.Path, filename)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	data, err := serializer.Serialize(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	if err := writeFileAtomic(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if !r.config.Gitless {
		unlock, err := r.git.Lock()
		if err != nil {
			return fmt.Errorf("failed to acquire git lock: %w", err)
		}
		defer unlock()

		if err := r.git.Add(filename); err != nil {
			return fmt.Errorf("failed to git add: %w", err)
		}

		msg := "update " + doc.ID
		if val, ok := ctx.Value(core.ChangeReasonKey).(string); ok && val != "" {
			msg = val
		}

		if err := r.git.Commit(msg); err != nil {
			return fmt.Errorf("failed to git commit: %w", err)
		}
	}

	return nil
}

// Get retrieves a document from the filesystem.
func (r *Repository) Get(ctx context.Context, id string) (core.Document, error) {
	if id == "" {
		return core.Document{}, core.ErrEmptyID
	}

	filename, ext := r.filenameFor(id)
	serializer, _ := r.serializerFor(ext)

	fullPath := filepath.Join(r.Path, filename)

	f, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return core.Document{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
		}
		return core.Document{}, err
	}
	defer f.Close()

	doc, err := serializer.Parse(f)
	if err != nil {
		return core.Document{}, fmt.Errorf("failed to parse document %s: %w", id, err)
	}
	doc.ID = id

	return *doc, nil
}

// ListIDs enumerates document IDs without parsing file contents.
// The linter uses this so documents that fail to parse still get reported.
func (r *Repository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.walkDocuments(func(path string, d os.DirEntry) error {
		id, err := r.resolveID(path)
		if err != nil {
			return err
		}
		ids = append(ids, id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// List scans the directory for all documents.
//
// Strategy:
//  1. Load existing cache (metadata index) from disk.
//  2. Walk the directory tree (skipping .git and system dirs).
//  3. For each supported file:
//     a. Check cache hit (based on mtime). If hit, use cached metadata (FAST).
//     b. Cache miss: full parse (Get). Update cache.
//  4. Save cache back to disk.
//
// On a cache hit the document body is empty: List is intended for
// metadata discovery. Use Get for content.
func (r *Repository) List(ctx context.Context) ([]core.Document, error) {
	var docs []core.Document

	if err := r.cache.Load(); err != nil {
		if r.config.Logger != nil {
			r.config.Logger.Warn("failed to load index cache", "error", err)
		}
	}
	seen := make(map[string]bool)

	err := r.walkDocuments(func(path string, d os.DirEntry) error {
		relPath, err := filepath.Rel(r.Path, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		id, err := r.resolveID(path)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		mtime := info.ModTime()

		seen[relPath] = true

		if entry, hit := r.cache.Get(relPath, mtime); hit {
			docs = append(docs, core.Document{
				ID:       entry.ID,
				Metadata: entry.Metadata,
			})
			return nil
		}

		doc, err := r.Get(ctx, id)
		if err != nil {
			if r.config.Logger != nil {
				r.config.Logger.Warn("failed to parse document during list", "id", id, "error", err)
			}
			return nil // Skip unparseable
		}

		r.cache.Set(relPath, &indexEntry{
			ID:           id,
			Metadata:     doc.Metadata,
			LastModified: mtime,
		})

		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.cache.Prune(seen)
	if !r.config.ReadOnly {
		if err := r.cache.Save(); err != nil {
			if r.config.Logger != nil {
				r.config.Logger.Warn("failed to save index cache", "error", err)
			}
		}
	}

	return docs, nil
}

// walkDocuments visits every supported document file under the vault root.
func (r *Repository) walkDocuments(visit func(path string, d os.DirEntry) error) error {
	return filepath.WalkDir(r.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" || d.Name() == r.config.SystemDir {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), TempFilePrefix) {
			return nil
		}
		if _, ok := r.serializerFor(filepath.Ext(d.Name())); !ok {
			return nil
		}
		return visit(path, d)
	})
}

// Delete removes a document.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return core.ErrEmptyID
	}
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}

	filename, _ := r.filenameFor(id)
	fullPath := filepath.Join(r.Path, filename)

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}

	r.cache.Delete(filepath.ToSlash(filename))

	if r.config.Gitless {
		if err := os.Remove(fullPath); err != nil {
			return fmt.Errorf("failed to remove file: %w", err)
		}
		return nil
	}

	unlock, err := r.git.Lock()
	if err != nil {
		return fmt.Errorf("failed to acquire git lock: %w", err)
	}
	defer unlock()

	if err := r.git.Rm(filename); err != nil {
		return fmt.Errorf("failed to git rm: %w", err)
	}

	msg := "delete " + id
	if val, ok := ctx.Value(core.ChangeReasonKey).(string); ok && val != "" {
		msg = val
	}

	if err := r.git.Commit(msg); err != nil {
		return fmt.Errorf("failed to git commit: %w", err)
	}

	return nil
}

// Reconcile diffs the filesystem against the index cache and returns
// the events that happened while nobody was watching (e.g. during a git
// operation). The cache is updated in the process.
func (r *Repository) Reconcile(ctx context.Context) ([]core.Event, error) {
	var events []core.Event
	now := time.Now().Unix()
	seen := make(map[string]bool)

	err := r.walkDocuments(func(path string, d os.DirEntry) error {
		relPath, err := filepath.Rel(r.Path, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		id, err := r.resolveID(path)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		mtime := info.ModTime()
		seen[relPath] = true

		if _, hit := r.cache.Get(relPath, mtime); hit {
			return nil
		}

		eType := core.EventModify
		if !r.cacheHas(relPath) {
			eType = core.EventCreate
		}

		doc, err := r.Get(ctx, id)
		if err != nil {
			return nil
		}
		r.cache.Set(relPath, &indexEntry{
			ID:           id,
			Metadata:     doc.Metadata,
			LastModified: mtime,
		})

		events = append(events, core.Event{Type: eType, ID: id, Timestamp: now})
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Entries that vanished from disk are deletions.
	var removed []string
	r.cache.Range(func(relPath string, entry *indexEntry) bool {
		if !seen[relPath] {
			removed = append(removed, relPath)
			events = append(events, core.Event{Type: core.EventDelete, ID: entry.ID, Timestamp: now})
		}
		return true
	})
	for _, relPath := range removed {
		r.cache.Delete(relPath)
	}

	if !r.config.ReadOnly {
		_ = r.cache.Save()
	}

	r.recordReconcile()
	return events, nil
}

func (r *Repository) cacheHas(relPath string) bool {
	found := false
	r.cache.Range(func(p string, _ *indexEntry) bool {
		if p == relPath {
			found = true
			return false
		}
		return true
	})
	return found
}

// Watch streams change events for documents matching the glob pattern.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern != "" {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid watch pattern: %s", pattern)
		}
	}

	bufSize := r.config.EventBuffer
	if bufSize <= 0 {
		bufSize = 100
	}

	events := make(chan core.Event, bufSize)
	worker := newWatchWorker(r, pattern, events)
	if err := worker.Start(ctx); err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = worker.Stop(stopCtx)
		close(events)
	}()

	return events, nil
}

// shouldIgnore filters filesystem events down to relevant document changes.
func (r *Repository) shouldIgnore(event fsnotify.Event, pattern string) bool {
	base := filepath.Base(event.Name)

	if strings.HasPrefix(base, TempFilePrefix) {
		return true
	}
	if base == r.config.SystemDir+".lock" {
		return true
	}

	relPath, err := filepath.Rel(r.Path, event.Name)
	if err != nil {
		return true
	}
	relPath = filepath.ToSlash(relPath)

	for _, part := range strings.Split(relPath, "/") {
		if part == ".git" || part == r.config.SystemDir {
			return true
		}
	}

	if _, ok := r.serializerFor(filepath.Ext(base)); !ok {
		return true
	}

	if pattern != "" {
		match, err := doublestar.Match(pattern, relPath)
		if err != nil || !match {
			return true
		}
	}

	return false
}

// mapEventType translates fsnotify operations into vault event types.
func (r *Repository) mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}

// recursiveAdd registers the vault directory tree with the watcher.
func (r *Repository) recursiveAdd(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(r.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" || d.Name() == r.config.SystemDir {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func (r *Repository) registerTx(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activeTx[id] = true
}

func (r *Repository) unregisterTx(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.activeTx, id)
}
