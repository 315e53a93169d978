package app

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/ludo-technologies/pyreview/domain"
	"github.com/ludo-technologies/pyreview/internal/constants"
)

// FileHelper discovers and reads Python source files. A single helper is
// shared by every analyzer so they all see the same file list.
type FileHelper struct {
	excludePatterns  []string
	respectGitignore bool
	logger           *slog.Logger
}

// FileHelperOption configures a FileHelper
type FileHelperOption func(*FileHelper)

// WithExcludePatterns skips files and directories matching any glob pattern.
// Patterns match the base name or the slash separated path relative to the
// target.
func WithExcludePatterns(patterns []string) FileHelperOption {
	return func(h *FileHelper) {
		h.excludePatterns = append([]string(nil), patterns...)
	}
}

// WithGitignore skips files ignored by the target directory's .gitignore
func WithGitignore(enabled bool) FileHelperOption {
	return func(h *FileHelper) {
		h.respectGitignore = enabled
	}
}

// WithLogger sets the logger that reports skipped directories
func WithLogger(logger *slog.Logger) FileHelperOption {
	return func(h *FileHelper) {
		h.logger = logger
	}
}

// NewFileHelper creates a new FileHelper
func NewFileHelper(opts ...FileHelperOption) *FileHelper {
	h := &FileHelper{}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = slog.New(slog.DiscardHandler)
	}
	return h
}

// Collect resolves path into Python files. A file target must carry the .py
// extension; a directory target is walked recursively in lexical order.
func (h *FileHelper) Collect(path string) (*domain.FileSet, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}

	if !info.IsDir() {
		if !h.IsPythonFile(path) {
			return nil, domain.NewInvalidInputError("not a Python file: "+path, nil)
		}
		return &domain.FileSet{Files: []string{path}}, nil
	}

	set, err := h.walk(path)
	if err != nil {
		return nil, domain.NewIOError(path, err)
	}
	if len(set.Files) == 0 {
		return nil, domain.NewNoSourceFilesError(path)
	}
	return set, nil
}

func (h *FileHelper) walk(root string) (*domain.FileSet, error) {
	w := &walker{helper: h, root: root, set: &domain.FileSet{}}
	if h.respectGitignore {
		compiled, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		w.gitignore = compiled
	}

	if err := filepath.WalkDir(root, w.visit); err != nil {
		return nil, err
	}
	return w.set, nil
}

// walker accumulates the files of one directory walk
type walker struct {
	helper    *FileHelper
	root      string
	gitignore *ignore.GitIgnore
	set       *domain.FileSet
}

// visit is the WalkDir callback. An unreadable entry below the root is
// logged, recorded in Skipped and left out; only a failure on the root
// itself aborts the walk.
func (w *walker) visit(path string, d fs.DirEntry, err error) error {
	if err != nil {
		if path == w.root {
			return err
		}
		w.helper.logger.Warn("skipping unreadable path", slog.String("path", path), slog.Any("error", err))
		w.set.Skipped = append(w.set.Skipped, domain.NewIOError(path, err).Error())
		if d != nil && d.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}
	if path == w.root {
		return nil
	}

	rel, relErr := filepath.Rel(w.root, path)
	if relErr != nil {
		return relErr
	}
	rel = filepath.ToSlash(rel)

	if w.helper.isExcluded(rel) || (w.gitignore != nil && w.gitignore.MatchesPath(rel)) {
		if d.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}

	if !d.IsDir() && w.helper.IsPythonFile(path) {
		w.set.Files = append(w.set.Files, path)
	}
	return nil
}

// IsPythonFile checks the file extension
func (h *FileHelper) IsPythonFile(path string) bool {
	return strings.HasSuffix(path, constants.SourceExtension)
}

// ReadSource reads a file into a SourceFile
func (h *FileHelper) ReadSource(path string) (*domain.SourceFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewIOError(path, err)
	}
	return domain.NewSourceFile(path, content), nil
}

// isExcluded matches rel (slash separated, relative to the walk root)
// against the exclude patterns
func (h *FileHelper) isExcluded(rel string) bool {
	base := filepath.Base(rel)
	for _, pattern := range h.excludePatterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}
