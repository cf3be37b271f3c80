package excerpt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// FS is an in-memory set of generated files that can be batch-written to
// disk, or batch-compared against what is already on disk.
//
// This suits `go generate`-style generators whose output is committed: a
// developer run calls [FS.Write], while CI calls [FS.Verify] to check that the
// committed output is up to date.
//
// Files may not be removed once added. A path conflict when adding a file or
// merging another FS is an error.
type FS struct {
	mu    sync.Mutex
	files map[string]File
}

// NewFS creates an empty FS.
func NewFS() *FS {
	return &FS{
		files: make(map[string]File),
	}
}

// Add adds Files to the FS. Nothing is added if any of them is invalid or
// conflicts with a file already in the FS.
func (fs *FS) Add(fl ...File) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.add(fl...)
}

func (fs *FS) add(fl ...File) error {
	if err := Files(fl).Validate(); err != nil {
		return err
	}

	var result *multierror.Error
	for _, f := range fl {
		if prior, has := fs.files[f.RelativePath]; has {
			result = multierror.Append(result, fmt.Errorf("%w: %s from %s, already created by %s",
				ErrInvalidFile, f.RelativePath, jennystack(f.From), jennystack(prior.From)))
		}
	}
	if result.ErrorOrNil() != nil {
		return result
	}

	for _, f := range fl {
		fs.files[f.RelativePath] = f
	}
	return nil
}

// Merge adds all files from other into fs.
func (fs *FS) Merge(other *FS) error {
	return fs.Add(other.AsFiles()...)
}

// Len returns the number of files in the FS.
func (fs *FS) Len() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.files)
}

// AsFiles returns the contents of the FS, sorted by path.
func (fs *FS) AsFiles() Files {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.sorted()
}

func (fs *FS) sorted() Files {
	fl := make(Files, 0, len(fs.files))
	for _, f := range fs.files {
		fl = append(fl, f)
	}
	slices.SortFunc(fl, func(a, b File) int {
		return strings.Compare(a.RelativePath, b.RelativePath)
	})
	return fl
}

// Write writes all files to their paths, creating parent directories as
// needed.
//
// If the provided prefix path is non-empty, it is prepended to every file's
// path. prefix may be an absolute path.
func (fs *FS) Write(ctx context.Context, prefix string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(12)

	for _, f := range fs.sorted() {
		g.Go(func() error {
			path := filepath.Join(prefix, f.RelativePath)
			if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
				return fmt.Errorf("%s: failed to ensure parent directory exists: %w", path, err)
			}
			if err := os.WriteFile(path, f.Data, 0644); err != nil { //nolint:gosec
				return fmt.Errorf("%s: error while writing file: %w", path, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Verify checks every file against the filesystem, returning an error that
// describes each missing or differing file.
//
// prefix is handled as in [FS.Write].
func (fs *FS) Verify(ctx context.Context, prefix string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(12)

	var rmu sync.Mutex
	var result *multierror.Error
	report := func(err error) {
		rmu.Lock()
		result = multierror.Append(result, err)
		rmu.Unlock()
	}

	for _, f := range fs.sorted() {
		g.Go(func() error {
			path := filepath.Join(prefix, f.RelativePath)
			ob, err := os.ReadFile(path) //nolint:gosec
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					report(fmt.Errorf("%s: generated file should exist, but does not", path))
					return nil
				}
				return fmt.Errorf("%s: error reading file: %w", path, err)
			}
			if d := cmp.Diff(string(ob), string(f.Data)); d != "" {
				report(fmt.Errorf("%s would have changed:\n\n%s", path, d))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("io error while verifying tree: %w", err)
	}
	return result.ErrorOrNil()
}
