// Package scriptload loads robot scripts by name from a directory or from
// the embedded default scripts, caching compiled programs.
package scriptload

import (
	"bytes"
	"context"
	"crypto/sha256"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru"

	"github.com/jcorbin/robotforth"
)

// Ext is the file extension of script files.
const Ext = ".fs"

//go:embed scripts/*.fs
var embedded embed.FS

// Defaults returns the embedded default scripts.
func Defaults() fs.FS {
	sub, err := fs.Sub(embedded, "scripts")
	if err != nil {
		panic(err)
	}
	return sub
}

// Loader compiles scripts named by their file name without extension.
// Compiled programs are cached until their source changes.
type Loader struct {
	fsys    fs.FS
	dir     string
	builder *robotforth.Builder
	cache   *lru.Cache
}

type cached struct {
	sum  [sha256.Size]byte
	prog *robotforth.Program
}

// New creates a loader reading scripts from fsys.
func New(fsys fs.FS, builder *robotforth.Builder, cacheSize int) (*Loader, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create program cache: %w", err)
	}
	return &Loader{fsys: fsys, builder: builder, cache: cache}, nil
}

// NewDir creates a loader reading scripts from a directory, or from the
// embedded defaults when dir is empty. Only directory loaders can Watch.
func NewDir(dir string, builder *robotforth.Builder, cacheSize int) (*Loader, error) {
	if dir == "" {
		return New(Defaults(), builder, cacheSize)
	}
	if info, err := os.Stat(dir); err != nil {
		return nil, err
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%v is not a directory", dir)
	}
	ld, err := New(os.DirFS(dir), builder, cacheSize)
	if ld != nil {
		ld.dir = dir
	}
	return ld, err
}

// Builder returns the builder used to compile scripts.
func (ld *Loader) Builder() *robotforth.Builder { return ld.builder }

// Names lists the available script names.
func (ld *Loader) Names() ([]string, error) {
	matches, err := fs.Glob(ld.fsys, "*"+Ext)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(matches))
	for i, match := range matches {
		names[i] = strings.TrimSuffix(match, Ext)
	}
	sort.Strings(names)
	return names, nil
}

// Source returns the text of the named script.
func (ld *Loader) Source(name string) ([]byte, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("invalid script name %q", name)
	}
	return fs.ReadFile(ld.fsys, name+Ext)
}

// Load returns the compiled program for the named script.
func (ld *Loader) Load(name string) (*robotforth.Program, error) {
	src, err := ld.Source(name)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(src)
	if v, ok := ld.cache.Get(name); ok {
		if ent := v.(cached); ent.sum == sum {
			return ent.prog, nil
		}
	}
	prog, err := ld.builder.Build(name+Ext, bytes.NewReader(src))
	if err != nil {
		ld.cache.Remove(name)
		return nil, err
	}
	ld.cache.Add(name, cached{sum, prog})
	return prog, nil
}

// Cached returns true if a compiled program for name is cached.
func (ld *Loader) Cached(name string) bool { return ld.cache.Contains(name) }

// Invalidate drops any cached program for name.
func (ld *Loader) Invalidate(name string) { ld.cache.Remove(name) }

// ErrNotWatchable is returned by Watch for loaders not backed by a directory.
var ErrNotWatchable = errors.New("script loader is not backed by a directory")

// Watch reloads scripts as their files change, calling fn with each reload
// result, until ctx is done. Removed scripts are reported with a nil program
// and fs.ErrNotExist.
func (ld *Loader) Watch(ctx context.Context, fn func(name string, prog *robotforth.Program, err error)) error {
	if ld.dir == "" {
		return ErrNotWatchable
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(ld.dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			base := filepath.Base(ev.Name)
			if filepath.Ext(base) != Ext {
				continue
			}
			name := strings.TrimSuffix(base, Ext)
			ld.Invalidate(name)
			switch {
			case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
				prog, err := ld.Load(name)
				fn(name, prog, err)
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				fn(name, nil, fs.ErrNotExist)
			}
		}
	}
}
