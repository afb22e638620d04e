// Package output writes generated modules to an output directory.
package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/alis-exchange/protoc-gen-scale/codegen"
)

// Writer writes generation results in parallel. Files whose content did not
// change are left untouched so build tools watching modification times do
// not rebuild needlessly.
type Writer struct {
	outDir  string
	workers int
	logger  *slog.Logger
}

// NewWriter creates a Writer for outDir.
func NewWriter(outDir string) *Writer {
	return &Writer{
		outDir:  outDir,
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.New(slog.DiscardHandler),
	}
}

// WithWorkers sets the number of parallel writes.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// WithLogger sets the logger reporting written and unchanged files.
func (w *Writer) WithLogger(logger *slog.Logger) *Writer {
	if logger != nil {
		w.logger = logger
	}
	return w
}

// Manifest describes the files of one Write call.
type Manifest struct {
	OutDir string  `json:"out_dir"`
	Files  []Entry `json:"files"`
}

// Entry is one written file.
type Entry struct {
	// Module is the dotted Rust module path; empty for the include file and
	// the root module.
	Module  string `json:"module,omitempty"`
	Path    string `json:"path"`
	Bytes   int    `json:"bytes"`
	Changed bool   `json:"changed"`
	Include bool   `json:"include,omitempty"`
}

// fileTask is a single file to write.
type fileTask struct {
	module  string
	name    string // relative to outDir
	content []byte
	include bool
}

// Write writes every module of result, and its include file when present.
// The returned manifest lists files in result order, followed by the
// include file.
func (w *Writer) Write(ctx context.Context, result *codegen.Result) (*Manifest, error) {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	tasks := make([]fileTask, 0, len(result.Modules)+1)
	for _, m := range result.Modules {
		tasks = append(tasks, fileTask{module: m.Module.String(), name: m.FileName, content: []byte(m.Content)})
	}
	if result.IncludeFileName != "" {
		tasks = append(tasks, fileTask{name: result.IncludeFileName, content: []byte(result.Include), include: true})
	}

	manifest := &Manifest{OutDir: w.outDir, Files: make([]Entry, len(tasks))}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)

	// Each task owns its manifest slot.
	for i, t := range tasks {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			changed, err := w.writeFile(t)
			if err != nil {
				return err
			}
			manifest.Files[i] = Entry{
				Module:  t.module,
				Path:    t.name,
				Bytes:   len(t.content),
				Changed: changed,
				Include: t.include,
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// writeFile writes t unless the file on disk already holds its content.
func (w *Writer) writeFile(t fileTask) (bool, error) {
	fullPath := filepath.Join(w.outDir, t.name)

	existing, err := os.ReadFile(fullPath)
	switch {
	case err == nil && bytes.Equal(existing, t.content):
		w.logger.Debug("unchanged", "path", fullPath)
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("read %s: %w", t.name, err)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return false, fmt.Errorf("create directory for %s: %w", t.name, err)
	}
	if err := os.WriteFile(fullPath, t.content, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", t.name, err)
	}
	w.logger.Info("wrote", "path", fullPath, "bytes", len(t.content))
	return true, nil
}

// ChangedFiles returns the paths of the files Write actually rewrote.
func (m *Manifest) ChangedFiles() []string {
	var paths []string
	for _, e := range m.Files {
		if e.Changed {
			paths = append(paths, e.Path)
		}
	}
	slices.Sort(paths)
	return paths
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadManifest reads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}
