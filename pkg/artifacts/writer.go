package artifacts

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"

	"github.com/treesmith/treesmith/pkg/errors"
	"github.com/treesmith/treesmith/pkg/logging"
	"github.com/treesmith/treesmith/pkg/paths"
)

// Artifact is one generated file to place in the output directory.
// Name may contain subdirectories but must stay inside it.
type Artifact struct {
	Name    string
	Content []byte
	Mode    os.FileMode
}

// Writer places artifacts in one output directory through a synthfs
// pipeline.
type Writer struct {
	logger     zerolog.Logger
	dryRun     bool
	filesystem synthfs.FileSystem
	outputDir  string
}

// NewWriter creates a Writer for the given output directory. The
// directory does not need to exist yet. With dryRun, Write only logs
// what it would do.
func NewWriter(outputDir string, dryRun bool) *Writer {
	return &Writer{
		logger:     logging.GetLogger("artifacts"),
		dryRun:     dryRun,
		filesystem: filesystem.NewOSFileSystem("/"),
		outputDir:  outputDir,
	}
}

// Write places all artifacts, creating the output directory and any
// artifact subdirectories first. Nothing outside the output directory
// is touched.
func (w *Writer) Write(arts []Artifact) error {
	if len(arts) == 0 {
		w.logger.Debug().Msg("No artifacts to write")
		return nil
	}

	outDir, err := filepath.Abs(w.outputDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrScriptWrite, "cannot resolve output directory %s", w.outputDir)
	}

	targets := make([]string, len(arts))
	for i, a := range arts {
		target := filepath.Join(outDir, a.Name)
		if !paths.ContainsPath(outDir, target) {
			return errors.Newf(errors.ErrInvalidInput,
				"artifact %s escapes the output directory", a.Name)
		}
		targets[i] = target
	}

	if w.dryRun {
		for i, a := range arts {
			w.logger.Info().
				Str("target", targets[i]).
				Str("mode", a.Mode.String()).
				Int("bytes", len(a.Content)).
				Msg("Would write artifact")
		}
		return nil
	}

	// Regenerated artifacts replace earlier runs; synthfs validation
	// rejects create operations on existing targets, so clear them.
	for _, target := range targets {
		if _, err := os.Lstat(target); err == nil {
			w.logger.Debug().Str("target", target).Msg("Removing stale artifact")
			if err := os.Remove(target); err != nil {
				return errors.Wrapf(err, errors.ErrScriptWrite, "cannot replace %s", target)
			}
		}
	}

	pipeline := synthfs.NewMemPipeline()
	for _, dir := range parentDirs(outDir, targets) {
		op, err := dirOperation(dir)
		if err != nil {
			return err
		}
		if err := pipeline.Add(op); err != nil {
			return errors.Wrapf(err, errors.ErrScriptWrite,
				"failed to add directory operation for %s", dir)
		}
	}
	for i, a := range arts {
		op, err := fileOperation(targets[i], a)
		if err != nil {
			return err
		}
		if err := pipeline.Add(op); err != nil {
			return errors.Wrapf(err, errors.ErrScriptWrite,
				"failed to add write operation for %s", a.Name)
		}
	}

	w.logger.Info().Int("artifacts", len(arts)).Str("outputDir", outDir).Msg("Writing artifacts")

	result := synthfs.NewExecutor().Run(context.Background(), pipeline, w.filesystem)
	if result.GetError() != nil {
		return errors.Wrapf(result.GetError(), errors.ErrScriptWrite,
			"failed to write artifacts to %s", outDir)
	}

	for i, a := range arts {
		w.logger.Debug().
			Str("target", targets[i]).
			Int("bytes", len(a.Content)).
			Msg("Wrote artifact")
	}
	return nil
}

// parentDirs returns the output directory and every artifact parent
// below it that does not exist yet, shallow first, so directory
// operations run before the file writes that need them.
func parentDirs(outDir string, targets []string) []string {
	seen := map[string]bool{outDir: true}
	candidates := []string{outDir}
	for _, target := range targets {
		for dir := filepath.Dir(target); !seen[dir] && paths.ContainsPath(outDir, dir); dir = filepath.Dir(dir) {
			seen[dir] = true
			candidates = append(candidates, dir)
		}
	}

	var dirs []string
	for _, dir := range candidates {
		if _, err := os.Stat(dir); err == nil {
			continue
		}
		dirs = append(dirs, dir)
	}
	sort.Slice(dirs, func(i, j int) bool {
		return strings.Count(dirs[i], string(filepath.Separator)) < strings.Count(dirs[j], string(filepath.Separator))
	})
	return dirs
}

// dirOperation builds the synthfs operation creating one directory.
func dirOperation(dir string) (synthfs.Operation, error) {
	relPath, err := filepath.Rel("/", dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrScriptWrite, "failed to convert path %s", dir)
	}

	opID := core.OperationID(fmt.Sprintf("create-dir-%s", dir))
	op := operations.NewCreateDirectoryOperation(opID, relPath)
	op.SetItem(&directoryItem{path: relPath, mode: 0755})
	return synthfs.NewOperationsPackageAdapter(op), nil
}

// fileOperation builds the synthfs operation writing one artifact.
func fileOperation(target string, a Artifact) (synthfs.Operation, error) {
	relPath, err := filepath.Rel("/", target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrScriptWrite, "failed to convert path %s", target)
	}

	opID := core.OperationID(fmt.Sprintf("write-file-%s", target))
	op := operations.NewCreateFileOperation(opID, relPath)
	op.SetItem(&fileItem{
		path:    relPath,
		content: a.Content,
		mode:    a.Mode,
	})
	return synthfs.NewOperationsPackageAdapter(op), nil
}

// fileItem carries content and mode for a create-file operation.
type fileItem struct {
	path    string
	content []byte
	mode    fs.FileMode
}

func (f *fileItem) Path() string       { return f.path }
func (f *fileItem) Type() string       { return "file" }
func (f *fileItem) Content() []byte    { return f.content }
func (f *fileItem) Mode() fs.FileMode  { return f.mode }
func (f *fileItem) IsDir() bool        { return false }
func (f *fileItem) ModTime() time.Time { return time.Now() }
func (f *fileItem) Size() int64        { return int64(len(f.content)) }

// directoryItem carries the mode for a create-directory operation.
type directoryItem struct {
	path string
	mode fs.FileMode
}

func (d *directoryItem) Path() string       { return d.path }
func (d *directoryItem) Type() string       { return "directory" }
func (d *directoryItem) Mode() fs.FileMode  { return d.mode }
func (d *directoryItem) IsDir() bool        { return true }
func (d *directoryItem) ModTime() time.Time { return time.Now() }
func (d *directoryItem) Size() int64        { return 0 }
