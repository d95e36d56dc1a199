package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowlens/flowlens/pkg/cache"
	"github.com/flowlens/flowlens/pkg/config"
	"github.com/flowlens/flowlens/pkg/errors"
	flowio "github.com/flowlens/flowlens/pkg/io"
	"github.com/flowlens/flowlens/pkg/workflow"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	output  string // output file path (stdout if empty)
	noCache bool   // disable the result cache
	refresh bool   // reparse even on a cache hit
}

// newParseCmd creates the parse command.
// It converts a workflow document to the JSON record format, caching
// results by content hash so unchanged files parse instantly.
func newParseCmd() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse <workflow.yxmd>",
		Short: "Convert a workflow document to JSON",
		Long: `Parse an Alteryx workflow document and print its JSON record.

The record contains the workflow metadata, every tool with its full
configuration, the connections between tools, and the runtime properties.

Examples:
  flowlens parse pipeline.yxmd                 # JSON to stdout
  flowlens parse pipeline.yxmd -o record.json  # JSON to a file
  flowlens parse pipeline.yxmd --refresh       # bypass the cache`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runParse(c.Context(), &opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "reparse even if a cached result exists")

	return cmd
}

// runParse reads, parses, and serializes one workflow document.
func runParse(ctx context.Context, opts *parseOpts, path string) error {
	logger := loggerFromContext(ctx)

	if !looksLikeWorkflowFile(path) {
		logger.Warnf("%s does not have a workflow extension (.yxmd, .yxwz, .yxmc)", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}

	c := openCache(opts.noCache, logger)
	defer c.Close()
	key := cache.WorkflowKey(data)

	if !opts.refresh {
		if cached, ok, err := c.Get(ctx, key); err == nil && ok {
			logger.Debugf("Cache hit for %s", path)
			return emitRecord(cached, opts.output, true)
		}
	}

	logger.Infof("Parsing %s", path)
	prog := newProgress(logger)
	wf, err := workflow.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := flowio.WriteJSON(wf, &buf); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Parsed %d tools with %d connections", len(wf.Tools), len(wf.Connections)))

	if err := c.Set(ctx, key, buf.Bytes(), 0); err != nil {
		logger.Warnf("Cache write failed: %v", err)
	}

	return emitRecord(buf.Bytes(), opts.output, false)
}

// looksLikeWorkflowFile returns true if path has a known workflow
// extension. Designer saves workflows as .yxmd, analytic apps as .yxwz,
// and macros as .yxmc.
func looksLikeWorkflowFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yxmd", ".yxwz", ".yxmc":
		return true
	}
	return false
}

// openCache builds the file cache from configuration, falling back to a
// null cache when disabled or when the cache directory is unavailable.
func openCache(disabled bool, logger interface{ Warnf(string, ...any) }) cache.Cache {
	if disabled {
		return cache.NewNullCache()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Warnf("Config load failed, caching disabled: %v", err)
		return cache.NewNullCache()
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		logger.Warnf("No cache directory, caching disabled: %v", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Warnf("Cache unavailable: %v", err)
		return cache.NewNullCache()
	}
	return fc
}

// emitRecord writes the JSON record to path, or to stdout when path is
// empty. File output gets a status trailer naming the file and whether
// the record came from the cache; stdout stays pure JSON so the command
// can be piped.
func emitRecord(data []byte, path string, cached bool) error {
	if err := writeOutput(data, path); err != nil {
		return err
	}
	if path != "" {
		tools, conns := recordCounts(data)
		printFile(path)
		printStats(tools, conns, cached)
	}
	return nil
}

// recordCounts pulls the tool and connection counts out of a serialized
// record without re-hydrating the whole document.
func recordCounts(data []byte) (tools, conns int) {
	var rec struct {
		Tools       []json.RawMessage `json:"nodes"`
		Connections []json.RawMessage `json:"connections"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return 0, 0
	}
	return len(rec.Tools), len(rec.Connections)
}

// writeOutput writes data to the specified path (or stdout if empty).
func writeOutput(data []byte, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.Write(data)
	return err
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
