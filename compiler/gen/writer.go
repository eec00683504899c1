package gen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"unicode"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// Writer renders generation results to the target directory with parallel
// execution, and surfaces the collected diagnostics of failed definitions
// instead of their artifacts.
type Writer struct {
	cfg   *Config
	cache *Cache

	mu      sync.Mutex
	metrics *WriterMetrics
	diags   Diagnostics
}

// WriterMetrics tracks generation performance.
type WriterMetrics struct {
	FilesGenerated int
	FilesSkipped   int
	TotalBytes     int64
}

// NewWriter creates a writer for the given config, filling config defaults.
func NewWriter(cfg *Config) (*Writer, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &Writer{cfg: cfg, metrics: &WriterMetrics{}}, nil
}

// Metrics returns the generation metrics.
func (w *Writer) Metrics() *WriterMetrics {
	return w.metrics
}

// WriteAll writes every successful result and collects diagnostics from the
// failed ones. When any definition failed, the returned error is the sorted
// Diagnostics of the whole run; successful siblings are still written.
func (w *Writer) WriteAll(ctx context.Context, results []*Result) error {
	if err := os.MkdirAll(w.cfg.Target, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if w.cfg.Cache {
		w.cache = LoadCache(filepath.Join(w.cfg.Target, CacheFile))
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.cfg.Workers)
	for _, r := range results {
		if !r.Ok() {
			w.mu.Lock()
			w.diags = append(w.diags, r.Diags...)
			w.mu.Unlock()
			continue
		}
		r := r
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeResult(r)
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	if w.cache != nil {
		if err := w.cache.Save(); err != nil {
			return NewGenerationError("", CacheFile, "save cache", err)
		}
	}
	if len(w.diags) > 0 {
		w.diags.Sort()
		return w.diags
	}
	return nil
}

// writeResult renders, formats and writes a single builder file.
func (w *Writer) writeResult(r *Result) error {
	name := label(r.Name) + "_builder.go"
	fullPath := filepath.Join(w.cfg.Target, name)

	if w.cache != nil && w.cache.Hit(r.Name, r.Fingerprint) {
		if _, err := os.Stat(fullPath); err == nil {
			w.mu.Lock()
			w.metrics.FilesSkipped++
			w.mu.Unlock()
			return nil
		}
	}

	var buf bytes.Buffer
	if err := r.File.Render(&buf); err != nil {
		return NewGenerationError(r.Name, name, "render", err)
	}

	// Jennifer tracks imports itself; the goimports pass is a formatting
	// safety net and catches anything a raw token slipped through.
	formatted, err := imports.Process(fullPath, buf.Bytes(), nil)
	if err != nil {
		debugPath := fullPath + ".error"
		_ = os.WriteFile(debugPath, buf.Bytes(), 0o644)
		return NewGenerationError(r.Name, name,
			fmt.Sprintf("format (unformatted written to %s)", debugPath), err)
	}

	if err := os.WriteFile(fullPath, formatted, 0o644); err != nil {
		return NewGenerationError(r.Name, name, "write", err)
	}

	if w.cache != nil {
		w.cache.Put(r.Name, r.Fingerprint)
	}
	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(formatted))
	w.mu.Unlock()
	return nil
}

// label converts a type name to its snake_case file label:
// "UserInfo" becomes "user_info", "HTTPCode" becomes "http_code".
func label(name string) string {
	var out []rune
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				out = append(out, '_')
			}
		}
		out = append(out, unicode.ToLower(r))
	}
	return string(out)
}
