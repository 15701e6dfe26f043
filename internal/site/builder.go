package site

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/calcsite/internal/catalog"
	"github.com/nao1215/calcsite/internal/sitemap"
)

// Output files written next to the rendered pages.
const (
	IndexFile    = "index.html"
	NotFoundFile = "404.html"
	SitemapFile  = "sitemap.xml"
	RobotsFile   = "robots.txt"
	ManifestFile = "manifest.json"
)

// defaultWorkers is used when no worker count is configured.
const defaultWorkers = 4

// Manifest records every file of a static build.
type Manifest struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Files       []ManifestEntry `json:"files"`
}

// ManifestEntry is one written file.
type ManifestEntry struct {
	// Path is relative to the output directory, slash separated.
	Path string `json:"path"`
	Size int    `json:"size"`
	SHA3 string `json:"sha3"`
}

// Builder exports the whole site to a directory.
type Builder struct {
	renderer *Renderer
	catalog  *catalog.Catalog
	baseURL  string
	workers  int
	exclude  func(path string) bool
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	entries []ManifestEntry
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithWorkers sets the maximum number of pages rendered concurrently.
func WithWorkers(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithExclude drops paths from the sitemap, for example noindex pages.
// Excluded pages are still rendered.
func WithExclude(exclude func(path string) bool) BuilderOption {
	return func(b *Builder) {
		b.exclude = exclude
	}
}

// WithBuilderLogger sets a custom logger.
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithBuildClock overrides the clock used for the manifest and sitemap dates.
func WithBuildClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		b.now = now
	}
}

// NewBuilder creates a Builder rendering with r.
func NewBuilder(r *Renderer, c *catalog.Catalog, opts ...BuilderOption) *Builder {
	b := &Builder{
		renderer: r,
		catalog:  c,
		baseURL:  r.site.BaseURL,
		workers:  defaultWorkers,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// Build renders every route into outDir and writes the sitemap, robots.txt,
// 404 page and manifest. The first failing page cancels the rest.
func (b *Builder) Build(ctx context.Context, outDir string) (*Manifest, error) {
	routes := Routes(b.catalog)
	b.logger.Info("starting static build",
		"routes", len(routes),
		"workers", b.workers,
		"out_dir", outDir,
	)
	start := b.now()

	b.mu.Lock()
	b.entries = make([]ManifestEntry, 0, len(routes)+4)
	b.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for _, route := range routes {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			page, err := b.renderer.Render(route)
			if err != nil {
				return err
			}
			return b.write(outDir, routeFile(route), page.HTML)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("static build failed: %w", err)
	}

	notFound, err := b.renderer.RenderNotFound("/404")
	if err != nil {
		return nil, err
	}
	if err := b.write(outDir, NotFoundFile, notFound.HTML); err != nil {
		return nil, err
	}

	var sm bytes.Buffer
	set := sitemap.Build(b.catalog, b.baseURL, start, sitemap.Options{Exclude: b.exclude})
	if err := sitemap.Write(&sm, set); err != nil {
		return nil, err
	}
	if err := b.write(outDir, SitemapFile, sm.Bytes()); err != nil {
		return nil, err
	}
	if err := b.write(outDir, RobotsFile, []byte(sitemap.Robots(b.baseURL))); err != nil {
		return nil, err
	}

	manifest := &Manifest{GeneratedAt: start.UTC(), Files: b.collect()}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := b.write(outDir, ManifestFile, data); err != nil {
		return nil, err
	}

	b.logger.Info("static build complete",
		"files", len(manifest.Files),
		"elapsed", b.now().Sub(start),
	)
	return manifest, nil
}

// write stores data under outDir and records it in the manifest.
// ManifestFile itself is not recorded.
func (b *Builder) write(outDir, rel string, data []byte) error {
	target := filepath.Join(outDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(target), 0750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(target, data, 0644); err != nil { //nolint:gosec // static site files are public
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}

	if rel != ManifestFile {
		b.mu.Lock()
		b.entries = append(b.entries, ManifestEntry{Path: rel, Size: len(data), SHA3: ContentHash(data)})
		b.mu.Unlock()
	}
	b.logger.Debug("wrote file", "path", rel, "bytes", len(data))
	return nil
}

// collect returns the recorded entries sorted by path.
func (b *Builder) collect() []ManifestEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := append([]ManifestEntry(nil), b.entries...)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// routeFile maps a route to its file: "/" is index.html and
// "/blog/x" is blog/x/index.html.
func routeFile(route string) string {
	trimmed := strings.Trim(route, "/")
	if trimmed == "" {
		return IndexFile
	}
	return trimmed + "/" + IndexFile
}
