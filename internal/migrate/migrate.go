// Package migrate rewrites image references in Markdown documents and copies
// the referenced attachments into the static-images tree.
package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/starford/ehwaz/internal/extract"
	"github.com/starford/ehwaz/internal/resolve"
	"github.com/starford/ehwaz/internal/storage"
	"github.com/starford/ehwaz/internal/urlpath"
)

// Options configures a Migrator.
type Options struct {
	Docs       *storage.Dir
	Scanner    *extract.Scanner
	Resolver   *resolve.Resolver
	ImagesDir  string
	Prefix     string
	Extensions []string
	DryRun     bool
	Logger     *slog.Logger
}

// Stats summarises one migration run.
type Stats struct {
	Documents int // documents containing at least one image reference
	Rewritten int // documents written back
	Copied    int // attachments copied (counted as copied under dry-run too)
	Missing   int // references whose attachment could not be resolved
	Skipped   int // references skipped: unsupported extension or unsafe path
}

// Migrator performs a single sequential migration pass over a posts
// directory. Documents are processed one at a time in listing order.
type Migrator struct {
	docs       *storage.Dir
	scanner    *extract.Scanner
	resolver   *resolve.Resolver
	imagesDir  string
	prefix     string
	extensions []string
	dryRun     bool
	logger     *slog.Logger
}

// New creates a Migrator from opts. Extensions are normalised to lower case
// for the case-insensitive suffix check.
func New(opts Options) *Migrator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	exts := make([]string, len(opts.Extensions))
	for i, ext := range opts.Extensions {
		exts[i] = strings.ToLower(ext)
	}
	return &Migrator{
		docs:       opts.Docs,
		scanner:    opts.Scanner,
		resolver:   opts.Resolver,
		imagesDir:  filepath.Clean(opts.ImagesDir),
		prefix:     opts.Prefix,
		extensions: exts,
		dryRun:     opts.DryRun,
		logger:     logger,
	}
}

// Run processes every top-level document once. Per-reference failures are
// logged and skipped; unexpected I/O errors abort the run.
func (m *Migrator) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	names, err := m.docs.List()
	if err != nil {
		return stats, err
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if err := m.migrateDocument(name, &stats); err != nil {
			return stats, fmt.Errorf("migrate %s: %w", name, err)
		}
	}

	return stats, nil
}

// migrateDocument runs the per-document pipeline: extract both reference
// kinds, rewrite wiki references, write the document back, then copy the
// attachments behind markdown-style references. A document with no
// references of either kind is left completely untouched.
func (m *Migrator) migrateDocument(name string, stats *Stats) error {
	data, err := m.docs.Read(name)
	if err != nil {
		return err
	}
	content := string(data)

	wiki := m.scanner.WikiImages(content)
	md := m.scanner.MarkdownImages(content)
	if len(wiki) == 0 && len(md) == 0 {
		return nil
	}
	stats.Documents++

	rewritten, err := m.rewriteWiki(name, content, wiki, stats)
	if err != nil {
		return err
	}

	// Matched documents are written back even when the text did not change,
	// and the write-back is not suppressed by dry-run; only copies are.
	if err := m.docs.Write(name, []byte(rewritten)); err != nil {
		return err
	}
	stats.Rewritten++

	return m.copyMarkdownRefs(name, md, stats)
}

// rewriteWiki replaces each wiki image reference with a markdown image tag,
// splicing at the match spans so repeated or overlapping reference text
// cannot over-replace. Each rewritten reference's attachment is copied as a
// side effect; the rewrite happens even when the attachment is missing.
func (m *Migrator) rewriteWiki(doc, content string, refs []extract.Ref, stats *Stats) (string, error) {
	if len(refs) == 0 {
		return content, nil
	}

	var b strings.Builder
	b.Grow(len(content))
	last := 0

	for _, ref := range refs {
		rel := strings.TrimLeft(strings.ReplaceAll(ref.Target, `\`, "/"), "/")

		if !m.supported(rel) {
			m.logger.Warn("skipping unsupported extension",
				slog.String("document", doc),
				slog.String("reference", rel))
			stats.Skipped++
			continue // span is left as-is
		}

		stem := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
		link := m.prefix + urlpath.EncodeSegments(rel)

		b.WriteString(content[last:ref.Start])
		b.WriteString("![" + stem + "](" + link + ")")
		last = ref.End

		if err := m.copyAttachment(doc, rel, rel, stats); err != nil {
			return "", err
		}
	}
	b.WriteString(content[last:])

	return b.String(), nil
}

// copyMarkdownRefs copies the attachments behind markdown-style image
// references. These documents already carry their final link form, so only
// the file moves; the text is never rewritten. External URLs and data URIs
// are ignored, as are unsupported extensions (silently: markdown tags point
// at plenty of non-image targets).
func (m *Migrator) copyMarkdownRefs(doc string, refs []extract.Ref, stats *Stats) error {
	for _, ref := range refs {
		target := ref.Target
		if strings.HasPrefix(target, "http://") ||
			strings.HasPrefix(target, "https://") ||
			strings.HasPrefix(target, "data:") {
			continue
		}

		decoded := urlpath.Decode(target)
		rel := strings.TrimLeft(decoded, "/")
		if strings.HasPrefix(decoded, m.prefix) {
			rel = strings.TrimLeft(strings.TrimPrefix(decoded, m.prefix), "/")
		}

		if !m.supported(rel) {
			stats.Skipped++
			continue
		}

		if err := m.copyAttachment(doc, rel, rel, stats); err != nil {
			return err
		}
	}
	return nil
}

// copyAttachment resolves ref against the attachment tree and copies the hit
// to the destination mirroring rel. A missing attachment is logged and
// skipped; a failed copy aborts the run.
func (m *Migrator) copyAttachment(doc, ref, rel string, stats *Stats) error {
	src, err := m.resolver.Resolve(ref)
	if err != nil {
		m.logger.Warn("attachment not found, copy skipped",
			slog.String("document", doc),
			slog.String("reference", ref))
		stats.Missing++
		return nil
	}

	dst := filepath.Join(m.imagesDir, filepath.FromSlash(rel))
	if !strings.HasPrefix(dst, m.imagesDir+string(filepath.Separator)) {
		m.logger.Warn("destination escapes images dir, copy skipped",
			slog.String("document", doc),
			slog.String("reference", ref))
		stats.Skipped++
		return nil
	}

	if m.dryRun {
		m.logger.Info("dry run: would copy",
			slog.String("source", src),
			slog.String("destination", dst))
		stats.Copied++
		return nil
	}

	if err := storage.Copy(src, dst); err != nil {
		return err
	}
	m.logger.Info("copied",
		slog.String("source", src),
		slog.String("destination", dst))
	stats.Copied++
	return nil
}

// supported reports whether rel ends in one of the configured extensions.
func (m *Migrator) supported(rel string) bool {
	lower := strings.ToLower(rel)
	for _, ext := range m.extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
