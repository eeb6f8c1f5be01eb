// Package resolve maps inexact image references to files in the attachment tree.
package resolve

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/starford/ehwaz/internal/urlpath"
)

// ErrNotFound is returned when no fallback locates a matching attachment.
var ErrNotFound = errors.New("resolve: attachment not found")

var trailingDigitsRe = regexp.MustCompile(`\d+$`)

// Resolver looks up attachments under a source root. Lookups are best-effort:
// a renamed or URL-encoded reference may still resolve through a chain of
// progressively looser searches. The source tree is never modified.
type Resolver struct {
	root   string
	prefix string
}

// New creates a Resolver over the attachment tree at root. prefix is the
// static-images URL prefix (e.g. "/images/") recognised on references that
// already point at the static tree.
func New(root, prefix string) *Resolver {
	return &Resolver{root: filepath.Clean(root), prefix: prefix}
}

// Resolve maps a raw reference string to a file path under the attachment
// root. The search is layered and the first hit wins:
//
//  1. exact join of the decoded relative path
//  2. recursive search by filename stem plus suffix
//  3. recursive search by stem alone
//  4. recursive search by the stem with trailing digits stripped (pasted
//     images often differ only in a trailing timestamp)
//
// Fallback hits depend on directory traversal order and are best-effort
// only. ErrNotFound is returned when every layer misses.
func (r *Resolver) Resolve(raw string) (string, error) {
	decoded := urlpath.Decode(raw)
	normalized := strings.ReplaceAll(decoded, `\`, "/")

	// References already pointing at the static tree map back to their
	// pre-migration source path.
	rel := strings.TrimLeft(normalized, "/")
	if strings.HasPrefix(normalized, r.prefix) {
		rel = strings.TrimLeft(strings.TrimPrefix(normalized, r.prefix), "/")
	}

	candidate := filepath.Join(r.root, filepath.FromSlash(rel))
	if strings.HasPrefix(candidate, r.root+string(os.PathSeparator)) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	base := path.Base(rel)
	suffix := path.Ext(base)
	stem := strings.TrimSuffix(base, suffix)
	if suffix == "" && strings.Contains(raw, ".") {
		// Last resort: infer the suffix from the undecoded reference.
		suffix = path.Ext(raw)
	}

	if match := r.search(stem, suffix); match != "" {
		return match, nil
	}
	if suffix != "" {
		if match := r.search(stem, ""); match != "" {
			return match, nil
		}
	}
	if prefix := trailingDigitsRe.ReplaceAllString(stem, ""); prefix != "" {
		if match := r.search(prefix, ""); match != "" {
			return match, nil
		}
	}

	return "", ErrNotFound
}

// search walks the attachment tree and returns the first file whose name
// starts with stem and ends with suffix, or "" when nothing matches.
func (r *Resolver) search(stem, suffix string) string {
	var found string
	_ = filepath.WalkDir(r.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable or missing subtree: keep looking elsewhere.
			return nil
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if len(name) < len(stem)+len(suffix) {
			return nil
		}
		if strings.HasPrefix(name, stem) && strings.HasSuffix(name, suffix) {
			found = p
			return fs.SkipAll
		}
		return nil
	})
	return found
}
