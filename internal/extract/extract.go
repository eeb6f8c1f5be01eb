// Package extract scans Markdown documents for embedded image references.
package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// Ref is a single image reference occurrence in a document.
type Ref struct {
	// Target is the captured path text, exactly as it appeared.
	Target string
	// Start and End delimit the whole reference, enclosing syntax included,
	// so rewrites can replace the original match span instead of searching
	// the document for the reference text again.
	Start int
	End   int
}

// markdownRe matches standard and embed-style image tags: one or two leading
// "!" markers, bracketed alt text, parenthesised path. The path is captured
// verbatim up to the closing parenthesis, query suffix included.
var markdownRe = regexp.MustCompile(`!{1,2}\[[^\]]*\]\(([^)]+)\)`)

// Scanner extracts image references for a fixed set of image extensions.
type Scanner struct {
	wikiRe *regexp.Regexp
}

// NewScanner compiles the wiki-reference pattern for the given dot-prefixed
// extensions. Extensions match case-insensitively.
func NewScanner(extensions []string) (*Scanner, error) {
	if len(extensions) == 0 {
		return nil, fmt.Errorf("extract: at least one extension is required")
	}
	alts := make([]string, len(extensions))
	for i, ext := range extensions {
		alts[i] = regexp.QuoteMeta(strings.TrimPrefix(ext, "."))
	}
	wikiRe, err := regexp.Compile(`(?i)\[\[([^\]]+?\.(?:` + strings.Join(alts, "|") + `))\]\]`)
	if err != nil {
		return nil, fmt.Errorf("extract: compile wiki pattern: %w", err)
	}
	return &Scanner{wikiRe: wikiRe}, nil
}

// WikiImages returns every [[path.ext]] image reference in document order,
// duplicates included. References without a supported image extension do
// not match at all.
func (s *Scanner) WikiImages(content string) []Ref {
	return refs(s.wikiRe, content)
}

// MarkdownImages returns every ![alt](path) image reference in document
// order, duplicates included.
func (s *Scanner) MarkdownImages(content string) []Ref {
	return refs(markdownRe, content)
}

func refs(re *regexp.Regexp, content string) []Ref {
	idx := re.FindAllStringSubmatchIndex(content, -1)
	if len(idx) == 0 {
		return nil
	}
	out := make([]Ref, 0, len(idx))
	for _, m := range idx {
		out = append(out, Ref{
			Target: content[m[2]:m[3]],
			Start:  m[0],
			End:    m[1],
		})
	}
	return out
}
