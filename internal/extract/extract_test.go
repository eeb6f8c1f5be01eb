package extract

import "testing"

func newScanner(t *testing.T) *Scanner {
	t.Helper()
	s, err := NewScanner([]string{".png", ".jpg", ".jpeg", ".gif", ".svg"})
	if err != nil {
		t.Fatalf("NewScanner: %v", err)
	}
	return s
}

func TestNewScanner_NoExtensions(t *testing.T) {
	if _, err := NewScanner(nil); err == nil {
		t.Fatal("expected error for empty extension set")
	}
}

func TestWikiImages_OrderAndSpans(t *testing.T) {
	content := "intro [[img.png]] middle [[sub/b.jpg]] end"
	s := newScanner(t)
	refs := s.WikiImages(content)
	if len(refs) != 2 {
		t.Fatalf("len(refs) = %d, want 2", len(refs))
	}
	if refs[0].Target != "img.png" || refs[1].Target != "sub/b.jpg" {
		t.Errorf("targets = %q, %q", refs[0].Target, refs[1].Target)
	}
	if got := content[refs[0].Start:refs[0].End]; got != "[[img.png]]" {
		t.Errorf("span text = %q, want %q", got, "[[img.png]]")
	}
	if got := content[refs[1].Start:refs[1].End]; got != "[[sub/b.jpg]]" {
		t.Errorf("span text = %q, want %q", got, "[[sub/b.jpg]]")
	}
}

func TestWikiImages_CaseInsensitiveExtension(t *testing.T) {
	refs := newScanner(t).WikiImages("[[Shot.PNG]]")
	if len(refs) != 1 || refs[0].Target != "Shot.PNG" {
		t.Fatalf("refs = %+v", refs)
	}
}

func TestWikiImages_UnsupportedExtensionDoesNotMatch(t *testing.T) {
	refs := newScanner(t).WikiImages("[[notes.pdf]] and [[Some Note]]")
	if len(refs) != 0 {
		t.Errorf("refs = %+v, want none", refs)
	}
}

func TestWikiImages_DuplicatesKept(t *testing.T) {
	refs := newScanner(t).WikiImages("[[a.png]] text [[a.png]]")
	if len(refs) != 2 {
		t.Fatalf("len(refs) = %d, want 2 (duplicates kept)", len(refs))
	}
	if refs[0].Start == refs[1].Start {
		t.Error("duplicate occurrences must carry distinct spans")
	}
}

func TestMarkdownImages_Basic(t *testing.T) {
	content := "![alt](/images/a.png) and !![embed](b.png)"
	refs := newScanner(t).MarkdownImages(content)
	if len(refs) != 2 {
		t.Fatalf("len(refs) = %d, want 2", len(refs))
	}
	if refs[0].Target != "/images/a.png" || refs[1].Target != "b.png" {
		t.Errorf("targets = %q, %q", refs[0].Target, refs[1].Target)
	}
}

func TestMarkdownImages_PathVerbatimWithQuerySuffix(t *testing.T) {
	refs := newScanner(t).MarkdownImages("![a](/images/a.png?v=2)")
	if len(refs) != 1 || refs[0].Target != "/images/a.png?v=2" {
		t.Fatalf("refs = %+v", refs)
	}
}

func TestMarkdownImages_NonImageTagsMatchToo(t *testing.T) {
	// The markdown pattern captures any path; filtering by extension is the
	// caller's job.
	refs := newScanner(t).MarkdownImages("![doc](manual.pdf)")
	if len(refs) != 1 || refs[0].Target != "manual.pdf" {
		t.Fatalf("refs = %+v", refs)
	}
}

func TestMarkdownImages_PlainLinkDoesNotMatch(t *testing.T) {
	refs := newScanner(t).MarkdownImages("[not an image](a.png)")
	if len(refs) != 0 {
		t.Errorf("refs = %+v, want none", refs)
	}
}
