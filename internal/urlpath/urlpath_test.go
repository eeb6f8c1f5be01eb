package urlpath

import "testing"

func TestEncodeSegments_Space(t *testing.T) {
	got := EncodeSegments("folder/My Image.png")
	if got != "folder/My%20Image.png" {
		t.Errorf("EncodeSegments = %q, want %q", got, "folder/My%20Image.png")
	}
}

func TestEncodeSegments_Plus(t *testing.T) {
	// A literal plus must not decode back to a space.
	got := EncodeSegments("a+b.png")
	if got != "a%2Bb.png" {
		t.Errorf("EncodeSegments = %q, want %q", got, "a%2Bb.png")
	}
}

func TestEncodeSegments_PlainPassesThrough(t *testing.T) {
	got := EncodeSegments("sub/pic.png")
	if got != "sub/pic.png" {
		t.Errorf("EncodeSegments = %q, want %q", got, "sub/pic.png")
	}
}

func TestRoundTrip(t *testing.T) {
	for _, rel := range []string{
		"folder/My Image.png",
		"a+b.png",
		"Pasted image 1.png",
	} {
		if got := Decode(EncodeSegments(rel)); got != rel {
			t.Errorf("round trip of %q = %q", rel, got)
		}
	}
}

func TestDecode_PlusAsSpace(t *testing.T) {
	got := Decode("Pasted+image.png")
	if got != "Pasted image.png" {
		t.Errorf("Decode = %q, want %q", got, "Pasted image.png")
	}
}

func TestDecode_PercentEncoding(t *testing.T) {
	got := Decode("sub/Pasted%20image%201.png")
	if got != "sub/Pasted image 1.png" {
		t.Errorf("Decode = %q, want %q", got, "sub/Pasted image 1.png")
	}
}

func TestDecode_InvalidInputReturnedAsIs(t *testing.T) {
	// A stray percent sign cannot be decoded; the literal text is kept.
	got := Decode("100% sure.png")
	if got != "100% sure.png" {
		t.Errorf("Decode = %q, want input unchanged", got)
	}
}
