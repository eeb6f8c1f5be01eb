// Package urlpath converts between on-disk relative paths and the URL form
// used in rewritten Markdown image links.
package urlpath

import (
	"net/url"
	"strings"
)

// EncodeSegments percent-encodes every segment of a slash-separated relative
// path independently and rejoins them with "/".
//
// Example: "folder/My Image.png" -> "folder/My%20Image.png".
func EncodeSegments(rel string) string {
	parts := strings.Split(rel, "/")
	for i, p := range parts {
		// PathEscape leaves "+" alone, but Decode treats it as a space,
		// so encode it explicitly to keep the round trip lossless.
		parts[i] = strings.ReplaceAll(url.PathEscape(p), "+", "%2B")
	}
	return strings.Join(parts, "/")
}

// Decode reverses percent-encoding and treats "+" as an encoded space, the
// form note-taking tools produce for pasted-image names. Input that cannot
// be decoded is returned unchanged.
func Decode(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}
