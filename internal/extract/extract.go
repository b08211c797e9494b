// Package extract turns raw HTML into plain text suitable for reading aloud.
package extract

import (
	"regexp"
	"strings"
)

var (
	scriptRe     = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	styleRe      = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	blankLinesRe = regexp.MustCompile(`\n\s*\n(\s*\n)+`)
)

// entities is the fixed decode table, applied in order as literal substring
// replacement. Entities outside the table pass through untouched.
var entities = []struct {
	name, text string
}{
	{"&nbsp;", " "},
	{"&amp;", "&"},
	{"&quot;", `"`},
	{"&apos;", "'"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&#39;", "'"},
	{"&mdash;", "—"},
	{"&ndash;", "–"},
}

// Text extracts readable text from an HTML document. It never fails; an
// empty result means nothing was extracted and the caller decides what that
// means. Stage order matters: entities are decoded after tag stripping, so a
// decoded `&lt;tag&gt;` survives as literal text, and before whitespace
// collapsing, so decoded non-breaking spaces join surrounding runs.
func Text(html string) string {
	out := scriptRe.ReplaceAllString(html, "")
	out = styleRe.ReplaceAllString(out, "")
	out = tagRe.ReplaceAllString(out, " ")

	for _, e := range entities {
		out = strings.ReplaceAll(out, e.name, e.text)
	}

	out = whitespaceRe.ReplaceAllString(out, " ")
	// Kept after the full collapse above to preserve the documented
	// paragraph behavior for any input that still carries blank lines.
	out = blankLinesRe.ReplaceAllString(out, "\n\n")

	return strings.TrimSpace(out)
}
