package extract

import (
	"strings"
	"testing"
)

func TestTextStripsScriptAndStyleBlocks(t *testing.T) {
	got := Text("<script>x()</script>Hello<style>.a{}</style> World")
	if got != "Hello World" {
		t.Fatalf("got %q, want %q", got, "Hello World")
	}
}

func TestTextScriptBlocksSpanLinesCaseInsensitive(t *testing.T) {
	// Removed blocks leave nothing behind, so text on both sides joins
	// directly; only tag stripping substitutes a space.
	in := "<SCRIPT type=\"text/javascript\">\nvar a = 1;\nalert(a);\n</SCRIPT>before<Style>\nbody { color: red }\n</Style>after"
	got := Text(in)
	if got != "beforeafter" {
		t.Fatalf("got %q, want %q", got, "beforeafter")
	}
}

func TestTextEntityDecodeRunsAfterTagStripping(t *testing.T) {
	// Literal <tag> produced by decoding is never re-stripped.
	got := Text("a &amp; b &lt;tag&gt;")
	if got != "a & b <tag>" {
		t.Fatalf("got %q, want %q", got, "a & b <tag>")
	}
}

func TestTextDecodesFixedEntityTable(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"one&nbsp;two", "one two"},
		{"fish &amp; chips", "fish & chips"},
		{"&quot;quoted&quot;", `"quoted"`},
		{"it&apos;s", "it's"},
		{"it&#39;s", "it's"},
		{"a&mdash;b", "a—b"},
		{"1&ndash;2", "1–2"},
		// outside the table: left intact
		{"caf&eacute;", "caf&eacute;"},
	}
	for _, tc := range cases {
		if got := Text(tc.in); got != tc.want {
			t.Errorf("Text(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTextCollapsesWhitespaceRuns(t *testing.T) {
	got := Text("  one \t two\n\n\nthree  ")
	if got != "one two three" {
		t.Fatalf("got %q, want %q", got, "one two three")
	}
}

func TestTextNonBreakingSpacesJoinWhitespaceRuns(t *testing.T) {
	got := Text("one &nbsp; &nbsp; two")
	if got != "one two" {
		t.Fatalf("got %q, want %q", got, "one two")
	}
}

func TestTextTagsNeverContributeText(t *testing.T) {
	got := Text(`<p class="x">Hello</p><br/><a href="https://example.com">link</a>`)
	if got != "Hello link" {
		t.Fatalf("got %q, want %q", got, "Hello link")
	}
}

func TestTextNoTagCharactersSurvive(t *testing.T) {
	in := "<html><head><title>T</title></head><body><div>a</div><span>b</span></body></html>"
	got := Text(in)
	if strings.ContainsAny(got, "<>") {
		t.Fatalf("output still contains tag characters: %q", got)
	}
	for _, e := range entities {
		if strings.Contains(got, e.name) {
			t.Fatalf("output still contains %q: %q", e.name, got)
		}
	}
}

func TestTextEmptyAndDegenerateInput(t *testing.T) {
	for _, in := range []string{"", "   ", "<div></div>", "<script>only()</script>"} {
		if got := Text(in); got != "" {
			t.Errorf("Text(%q) = %q, want empty", in, got)
		}
	}
}

func TestTextIdempotentOnCleanText(t *testing.T) {
	inputs := []string{
		"<p>Paragraph one.</p>\n<p>Paragraph &amp; two.</p>",
		"plain sentence already clean",
		"<script>a</script>Multi\n\nparagraph\n\n\ntext",
	}
	for _, in := range inputs {
		once := Text(in)
		twice := Text(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
