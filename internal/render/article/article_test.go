package article

import (
	"strings"
	"testing"
)

func TestPlainText_StripsMarkupAndEntities(t *testing.T) {
	got := PlainText(`<p>Hello <b>world</b> &amp; friends .</p>`, 80)
	if got != "Hello world & friends." {
		t.Fatalf("unexpected plain text: %q", got)
	}
}

func TestPlainText_NonHTMLPassesThrough(t *testing.T) {
	if got := PlainText("just some text", 80); got != "just some text" {
		t.Fatalf("unexpected plain text: %q", got)
	}
	if got := PlainText("   ", 80); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestLines_WrapsAtWidth(t *testing.T) {
	lines := Lines("<p>"+strings.Repeat("word ", 40)+"</p>", 20, Options{})
	if len(lines) < 2 {
		t.Fatalf("expected wrapped output, got %q", lines)
	}
	for _, line := range lines {
		if runeLen(line) > 20 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
}

func TestLines_RendersCommonElements(t *testing.T) {
	raw := `<h2>Title</h2>
<p>Intro with <a href="https://example.com/x">a link</a> and <code>x := 1</code>.</p>
<ul><li>one</li><li>two<ul><li>nested</li></ul></li></ul>
<ol><li>first</li><li>second</li></ol>
<blockquote><p>quoted</p></blockquote>
<pre>line 1
line 2</pre>
<img src="https://example.com/a.png" alt="A chart">
<table><tr><th>k</th><th>v</th></tr><tr><td>a</td><td>1</td></tr></table>
<script>alert(1)</script>`
	got := strings.Join(Lines(raw, 80, Options{}), "\n")

	for _, want := range []string{
		"## Title",
		"Intro with a link (https://example.com/x) and `x := 1`.",
		"• one",
		"  ◦ nested",
		"1. first",
		"2. second",
		"│ quoted",
		"    line 1",
		"[A chart]",
		"k | v",
		"a | 1",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
	if strings.Contains(got, "alert") {
		t.Fatalf("expected script to be dropped:\n%s", got)
	}
	if strings.Contains(got, "\x1b[") {
		t.Fatalf("expected no escape codes in plain mode:\n%s", got)
	}
}

func TestLines_CodeSpansKeepTheirSpacing(t *testing.T) {
	raw := `<p>Call <code>f( a , b ) ;</code> then <a href="https://x.example">see <code>y := 2</code></a> .</p>
<p><code>&amp;lt;br&amp;gt;</code> is literal .</p>`
	got := strings.Join(Lines(raw, 200, Options{}), "\n")

	for _, want := range []string{
		"Call `f( a , b ) ;` then see `y := 2` (https://x.example).",
		"`&lt;br&gt;` is literal.",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
	if strings.ContainsAny(got, codeStart+codeEnd) {
		t.Fatalf("expected code markers to be stripped: %q", got)
	}
}

func TestLines_CodeSpansWrapByVisibleWidth(t *testing.T) {
	raw := `<p>aaaa <code>b</code> cccc</p>`
	lines := Lines(raw, 14, Options{})
	if len(lines) != 1 || lines[0] != "aaaa `b` cccc" {
		t.Fatalf("expected one line of 13 runes, got %q", lines)
	}
}

func TestPlainText_LengthIgnoresCodeMarkers(t *testing.T) {
	got := PlainText(`<p><code>x := 1</code></p>`, 80)
	if got != "`x := 1`" {
		t.Fatalf("unexpected plain text: %q", got)
	}
}

func TestTrimBlankLines_CollapsesRuns(t *testing.T) {
	got := trimBlankLines([]string{"", " ", "a", "", "", "b", ""})
	want := []string{"a", "", "b"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected lines: %q", got)
	}
}

func TestWrapText_SplitsLongWords(t *testing.T) {
	got := wrapText("abcdefghij", 4)
	if strings.Join(got, "|") != "abcd|efgh|ij" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}
