package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTinyRenderer_Blocks(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		expected string
	}{
		{name: "Empty document", markdown: "", expected: ""},
		{name: "H1", markdown: "# Title", expected: "<h1>Title</h1>"},
		{name: "H2", markdown: "## Title", expected: "<h2>Title</h2>"},
		{name: "H3", markdown: "### Title", expected: "<h3>Title</h3>"},
		{name: "H4", markdown: "#### Title", expected: "<h4>Title</h4>"},
		{name: "H5", markdown: "##### Title", expected: "<h5>Title</h5>"},
		{name: "H6", markdown: "###### Title", expected: "<h6>Title</h6>"},
		{name: "Seven hashes is text", markdown: "####### Title", expected: "<p>####### Title</p>"},
		{name: "Hash without space is text", markdown: "#NoSpace", expected: "<p>#NoSpace</p>"},
		{name: "Heading with trailing newline", markdown: "# A\n", expected: "<h1>A</h1>"},
		{name: "Horizontal rule", markdown: "---", expected: "<hr />"},
		{name: "Longer dash run is text", markdown: "----", expected: "<p>----</p>"},
		{name: "Single paragraph", markdown: "Hello", expected: "<p>Hello</p>"},
		{name: "Lines join without separator", markdown: "Hello\nWorld", expected: "<p>HelloWorld</p>"},
		{name: "Blank line splits paragraphs", markdown: "Hello\n\nWorld", expected: "<p>Hello</p><p>World</p>"},
		{name: "Extra blank lines are dropped", markdown: "Hello\n\n\n\nWorld\n", expected: "<p>Hello</p><p>World</p>"},
		{name: "CRLF line endings", markdown: "Hello\r\n\r\nWorld\r\n", expected: "<p>Hello</p><p>World</p>"},
		{name: "Single character line counts as blank", markdown: "Hello\nx\nWorld", expected: "<p>Hello</p><p>World</p>"},
		{name: "Single character outside paragraph is kept", markdown: "x", expected: "x"},
		{name: "Heading then body", markdown: "# A\n\nBody text\n", expected: "<h1>A</h1><p>Body text</p>"},
		{name: "Heading inside open paragraph", markdown: "Intro\n## Sub\nMore", expected: "<p>Intro<h2>Sub</h2>More</p>"},
		{name: "Rule does not close paragraph", markdown: "Hello\n---\nWorld", expected: "<p>Hello<hr />World</p>"},
		{name: "Raw HTML line passes through", markdown: "<div>raw</div>", expected: "<div>raw</div>"},
	}

	renderer := NewTinyRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := renderer.Render([]byte(tt.markdown))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, html)
		})
	}
}

func TestTinyRenderer_Inline(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		expected string
	}{
		{name: "Bold", markdown: "**bold**", expected: "<p><strong>bold</strong></p>"},
		{name: "Italic", markdown: "*italic*", expected: "<p><em>italic</em></p>"},
		{name: "Bold italic", markdown: "***both***", expected: "<p><strong><em>both</em></strong></p>"},
		{name: "Emphasis inside heading", markdown: "# A *quiet* title", expected: "<h1>A <em>quiet</em> title</h1>"},
		{name: "Link", markdown: "[Go](https://go.dev)", expected: `<p><a href="https://go.dev">Go</a></p>`},
		{name: "Inline code", markdown: "use `go test` now", expected: "<p>use <code>go test</code> now</p>"},
		{name: "Double backtick block", markdown: "``raw``", expected: "<p><pre>raw</pre></p>"},
		{
			// Greedy match spans from the first marker to the last one.
			name:     "Two italic runs collapse into one",
			markdown: "*a* and *b*",
			expected: "<p><em>a* and *b</em></p>",
		},
		{
			name:     "Two bold runs leave inner markers for italic",
			markdown: "**a** and **b**",
			expected: "<p><strong>a<em>* and *</em>b</strong></p>",
		},
		{
			name:     "Rules fire across lines of the whole document",
			markdown: "first *x\n\nsecond y*",
			expected: "<p>first <em>x</p><p>second y</em></p>",
		},
		{
			name:     "Two code spans collapse into one",
			markdown: "`a` and `b`",
			expected: "<p><code>a` and `b</code></p>",
		},
		{
			// The link rule runs before the image rule and consumes the bracketed part.
			name:     "Image syntax is taken by the link rule",
			markdown: "![cat!](cat.png)",
			expected: `<p>!<a href="cat.png">cat!</a></p>`,
		},
	}

	renderer := NewTinyRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := renderer.Render([]byte(tt.markdown))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, html)
		})
	}
}

func TestReplaceFirst_Image(t *testing.T) {
	rule := inlineRules[4]
	out := replaceFirst(rule.pattern, "see ![a cat!](cat.png) here", rule.replacement)
	assert.Equal(t, `see <img src="cat.png" alt="a cat" /> here`, out)
}

func TestReplaceFirst_NoMatch(t *testing.T) {
	rule := inlineRules[1]
	assert.Equal(t, "plain", replaceFirst(rule.pattern, "plain", rule.replacement))
}

func TestIsRelativeLink(t *testing.T) {
	tests := []struct {
		dest     string
		expected bool
	}{
		{dest: "other.md", expected: true},
		{dest: "./other.md", expected: true},
		{dest: "../other.md", expected: true},
		{dest: "/posts/other", expected: true},
		{dest: "//cdn.example.com/x", expected: false},
		{dest: "https://go.dev", expected: false},
		{dest: "mailto:me@example.com", expected: false},
		{dest: "#section", expected: false},
		{dest: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.dest, func(t *testing.T) {
			assert.Equal(t, tt.expected, isRelativeLink(tt.dest))
		})
	}
}

func TestGoldmarkRenderer_Render(t *testing.T) {
	renderer := NewGoldmarkRenderer("http://localhost/tinyblog")

	tests := []struct {
		name     string
		markdown string
		contains []string
	}{
		{name: "Heading", markdown: "# Hello", contains: []string{"<h1", "Hello</h1>"}},
		{name: "Emphasis", markdown: "**a** and **b**", contains: []string{"<strong>a</strong>", "<strong>b</strong>"}},
		{
			name:     "Relative post link is routed",
			markdown: "[next](./second-post.md)",
			contains: []string{`href="http://localhost/tinyblog/posts/second-post"`},
		},
		{
			name:     "Absolute link is untouched",
			markdown: "[go](https://go.dev)",
			contains: []string{`href="https://go.dev"`},
		},
		{
			name:     "Table",
			markdown: "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := renderer.Render([]byte(tt.markdown))
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, html, want)
			}
		})
	}
}
