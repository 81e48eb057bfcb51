package application

import (
	"bytes"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// MarkdownRenderer defines the interface for converting markdown to HTML.
type MarkdownRenderer interface {
	Render(markdown []byte) (string, error)
}

var headingRegex = regexp.MustCompile(`^(#{1,6}) (.*)$`)

type inlineRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// inlineRules run in order over the whole document, each replacing only its first match.
// Patterns are greedy, so a match spans from the first opening marker to the last closing one.
var inlineRules = []inlineRule{
	{regexp.MustCompile(`\*\*\*(.*)\*\*\*`), "<strong><em>${1}</em></strong>"},
	{regexp.MustCompile(`\*\*(.*)\*\*`), "<strong>${1}</strong>"},
	{regexp.MustCompile(`\*(.*)\*`), "<em>${1}</em>"},
	{regexp.MustCompile(`\[(.*)\]\((.*)\)`), `<a href="${2}">${1}</a>`},
	{regexp.MustCompile(`!\[(.*)!\]\((.*)\)`), `<img src="${2}" alt="${1}" />`},
	{regexp.MustCompile("``(.*)``"), "<pre>${1}</pre>"},
	{regexp.MustCompile("`(.*)`"), "<code>${1}</code>"},
}

// TinyRenderer is a single-pass, line-oriented markdown converter. It understands headings,
// horizontal rules, paragraphs and a handful of inline spans; nothing nests.
type TinyRenderer struct{}

func NewTinyRenderer() *TinyRenderer {
	return &TinyRenderer{}
}

func (r *TinyRenderer) Render(markdown []byte) (string, error) {
	var out strings.Builder
	inParagraph := false

	for _, line := range strings.Split(string(markdown), "\n") {
		line = strings.TrimSuffix(line, "\r")

		if m := headingRegex.FindStringSubmatch(line); m != nil {
			level := len(m[1])
			line = fmt.Sprintf("<h%d>%s</h%d>", level, m[2], level)
		}

		if line == "---" {
			line = "<hr />"
		}

		// Lines already turned into an element bypass paragraph tracking.
		if !strings.HasPrefix(line, "<") {
			if len(line) <= 1 {
				if inParagraph {
					line = "</p>"
					inParagraph = false
				}
			} else if !inParagraph {
				line = "<p>" + line
				inParagraph = true
			}
		}

		out.WriteString(line)
	}

	if inParagraph {
		out.WriteString("</p>")
	}

	output := out.String()
	for _, rule := range inlineRules {
		output = replaceFirst(rule.pattern, output, rule.replacement)
	}

	return output, nil
}

func replaceFirst(re *regexp.Regexp, src, replacement string) string {
	loc := re.FindStringSubmatchIndex(src)
	if loc == nil {
		return src
	}

	expanded := re.ExpandString(nil, replacement, src, loc)
	return src[:loc[0]] + string(expanded) + src[loc[1]:]
}

type relativeLinkTransformer struct {
	baseURL string
}

// Transform points relative links at the post route, so "./other-post.md" becomes <baseURL>/posts/other-post.
func (t *relativeLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}

		dest := string(link.Destination)
		if isRelativeLink(dest) {
			name := path.Base(dest)
			name = strings.TrimSuffix(name, ".md")
			name = strings.TrimSuffix(name, ".html")
			link.Destination = []byte(strings.TrimSuffix(t.baseURL, "/") + "/posts/" + name)
		}

		return ast.WalkContinue, nil
	})
}

func isRelativeLink(dest string) bool {
	if dest == "" || strings.HasPrefix(dest, "#") {
		return false
	}

	if strings.HasPrefix(dest, "/") {
		return !strings.HasPrefix(dest, "//")
	}

	if strings.HasPrefix(dest, "./") || strings.HasPrefix(dest, "../") {
		return true
	}

	return !strings.Contains(dest, ":")
}

// GoldmarkRenderer renders CommonMark with GitHub extensions. It is the full-featured
// alternative to TinyRenderer.
type GoldmarkRenderer struct {
	renderer goldmark.Markdown
}

func NewGoldmarkRenderer(baseURL string) *GoldmarkRenderer {
	renderer := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(&relativeLinkTransformer{baseURL: baseURL}, 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			html.WithUnsafe(),
		),
	)

	return &GoldmarkRenderer{
		renderer: renderer,
	}
}

func (r *GoldmarkRenderer) Render(markdown []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.renderer.Convert(markdown, &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return buf.String(), nil
}
