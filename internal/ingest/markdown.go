package ingest

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Section is a heading-delimited span of a markdown document. Chapter is the
// nearest level-1 heading, Section the path of deeper headings below it.
type Section struct {
	Chapter string
	Section string
	Text    string
}

// markdownParser is shared: goldmark parsers are safe for concurrent use.
var markdownParser = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// ExtractSections parses markdown and splits it along headings. The document
// title is the first level-1 heading, or the first level-2 heading when no
// level-1 exists. Text before any heading becomes a section with an empty
// chapter. Sections with no text are dropped.
func ExtractSections(content []byte) (string, []Section) {
	if len(content) == 0 {
		return "", nil
	}

	doc := markdownParser.Parser().Parse(text.NewReader(content))
	title := extractTitle(doc, content)

	var sections []Section
	var current *Section
	var buf strings.Builder
	chapter := ""
	subStack := []headingInfo{}

	flush := func() {
		if current == nil {
			return
		}
		if t := strings.TrimSpace(buf.String()); t != "" {
			current.Text = t
			sections = append(sections, *current)
		}
		buf.Reset()
		current = nil
	}

	ensureSection := func() {
		if current == nil {
			current = &Section{
				Chapter: chapter,
				Section: headingPath(subStack),
			}
		}
	}

	sep := func() {
		if buf.Len() > 0 && !strings.HasSuffix(buf.String(), "\n") {
			buf.WriteString("\n")
		}
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			flush()
			headingText := nodeText(node, content)
			if node.Level == 1 {
				chapter = headingText
				subStack = subStack[:0]
			} else {
				for len(subStack) > 0 && subStack[len(subStack)-1].level >= node.Level {
					subStack = subStack[:len(subStack)-1]
				}
				subStack = append(subStack, headingInfo{level: node.Level, text: headingText})
			}
			ensureSection()
			return ast.WalkSkipChildren, nil

		case *ast.Text:
			ensureSection()
			buf.Write(node.Segment.Value(content))

		case *ast.String:
			ensureSection()
			buf.Write(node.Value)

		case *ast.CodeBlock:
			ensureSection()
			sep()
			writeLines(&buf, node, content)

		case *ast.FencedCodeBlock:
			ensureSection()
			sep()
			writeLines(&buf, node, content)

		case *ast.Paragraph, *ast.List, *ast.ListItem:
			sep()

		default:
			kind := n.Kind().String()
			if kind == "TableRow" || kind == "TableHeader" {
				ensureSection()
				sep()
				buf.WriteString(tableRowText(n, content))
				buf.WriteString("\n")
				return ast.WalkSkipChildren, nil
			}
		}
		return ast.WalkContinue, nil
	})
	flush()

	return title, sections
}

// extractTitle finds the document title: first level-1 heading, then first
// level-2 heading.
func extractTitle(doc ast.Node, content []byte) string {
	var firstH1, firstH2 string

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		headingText := nodeText(heading, content)
		switch {
		case heading.Level == 1 && firstH1 == "":
			firstH1 = headingText
			return ast.WalkStop, nil
		case heading.Level == 2 && firstH2 == "":
			firstH2 = headingText
		}
		return ast.WalkContinue, nil
	})

	if firstH1 != "" {
		return firstH1
	}
	return firstH2
}

type headingInfo struct {
	level int
	text  string
}

// headingPath joins the sub-heading stack into "A > B > C" form.
func headingPath(stack []headingInfo) string {
	if len(stack) == 0 {
		return ""
	}
	parts := make([]string, len(stack))
	for i, h := range stack {
		parts[i] = h.text
	}
	return strings.Join(parts, " > ")
}

// nodeText extracts the plain text of a node and its children.
func nodeText(n ast.Node, content []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(content))
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// writeLines appends a node's raw source lines to the builder.
func writeLines(b *strings.Builder, n ast.Node, content []byte) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(content))
	}
}

// tableRowText renders a table row as pipe-separated cell text.
func tableRowText(row ast.Node, content []byte) string {
	var b strings.Builder
	cells := 0
	_ = ast.Walk(row, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if node.Kind().String() != "TableCell" {
			return ast.WalkContinue, nil
		}
		if cells > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(nodeText(node, content))
		cells++
		return ast.WalkSkipChildren, nil
	})
	return b.String()
}

// sectionLabel names a section for logs.
func sectionLabel(s Section) string {
	switch {
	case s.Chapter != "" && s.Section != "":
		return fmt.Sprintf("%s / %s", s.Chapter, s.Section)
	case s.Chapter != "":
		return s.Chapter
	case s.Section != "":
		return s.Section
	default:
		return "(preamble)"
	}
}
