package catalog

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/newbooks/layout"
	"golang.org/x/net/html"
)

// RawRecord is the text of each row of one record block, in page order.
// Position is the only addressing the page offers.
type RawRecord []string

// Cell returns the text at index i, or "" when the record is shorter.
func (r RawRecord) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Result holds the records located for one author query. Recognized is false
// when the page did not have the expected shape, which callers must report
// instead of treating as "no publications".
type Result struct {
	Records    []RawRecord
	Recognized bool
}

// LocateRecords walks doc along d and returns one RawRecord per block.
func LocateRecords(doc *goquery.Document, d layout.Descriptor) Result {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return Result{}
	}

	blocks := walk(body.Nodes, d.Blocks)
	if len(blocks) == 0 {
		return Result{}
	}

	records := make([]RawRecord, 0, len(blocks))
	for _, block := range blocks {
		rows := walk([]*html.Node{block}, d.Cells)
		record := make(RawRecord, 0, len(rows))
		for _, row := range rows {
			record = append(record, visibleText(row))
		}
		records = append(records, record)
	}

	return Result{Records: records, Recognized: true}
}

// walk applies steps in order, starting from nodes.
func walk(nodes []*html.Node, steps []layout.Step) []*html.Node {
	for _, step := range steps {
		var next []*html.Node
		for _, n := range nodes {
			matches := childElements(n, step.Tag)
			if step.Index == layout.All {
				next = append(next, matches...)
			} else if step.Index < len(matches) {
				next = append(next, matches[step.Index])
			}
		}
		if len(next) == 0 {
			return nil
		}
		nodes = next
	}
	return nodes
}

// childElements returns the element children of n named tag. Rows are also
// collected from tbody/thead/tfoot, which HTML parsers insert on their own.
func childElements(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.Data == tag {
			out = append(out, c)
			continue
		}
		if tag == "tr" && isRowGroup(c.Data) {
			out = append(out, childElements(c, tag)...)
		}
	}
	return out
}

func isRowGroup(tag string) bool {
	return tag == "tbody" || tag == "thead" || tag == "tfoot"
}

var asciiSpace = regexp.MustCompile(`[ \t\n\r\f]+`)

// visibleText concatenates the text under n, skipping script and style
// content and comments. Only ASCII whitespace is collapsed; U+00A0 is kept.
func visibleText(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.CommentNode:
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			case "br":
				sb.WriteString(" ")
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)

	return strings.Trim(asciiSpace.ReplaceAllString(sb.String(), " "), " ")
}
