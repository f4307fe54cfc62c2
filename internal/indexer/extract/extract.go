// Package extract turns an HTML document into the plain text that gets
// indexed.
package extract

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	apperrors "github.com/Adithya-Monish-Kumar-K/docsearch/pkg/errors"
)

// Document is the parsed form of one HTML page.
type Document struct {
	Title string
	Text  string
}

// Parse reads an HTML page and returns its <title> and its visible text
// with runs of whitespace collapsed to a single space. Text inside script
// and style elements is skipped.
func Parse(r io.Reader) (Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return Document{}, fmt.Errorf("%w: parsing html: %v", apperrors.ErrExtraction, err)
	}

	var (
		doc       Document
		b         strings.Builder
		skipDepth int
		walk      func(*html.Node)
	)
	walk = func(n *html.Node) {
		skip := n.Type == html.ElementNode && isSkipped(n.Data)
		if skip {
			skipDepth++
		}
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "title") && doc.Title == "" {
			doc.Title = collapse(textOf(n))
		}
		if skipDepth == 0 && n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if skip {
			skipDepth--
		}
	}
	walk(root)

	doc.Text = collapse(b.String())
	return doc, nil
}

// Text is Parse without the title.
func Text(r io.Reader) (string, error) {
	doc, err := Parse(r)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

func isSkipped(tag string) bool {
	return strings.EqualFold(tag, "script") || strings.EqualFold(tag, "style")
}

func textOf(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
