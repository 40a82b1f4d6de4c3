package htmlutil

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// the text content of a selection with non-printable characters dropped,
// surrounding whitespace trimmed and inner whitespace collapsed to
// single spaces.
func CleanText(sel *goquery.Selection) string {
	var text strings.Builder
	for _, n := range sel.Nodes {
		text.WriteString(GetText(n))
	}
	out := removeNonPrintable(text.String())
	out = strings.Trim(out, " \t\n")
	return innerWhitespace.ReplaceAllString(out, " ")
}

// resolves an href (absolute or relative) against the page it was
// scraped from. returns "" when the href cannot be parsed.
func ResolveHref(base *url.URL, href string) string {
	if href == "" {
		return ""
	}
	link, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		link = base.ResolveReference(link)
	}
	return link.String()
}
