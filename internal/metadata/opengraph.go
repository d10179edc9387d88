package metadata

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/mediascope/mediascope/internal/ingest"
)

// titleEchoes are provider names echoed into page titles, stripped from
// fetched metadata
var titleEchoes = []string{" - YouTube", " | Netflix"}

// parseOpenGraph extracts og:title, og:description and og:image from an
// HTML document, falling back to the <title> element
func parseOpenGraph(r io.Reader) (*ingest.Enrichment, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	meta := &ingest.Enrichment{}
	var pageTitle string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				property, content := attr(n, "property"), attr(n, "content")
				switch property {
				case "og:title":
					meta.Title = content
				case "og:description":
					meta.Description = content
				case "og:image":
					meta.ThumbnailURL = content
				}
			case "title":
				if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					pageTitle = n.FirstChild.Data
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if meta.Title == "" {
		meta.Title = pageTitle
	}
	for _, echo := range titleEchoes {
		meta.Title = strings.ReplaceAll(meta.Title, echo, "")
	}
	meta.Title = strings.TrimSpace(meta.Title)

	return meta, nil
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
