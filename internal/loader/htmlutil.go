package loader

import (
	"strings"

	"golang.org/x/net/html"
)

// matcher reports whether n satisfies some predicate, used to walk the
// x/net/html tree in place of the scraper crate's CSS selector engine.
type matcher func(*html.Node) bool

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(tag string, classes ...string) matcher {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != tag {
			return false
		}
		got := strings.Fields(attr(n, "class"))
		for _, want := range classes {
			found := false
			for _, g := range got {
				if g == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}
}

func hasID(tag, id string) matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag && attr(n, "id") == id
	}
}

// findAll collects every node in document order matching m.
func findAll(n *html.Node, m matcher) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if m(node) {
			out = append(out, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// firstMatch returns the first descendant of n (n included) matching m.
func firstMatch(n *html.Node, m matcher) *html.Node {
	if m(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := firstMatch(c, m); found != nil {
			return found
		}
	}
	return nil
}

// findTag returns the first descendant element with the given tag name.
func findTag(n *html.Node, tag string) *html.Node {
	return firstMatch(n, func(node *html.Node) bool {
		return node.Type == html.ElementNode && node.Data == tag
	})
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
