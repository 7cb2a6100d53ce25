package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RebaseLinks rewrites relative image sources and link targets in a full HTML
// document to absolute file:// URLs under sourceDir. The browser used for PDF
// export loads the document from a temporary file, so paths written relative
// to the Markdown source would otherwise break.
//
// Anchors, URLs with a scheme, protocol-relative URLs and absolute paths are
// left alone, as is anything that would resolve outside sourceDir.
// An empty sourceDir returns the document unchanged.
func RebaseLinks(document, sourceDir string) (string, error) {
	if sourceDir == "" {
		return document, nil
	}
	base, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return "", err
	}
	rebaseNode(root, base)

	var buf strings.Builder
	if err := html.Render(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func rebaseNode(n *html.Node, base string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rebaseAttr(n, "src", base)
		case atom.A:
			rebaseAttr(n, "href", base)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rebaseNode(c, base)
	}
}

func rebaseAttr(n *html.Node, key, base string) {
	for i := range n.Attr {
		if n.Attr[i].Key != key || !isLocalRelative(n.Attr[i].Val) {
			continue
		}
		target := filepath.Join(base, filepath.FromSlash(n.Attr[i].Val))
		if !withinDir(target, base) {
			continue
		}
		u := url.URL{Scheme: "file", Path: filepath.ToSlash(target)}
		n.Attr[i].Val = u.String()
	}
}

// isLocalRelative reports whether ref is a relative filesystem path.
func isLocalRelative(ref string) bool {
	switch {
	case ref == "",
		strings.HasPrefix(ref, "#"),
		strings.HasPrefix(ref, "//"),
		filepath.IsAbs(ref):
		return false
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return false
	}
	return true
}

func withinDir(target, dir string) bool {
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
