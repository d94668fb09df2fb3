// Package parse builds dom.Trees from markup.
//
// It tokenizes with golang.org/x/net/html rather than using the full
// HTML5 parser: the tokenizer keeps attribute order and duplicates and
// does not inject html/head/body wrappers, which matters for template
// fragments. Recovery is lenient in the browser tradition — stray end
// tags are dropped and unclosed elements are closed at EOF.
package parse

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/domkit-dev/domkit/pkg/dom"
)

// ErrMalformed wraps tokenizer failures.
var ErrMalformed = errors.New("parse: malformed markup")

// voidElements never take children; the tokenizer reports them as plain
// start tags, so they are closed immediately.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// Fragment parses a markup fragment into a Tree.
func Fragment(src string) (*dom.Tree, error) {
	return Reader(strings.NewReader(src))
}

// Reader parses markup from r into a Tree.
func Reader(r io.Reader) (*dom.Tree, error) {
	z := html.NewTokenizer(r)
	b := dom.NewTreeBuilder()

	// Open-element stack: refs plus local tag names for end-tag matching.
	refs := []dom.NodeRef{b.Root()}
	tags := []string{""}

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			return b.Build(), nil

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			attrs := convertAttrs(tok.Attr)
			ref := b.AppendElement(refs[len(refs)-1], splitName(tok.Data), attrs...)
			if tok.Type == html.StartTagToken && !voidElements[tok.Data] {
				refs = append(refs, ref)
				tags = append(tags, tok.Data)
			}

		case html.EndTagToken:
			tok := z.Token()
			// Close down to the matching open tag; ignore stray end tags.
			for i := len(tags) - 1; i > 0; i-- {
				if tags[i] == tok.Data {
					refs, tags = refs[:i], tags[:i]
					break
				}
			}

		case html.TextToken:
			if text := string(z.Text()); text != "" {
				b.AppendLeaf(refs[len(refs)-1], text)
			}

		case html.CommentToken, html.DoctypeToken:
			// Skipped: the tree models elements and text only.
		}
	}
}

// splitName splits "svg:path" into (svg, path); names without a colon
// stay unqualified.
func splitName(name string) dom.QName {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return dom.SpacedName(name[:i], name[i+1:])
	}
	return dom.Name(name)
}

// convertAttrs maps tokenizer attributes onto dom attributes. The
// tokenizer reports a bare attribute and attr="" identically, so empty
// values become valueless attributes (the markup boolean convention).
func convertAttrs(attrs []html.Attribute) []dom.Attribute {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]dom.Attribute, 0, len(attrs))
	for _, a := range attrs {
		name := splitName(a.Key)
		if a.Namespace != "" {
			name = dom.SpacedName(a.Namespace, name.Local)
		}
		attr := dom.Attribute{Name: name}
		if a.Val != "" {
			v := a.Val
			attr.Value = &v
		}
		out = append(out, attr)
	}
	return out
}
