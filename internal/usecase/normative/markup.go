package normative

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/Norte-Development/lexsearch/internal/domain"
)

// extractBody returns the inner markup of the document's <body>, with the
// soft-hyphen escape artifact the national corpus carries replaced by a
// plain hyphen.
func extractBody(markup []byte) (string, error) {
	root, err := html.Parse(bytes.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrContentParse, err)
	}

	body := findBody(root)
	if body == nil {
		return "", fmt.Errorf("%w: markup has no body element", domain.ErrContentParse)
	}

	var sb strings.Builder
	for child := body.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&sb, child); err != nil {
			return "", fmt.Errorf("%w: render body: %s", domain.ErrContentParse, err)
		}
	}

	content := sb.String()
	content = strings.ReplaceAll(content, "&shy;", "-")
	content = strings.ReplaceAll(content, "­", "-")
	return content, nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findBody(child); found != nil {
			return found
		}
	}
	return nil
}
