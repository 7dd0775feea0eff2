package catalog

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var blankRuns = regexp.MustCompile(`\n{2,}`)

// CleanDescription turns the catalog's HTML description into plain text.
// Line breaks become newlines, other markup is dropped and entities are
// decoded. Runs of blank lines collapse to one paragraph break.
func CleanDescription(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		switch tt {
		case html.TextToken:
			b.WriteString(z.Token().Data)
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				b.WriteByte('\n')
			}
		}
	}

	text := blankRuns.ReplaceAllString(b.String(), "\n\n")
	return strings.TrimSpace(text)
}
