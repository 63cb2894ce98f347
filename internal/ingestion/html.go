package ingestion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelectors are elements that end a line of visible text.
const blockSelectors = "br, p, div, li, tr, td, th, dt, dd, h1, h2, h3, h4, h5, h6, section, article, header, footer, blockquote, pre"

var spaceRun = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)

// ExtractText parses an HTML document and returns its visible text, one block per line.
// Scripts, styles and other non-rendered elements are dropped.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, template, head").Remove()

	// Without separators adjacent blocks would run together ("Python" + "SQL").
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AfterHtml("\n")
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}

	return cleanWhitespace(body.Text()), nil
}

// cleanWhitespace collapses runs of spaces and drops blank lines.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
