package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const noiseSelector = "nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup"

// blockSelector lists elements that end a paragraph in the extracted text.
const blockSelector = "p, div, section, article, li, h1, h2, h3, h4, h5, h6, tr"

// DocumentSelectors returns the content selectors tried, in order, before falling back to body.
func DocumentSelectors() []string {
	return []string{
		".job-description",
		"#job-description",
		".resume",
		"#resume",
		"main",
		"article",
		".content",
		"#content",
	}
}

// HTMLToText extracts the readable text of an HTML resume or job posting.
// Noise elements are removed and block elements become blank-line separated paragraphs.
func HTMLToText(html string, contentSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelector).Remove()

	if len(contentSelectors) == 0 {
		contentSelectors = DocumentSelectors()
	}

	var main *goquery.Selection
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			main = sel.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	main.Find("br").ReplaceWithHtml("\n")
	main.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n\n")
	})

	return CleanText(main.Text()), nil
}
