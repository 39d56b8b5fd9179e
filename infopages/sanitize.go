package infopages

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the allow-list applied to every info page body before it is
// persisted. It permits the rich-text subset the editor produces and nothing
// else; anchors are forced to carry rel="noopener noreferrer".
var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "span", "strong", "em", "u", "s",
		"blockquote", "ul", "ol", "li",
		"br", "hr", "figure", "figcaption", "div",
	)

	p.AllowAttrs("href", "name", "target", "rel").OnElements("a")
	p.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")
	p.AllowAttrs("class").Globally()

	colorRe := regexp.MustCompile(`^(#[0-9a-fA-F]{3,6}|rgb\(.*\)|rgba\(.*\))$`)
	p.AllowStyles("color", "background-color").Matching(colorRe).Globally()
	p.AllowStyles("text-align").Matching(regexp.MustCompile(`^(left|right|center|justify)$`)).Globally()
	p.AllowStyles("font-size").Matching(regexp.MustCompile(`^\d+(px|em|rem|%)$`)).Globally()
	p.AllowStyles("font-weight").Matching(regexp.MustCompile(`^(normal|bold|[1-9]00)$`)).Globally()
	p.AllowStyles("text-decoration").Matching(regexp.MustCompile(`^(none|underline|line-through)$`)).Globally()

	p.AllowURLSchemes("http", "https", "mailto", "tel")
	p.RequireNoFollowOnLinks(false)
	p.RequireNoReferrerOnLinks(true)
	p.AllowRelativeURLs(true)

	return p
}

// Sanitize strips everything outside the allow-list from an HTML fragment.
func Sanitize(content string) string {
	return policy.Sanitize(content)
}
