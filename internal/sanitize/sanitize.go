// Package sanitize holds the text transformations applied to every free-text
// field before it is stored or rendered.
package sanitize

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var entityReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// ReplaceHTMLEntities escapes &, < and >. No other characters are touched.
func ReplaceHTMLEntities(s string) string {
	// strings.Replacer scans the input once, so entities it emits are never
	// escaped a second time.
	return entityReplacer.Replace(s)
}

// StringToHTML escapes s and formats it as paragraphs: blank lines separate
// <p> elements, single newlines become <br> and double spaces become
// non-breaking pairs.
//
// The result is not safe to feed back into StringToHTML; call it once per
// raw value.
func StringToHTML(s string) string {
	paragraphs := strings.Split(ReplaceHTMLEntities(s), "\n\n")

	var b strings.Builder
	for _, p := range paragraphs {
		b.WriteString("<p>")
		b.WriteString(p)
		b.WriteString("</p>")
	}

	out := strings.ReplaceAll(b.String(), "\n", "<br>")
	return strings.ReplaceAll(out, "  ", "&nbsp;&nbsp;")
}

var (
	whitespaceRun = regexp.MustCompile(`[\s\v\x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]+`)
	nonWord       = regexp.MustCompile(`[^\w-]+`)
	hyphenRun     = regexp.MustCompile(`--+`)
)

// Slugify derives the URL-safe identifier of a category name: lowercase,
// whitespace runs turned into hyphens, everything but [A-Za-z0-9_-] removed,
// hyphen runs collapsed and trimmed from both ends.
func Slugify(s string) string {
	slug := strings.ToLower(s)
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	slug = nonWord.ReplaceAllString(slug, "")
	slug = hyphenRun.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
	strict     *bluemonday.Policy
)

func initPolicies() {
	policy = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
}

// Policy returns the shared XSS filter. It keeps the markup produced by
// StringToHTML and user-generated-content formatting, and strips scripts,
// event handlers and unsafe URLs.
func Policy() *bluemonday.Policy {
	policyOnce.Do(initPolicies)
	return policy
}

// Clean strips every tag from raw user input and returns trimmed plain text.
// The result still has to go through Text or HTML before it is stored.
func Clean(s string) string {
	policyOnce.Do(initPolicies)
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(strings.TrimSpace(s))))
}

// bluemonday encodes quotes in text nodes; they are left literal so they do
// not leak entity digits into slugs.
var quoteReplacer = strings.NewReplacer(
	"&#39;", "'",
	"&#34;", `"`,
)

// Text escapes s and runs the XSS filter over the result. Used for category
// names and answers. Only &, < and > come back escaped.
func Text(s string) string {
	return quoteReplacer.Replace(Policy().Sanitize(ReplaceHTMLEntities(s)))
}

// HTML formats s with StringToHTML and runs the XSS filter over the result.
// Used for question bodies.
func HTML(s string) string {
	return Policy().Sanitize(StringToHTML(s))
}

// CategoryName returns the form in which a category name is stored.
func CategoryName(name string) string {
	return Text(name)
}

// CategorySlug returns the slug stored for a category name.
func CategorySlug(name string) string {
	return Slugify(CategoryName(name))
}
