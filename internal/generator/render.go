package generator

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Format selects the output encoding of a rendered document.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ParseFormat normalizes a requested format, defaulting to HTML.
func ParseFormat(s string) (Format, bool) {
	switch s {
	case "", "html":
		return FormatHTML, true
	case "markdown":
		return FormatMarkdown, true
	case "text":
		return FormatText, true
	default:
		return "", false
	}
}

// Context carries the values substituted for the template placeholder
// tokens. Every field resolves to a default, so no literal token can
// survive rendering even when the organization record is sparse.
type Context struct {
	CompanyName    string
	ContactEmail   string
	ApplicableLaws string
	Date           string
}

// Placeholder defaults, applied when neither the request's company details
// nor the stored organization supply a value.
const (
	DefaultCompanyName  = "Your Company"
	DefaultContactEmail = "hr@company.com"
	DefaultLaws         = "applicable state and local laws"
)

// WithDefaults returns a copy of the context with every empty field replaced
// by its fallback value. Date defaults to now, formatted the way the
// documents print it.
func (c Context) WithDefaults(now time.Time) Context {
	if c.CompanyName == "" {
		c.CompanyName = DefaultCompanyName
	}
	if c.ContactEmail == "" {
		c.ContactEmail = DefaultContactEmail
	}
	if c.ApplicableLaws == "" {
		c.ApplicableLaws = DefaultLaws
	}
	if c.Date == "" {
		c.Date = now.Format("January 2, 2006")
	}
	return c
}

// Render substitutes the placeholder tokens into the template body and
// encodes the result in the requested format. Text and markdown return the
// substituted body as-is; HTML wraps line-classified content in markup.
func Render(tpl Template, ctx Context, format Format) string {
	replacer := strings.NewReplacer(
		"[COMPANY_NAME]", ctx.CompanyName,
		"[CONTACT_EMAIL]", ctx.ContactEmail,
		"[APPLICABLE_LAWS]", ctx.ApplicableLaws,
		"[DATE]", ctx.Date,
	)
	content := replacer.Replace(tpl.Body)

	if format != FormatHTML {
		return content
	}
	return renderHTML(tpl.Title, ctx.CompanyName, content)
}

// Line classification patterns for HTML output. This is deliberately not a
// markup parser: headings are ALL-CAPS lines, bullets start with the bullet
// glyph, numbered section headers start with "N.".
var (
	headingPattern  = regexp.MustCompile(`^[A-Z][A-Z\s:&]+$`)
	numberedPattern = regexp.MustCompile(`^\d+\.`)
)

func renderHTML(title, companyName, content string) string {
	var body strings.Builder
	for _, line := range strings.Split(content, "\n") {
		switch {
		case headingPattern.MatchString(line):
			body.WriteString("<h2>" + line + "</h2>\n")
		case strings.HasPrefix(line, "•"):
			body.WriteString("<li>" + strings.TrimSpace(strings.TrimPrefix(line, "•")) + "</li>\n")
		case numberedPattern.MatchString(line):
			body.WriteString("<h3>" + line + "</h3>\n")
		case strings.TrimSpace(line) == "":
			body.WriteString("<br>\n")
		default:
			body.WriteString("<p>" + line + "</p>\n")
		}
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>%s - %s</title>
  <style>
    body { font-family: Arial, sans-serif; max-width: 800px; margin: 40px auto; padding: 20px; line-height: 1.6; }
    h1, h2, h3 { color: #1e40af; }
    ul { margin: 10px 0; }
    li { margin: 5px 0; }
  </style>
</head>
<body>
%s</body>
</html>`, title, companyName, body.String())
}
