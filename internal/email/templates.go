package email

import (
	"fmt"
	"html"
	"strings"

	"scishare/internal/config"
	"scishare/internal/models"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0f766e; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .button { display: inline-block; background: #0f766e; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 10px 0; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .label { font-weight: 600; color: #374151; }
        .value { color: #6b7280; }
        .quote { border-left: 3px solid #0f766e; padding-left: 12px; font-style: italic; color: #4b5563; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>
    <div class="content">
        %s
    </div>
    <div class="footer">
        <p>This email was sent by %s</p>
        <p><a href="%s">%s</a></p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(t.cfg.SiteTitle), content, html.EscapeString(t.cfg.SiteTitle), t.cfg.BaseURL, t.cfg.BaseURL)
}

// SharedAbstract builds the subject, HTML body, and plain-text body for a
// share email: the sender's name, their optional note, the abstract's
// citation fields, an excerpt, and a link back to the full abstract.
func (t *Templates) SharedAbstract(senderName string, abstract *models.Abstract, userMessage string) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("%s shared a scientific abstract with you", senderName)

	abstractURL := fmt.Sprintf("%s/abstracts/%s", t.cfg.FrontendURL, abstract.ID)
	year := ""
	if abstract.PublicationYear != nil {
		year = fmt.Sprintf("%d", *abstract.PublicationYear)
	}

	var htmlContent strings.Builder
	htmlContent.WriteString(fmt.Sprintf("<p><strong>%s</strong> thought you might find this abstract interesting:</p>", html.EscapeString(senderName)))

	if userMessage != "" {
		htmlContent.WriteString(fmt.Sprintf(`<p class="quote">%s</p>`, html.EscapeString(userMessage)))
	}

	htmlContent.WriteString(`<div class="info-box">`)
	htmlContent.WriteString(fmt.Sprintf("<p><span class=\"label\">Title:</span> %s</p>", html.EscapeString(abstract.Title)))
	htmlContent.WriteString(fmt.Sprintf("<p><span class=\"label\">Authors:</span> <span class=\"value\">%s</span></p>", html.EscapeString(abstract.Authors)))
	if year != "" {
		htmlContent.WriteString(fmt.Sprintf("<p><span class=\"label\">Year:</span> <span class=\"value\">%s</span></p>", year))
	}
	if abstract.Journal != "" {
		htmlContent.WriteString(fmt.Sprintf("<p><span class=\"label\">Journal:</span> <span class=\"value\">%s</span></p>", html.EscapeString(abstract.Journal)))
	}
	if abstract.DOI != "" {
		htmlContent.WriteString(fmt.Sprintf("<p><span class=\"label\">DOI:</span> <span class=\"value\">%s</span></p>", html.EscapeString(abstract.DOI)))
	}
	htmlContent.WriteString(fmt.Sprintf("<p>%s</p>", html.EscapeString(abstract.Excerpt())))
	if abstract.Keywords != "" {
		htmlContent.WriteString(fmt.Sprintf("<p><span class=\"label\">Keywords:</span> <span class=\"value\">%s</span></p>", html.EscapeString(abstract.Keywords)))
	}
	htmlContent.WriteString("</div>")

	htmlContent.WriteString(fmt.Sprintf(`<p><a href="%s" class="button">Read the full abstract</a></p>`, abstractURL))

	htmlBody = t.baseHTML(subject, htmlContent.String())

	var text strings.Builder
	text.WriteString(fmt.Sprintf("%s thought you might find this abstract interesting.\n\n", senderName))
	if userMessage != "" {
		text.WriteString(fmt.Sprintf("Their message:\n%s\n\n", userMessage))
	}
	text.WriteString(fmt.Sprintf("Title: %s\n", abstract.Title))
	text.WriteString(fmt.Sprintf("Authors: %s\n", abstract.Authors))
	if year != "" {
		text.WriteString(fmt.Sprintf("Year: %s\n", year))
	}
	if abstract.Journal != "" {
		text.WriteString(fmt.Sprintf("Journal: %s\n", abstract.Journal))
	}
	if abstract.DOI != "" {
		text.WriteString(fmt.Sprintf("DOI: %s\n", abstract.DOI))
	}
	text.WriteString(fmt.Sprintf("\n%s\n", abstract.Excerpt()))
	if abstract.Keywords != "" {
		text.WriteString(fmt.Sprintf("\nKeywords: %s\n", abstract.Keywords))
	}
	text.WriteString(fmt.Sprintf("\nRead the full abstract: %s\n", abstractURL))

	textBody = text.String()

	return subject, htmlBody, textBody
}
