package email

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"scishare/internal/config"
	"scishare/internal/models"
)

func templateConfig() *config.Config {
	return &config.Config{
		SiteTitle:   "SciShare",
		BaseURL:     "https://scishare.example.com",
		FrontendURL: "https://app.scishare.example.com",
	}
}

func TestTemplates_BaseHTML(t *testing.T) {
	tmpl := NewTemplates(templateConfig())

	html := tmpl.baseHTML("Test Title", "<p>Test content</p>")

	checks := []string{
		"<!DOCTYPE html>",
		"<title>Test Title</title>",
		"SciShare",
		"https://scishare.example.com",
		"<p>Test content</p>",
	}

	for _, check := range checks {
		if !strings.Contains(html, check) {
			t.Errorf("baseHTML missing %q", check)
		}
	}
}

func TestTemplates_BaseHTML_EscapesHTML(t *testing.T) {
	cfg := templateConfig()
	cfg.SiteTitle = "<script>alert('xss')</script>"
	tmpl := NewTemplates(cfg)

	html := tmpl.baseHTML("Test", "Content")

	if strings.Contains(html, "<script>") {
		t.Error("baseHTML should escape HTML in site title")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("baseHTML should contain escaped script tag")
	}
}

func TestTemplates_SharedAbstract(t *testing.T) {
	tmpl := NewTemplates(templateConfig())

	year := 2019
	abstract := &models.Abstract{
		ID:              uuid.New(),
		Title:           "Effects of microplastics on freshwater mussels",
		Authors:         "Lindgren, A.; Costa, P.",
		AbstractText:    strings.Repeat("Long abstract text. ", 50),
		Keywords:        "microplastics; mussels",
		DOI:             "10.1000/x.123",
		Journal:         "Aquatic Toxicology",
		PublicationYear: &year,
	}

	subject, htmlBody, textBody := tmpl.SharedAbstract("Ada Sharer", abstract, "thought of you")

	if !strings.Contains(subject, "Ada Sharer") {
		t.Errorf("subject missing sender name: %q", subject)
	}

	for _, body := range []string{htmlBody, textBody} {
		for _, want := range []string{
			abstract.Title,
			abstract.Authors,
			abstract.Journal,
			abstract.DOI,
			abstract.Keywords,
			"2019",
			"thought of you",
			"https://app.scishare.example.com/abstracts/" + abstract.ID.String(),
		} {
			if !strings.Contains(body, want) {
				t.Errorf("body missing %q", want)
			}
		}
	}
}

func TestTemplates_SharedAbstract_TruncatesText(t *testing.T) {
	tmpl := NewTemplates(templateConfig())

	abstract := &models.Abstract{
		ID:           uuid.New(),
		Title:        "T",
		Authors:      "A",
		AbstractText: strings.Repeat("a", 600),
	}

	_, _, textBody := tmpl.SharedAbstract("Sender", abstract, "")

	if strings.Contains(textBody, strings.Repeat("a", 501)) {
		t.Error("body should contain at most the first 500 characters of the abstract text")
	}
	if !strings.Contains(textBody, strings.Repeat("a", 500)+"...") {
		t.Error("truncated excerpt should end with an ellipsis")
	}
}

func TestTemplates_SharedAbstract_OmitsEmptyFields(t *testing.T) {
	tmpl := NewTemplates(templateConfig())

	abstract := &models.Abstract{
		ID:           uuid.New(),
		Title:        "Bare minimum",
		Authors:      "Solo, H.",
		AbstractText: "Text.",
	}

	_, _, textBody := tmpl.SharedAbstract("Sender", abstract, "")

	for _, absent := range []string{"Year:", "Journal:", "DOI:", "Keywords:", "Their message:"} {
		if strings.Contains(textBody, absent) {
			t.Errorf("body should omit %q when the field is empty", absent)
		}
	}
}

func TestTemplates_SharedAbstract_EscapesUserMessage(t *testing.T) {
	tmpl := NewTemplates(templateConfig())

	abstract := &models.Abstract{
		ID:           uuid.New(),
		Title:        "T",
		Authors:      "A",
		AbstractText: "Text.",
	}

	_, htmlBody, _ := tmpl.SharedAbstract("Sender", abstract, `<img src=x onerror=alert(1)>`)

	if strings.Contains(htmlBody, "<img src=x") {
		t.Error("user message must be HTML-escaped in the HTML body")
	}
}
